// Package enc implements Π_enc, the zero-knowledge range proof that a
// Paillier ciphertext encrypts a value in ±2^ℓ (spec.md §4.4).
//
// The shape (commitment/challenge/response, a Pedersen-hidden response
// and a Paillier-equation response) follows the teacher's
// internal/crypto/zk/range/proof.go, which the teacher's own comments
// flag as a simplified placeholder; this fills in the full three-way
// check spec.md §4.4 requires, using the SHA-256 Fiat-Shamir pattern
// modeled on bnb-chain-tss-lib's zkp/logstar proof.
package enc

import (
	"crypto/sha256"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/params"
)

// Public inputs to Π_enc.
type Public struct {
	K      *big.Int           // ciphertext under test
	Prover *paillier.PublicKey // prover's own Paillier key, N0
	Aux    *pedersen.Parameters // verifier's Pedersen auxiliary parameters
}

// Private inputs known only to the prover.
type Private struct {
	K   *big.Int // the plaintext, in ±2^ℓ
	Rho *big.Int // the encryption randomness used to produce Public.K
}

// Proof is the non-interactive Π_enc transcript.
type Proof struct {
	S  *big.Int
	A  *big.Int
	C  *big.Int
	Z1 *big.Int
	Z2 *big.Int
	Z3 *big.Int
}

// Prove constructs a Π_enc proof binding sid to every commitment, so
// transcripts from distinct sessions never collide.
func Prove(sid []byte, pub Public, priv Private) (*Proof, error) {
	ncap := pub.Aux.N

	alpha, err := sampling.PlusMinusPow2(params.LPlusEpsilon)
	if err != nil {
		return nil, err
	}
	r, err := sampling.UnitModN(pub.Prover.N)
	if err != nil {
		return nil, err
	}
	mu, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.L), ncap))
	if err != nil {
		return nil, err
	}
	gamma, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.LPlusEpsilon), ncap))
	if err != nil {
		return nil, err
	}

	S := pub.Aux.Commit(priv.K, mu)
	A, err := pub.Prover.EncryptWithNonce(alpha, r)
	if err != nil {
		return nil, err
	}
	C := pub.Aux.Commit(alpha, gamma)

	e := challenge(sid, pub, S, A, C)

	z1 := new(big.Int).Mul(e, priv.K)
	z1.Add(z1, alpha)

	z2 := new(big.Int).Exp(priv.Rho, e, pub.Prover.N)
	z2.Mul(z2, r)
	z2.Mod(z2, pub.Prover.N)

	z3 := new(big.Int).Mul(e, mu)
	z3.Add(z3, gamma)

	return &Proof{S: S, A: A, C: C, Z1: z1, Z2: z2, Z3: z3}, nil
}

// Verify checks the Π_enc proof against the public statement.
func (p *Proof) Verify(sid []byte, pub Public) bool {
	if p == nil || p.S == nil || p.A == nil || p.C == nil || p.Z1 == nil || p.Z2 == nil || p.Z3 == nil {
		return false
	}
	if !sampling.InRangePow2(p.Z1, params.LPlusEpsilon) {
		return false
	}

	e := challenge(sid, pub, p.S, p.A, p.C)

	if !pub.Aux.Verify(p.Z1, p.Z3, e, p.C, p.S) {
		return false
	}

	lhs, err := pub.Prover.EncryptWithNonce(p.Z1, p.Z2)
	if err != nil {
		return false
	}
	rhs := new(big.Int).Exp(pub.K, e, pub.Prover.N2)
	rhs.Mul(rhs, p.A)
	rhs.Mod(rhs, pub.Prover.N2)

	return lhs.Cmp(rhs) == 0
}

func challenge(sid []byte, pub Public, S, A, C *big.Int) *big.Int {
	h := sha256.New()
	h.Write([]byte("cggmp21/zk/enc"))
	h.Write(sid)
	h.Write(pub.Prover.N.Bytes())
	h.Write(pub.Aux.N.Bytes())
	h.Write(pub.Aux.S.Bytes())
	h.Write(pub.Aux.T.Bytes())
	h.Write(pub.K.Bytes())
	h.Write(S.Bytes())
	h.Write(A.Bytes())
	h.Write(C.Bytes())

	digest := h.Sum(nil)
	e := new(big.Int).SetBytes(digest)
	return e.Mod(e, curve.Order())
}

func bigPow2(bits int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bits))
}
