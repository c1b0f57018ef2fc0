// Package logstar implements Π_log*, the zero-knowledge proof that a
// Paillier ciphertext C and a curve point X = x*g are consistent, i.e.
// C encrypts the same x that X is the discrete log of (spec.md §4.4).
//
// Grounded directly on the ProofLogstar construction in
// other_examples/06a3f663_bnb-chain-tss-lib__crypto-zkp-logstar-logstar.go.go
// (S, A, Y, D, Z1, Z2, Z3 fields and the three verification equations),
// adapted to this module's curve.Point/Scalar and paillier types.
package logstar

import (
	"crypto/sha256"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/params"
)

// Public inputs to Π_log*.
type Public struct {
	C         *big.Int             // ciphertext under test
	X         curve.Point          // x*Generator
	Generator curve.Point          // the base point this proof is relative to (G, or Γ in presign round 3)
	N0        *paillier.PublicKey  // prover's Paillier key
	Aux       *pedersen.Parameters // verifier's Pedersen auxiliary parameters
}

// Private inputs known only to the prover.
type Private struct {
	X   *big.Int // the discrete log; C = Enc_N0(x; Rho)
	Rho *big.Int // encryption randomness used to produce Public.C
}

// Proof is the non-interactive Π_log* transcript.
type Proof struct {
	S  *big.Int
	A  *big.Int
	Y  curve.Point
	D  *big.Int
	Z1 *big.Int
	Z2 *big.Int
	Z3 *big.Int
}

// Prove constructs a Π_log* proof binding sid to every commitment.
func Prove(sid []byte, pub Public, priv Private) (*Proof, error) {
	ncap := pub.Aux.N

	alpha, err := sampling.PlusMinusPow2(params.LPlusEpsilon)
	if err != nil {
		return nil, err
	}
	mu, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.L), ncap))
	if err != nil {
		return nil, err
	}
	r, err := sampling.UnitModN(pub.N0.N)
	if err != nil {
		return nil, err
	}
	gamma, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.LPlusEpsilon), ncap))
	if err != nil {
		return nil, err
	}

	S := pub.Aux.Commit(priv.X, mu)
	A, err := pub.N0.EncryptWithNonce(alpha, r)
	if err != nil {
		return nil, err
	}
	Y := pub.Generator.ScalarMult(curve.NewScalar(alpha))
	D := pub.Aux.Commit(alpha, gamma)

	e := challenge(sid, pub, S, A, Y, D)

	z1 := new(big.Int).Mul(e, priv.X)
	z1.Add(z1, alpha)

	z2 := new(big.Int).Exp(priv.Rho, e, pub.N0.N)
	z2.Mul(z2, r)
	z2.Mod(z2, pub.N0.N)

	z3 := new(big.Int).Mul(e, mu)
	z3.Add(z3, gamma)

	return &Proof{S: S, A: A, Y: Y, D: D, Z1: z1, Z2: z2, Z3: z3}, nil
}

// Verify checks the Π_log* proof against the public statement.
func (p *Proof) Verify(sid []byte, pub Public) bool {
	if p == nil || p.S == nil || p.A == nil || p.D == nil || p.Z1 == nil || p.Z2 == nil || p.Z3 == nil {
		return false
	}
	if !sampling.InRangePow2(p.Z1, params.LPlusEpsilon) {
		return false
	}

	e := challenge(sid, pub, p.S, p.A, p.Y, p.D)

	lhs, err := pub.N0.EncryptWithNonce(p.Z1, p.Z2)
	if err != nil {
		return false
	}
	rhs := new(big.Int).Exp(pub.C, e, pub.N0.N2)
	rhs.Mul(rhs, p.A)
	rhs.Mod(rhs, pub.N0.N2)
	if lhs.Cmp(rhs) != 0 {
		return false
	}

	z1Scalar := curve.NewScalar(p.Z1)
	lhsPoint := pub.Generator.ScalarMult(z1Scalar)
	eScalar := curve.NewScalar(e)
	rhsPoint := pub.X.ScalarMult(eScalar).Add(p.Y)
	if !lhsPoint.Equal(rhsPoint) {
		return false
	}

	return pub.Aux.Verify(p.Z1, p.Z3, e, p.D, p.S)
}

func challenge(sid []byte, pub Public, S, A *big.Int, Y curve.Point, D *big.Int) *big.Int {
	h := sha256.New()
	h.Write([]byte("cggmp21/zk/log-star"))
	h.Write(sid)
	h.Write(pub.N0.N.Bytes())
	h.Write(pub.Aux.N.Bytes())
	h.Write(pub.Aux.S.Bytes())
	h.Write(pub.Aux.T.Bytes())
	h.Write(pub.C.Bytes())
	if gx, gy := pub.Generator.XY(); gx != nil {
		h.Write(gx.Bytes())
		h.Write(gy.Bytes())
	}
	if xx, xy := pub.X.XY(); xx != nil {
		h.Write(xx.Bytes())
		h.Write(xy.Bytes())
	}
	h.Write(S.Bytes())
	h.Write(A.Bytes())
	if yx, yy := Y.XY(); yx != nil {
		h.Write(yx.Bytes())
		h.Write(yy.Bytes())
	}
	h.Write(D.Bytes())

	digest := h.Sum(nil)
	e := new(big.Int).SetBytes(digest)
	return e.Mod(e, curve.Order())
}

func bigPow2(bits int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bits))
}
