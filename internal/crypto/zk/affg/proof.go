// Package affg implements Π_aff-g, the zero-knowledge proof that a
// ciphertext D was produced from C by the affine transform
// D = C^x ⊕ Enc_N0(y), with x·G = X (spec.md §4.4).
//
// The shape (A/Bx/By commitments, four Pedersen commitments E/S/F/T,
// paired responses) generalizes the teacher's
// internal/crypto/zk/mta/proof.go MtA-proof skeleton — flagged by the
// teacher's own comments as a "simplified version" that skips the
// randomness check entirely — into the full affine-operation proof,
// following the commit/challenge/respond/verify structure of
// bnb-chain-tss-lib's zkp/logstar proof (same reference family).
package affg

import (
	"crypto/sha256"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/params"
)

// Public inputs to Π_aff-g.
type Public struct {
	C, D, Y *big.Int              // ciphertexts: C under N0, D under N0, Y under N1
	X       curve.Point           // x*G, the curve-point consistency target
	N0      *paillier.PublicKey   // verifier's Paillier key (C, D live here)
	N1      *paillier.PublicKey   // prover's Paillier key (Y lives here)
	Aux     *pedersen.Parameters  // verifier's Pedersen auxiliary parameters
}

// Private inputs known only to the prover.
type Private struct {
	X    *big.Int // in ±2^ℓ; x*G = Public.X
	Y    *big.Int // in ±2^ℓ'
	Rho  *big.Int // randomness s.t. D = C^x * Enc_N0(y; Rho)
	RhoY *big.Int // randomness s.t. Y = Enc_N1(y; RhoY)
}

// Proof is the non-interactive Π_aff-g transcript.
type Proof struct {
	E, S, F, T *big.Int
	A          *big.Int
	Bx         curve.Point
	By         *big.Int
	Z1, Z2     *big.Int
	Z3, Z4     *big.Int
	W, WY      *big.Int
}

// Prove constructs a Π_aff-g proof binding sid to every commitment.
func Prove(sid []byte, pub Public, priv Private) (*Proof, error) {
	ncap := pub.Aux.N

	alpha, err := sampling.PlusMinusPow2(params.LPlusEpsilon)
	if err != nil {
		return nil, err
	}
	beta, err := sampling.PlusMinusPow2(params.LPrimePlusEpsilon)
	if err != nil {
		return nil, err
	}
	r, err := sampling.UnitModN(pub.N0.N)
	if err != nil {
		return nil, err
	}
	rY, err := sampling.UnitModN(pub.N1.N)
	if err != nil {
		return nil, err
	}
	gamma, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.LPlusEpsilon), ncap))
	if err != nil {
		return nil, err
	}
	mu, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.L), ncap))
	if err != nil {
		return nil, err
	}
	delta, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.LPrimePlusEpsilon), ncap))
	if err != nil {
		return nil, err
	}
	muHat, err := sampling.PlusMinus(new(big.Int).Mul(bigPow2(params.LPrime), ncap))
	if err != nil {
		return nil, err
	}

	// A = C^alpha * Enc_N0(beta; r)
	cAlpha := ctExpSigned(pub.C, alpha, pub.N0.N2)
	encBeta, err := pub.N0.EncryptWithNonce(beta, r)
	if err != nil {
		return nil, err
	}
	A := pub.N0.Add(cAlpha, encBeta)

	alphaScalar := curve.NewScalar(alpha)
	Bx := curve.ScalarBaseMult(alphaScalar)

	By, err := pub.N1.EncryptWithNonce(beta, rY)
	if err != nil {
		return nil, err
	}

	E := pub.Aux.Commit(alpha, gamma)
	S := pub.Aux.Commit(priv.X, mu)
	F := pub.Aux.Commit(beta, delta)
	T := pub.Aux.Commit(priv.Y, muHat)

	e := challenge(sid, pub, E, S, F, T, A, Bx, By)

	z1 := new(big.Int).Mul(e, priv.X)
	z1.Add(z1, alpha)

	z2 := new(big.Int).Mul(e, priv.Y)
	z2.Add(z2, beta)

	z3 := new(big.Int).Mul(e, mu)
	z3.Add(z3, gamma)

	z4 := new(big.Int).Mul(e, muHat)
	z4.Add(z4, delta)

	w := new(big.Int).Exp(priv.Rho, e, pub.N0.N)
	w.Mul(w, r)
	w.Mod(w, pub.N0.N)

	wY := new(big.Int).Exp(priv.RhoY, e, pub.N1.N)
	wY.Mul(wY, rY)
	wY.Mod(wY, pub.N1.N)

	return &Proof{
		E: E, S: S, F: F, T: T,
		A: A, Bx: Bx, By: By,
		Z1: z1, Z2: z2, Z3: z3, Z4: z4,
		W: w, WY: wY,
	}, nil
}

// Verify checks the Π_aff-g proof against the public statement.
func (p *Proof) Verify(sid []byte, pub Public) bool {
	if p == nil || p.E == nil || p.S == nil || p.F == nil || p.T == nil || p.A == nil ||
		p.By == nil || p.Z1 == nil || p.Z2 == nil || p.Z3 == nil || p.Z4 == nil || p.W == nil || p.WY == nil {
		return false
	}
	if !sampling.InRangePow2(p.Z1, params.LPlusEpsilon) {
		return false
	}
	if !sampling.InRangePow2(p.Z2, params.LPrimePlusEpsilon) {
		return false
	}

	e := challenge(sid, pub, p.E, p.S, p.F, p.T, p.A, p.Bx, p.By)

	if !pub.Aux.Verify(p.Z1, p.Z3, e, p.E, p.S) {
		return false
	}
	if !pub.Aux.Verify(p.Z2, p.Z4, e, p.F, p.T) {
		return false
	}

	// C^z1 * Enc_N0(z2; w) ?= A * D^e (mod N0^2)
	{
		cz1 := ctExpSigned(pub.C, p.Z1, pub.N0.N2)
		encZ2, err := pub.N0.EncryptWithNonce(p.Z2, p.W)
		if err != nil {
			return false
		}
		lhs := pub.N0.Add(cz1, encZ2)

		de := new(big.Int).Exp(pub.D, e, pub.N0.N2)
		rhs := pub.N0.Add(de, p.A)

		if lhs.Cmp(rhs) != 0 {
			return false
		}
	}

	// Enc_N1(z2; wY) ?= By * Y^e (mod N1^2)
	{
		lhs, err := pub.N1.EncryptWithNonce(p.Z2, p.WY)
		if err != nil {
			return false
		}
		ye := new(big.Int).Exp(pub.Y, e, pub.N1.N2)
		rhs := pub.N1.Add(ye, p.By)

		if lhs.Cmp(rhs) != 0 {
			return false
		}
	}

	// z1*G ?= e*X + Bx
	z1Scalar := curve.NewScalar(p.Z1)
	lhsPoint := curve.ScalarBaseMult(z1Scalar)
	eScalar := curve.NewScalar(e)
	rhsPoint := pub.X.ScalarMult(eScalar).Add(p.Bx)

	return lhsPoint.Equal(rhsPoint)
}

func challenge(sid []byte, pub Public, E, S, F, T, A *big.Int, Bx curve.Point, By *big.Int) *big.Int {
	h := sha256.New()
	h.Write([]byte("cggmp21/zk/aff-g"))
	h.Write(sid)
	h.Write(pub.N0.N.Bytes())
	h.Write(pub.N1.N.Bytes())
	h.Write(pub.Aux.N.Bytes())
	h.Write(pub.Aux.S.Bytes())
	h.Write(pub.Aux.T.Bytes())
	h.Write(pub.C.Bytes())
	h.Write(pub.D.Bytes())
	h.Write(pub.Y.Bytes())
	bx, by := Bx.XY()
	if bx != nil {
		h.Write(bx.Bytes())
		h.Write(by.Bytes())
	}
	h.Write(E.Bytes())
	h.Write(S.Bytes())
	h.Write(F.Bytes())
	h.Write(T.Bytes())
	h.Write(A.Bytes())
	h.Write(By.Bytes())

	digest := h.Sum(nil)
	e := new(big.Int).SetBytes(digest)
	return e.Mod(e, curve.Order())
}

func bigPow2(bits int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bits))
}

// ctExpSigned computes base^exp mod mod, supporting negative exponents
// by inverting base mod mod first. base is always coprime to mod here
// (a Paillier ciphertext is coprime to N^2 by construction/validation),
// so the inverse always exists.
func ctExpSigned(base, exp, mod *big.Int) *big.Int {
	if exp.Sign() >= 0 {
		return new(big.Int).Exp(base, exp, mod)
	}
	inv := new(big.Int).ModInverse(base, mod)
	if inv == nil {
		return big.NewInt(0)
	}
	posExp := new(big.Int).Neg(exp)
	return new(big.Int).Exp(inv, posExp, mod)
}
