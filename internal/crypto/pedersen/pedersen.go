// Package pedersen implements the (N, s, t) auxiliary commitment
// parameters used to statistically hide values inside the ZK proofs
// (spec.md §3/§4.3).
package pedersen

import (
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
)

// Parameters is (N, s, t) with s = t^lambda mod N for a secret lambda,
// and t = tau^2 mod N for a random tau coprime to N.
type Parameters struct {
	N    *big.Int
	S, T *big.Int
}

// DeriveFromPaillier builds a party's own Pedersen auxiliary parameters
// from its own Paillier secret, reusing the same modulus N as spec.md
// §4.5 specifies ("derive Pedersen parameters from the Paillier secret").
func DeriveFromPaillier(sk *paillier.PrivateKey) (*Parameters, error) {
	n := sk.N
	phi := sk.Phi

	tau, err := sampling.UnitModN(n)
	if err != nil {
		return nil, err
	}
	t := new(big.Int).Exp(tau, big.NewInt(2), n)

	lambda, err := sampling.NonNegative(phi)
	if err != nil {
		return nil, err
	}
	s := new(big.Int).Exp(t, lambda, n)

	return &Parameters{N: n, S: s, T: t}, nil
}

// Commit returns s^x * t^y mod N.
func (p *Parameters) Commit(x, y *big.Int) *big.Int {
	sx := modExpSigned(p.S, x, p.N)
	ty := modExpSigned(p.T, y, p.N)
	c := new(big.Int).Mul(sx, ty)
	return c.Mod(c, p.N)
}

// Verify checks s^a * t^b ?= S * T^e (mod N), requiring S and T to be
// units mod N.
func (p *Parameters) Verify(a, b, e, commitS, commitT *big.Int) bool {
	one := big.NewInt(1)
	if new(big.Int).GCD(nil, nil, commitS, p.N).Cmp(one) != 0 {
		return false
	}
	if new(big.Int).GCD(nil, nil, commitT, p.N).Cmp(one) != 0 {
		return false
	}

	lhs := p.Commit(a, b)

	te := modExpSigned(commitT, e, p.N)
	rhs := new(big.Int).Mul(commitS, te)
	rhs.Mod(rhs, p.N)

	return lhs.Cmp(rhs) == 0
}

// modExpSigned computes base^exp mod m, supporting negative exponents by
// inverting base mod m first (every exponent fed to Pedersen commitments
// in the ZK proofs may be negative, e.g. the proof responses z_i).
func modExpSigned(base, exp, m *big.Int) *big.Int {
	if exp.Sign() >= 0 {
		return new(big.Int).Exp(base, exp, m)
	}
	inv := new(big.Int).ModInverse(base, m)
	if inv == nil {
		return big.NewInt(0)
	}
	posExp := new(big.Int).Neg(exp)
	return new(big.Int).Exp(inv, posExp, m)
}
