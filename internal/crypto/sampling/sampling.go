// Package sampling provides cryptographically secure random sampling of
// big integers in ranges and moduli, plus Blum safe-prime generation for
// Paillier keys. Every function here draws from crypto/rand.
package sampling

import (
	"crypto/rand"
	"math/big"

	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// maxRejectionIterations bounds rejection-sampling loops; exceeding it
// signals a caller error (a degenerate modulus) rather than bad luck.
const maxRejectionIterations = 255

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// UnitModN samples a uniformly random element of Z_N* (coprime to N).
func UnitModN(n *big.Int) (*big.Int, error) {
	for i := 0; i < maxRejectionIterations; i++ {
		r, err := rand.Int(rand.Reader, n)
		if err != nil {
			return nil, err
		}
		if r.Sign() == 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, r, n).Cmp(one) == 0 {
			return r, nil
		}
	}
	return nil, tss.ErrSampleExhausted
}

// NonNegative samples a uniform value in [0, max).
func NonNegative(max *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, max)
}

// PlusMinus samples a value in the symmetric range (-bound, bound) by
// drawing a non-negative value in [0, bound) and giving it a random sign,
// as required for the "sample in ±2^L" primitives used throughout the ZK
// proofs (spec size parameters ℓ, ℓ', ε).
func PlusMinus(bound *big.Int) (*big.Int, error) {
	v, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return nil, err
	}
	signByte := make([]byte, 1)
	if _, err := rand.Read(signByte); err != nil {
		return nil, err
	}
	if signByte[0]&1 == 1 {
		v.Neg(v)
	}
	return v, nil
}

// PlusMinusPow2 samples a value in (-2^bits, 2^bits) by drawing bits+1
// random bits and using the low bit as sign, matching the "read bits/8+1
// bytes, LSB is sign" contract from the design notes. The absolute value
// always has bit length <= bits, which is the membership test used by
// every range check in the ZK proofs.
func PlusMinusPow2(bits int) (*big.Int, error) {
	bound := new(big.Int).Lsh(one, uint(bits))
	return PlusMinus(bound)
}

// InRangePow2 reports whether |v| has bit length <= bits, the membership
// test used for every "v in ±2^bits" range check.
func InRangePow2(v *big.Int, bits int) bool {
	abs := new(big.Int).Abs(v)
	return abs.BitLen() <= bits
}

// BlumSafePrime samples a random bits-bit prime p with p ≡ 3 (mod 4) and
// (p-1)/2 also prime (a safe Blum prime), as required for Paillier moduli.
// It draws candidates until one qualifies and returns an error only if the
// random source fails; maxRejectionIterations does not apply here.
func BlumSafePrime(bits int) (*big.Int, error) {
	for {
		candidate, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			return nil, err
		}
		if !isBlum(candidate) {
			continue
		}
		sophieGermain := new(big.Int).Sub(candidate, one)
		sophieGermain.Div(sophieGermain, two)
		if sophieGermain.ProbablyPrime(40) {
			return candidate, nil
		}
	}
}

func isBlum(p *big.Int) bool {
	mod4 := new(big.Int).Mod(p, big.NewInt(4))
	return mod4.Cmp(big.NewInt(3)) == 0
}
