// Package shamir implements polynomial secret sharing and Lagrange
// interpolation over the secp256k1 scalar field, generalizing the
// teacher's internal/crypto/polynomial/polynomial.go (evaluation) and
// internal/protocol/sign/round_1.go's calcLagrangeCoeffs (coefficient
// computation, there inlined for the full-party case) to an arbitrary
// signer subset (spec.md §4.5/§4.6).
package shamir

import (
	"errors"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
)

// ErrDegenerateSubset is returned when two entries in a signer subset
// collide, making the Lagrange denominator non-invertible.
var ErrDegenerateSubset = errors.New("shamir: degenerate signer subset")

// Polynomial is f(x) = a_0 + a_1*x + ... + a_t*x^t over Z_N, N the
// secp256k1 group order.
type Polynomial struct {
	Coefficients []*big.Int
}

// New draws a random degree-t polynomial with a random constant term.
func New(degree int) (*Polynomial, error) {
	secret, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	return NewWithSecret(degree, secret)
}

// NewWithSecret draws a random degree-t polynomial whose constant term
// is the given secret (spec.md §4.5: "draw a degree-t random polynomial
// over Z_N").
func NewWithSecret(degree int, secret curve.Scalar) (*Polynomial, error) {
	coeffs := make([]*big.Int, degree+1)
	coeffs[0] = secret.Int()

	for i := 1; i <= degree; i++ {
		s, err := curve.RandomScalar()
		if err != nil {
			return nil, err
		}
		coeffs[i] = s.Int()
	}

	return &Polynomial{Coefficients: coeffs}, nil
}

// Evaluate computes f(x) mod N via Horner's method.
func (p *Polynomial) Evaluate(x *big.Int) curve.Scalar {
	n := curve.Order()
	degree := len(p.Coefficients) - 1
	result := new(big.Int).Set(p.Coefficients[degree])

	for i := degree - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.Coefficients[i])
		result.Mod(result, n)
	}

	return curve.NewScalar(result)
}

// EvaluateMulti evaluates f at every x in xs.
func (p *Polynomial) EvaluateMulti(xs []*big.Int) []curve.Scalar {
	out := make([]curve.Scalar, len(xs))
	for i, x := range xs {
		out[i] = p.Evaluate(x)
	}
	return out
}

// LagrangeCoefficient computes λ_i = Π_{j∈xs,j≠myX} j·(j−myX)⁻¹ mod N,
// the coefficient that scales party myX's share so that summing all
// scaled shares in xs reconstructs f(0) (spec.md §4.5 "Scaling for
// signer subset").
func LagrangeCoefficient(xs []*big.Int, myX *big.Int) (curve.Scalar, error) {
	n := curve.Order()

	num := big.NewInt(1)
	den := big.NewInt(1)

	for _, x := range xs {
		if x.Cmp(myX) == 0 {
			continue
		}

		num.Mul(num, x)
		num.Mod(num, n)

		diff := new(big.Int).Sub(x, myX)
		diff.Mod(diff, n)
		den.Mul(den, diff)
		den.Mod(den, n)
	}

	denInv := new(big.Int).ModInverse(den, n)
	if denInv == nil {
		return curve.Scalar{}, ErrDegenerateSubset
	}

	lambda := new(big.Int).Mul(num, denInv)
	lambda.Mod(lambda, n)

	return curve.NewScalar(lambda), nil
}
