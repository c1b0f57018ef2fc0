// Package curve wraps github.com/decred/dcrd/dcrec/secp256k1/v4 with the
// Scalar/Point types the rest of this module operates on. Scalar always
// reduces modulo the group order at construction time, and Point models
// the point at infinity as an explicit variant rather than relying on the
// (0,0) sentinel the original source used (see DESIGN.md, Open Questions).
package curve

import (
	"crypto/rand"
	"encoding/json"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Order returns N, the order of the secp256k1 base point.
func Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().N)
}

// FieldPrime returns P, the secp256k1 field prime.
func FieldPrime() *big.Int {
	return new(big.Int).Set(secp256k1.S256().P)
}

// Scalar is an element of Z_N, always kept reduced in [0, N).
type Scalar struct {
	v *big.Int
}

// NewScalar reduces v modulo N and returns the resulting Scalar. This
// resolves the Open Question in spec.md §9: constructors never admit a
// value outside [0, N).
func NewScalar(v *big.Int) Scalar {
	r := new(big.Int).Mod(v, secp256k1.S256().N)
	return Scalar{v: r}
}

// RandomScalar draws a uniformly random non-zero element of Z_N.
func RandomScalar() (Scalar, error) {
	for {
		k, err := randFieldElement(secp256k1.S256().N)
		if err != nil {
			return Scalar{}, err
		}
		if k.Sign() != 0 {
			return Scalar{v: k}, nil
		}
	}
}

// Int returns a copy of the scalar's big.Int representation.
func (s Scalar) Int() *big.Int { return new(big.Int).Set(s.v) }

// Bytes returns the scalar as a 32-byte big-endian encoding.
func (s Scalar) Bytes() []byte {
	return leftPad32(s.v)
}

// Equal reports whether s and o are the same element of Z_N.
func (s Scalar) Equal(o Scalar) bool { return s.v.Cmp(o.v) == 0 }

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool { return s.v.Sign() == 0 }

// IsHigh reports whether the scalar's value exceeds N/2, the ECDSA
// low-s normalization test.
func (s Scalar) IsHigh() bool {
	half := new(big.Int).Rsh(secp256k1.S256().N, 1)
	return s.v.Cmp(half) == 1
}

func (s Scalar) Add(o Scalar) Scalar {
	return NewScalar(new(big.Int).Add(s.v, o.v))
}

func (s Scalar) Sub(o Scalar) Scalar {
	return NewScalar(new(big.Int).Sub(s.v, o.v))
}

func (s Scalar) Mul(o Scalar) Scalar {
	return NewScalar(new(big.Int).Mul(s.v, o.v))
}

func (s Scalar) Negate() Scalar {
	return NewScalar(new(big.Int).Neg(s.v))
}

// Invert returns s^-1 mod N. Panics if s is zero, matching the standard
// library's math/big.Int.ModInverse contract of returning nil on no
// inverse, surfaced here as a panic because a zero scalar inverse is
// always a programming error at the call sites in this module.
func (s Scalar) Invert() Scalar {
	inv := new(big.Int).ModInverse(s.v, secp256k1.S256().N)
	if inv == nil {
		panic("curve: cannot invert zero scalar")
	}
	return Scalar{v: inv}
}

type wireScalar struct {
	V *big.Int
}

// MarshalJSON encodes the scalar as its integer value, for inclusion in
// round-message payloads.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireScalar{V: s.v})
}

// UnmarshalJSON decodes a scalar produced by MarshalJSON, reducing mod N.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var w wireScalar
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = NewScalar(w.V)
	return nil
}

func (s Scalar) modN() *secp256k1.ModNScalar {
	var m secp256k1.ModNScalar
	m.SetByteSlice(leftPad32(s.v))
	return &m
}

// Point is an affine secp256k1 point. The point at infinity is built with
// Identity() and is never confused with the (0,0) affine coordinate pair
// because it is tracked explicitly. The zero value Point{} is not the
// identity and carries no coordinates, so it is not a usable point.
type Point struct {
	isIdentity bool
	x, y       *big.Int
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{isIdentity: true}
}

// BasePoint returns the secp256k1 generator G.
func BasePoint() Point {
	gx, gy := secp256k1.S256().Params().Gx, secp256k1.S256().Params().Gy
	return Point{x: new(big.Int).Set(gx), y: new(big.Int).Set(gy)}
}

// NewAffinePoint builds a Point from affine coordinates without checking
// curve membership; use IsOnCurve to validate untrusted input.
func NewAffinePoint(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool { return p.isIdentity }

// XY returns the affine coordinates. Calling this on the identity point
// returns (nil, nil).
func (p Point) XY() (*big.Int, *big.Int) {
	if p.isIdentity {
		return nil, nil
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y)
}

// IsOnCurve checks y^2 = x^3 + 7 (mod P).
func (p Point) IsOnCurve() bool {
	if p.isIdentity {
		return true
	}
	return secp256k1.S256().IsOnCurve(p.x, p.y)
}

func (p Point) toJacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	if p.isIdentity {
		j.X.SetInt(0)
		j.Y.SetInt(0)
		j.Z.SetInt(0)
		return j
	}
	j.X.SetByteSlice(leftPad32(p.x))
	j.Y.SetByteSlice(leftPad32(p.y))
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j *secp256k1.JacobianPoint) Point {
	j.ToAffine()
	if j.X.IsZero() && j.Y.IsZero() {
		return Identity()
	}
	xBytes := j.X.Bytes()
	yBytes := j.Y.Bytes()
	return Point{
		x: new(big.Int).SetBytes(xBytes[:]),
		y: new(big.Int).SetBytes(yBytes[:]),
	}
}

// Add returns p + o. Mutual inverses (or either operand being the
// identity) correctly collapse to Identity().
func (p Point) Add(o Point) Point {
	if p.isIdentity {
		return o
	}
	if o.isIdentity {
		return p
	}
	pj, oj := p.toJacobian(), o.toJacobian()
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&pj, &oj, &sum)
	return fromJacobian(&sum)
}

// Negate returns the additive inverse of p.
func (p Point) Negate() Point {
	if p.isIdentity {
		return p
	}
	negY := new(big.Int).Sub(FieldPrime(), p.y)
	return Point{x: new(big.Int).Set(p.x), y: negY}
}

// ScalarMult returns k*p.
func (p Point) ScalarMult(k Scalar) Point {
	if p.isIdentity || k.IsZero() {
		return Identity()
	}
	pj := p.toJacobian()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k.modN(), &pj, &result)
	return fromJacobian(&result)
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k Scalar) Point {
	if k.IsZero() {
		return Identity()
	}
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k.modN(), &result)
	return fromJacobian(&result)
}

// Equal reports whether p and o represent the same curve point.
func (p Point) Equal(o Point) bool {
	if p.isIdentity || o.isIdentity {
		return p.isIdentity == o.isIdentity
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

// ToPublicKeyBytes emits the uncompressed SEC1 form 0x04 || X || Y,
// zero-padding each coordinate to 32 bytes.
func (p Point) ToPublicKeyBytes() []byte {
	if p.isIdentity {
		return []byte{0x00}
	}
	out := make([]byte, 65)
	out[0] = 0x04
	copy(out[1:33], leftPad32(p.x))
	copy(out[33:65], leftPad32(p.y))
	return out
}

// PublicKey converts p to a *secp256k1.PublicKey for interop with
// ecdsa.Verify. p must not be the identity.
func (p Point) PublicKey() *secp256k1.PublicKey {
	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(leftPad32(p.x))
	fy.SetByteSlice(leftPad32(p.y))
	return secp256k1.NewPublicKey(&fx, &fy)
}

type wirePoint struct {
	Identity bool
	X, Y     *big.Int
}

// MarshalJSON encodes the point as affine coordinates, or a bare
// identity flag for the point at infinity.
func (p Point) MarshalJSON() ([]byte, error) {
	if p.isIdentity {
		return json.Marshal(wirePoint{Identity: true})
	}
	return json.Marshal(wirePoint{X: p.x, Y: p.y})
}

// UnmarshalJSON decodes a point produced by MarshalJSON.
func (p *Point) UnmarshalJSON(data []byte) error {
	var w wirePoint
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Identity {
		*p = Identity()
		return nil
	}
	*p = NewAffinePoint(w.X, w.Y)
	return nil
}

func leftPad32(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func randFieldElement(max *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, max)
}
