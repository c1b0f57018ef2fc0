// Package sign implements the signing phase (spec.md §4.10): each party
// turns its presign output into a partial signature over a message
// digest, an aggregator sums the partial signatures, and the result is
// normalized to low-s form and then verified against the group public
// key.
//
// Grounded on the teacher's internal/protocol/sign/round_4.go (partial
// signature: r from R.x, s_i = H(m)*k_i + r*chi_i) and round_5.go
// (summing s_i and verifying with decred's ecdsa package), collapsed
// from the teacher's five-round state machine into direct functions
// since presigning has already produced R, k_i and chi_i offline.
package sign

import (
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
)

// Signature is a 64-byte secp256k1 signature (r, s), both 32-byte
// big-endian scalars, normalized to low-s.
type Signature struct {
	R curve.Scalar
	S curve.Scalar
}

// Bytes returns the 64-byte r||s encoding.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, sig.R.Bytes()...)
	out = append(out, sig.S.Bytes()...)
	return out
}

func digestToScalar(digest []byte) curve.Scalar {
	return curve.NewScalar(new(big.Int).SetBytes(digest))
}
