// Package keygen implements the centralized trusted-dealer precomputation
// phase (spec.md §4.5): per-party secret shares, Paillier keypairs and
// Pedersen auxiliary parameters, and the Lagrange scaling used to hand a
// signer subset its session-local shares.
//
// Shaped after the teacher's internal/protocol/keygen/types.go
// (LocalPartySaveData) but collapsed to a single-shot dealer call: the
// teacher's keygen is itself an interactive round protocol, which
// spec.md explicitly scopes out in favor of the reference centralized
// variant.
package keygen

import (
	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
)

// SecretPrecomputation holds one party's private material from dealer
// output.
type SecretPrecomputation struct {
	ID             int
	Ssid           [16]byte
	Threshold      int
	EcdsaShare     curve.Scalar
	PaillierSecret *paillier.PrivateKey
}

// PublicPrecomputation holds one party's public material, visible to
// every other participant.
type PublicPrecomputation struct {
	ID             int
	Ssid           [16]byte
	PublicEcdsa    curve.Point
	PaillierPublic *paillier.PublicKey
	Aux            *pedersen.Parameters
}

// Output is the full result of a trusted-dealer run: every party's
// secret and public precomputation, plus the resulting group key.
type Output struct {
	IDs            []int
	Secrets        map[int]*SecretPrecomputation
	Publics        map[int]*PublicPrecomputation
	GroupPublicKey curve.Point
}
