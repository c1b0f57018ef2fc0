// Package presign implements the three-round presigning protocol
// (spec.md §4.6-4.9): each signer samples a nonce share, runs a pair of
// Π_aff-g-verified MtA exchanges with every peer to blind its nonce and
// key shares, then checks a group consistency identity before handing
// back a PreSignature usable for exactly one signing operation.
//
// Shaped after the teacher's internal/protocol/sign/state.go
// round-synchronous state machine (round counter, tempData scratch map,
// receivedMsgs keyed by sender), generalized from the teacher's
// simplified MtA (internal/crypto/zk/mta) to the full Π_aff-g/Π_log*
// construction spec.md requires.
package presign

import (
	"fmt"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/protocol/keygen"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// KeyData is the local party's view of the (Lagrange-scaled) keygen
// output for the signer subset running this presign session.
type KeyData struct {
	Secret  *keygen.SecretPrecomputation
	Publics map[int]*keygen.PublicPrecomputation // every signer, self included
}

// PreSignature is the offline output of a completed presign session: a
// nonce commitment R usable by exactly one subsequent signing operation,
// plus the local shares needed to compute a partial signature.
type PreSignature struct {
	Ssid     [16]byte
	R        curve.Point
	KShare   curve.Scalar
	ChiShare curve.Scalar
}

// Message is the concrete tss.Message implementation for presign rounds.
type Message struct {
	FromParty  tss.PartyID
	ToParties  []tss.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *Message) Type() string          { return m.TypeString }
func (m *Message) From() tss.PartyID     { return m.FromParty }
func (m *Message) To() []tss.PartyID     { return m.ToParties }
func (m *Message) IsBroadcast() bool     { return m.IsBcast }
func (m *Message) Payload() []byte       { return m.Data }
func (m *Message) RoundNumber() uint32   { return m.RoundNum }

func (s *state) details() string {
	return fmt.Sprintf("Presign Round %d", s.round)
}
