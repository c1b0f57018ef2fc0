package tss

import (
	"errors"
	"fmt"
)

// Named error kinds surfaced by the core, per the error handling design.
var (
	// ErrInvalidCiphertext: a Paillier ciphertext was not coprime to N^2.
	ErrInvalidCiphertext = errors.New("tss: invalid ciphertext")

	// ErrPrimeInvalid: a sampled prime failed the length, Blum, or safe check.
	ErrPrimeInvalid = errors.New("tss: invalid prime")

	// ErrPresignInconsistent: delta*G != Delta at the end of presign round 3.
	ErrPresignInconsistent = errors.New("tss: presign inconsistent")

	// ErrSignatureInvalid: the combined signature failed secp256k1 verification.
	ErrSignatureInvalid = errors.New("tss: signature invalid")

	// ErrOutOfRange: a value exceeded its required domain (programming error).
	ErrOutOfRange = errors.New("tss: value out of range")

	// ErrSampleExhausted: rejection sampling exceeded its iteration budget.
	ErrSampleExhausted = errors.New("tss: sample exhausted")
)

// ProofInvalidError reports that a ZK proof failed verification during a
// named round, attributing the failure to the sending party.
type ProofInvalidError struct {
	Round int
	From  int
	Kind  string
}

func (e *ProofInvalidError) Error() string {
	return fmt.Sprintf("tss: proof %s invalid from party %d in round %d", e.Kind, e.From, e.Round)
}

// NewProofInvalidError constructs a ProofInvalidError for the given round,
// sender and proof kind (e.g. "enc", "aff-g-delta", "aff-g-chi", "log-star").
func NewProofInvalidError(round, from int, kind string) error {
	return &ProofInvalidError{Round: round, From: from, Kind: kind}
}

// Blame attributes a session abort to a specific party, wrapping the
// underlying error. An orchestrator uses this to exclude the offending
// party from a retry.
type Blame struct {
	PartyID PartyID
	Reason  string
	Err     error
}

func (b *Blame) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("blame party %d: %s: %v", b.PartyID.ID(), b.Reason, b.Err)
	}
	return fmt.Sprintf("blame party %d: %s", b.PartyID.ID(), b.Reason)
}

func (b *Blame) Unwrap() error {
	return b.Err
}

// NewBlame creates a new Blame error attributing reason/err to party.
func NewBlame(party PartyID, reason string, err error) *Blame {
	return &Blame{PartyID: party, Reason: reason, Err: err}
}
