package presign

import (
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/protocol/keygen"
	"github.com/mpc-tss/cggmp21/pkg/tss"
	"github.com/stretchr/testify/require"
)

type mockPartyID struct{ id int }

func (m *mockPartyID) ID() int         { return m.id }
func (m *mockPartyID) Moniker() string { return fmt.Sprintf("party-%d", m.id) }

func setup(t *testing.T, n, threshold int) (*keygen.Output, []tss.PartyID) {
	t.Helper()
	out, err := keygen.Generate(n, threshold, n*10)
	require.NoError(t, err)

	parties := make([]tss.PartyID, n)
	for i, id := range out.IDs {
		parties[i] = &mockPartyID{id: id}
	}
	return out, parties
}

func newMachines(t *testing.T, out *keygen.Output, parties []tss.PartyID) (map[int]tss.StateMachine, map[int][]tss.Message) {
	t.Helper()

	signerIDs := make([]int, len(parties))
	for i, p := range parties {
		signerIDs[i] = p.ID()
	}
	secrets, publics, err := keygen.ScaleForSigners(out.Secrets, out.Publics, signerIDs)
	require.NoError(t, err)

	sms := make(map[int]tss.StateMachine, len(parties))
	outMsgs := make(map[int][]tss.Message, len(parties))
	for _, p := range parties {
		params := &tss.Parameters{
			PartyID:   p,
			Parties:   parties,
			Threshold: out.Secrets[p.ID()].Threshold,
			SessionID: secrets[p.ID()].Ssid[:],
		}
		sm, msgs, err := NewStateMachine(params, &KeyData{Secret: secrets[p.ID()], Publics: publics})
		require.NoError(t, err)
		sms[p.ID()] = sm
		outMsgs[p.ID()] = msgs
	}
	return sms, outMsgs
}

func deliverAll(t *testing.T, parties []tss.PartyID, sms map[int]tss.StateMachine, outMsgs map[int][]tss.Message) (map[int][]tss.Message, error) {
	t.Helper()

	var all []tss.Message
	for _, msgs := range outMsgs {
		all = append(all, msgs...)
	}

	next := make(map[int][]tss.Message)
	for _, party := range parties {
		sm := sms[party.ID()]
		for _, msg := range all {
			if msg.From().ID() == party.ID() {
				continue
			}
			if !msg.IsBroadcast() {
				addressed := false
				for _, to := range msg.To() {
					if to.ID() == party.ID() {
						addressed = true
					}
				}
				if !addressed {
					continue
				}
			}
			newSM, newOut, err := sm.Update(msg)
			if err != nil {
				return nil, err
			}
			sm = newSM
			sms[party.ID()] = sm
			next[party.ID()] = append(next[party.ID()], newOut...)
		}
	}
	return next, nil
}

func TestPresignHappyPathProducesConsistentR(t *testing.T) {
	out, parties := setup(t, 3, 1)
	sms, outMsgs := newMachines(t, out, parties)

	for r := 0; r < 3; r++ {
		next, err := deliverAll(t, parties, sms, outMsgs)
		require.NoError(t, err)
		outMsgs = next
	}

	var firstR curve.Point
	for i, p := range parties {
		res := sms[p.ID()].Result()
		require.NotNil(t, res)
		preSig := res.(*PreSignature)
		if i == 0 {
			firstR = preSig.R
		} else {
			require.True(t, preSig.R.Equal(firstR))
		}
	}
}

// TestTamperedAffineCiphertextAbortsRound2 implements the literal
// scenario of tampering with one byte of a peer's D ciphertext before
// round 3: the receiver's Π_aff-g verification must fail.
func TestTamperedAffineCiphertextAbortsRound2(t *testing.T) {
	out, parties := setup(t, 3, 1)
	sms, outMsgs := newMachines(t, out, parties)

	round2Msgs, err := deliverAll(t, parties, sms, outMsgs)
	require.NoError(t, err)

	tampered := false
	for senderID, msgs := range round2Msgs {
		for i, msg := range msgs {
			m := msg.(*Message)
			var payload Round2Payload
			require.NoError(t, json.Unmarshal(m.Data, &payload))

			payload.D = new(big.Int).Xor(payload.D, big.NewInt(1))

			data, err := json.Marshal(payload)
			require.NoError(t, err)
			round2Msgs[senderID][i] = &Message{
				FromParty: m.FromParty, ToParties: m.ToParties, IsBcast: m.IsBcast,
				Data: data, TypeString: m.TypeString, RoundNum: m.RoundNum,
			}
			tampered = true
			break
		}
		if tampered {
			break
		}
	}
	require.True(t, tampered)

	_, err = deliverAll(t, parties, sms, round2Msgs)
	require.Error(t, err)
	var proofErr *tss.ProofInvalidError
	require.ErrorAs(t, err, &proofErr)
}

// TestTamperedDeltaAbortsPresign replaces every sender's round-3 delta
// share with a random scalar just before finalization: the group identity
// check must fail with ErrPresignInconsistent.
func TestTamperedDeltaAbortsPresign(t *testing.T) {
	out, parties := setup(t, 3, 1)
	sms, outMsgs := newMachines(t, out, parties)

	round2Msgs, err := deliverAll(t, parties, sms, outMsgs)
	require.NoError(t, err)
	round3Msgs, err := deliverAll(t, parties, sms, round2Msgs)
	require.NoError(t, err)

	for senderID, msgs := range round3Msgs {
		for i, msg := range msgs {
			m := msg.(*Message)
			var payload Round3Payload
			require.NoError(t, json.Unmarshal(m.Data, &payload))

			bogus, err := curve.RandomScalar()
			require.NoError(t, err)
			payload.Delta = bogus

			data, err := json.Marshal(payload)
			require.NoError(t, err)
			round3Msgs[senderID][i] = &Message{
				FromParty: m.FromParty, ToParties: m.ToParties, IsBcast: m.IsBcast,
				Data: data, TypeString: m.TypeString, RoundNum: m.RoundNum,
			}
		}
	}

	_, err = deliverAll(t, parties, sms, round3Msgs)
	require.ErrorIs(t, err, tss.ErrPresignInconsistent)
}
