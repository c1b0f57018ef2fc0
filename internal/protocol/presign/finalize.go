package presign

import (
	"encoding/json"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/logstar"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// finalize implements spec.md §4.9: verify every peer's closing Π_log*,
// sum the δ/Δ shares, and check the group consistency identity before
// deriving the nonce commitment R.
func (s *state) finalize(received map[int][]tss.Message) (tss.StateMachine, []tss.Message, error) {
	myID := s.params.PartyID.ID()
	myAux := s.keyData.Publics[myID].Aux
	peerK := s.tempData["peerK"].(map[int]*big.Int)

	deltaSum := s.tempData["delta"].(curve.Scalar)
	deltaPointSum := s.tempData["Delta"].(curve.Point)
	gammaSum := s.tempData["Gamma"].(curve.Point)

	for _, msgs := range received {
		senderID := msgs[0].From().ID()
		var payload Round3Payload
		if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
			return nil, nil, err
		}

		senderPub := s.keyData.Publics[senderID].PaillierPublic
		proof, ok := payload.Proofs[myID]
		if !ok {
			return nil, nil, tss.NewProofInvalidError(3, senderID, "log-star")
		}

		sid := sessionID(s.keyData.Secret.Ssid, 3, senderID, myID)
		if !proof.Verify(sid, logstar.Public{
			C: peerK[senderID], X: payload.DeltaPoint, Generator: payload.GammaSum,
			N0: senderPub, Aux: myAux,
		}) {
			return nil, nil, tss.NewProofInvalidError(3, senderID, "log-star")
		}

		deltaSum = deltaSum.Add(payload.Delta)
		deltaPointSum = deltaPointSum.Add(payload.DeltaPoint)
		gammaSum = payload.GammaSum
	}

	expected := curve.ScalarBaseMult(deltaSum)
	if !expected.Equal(deltaPointSum) {
		return nil, nil, tss.ErrPresignInconsistent
	}

	deltaInv := deltaSum.Invert()
	r := gammaSum.ScalarMult(deltaInv)

	preSig := &PreSignature{
		Ssid:     s.keyData.Secret.Ssid,
		R:        r,
		KShare:   s.tempData["ki"].(curve.Scalar),
		ChiShare: s.tempData["chi"].(curve.Scalar),
	}

	return &finishedState{preSignature: preSig}, nil, nil
}
