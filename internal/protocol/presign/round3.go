package presign

import (
	"encoding/json"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/affg"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/logstar"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// Round3Payload broadcasts the sender's additive delta/Delta shares and
// the group nonce-commitment point Γ, with one Π_log* proof per
// recipient proving Δᵢ = kᵢ·Γ (spec.md §4.8).
type Round3Payload struct {
	Delta      curve.Scalar
	DeltaPoint curve.Point
	GammaSum   curve.Point
	Proofs     map[int]*logstar.Proof
}

func (s *state) round3(received map[int][]tss.Message) (tss.StateMachine, []tss.Message, error) {
	myID := s.params.PartyID.ID()
	myAux := s.keyData.Publics[myID].Aux
	myPub := s.keyData.Secret.PaillierSecret.PublicKey
	n := curve.Order()

	gammaSum := s.tempData["GammaPoint"].(curve.Point)
	sumAlpha := big.NewInt(0)
	sumAlphaHat := big.NewInt(0)

	for _, msgs := range received {
		senderID := msgs[0].From().ID()
		var payload Round2Payload
		if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
			return nil, nil, err
		}

		senderPub := s.keyData.Publics[senderID].PaillierPublic
		myK := s.tempData["K"].(*big.Int)

		sidDelta := sessionID(s.keyData.Secret.Ssid, 2, senderID, myID)
		if !payload.ProofDelta.Verify(sidDelta, affg.Public{
			C: myK, D: payload.D, Y: payload.F, X: payload.GammaPoint,
			N0: &myPub, N1: senderPub, Aux: myAux,
		}) {
			return nil, nil, tss.NewProofInvalidError(2, senderID, "aff-g-delta")
		}

		xSenderPoint := s.keyData.Publics[senderID].PublicEcdsa
		sidChi := sessionID(s.keyData.Secret.Ssid, 20, senderID, myID)
		if !payload.ProofChi.Verify(sidChi, affg.Public{
			C: myK, D: payload.DHat, Y: payload.FHat, X: xSenderPoint,
			N0: &myPub, N1: senderPub, Aux: myAux,
		}) {
			return nil, nil, tss.NewProofInvalidError(2, senderID, "aff-g-chi")
		}

		senderG := s.tempData["peerG"].(map[int]*big.Int)[senderID]
		sidLog := sessionID(s.keyData.Secret.Ssid, 21, senderID, myID)
		if !payload.ProofLog.Verify(sidLog, logstar.Public{
			C: senderG, X: payload.GammaPoint, Generator: curve.BasePoint(),
			N0: senderPub, Aux: myAux,
		}) {
			return nil, nil, tss.NewProofInvalidError(2, senderID, "log-star")
		}

		alpha, err := s.keyData.Secret.PaillierSecret.Decrypt(payload.D)
		if err != nil {
			return nil, nil, err
		}
		alphaHat, err := s.keyData.Secret.PaillierSecret.Decrypt(payload.DHat)
		if err != nil {
			return nil, nil, err
		}
		sumAlpha.Add(sumAlpha, alpha)
		sumAlphaHat.Add(sumAlphaHat, alphaHat)

		gammaSum = gammaSum.Add(payload.GammaPoint)
	}

	betas := s.tempData["betas"].(map[int]*big.Int)
	betaHats := s.tempData["betaHats"].(map[int]*big.Int)
	for _, b := range betas {
		sumAlpha.Add(sumAlpha, b)
	}
	for _, b := range betaHats {
		sumAlphaHat.Add(sumAlphaHat, b)
	}

	ki := s.tempData["ki"].(curve.Scalar)
	gammai := s.tempData["gammai"].(curve.Scalar)
	xi := s.keyData.Secret.EcdsaShare

	delta := new(big.Int).Mul(gammai.Int(), ki.Int())
	delta.Add(delta, sumAlpha)
	delta.Mod(delta, n)
	deltaScalar := curve.NewScalar(delta)

	chi := new(big.Int).Mul(xi.Int(), ki.Int())
	chi.Add(chi, sumAlphaHat)
	chi.Mod(chi, n)
	chiScalar := curve.NewScalar(chi)

	deltaPoint := gammaSum.ScalarMult(ki)

	s.tempData["Gamma"] = gammaSum
	s.tempData["chi"] = chiScalar
	s.tempData["Delta"] = deltaPoint
	s.tempData["delta"] = deltaScalar

	myK := s.tempData["K"].(*big.Int)
	proofs := make(map[int]*logstar.Proof, len(s.params.Parties)-1)
	for _, peer := range s.params.OtherPartyIDs() {
		peerAux := s.keyData.Publics[peer.ID()].Aux
		sid := sessionID(s.keyData.Secret.Ssid, 3, myID, peer.ID())
		p, err := logstar.Prove(sid, logstar.Public{
			C: myK, X: deltaPoint, Generator: gammaSum, N0: &myPub, Aux: peerAux,
		}, logstar.Private{X: ki.Int(), Rho: s.tempData["rhoK"].(*big.Int)})
		if err != nil {
			return nil, nil, err
		}
		proofs[peer.ID()] = p
	}

	payload := Round3Payload{Delta: deltaScalar, DeltaPoint: deltaPoint, GammaSum: gammaSum, Proofs: proofs}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	msg := &Message{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: "PresignRound3",
		RoundNum:   3,
	}

	s.round = 3
	return s, []tss.Message{msg}, nil
}
