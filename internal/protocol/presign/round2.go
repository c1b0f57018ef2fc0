package presign

import (
	"encoding/json"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/sampling"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/affg"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/enc"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/logstar"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/params"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// Round2Payload carries the pairwise affine-MtA ciphertexts and proofs a
// sender sends a single recipient (spec.md §4.7). β and β̂ never appear
// here: each sender retains its own additive offset locally and the
// recipient recovers its half purely by decrypting D/D̂ (§9 open
// question 4).
type Round2Payload struct {
	GammaPoint curve.Point
	D          *big.Int
	F          *big.Int
	ProofDelta *affg.Proof
	DHat       *big.Int
	FHat       *big.Int
	ProofChi   *affg.Proof
	ProofLog   *logstar.Proof
}

func (s *state) round2(received map[int][]tss.Message) (tss.StateMachine, []tss.Message, error) {
	myID := s.params.PartyID.ID()
	myAux := s.keyData.Publics[myID].Aux
	myPub := s.keyData.Secret.PaillierSecret.PublicKey

	peerK := make(map[int]*big.Int, len(received))
	peerG := make(map[int]*big.Int, len(received))

	for _, msgs := range received {
		senderID := msgs[0].From().ID()
		var payload Round1Payload
		if err := json.Unmarshal(msgs[0].Payload(), &payload); err != nil {
			return nil, nil, err
		}

		proof, ok := payload.EncProofs[myID]
		if !ok {
			return nil, nil, tss.NewProofInvalidError(1, senderID, "enc")
		}
		senderPub := s.keyData.Publics[senderID].PaillierPublic
		sid := sessionID(s.keyData.Secret.Ssid, 1, senderID, myID)
		pub := enc.Public{K: payload.K, Prover: senderPub, Aux: myAux}
		if !proof.Verify(sid, pub) {
			return nil, nil, tss.NewProofInvalidError(1, senderID, "enc")
		}

		peerK[senderID] = payload.K
		peerG[senderID] = payload.G
	}

	s.tempData["peerK"] = peerK
	s.tempData["peerG"] = peerG

	ki := s.tempData["ki"].(curve.Scalar)
	gammai := s.tempData["gammai"].(curve.Scalar)
	xi := s.keyData.Secret.EcdsaShare
	gammaPoint := s.tempData["GammaPoint"].(curve.Point)
	myG := s.tempData["G"].(*big.Int)

	betas := make(map[int]*big.Int)
	betaHats := make(map[int]*big.Int)
	var outMsgs []tss.Message

	for _, peer := range s.params.OtherPartyIDs() {
		peerID := peer.ID()
		peerPub := s.keyData.Publics[peerID].PaillierPublic
		peerAux := s.keyData.Publics[peerID].Aux
		Kj := peerK[peerID]

		// delta MtA: D = Kj^gammai * Enc_j(y), F = Enc_i(y), beta = -y.
		y, err := sampling.PlusMinusPow2(params.LPrime)
		if err != nil {
			return nil, nil, err
		}
		rhoD, err := sampling.UnitModN(peerPub.N)
		if err != nil {
			return nil, nil, err
		}
		rhoF, err := sampling.UnitModN(myPub.N)
		if err != nil {
			return nil, nil, err
		}
		encY, err := peerPub.EncryptWithNonce(y, rhoD)
		if err != nil {
			return nil, nil, err
		}
		D := peerPub.Add(peerPub.MulConst(Kj, gammai.Int()), encY)
		F, err := myPub.EncryptWithNonce(y, rhoF)
		if err != nil {
			return nil, nil, err
		}
		beta := new(big.Int).Neg(y)
		betas[peerID] = beta

		sidDelta := sessionID(s.keyData.Secret.Ssid, 2, s.params.PartyID.ID(), peerID)
		proofDelta, err := affg.Prove(sidDelta, affg.Public{
			C: Kj, D: D, Y: F, X: gammaPoint, N0: peerPub, N1: &myPub, Aux: peerAux,
		}, affg.Private{X: gammai.Int(), Y: y, Rho: rhoD, RhoY: rhoF})
		if err != nil {
			return nil, nil, err
		}

		// chi MtA: same construction with secret xi (scaled ecdsa share).
		yHat, err := sampling.PlusMinusPow2(params.LPrime)
		if err != nil {
			return nil, nil, err
		}
		rhoDHat, err := sampling.UnitModN(peerPub.N)
		if err != nil {
			return nil, nil, err
		}
		rhoFHat, err := sampling.UnitModN(myPub.N)
		if err != nil {
			return nil, nil, err
		}
		encYHat, err := peerPub.EncryptWithNonce(yHat, rhoDHat)
		if err != nil {
			return nil, nil, err
		}
		DHat := peerPub.Add(peerPub.MulConst(Kj, xi.Int()), encYHat)
		FHat, err := myPub.EncryptWithNonce(yHat, rhoFHat)
		if err != nil {
			return nil, nil, err
		}
		betaHat := new(big.Int).Neg(yHat)
		betaHats[peerID] = betaHat

		xPoint := s.keyData.Publics[myID].PublicEcdsa
		sidChi := sessionID(s.keyData.Secret.Ssid, 20, s.params.PartyID.ID(), peerID)
		proofChi, err := affg.Prove(sidChi, affg.Public{
			C: Kj, D: DHat, Y: FHat, X: xPoint, N0: peerPub, N1: &myPub, Aux: peerAux,
		}, affg.Private{X: xi.Int(), Y: yHat, Rho: rhoDHat, RhoY: rhoFHat})
		if err != nil {
			return nil, nil, err
		}

		// log* tying G_i to Gamma_i over the base point.
		sidLog := sessionID(s.keyData.Secret.Ssid, 21, s.params.PartyID.ID(), peerID)
		proofLog, err := logstar.Prove(sidLog, logstar.Public{
			C: myG, X: gammaPoint, Generator: curve.BasePoint(), N0: &myPub, Aux: peerAux,
		}, logstar.Private{X: gammai.Int(), Rho: s.tempData["rhoG"].(*big.Int)})
		if err != nil {
			return nil, nil, err
		}

		payload := Round2Payload{
			GammaPoint: gammaPoint,
			D:          D, F: F, ProofDelta: proofDelta,
			DHat: DHat, FHat: FHat, ProofChi: proofChi,
			ProofLog: proofLog,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		outMsgs = append(outMsgs, &Message{
			FromParty:  s.params.PartyID,
			ToParties:  []tss.PartyID{peer},
			IsBcast:    false,
			Data:       data,
			TypeString: "PresignRound2",
			RoundNum:   2,
		})
	}

	s.tempData["betas"] = betas
	s.tempData["betaHats"] = betaHats

	s.round = 2
	return s, outMsgs, nil
}
