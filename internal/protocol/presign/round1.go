package presign

import (
	"encoding/json"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/zk/enc"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// Round1Payload broadcasts the sender's encrypted nonce/gamma shares
// together with one Π_enc proof per recipient (each recipient verifies
// against its own Pedersen aux, so the proofs are not shared).
type Round1Payload struct {
	K         *big.Int
	G         *big.Int
	EncProofs map[int]*enc.Proof
}

func (s *state) round1() (tss.StateMachine, []tss.Message, error) {
	ki, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}
	gammai, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, err
	}

	myPub := s.keyData.Secret.PaillierSecret.PublicKey

	K, rhoK, err := myPub.Encrypt(ki.Int())
	if err != nil {
		return nil, nil, err
	}
	G, rhoG, err := myPub.Encrypt(gammai.Int())
	if err != nil {
		return nil, nil, err
	}

	s.tempData["ki"] = ki
	s.tempData["gammai"] = gammai
	s.tempData["rhoK"] = rhoK
	s.tempData["rhoG"] = rhoG
	s.tempData["K"] = K
	s.tempData["G"] = G
	s.tempData["GammaPoint"] = curve.ScalarBaseMult(gammai)

	proofs := make(map[int]*enc.Proof, len(s.params.Parties)-1)
	for _, peer := range s.params.OtherPartyIDs() {
		peerAux := s.keyData.Publics[peer.ID()].Aux
		sid := sessionID(s.keyData.Secret.Ssid, 1, s.params.PartyID.ID(), peer.ID())
		p, err := enc.Prove(sid, enc.Public{K: K, Prover: &myPub, Aux: peerAux}, enc.Private{K: ki.Int(), Rho: rhoK})
		if err != nil {
			return nil, nil, err
		}
		proofs[peer.ID()] = p
	}

	payload := Round1Payload{K: K, G: G, EncProofs: proofs}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	msg := &Message{
		FromParty:  s.params.PartyID,
		ToParties:  nil,
		IsBcast:    true,
		Data:       data,
		TypeString: "PresignRound1",
		RoundNum:   1,
	}

	s.round = 1
	return s, []tss.Message{msg}, nil
}

// sessionID binds a proof to the session ssid, the round and the
// sender/recipient pair, so identical plaintexts produce distinct
// Fiat-Shamir transcripts across rounds and peers.
func sessionID(ssid [16]byte, round, from, to int) []byte {
	out := make([]byte, 0, 16+12)
	out = append(out, ssid[:]...)
	out = append(out, byte(round), byte(round>>8), byte(round>>16), byte(round>>24))
	out = append(out, byte(from), byte(from>>8), byte(from>>16), byte(from>>24))
	out = append(out, byte(to), byte(to>>8), byte(to>>16), byte(to>>24))
	return out
}
