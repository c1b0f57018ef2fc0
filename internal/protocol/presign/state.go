package presign

import (
	"fmt"

	"github.com/mpc-tss/cggmp21/pkg/tss"
)

type state struct {
	params  *tss.Parameters
	keyData *KeyData

	round        int
	tempData     map[string]interface{}
	receivedMsgs map[int][]tss.Message
}

// NewStateMachine starts a presign session for the local party. keyData
// must already be scaled for the signer subset in params.Parties via
// keygen.ScaleForSigners.
func NewStateMachine(params *tss.Parameters, keyData *KeyData) (tss.StateMachine, []tss.Message, error) {
	s := &state{
		params:       params,
		keyData:      keyData,
		round:        1,
		tempData:     make(map[string]interface{}),
		receivedMsgs: make(map[int][]tss.Message),
	}
	return s.round1()
}

func (s *state) Update(msg tss.Message) (tss.StateMachine, []tss.Message, error) {
	if msg.RoundNumber() != uint32(s.round) {
		return nil, nil, fmt.Errorf("presign: received message for round %d, expected %d", msg.RoundNumber(), s.round)
	}

	senderID := msg.From().ID()
	if senderID == s.params.PartyID.ID() {
		return s, nil, nil
	}

	for _, existing := range s.receivedMsgs[senderID] {
		if existing.Type() == msg.Type() {
			return nil, nil, fmt.Errorf("presign: duplicate message type %s from party %d", msg.Type(), senderID)
		}
	}
	s.receivedMsgs[senderID] = append(s.receivedMsgs[senderID], msg)

	expected := len(s.params.Parties) - 1
	if len(s.receivedMsgs) < expected {
		return s, nil, nil
	}
	for _, msgs := range s.receivedMsgs {
		if len(msgs) < 1 {
			return s, nil, nil
		}
	}

	return s.nextRound()
}

func (s *state) nextRound() (tss.StateMachine, []tss.Message, error) {
	received := s.receivedMsgs
	s.receivedMsgs = make(map[int][]tss.Message)

	switch s.round {
	case 1:
		return s.round2(received)
	case 2:
		return s.round3(received)
	case 3:
		return s.finalize(received)
	default:
		return nil, nil, fmt.Errorf("presign: unknown round %d", s.round)
	}
}

func (s *state) Result() interface{} { return nil }

func (s *state) Details() string { return s.details() }

type finishedState struct {
	preSignature *PreSignature
}

func (f *finishedState) Update(tss.Message) (tss.StateMachine, []tss.Message, error) {
	return nil, nil, fmt.Errorf("presign: session already finished")
}

func (f *finishedState) Result() interface{} { return f.preSignature }

func (f *finishedState) Details() string { return "Presign Finished" }
