package enc

import (
	"math/big"
	"testing"

	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
)

func setup(t *testing.T) (proverSK *paillier.PrivateKey, verifierAux *pedersen.Parameters) {
	t.Helper()
	proverSK, err := paillier.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (prover) failed: %v", err)
	}
	verifierSK, err := paillier.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (verifier) failed: %v", err)
	}
	verifierAux, err = pedersen.DeriveFromPaillier(verifierSK)
	if err != nil {
		t.Fatalf("DeriveFromPaillier failed: %v", err)
	}
	return proverSK, verifierAux
}

func TestProveVerifyAccepts(t *testing.T) {
	proverSK, aux := setup(t)

	k := big.NewInt(424242)
	c, rho, err := proverSK.Encrypt(k)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	pub := Public{K: c, Prover: &proverSK.PublicKey, Aux: aux}
	priv := Private{K: k, Rho: rho}

	sid := []byte("session-1")
	proof, err := Prove(sid, pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if !proof.Verify(sid, pub) {
		t.Error("expected honest proof to verify")
	}
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	proverSK, aux := setup(t)

	k := big.NewInt(100)
	c, rho, err := proverSK.Encrypt(k)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	pub := Public{K: c, Prover: &proverSK.PublicKey, Aux: aux}
	priv := Private{K: k, Rho: rho}

	sid := []byte("session-2")
	proof, err := Prove(sid, pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	proof.Z1.Add(proof.Z1, big.NewInt(1))
	if proof.Verify(sid, pub) {
		t.Error("expected tampered Z1 to fail verification")
	}
}

func TestVerifyRejectsWrongSessionID(t *testing.T) {
	proverSK, aux := setup(t)

	k := big.NewInt(7)
	c, rho, err := proverSK.Encrypt(k)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	pub := Public{K: c, Prover: &proverSK.PublicKey, Aux: aux}
	priv := Private{K: k, Rho: rho}

	proof, err := Prove([]byte("session-a"), pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if proof.Verify([]byte("session-b"), pub) {
		t.Error("expected a proof bound to one session id to fail under another")
	}
}

func TestChallengeIsDeterministic(t *testing.T) {
	proverSK, aux := setup(t)
	pub := Public{K: big.NewInt(123), Prover: &proverSK.PublicKey, Aux: aux}

	S, A, C := big.NewInt(1), big.NewInt(2), big.NewInt(3)
	sid := []byte("fixed-sid")

	e1 := challenge(sid, pub, S, A, C)
	e2 := challenge(sid, pub, S, A, C)
	if e1.Cmp(e2) != 0 {
		t.Error("expected identical inputs to produce identical challenges")
	}

	e3 := challenge([]byte("different-sid"), pub, S, A, C)
	if e1.Cmp(e3) == 0 {
		t.Error("expected different inputs to produce different challenges")
	}
}
