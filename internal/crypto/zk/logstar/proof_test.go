package logstar

import (
	"math/big"
	"testing"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
)

func buildStatement(t *testing.T) (Public, Private) {
	t.Helper()

	proverSK, err := paillier.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (prover) failed: %v", err)
	}
	auxSK, err := paillier.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair (aux) failed: %v", err)
	}
	aux, err := pedersen.DeriveFromPaillier(auxSK)
	if err != nil {
		t.Fatalf("DeriveFromPaillier failed: %v", err)
	}

	x := big.NewInt(54321)
	C, rho, err := proverSK.Encrypt(x)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	generator := curve.BasePoint()
	X := generator.ScalarMult(curve.NewScalar(x))

	pub := Public{C: C, X: X, Generator: generator, N0: &proverSK.PublicKey, Aux: aux}
	priv := Private{X: x, Rho: rho}
	return pub, priv
}

func TestProveVerifyAccepts(t *testing.T) {
	pub, priv := buildStatement(t)

	sid := []byte("logstar-session-1")
	proof, err := Prove(sid, pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if !proof.Verify(sid, pub) {
		t.Error("expected honest proof to verify")
	}
}

func TestVerifyRejectsMismatchedX(t *testing.T) {
	pub, priv := buildStatement(t)

	sid := []byte("logstar-session-2")
	proof, err := Prove(sid, pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	pub.X = pub.Generator.ScalarMult(curve.NewScalar(big.NewInt(1)))
	if proof.Verify(sid, pub) {
		t.Error("expected proof to fail once X no longer matches the committed discrete log")
	}
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	pub, priv := buildStatement(t)

	sid := []byte("logstar-session-3")
	proof, err := Prove(sid, pub, priv)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}

	proof.Z3.Add(proof.Z3, big.NewInt(1))
	if proof.Verify(sid, pub) {
		t.Error("expected tampered Z3 to fail verification")
	}
}

func TestChallengeIsDeterministic(t *testing.T) {
	pub, _ := buildStatement(t)
	S, A, D := big.NewInt(1), big.NewInt(2), big.NewInt(3)
	Y := curve.ScalarBaseMult(curve.NewScalar(big.NewInt(4)))
	sid := []byte("fixed-sid")

	e1 := challenge(sid, pub, S, A, Y, D)
	e2 := challenge(sid, pub, S, A, Y, D)
	if e1.Cmp(e2) != 0 {
		t.Error("expected identical inputs to produce identical challenges")
	}

	e3 := challenge([]byte("other-sid"), pub, S, A, Y, D)
	if e1.Cmp(e3) == 0 {
		t.Error("expected different inputs to produce different challenges")
	}
}
