package keygen

import (
	"math/big"
	"testing"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
)

func TestGenerateProducesConsistentShares(t *testing.T) {
	out, err := Generate(5, 2, 50)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(out.IDs) != 5 {
		t.Fatalf("expected 5 distinct ids, got %d", len(out.IDs))
	}

	for _, id := range out.IDs {
		if !VerifyShareConsistency(out.Secrets[id], out.Publics[id]) {
			t.Errorf("party %d: ecdsaShare*G != publicEcdsa", id)
		}
	}
}

func TestGenerateRejectsTooSmallIDRange(t *testing.T) {
	if _, err := Generate(5, 2, 3); err == nil {
		t.Error("expected an error when idRange < n")
	}
}

func TestScaleForSignersReconstructsGroupKey(t *testing.T) {
	out, err := Generate(5, 2, 50)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	signerIDs := out.IDs[:3]
	scaledSecrets, scaledPublics, err := ScaleForSigners(out.Secrets, out.Publics, signerIDs)
	if err != nil {
		t.Fatalf("ScaleForSigners failed: %v", err)
	}

	sumPublic := curve.Identity()
	sumSecret := curve.NewScalar(big.NewInt(0))
	for _, id := range signerIDs {
		sumPublic = sumPublic.Add(scaledPublics[id].PublicEcdsa)
		sumSecret = sumSecret.Add(scaledSecrets[id].EcdsaShare)
	}

	if !sumPublic.Equal(out.GroupPublicKey) {
		t.Error("summed scaled public shares do not equal the group public key")
	}
	if !curve.ScalarBaseMult(sumSecret).Equal(out.GroupPublicKey) {
		t.Error("summed scaled secret shares do not equal the group secret")
	}
}

func TestScaleForSignersRejectsUnknownSigner(t *testing.T) {
	out, err := Generate(3, 1, 50)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	bogusID := -1
	if _, _, err := ScaleForSigners(out.Secrets, out.Publics, []int{bogusID}); err == nil {
		t.Error("expected an error for an id not present in the precomputation")
	}
}

func TestVerifyShareConsistencyRejectsMismatch(t *testing.T) {
	out, err := Generate(3, 1, 50)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	ids := out.IDs
	mismatched := *out.Secrets[ids[0]]
	mismatched.EcdsaShare = out.Secrets[ids[1]].EcdsaShare

	if VerifyShareConsistency(&mismatched, out.Publics[ids[0]]) {
		t.Error("expected a swapped share to fail consistency check")
	}
}
