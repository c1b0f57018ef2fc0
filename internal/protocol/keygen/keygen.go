package keygen

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/crypto/paillier"
	"github.com/mpc-tss/cggmp21/internal/crypto/pedersen"
	"github.com/mpc-tss/cggmp21/internal/crypto/shamir"
)

// Generate runs the trusted-dealer precomputation: n distinct IDs drawn
// from 1..idRange, a degree-t polynomial over Z_N evaluated at each ID,
// and an independent Paillier keypair plus Pedersen aux per party
// (spec.md §4.5).
func Generate(n, t, idRange int) (*Output, error) {
	if idRange < n {
		return nil, fmt.Errorf("keygen: idRange %d too small for %d parties", idRange, n)
	}

	ids, err := distinctIDs(n, idRange)
	if err != nil {
		return nil, err
	}

	ssid, err := newSsid()
	if err != nil {
		return nil, err
	}

	poly, err := shamir.New(t)
	if err != nil {
		return nil, err
	}

	groupSecret := curve.NewScalar(poly.Coefficients[0])
	groupPublicKey := curve.ScalarBaseMult(groupSecret)

	secrets := make(map[int]*SecretPrecomputation, n)
	publics := make(map[int]*PublicPrecomputation, n)

	for _, id := range ids {
		share := poly.Evaluate(big.NewInt(int64(id)))
		publicShare := curve.ScalarBaseMult(share)

		sk, err := paillier.GenerateKeyPair()
		if err != nil {
			return nil, fmt.Errorf("keygen: party %d paillier: %w", id, err)
		}
		aux, err := pedersen.DeriveFromPaillier(sk)
		if err != nil {
			return nil, fmt.Errorf("keygen: party %d pedersen: %w", id, err)
		}

		secrets[id] = &SecretPrecomputation{
			ID:             id,
			Ssid:           ssid,
			Threshold:      t,
			EcdsaShare:     share,
			PaillierSecret: sk,
		}
		publics[id] = &PublicPrecomputation{
			ID:             id,
			Ssid:           ssid,
			PublicEcdsa:    publicShare,
			PaillierPublic: &sk.PublicKey,
			Aux:            aux,
		}
	}

	return &Output{
		IDs:            ids,
		Secrets:        secrets,
		Publics:        publics,
		GroupPublicKey: groupPublicKey,
	}, nil
}

// ScaleForSigners implements spec.md §4.5's Lagrange scaling: each
// signer's share and public point are replaced by λ_i*ecdsaShare_i and
// λ_i*publicEcdsa_i, so that summing the scaled public points across
// signerIDs reproduces the group public key.
func ScaleForSigners(
	secrets map[int]*SecretPrecomputation,
	publics map[int]*PublicPrecomputation,
	signerIDs []int,
) (map[int]*SecretPrecomputation, map[int]*PublicPrecomputation, error) {
	xs := make([]*big.Int, len(signerIDs))
	for i, id := range signerIDs {
		xs[i] = big.NewInt(int64(id))
	}

	scaledSecrets := make(map[int]*SecretPrecomputation, len(signerIDs))
	scaledPublics := make(map[int]*PublicPrecomputation, len(signerIDs))

	for _, id := range signerIDs {
		secret, ok := secrets[id]
		if !ok {
			return nil, nil, fmt.Errorf("keygen: no secret precomputation for party %d", id)
		}
		public, ok := publics[id]
		if !ok {
			return nil, nil, fmt.Errorf("keygen: no public precomputation for party %d", id)
		}

		lambda, err := shamir.LagrangeCoefficient(xs, big.NewInt(int64(id)))
		if err != nil {
			return nil, nil, err
		}

		scaledShare := secret.EcdsaShare.Mul(lambda)
		scaledPublic := public.PublicEcdsa.ScalarMult(lambda)

		scaledSecret := *secret
		scaledSecret.EcdsaShare = scaledShare
		scaledSecrets[id] = &scaledSecret

		scaledPub := *public
		scaledPub.PublicEcdsa = scaledPublic
		scaledPublics[id] = &scaledPub
	}

	return scaledSecrets, scaledPublics, nil
}

// VerifyShareConsistency checks publicEcdsa_i = ecdsaShare_i * G for a
// single party, the postcondition spec.md §4.5 assigns to keygen and
// that a defensive deployment should re-check before trusting dealer
// output.
func VerifyShareConsistency(secret *SecretPrecomputation, public *PublicPrecomputation) bool {
	if secret == nil || public == nil {
		return false
	}
	return curve.ScalarBaseMult(secret.EcdsaShare).Equal(public.PublicEcdsa)
}

func distinctIDs(n, idRange int) ([]int, error) {
	seen := make(map[int]bool, n)
	ids := make([]int, 0, n)

	for len(ids) < n {
		max := big.NewInt(int64(idRange))
		r, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		id := int(r.Int64()) + 1
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}

func newSsid() ([16]byte, error) {
	var out [16]byte
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return out, err
	}
	digest := sha256.Sum256(seed)
	copy(out[:], digest[:16])
	return out, nil
}
