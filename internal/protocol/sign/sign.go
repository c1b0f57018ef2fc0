package sign

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mpc-tss/cggmp21/internal/crypto/curve"
	"github.com/mpc-tss/cggmp21/internal/protocol/presign"
	"github.com/mpc-tss/cggmp21/pkg/tss"
)

// PartialSign computes this party's share σᵢ = r·χᵢ + H(m)·kᵢ mod N of
// the final signature (spec.md §4.10), where r = R.x mod N is derived
// from the presign output. digest must be the 32-byte SHA-256 hash of
// the message.
func PartialSign(preSig *presign.PreSignature, digest []byte) (r curve.Scalar, sigmaI curve.Scalar, err error) {
	rx, _ := preSig.R.XY()
	if rx == nil {
		return curve.Scalar{}, curve.Scalar{}, tss.ErrSignatureInvalid
	}
	r = curve.NewScalar(rx)

	h := digestToScalar(digest)
	sigmaI = r.Mul(preSig.ChiShare).Add(h.Mul(preSig.KShare))
	return r, sigmaI, nil
}

// Aggregate sums every party's partial signature into the final (r, s),
// normalizing s to its low representative, and verifies the result
// against the group public key (spec.md §4.10). It returns
// tss.ErrSignatureInvalid if the combined signature does not verify.
func Aggregate(r curve.Scalar, shares []curve.Scalar, groupPublicKey curve.Point, digest []byte) (*Signature, error) {
	s := curve.NewScalar(big.NewInt(0))
	for _, share := range shares {
		s = s.Add(share)
	}
	if s.IsHigh() {
		s = s.Negate()
	}

	sig := &Signature{R: r, S: s}
	if !Verify(sig, groupPublicKey, digest) {
		return nil, tss.ErrSignatureInvalid
	}
	return sig, nil
}

// Verify checks sig against groupPublicKey and digest using standard
// secp256k1 ECDSA verification.
func Verify(sig *Signature, groupPublicKey curve.Point, digest []byte) bool {
	if groupPublicKey.IsIdentity() {
		return false
	}

	var rMod, sMod secp256k1.ModNScalar
	rMod.SetByteSlice(sig.R.Bytes())
	sMod.SetByteSlice(sig.S.Bytes())

	decredSig := ecdsa.NewSignature(&rMod, &sMod)
	return decredSig.Verify(digest, groupPublicKey.PublicKey())
}
