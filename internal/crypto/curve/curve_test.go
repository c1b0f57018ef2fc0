package curve

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarReducesAtConstruction(t *testing.T) {
	n := Order()
	tooLarge := new(big.Int).Add(n, big.NewInt(1))
	s := NewScalar(tooLarge)
	require.True(t, s.Int().Cmp(n) < 0, "scalar must be reduced mod N")
	require.Equal(t, int64(1), s.Int().Int64())
}

func TestScalarAddSubInverse(t *testing.T) {
	a, err := RandomScalar()
	require.NoError(t, err)
	b, err := RandomScalar()
	require.NoError(t, err)

	sum := a.Add(b)
	back := sum.Sub(b)
	require.Equal(t, a.Int(), back.Int())

	inv := a.Invert()
	one := a.Mul(inv)
	require.Equal(t, int64(1), one.Int().Int64())
}

func TestPointAddInverseIsIdentity(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)

	P := ScalarBaseMult(k)
	negP := P.Negate()

	sum := P.Add(negP)
	require.True(t, sum.IsIdentity())
}

func TestPointIdentityIsAdditiveUnit(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)
	P := ScalarBaseMult(k)

	require.True(t, P.Add(Identity()).Equal(P))
	require.True(t, Identity().Add(P).Equal(P))
}

func TestScalarBaseMultMatchesScalarMultOnG(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)

	viaBase := ScalarBaseMult(k)
	viaGeneric := BasePoint().ScalarMult(k)

	require.True(t, viaBase.Equal(viaGeneric))
}

func TestPointOnCurve(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)
	P := ScalarBaseMult(k)
	require.True(t, P.IsOnCurve())
}

func TestToPublicKeyBytesUncompressedForm(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)
	P := ScalarBaseMult(k)
	b := P.ToPublicKeyBytes()
	require.Len(t, b, 65)
	require.Equal(t, byte(0x04), b[0])
}

func TestScalarJSONRoundTrip(t *testing.T) {
	s, err := RandomScalar()
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded Scalar
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, s.Int(), decoded.Int())
}

func TestPointJSONRoundTrip(t *testing.T) {
	k, err := RandomScalar()
	require.NoError(t, err)
	p := ScalarBaseMult(k)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Point
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.Equal(p))
}

func TestIdentityPointJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Identity())
	require.NoError(t, err)

	var decoded Point
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.IsIdentity())
}
