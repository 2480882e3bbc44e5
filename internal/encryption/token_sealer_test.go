package encryption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealer, err := NewTokenSealer("test-passphrase")
	require.NoError(t, err)

	sealed, err := sealer.Seal("backend-jwt")
	require.NoError(t, err)
	assert.NotEqual(t, "backend-jwt", sealed)

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", opened)
}

func TestSealEmptyStringIsEmpty(t *testing.T) {
	sealer, err := NewTokenSealer("test-passphrase")
	require.NoError(t, err)

	sealed, err := sealer.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	opened, err := sealer.Open("")
	require.NoError(t, err)
	assert.Empty(t, opened)
}

func TestSealProducesFreshNoncePerCall(t *testing.T) {
	sealer, err := NewTokenSealer("test-passphrase")
	require.NoError(t, err)

	a, err := sealer.Seal("backend-jwt")
	require.NoError(t, err)
	b, err := sealer.Seal("backend-jwt")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpenRejectsWrongKeyAndGarbage(t *testing.T) {
	sealer, err := NewTokenSealer("key-one")
	require.NoError(t, err)
	other, err := NewTokenSealer("key-two")
	require.NoError(t, err)

	sealed, err := sealer.Seal("backend-jwt")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = sealer.Open("not base64!!")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = sealer.Open("YWJj")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestNewTokenSealerRejectsEmptyPassphrase(t *testing.T) {
	_, err := NewTokenSealer("")
	assert.Error(t, err)
}
