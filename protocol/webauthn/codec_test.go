package webauthn

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64URLRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for length := 0; length <= 64; length++ {
		b := make([]byte, length)
		_, err := r.Read(b)
		require.NoError(t, err)

		encoded := EncodeBase64URL(b)
		decoded, err := DecodeBase64URL(encoded)
		require.NoError(t, err)
		assert.Equal(t, b, decoded, "length %d", length)
	}
}

func TestEncodeBase64URLAlphabet(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for length := 0; length <= 64; length++ {
		b := make([]byte, length)
		_, err := r.Read(b)
		require.NoError(t, err)

		encoded := EncodeBase64URL(b)
		assert.NotContains(t, encoded, "+")
		assert.NotContains(t, encoded, "/")
		assert.NotContains(t, encoded, "=")
	}
}

func TestDecodeBase64URLRoundTripsText(t *testing.T) {
	// Valid unpadded base64url strings survive a decode/encode cycle.
	for _, s := range []string{"", "-_", "AQID", "aGVsbG8gd29ybGQh"} {
		decoded, err := DecodeBase64URL(s)
		require.NoError(t, err)
		assert.Equal(t, s, EncodeBase64URL(decoded))
	}
}

func TestDecodeBase64URLAcceptsPadding(t *testing.T) {
	decoded, err := DecodeBase64URL("aGk=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), decoded)
}

func TestDecodeBase64URLRejectsStandardAlphabet(t *testing.T) {
	_, err := DecodeBase64URL("a+b/")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "base64url"))
}
