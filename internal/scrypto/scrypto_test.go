package scrypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var password = []byte("correct horse battery")

func TestSealOpen(t *testing.T) {
	for _, payload := range [][]byte{{}, []byte("Hi"), bytes.Repeat([]byte{0xAB}, 1000)} {
		sealed, err := Seal(payload, password)
		require.NoError(t, err)
		assert.Len(t, sealed, spec.SALT_SIZE+spec.NONCE_SIZE+4+len(payload)+spec.TAG_SIZE)

		opened, err := Open(sealed, password)
		require.NoError(t, err)
		assert.Equal(t, string(payload), string(opened))
	}
}

func TestSealIsDeterministicForFixedRandomness(t *testing.T) {
	random := bytes.Repeat([]byte{0x01}, spec.SALT_SIZE+spec.NONCE_SIZE)

	a, err := seal(bytes.NewReader(random), []byte("payload"), password)
	require.NoError(t, err)
	b, err := seal(bytes.NewReader(random), []byte("payload"), password)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	msg, err := ParseSecureMessage(a)
	require.NoError(t, err)
	assert.Equal(t, random[:spec.SALT_SIZE], msg.Salt)
	assert.Equal(t, random[spec.SALT_SIZE:], msg.Nonce)
	assert.Equal(t, a, msg.Bytes())
}

func TestSealShortRandomness(t *testing.T) {
	_, err := seal(bytes.NewReader(make([]byte, 4)), []byte("payload"), password)
	assert.Error(t, err)
}

func TestOpenFailures(t *testing.T) {
	sealed, err := Seal([]byte("secret"), password)
	require.NoError(t, err)

	tampered := append([]byte(nil), sealed...)
	tampered[spec.SALT_SIZE+spec.NONCE_SIZE] ^= 0x01

	items := []struct {
		name     string
		sealed   []byte
		password []byte
	}{
		{"wrong password", sealed, []byte("incorrect horse")},
		{"tampered ciphertext", tampered, password},
		{"too small", sealed[:spec.SALT_SIZE], password},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			_, err := Open(item.sealed, item.password)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oops.AuthenticationFailed))
		})
	}
}

func TestCheckPassword(t *testing.T) {
	assert.Error(t, CheckPassword([]byte("short")))
	assert.NoError(t, CheckPassword([]byte("longenough")))
}
