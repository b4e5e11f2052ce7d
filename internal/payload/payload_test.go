package payload

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

func TestEncodeKnownValues(t *testing.T) {
	items := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{}, ""},
		{"Hi", []byte{0x48, 0x69}, "SGk="},
		{"one byte", []byte{0xFF}, "/w=="},
		{"three bytes", []byte("Man"), "TWFu"},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			out, err := Encode(item.in)
			require.NoError(t, err)
			assert.Equal(t, item.want, string(out))
			assert.Equal(t, len(item.want), EncodedLen(len(item.in)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 300; n++ {
		raw := make([]byte, n)
		rng.Read(raw)

		text, err := Encode(raw)
		require.NoError(t, err)
		for _, c := range text {
			assert.True(t, bytes.IndexByte([]byte(alphabet), c) >= 0, "byte %q outside base64 alphabet", c)
		}

		back, err := Decode(text)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(raw, back), "round trip of %d bytes", n)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	items := []struct {
		name string
		in   string
	}{
		{"bad character", "SG*="},
		{"missing padding", "SGk"},
		{"excess padding", "SGk=="},
		{"embedded newline", "SG\nk="},
		{"trailing carriage return", "SGk=\r"},
		{"nul byte", "SGk\x00"},
		{"non-zero trailing bits", "SGl="},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			_, err := Decode([]byte(item.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oops.InvalidEncoding))
			assert.Equal(t, oops.InvalidEncoding, oops.KindOf(err))
		})
	}
}

func TestSizeBoundary(t *testing.T) {
	// 6 raw bytes encode to 8; 8 + 5 keyword bytes == 13
	c := Codec{Limit: 13}

	out, err := c.Encode(make([]byte, 6))
	require.NoError(t, err)
	assert.Len(t, out, 8)

	_, err = c.Encode(make([]byte, 7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oops.SizeLimitExceeded))
}

func TestRawSizeRejectedBeforeEncoding(t *testing.T) {
	c := Codec{Limit: 4}
	_, err := c.Encode(make([]byte, 5))
	require.Error(t, err)
	assert.Equal(t, oops.SizeLimitExceeded, oops.KindOf(err))
	assert.Contains(t, err.Error(), "payload of 5 bytes")
}
