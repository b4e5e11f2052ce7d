package payload

import (
	"bytes"
	"encoding/base64"

	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/spec"
)

// Codec turns arbitrary bytes into base64 text that fits one chunk data
// field alongside the keyword prefix.
type Codec struct {
	// Limit is the largest chunk data field the encoded text (plus keyword
	// prefix) may occupy.
	Limit int
}

// Default uses the PNG maximum chunk data size.
var Default = Codec{Limit: spec.MAX_CHUNK_DATA_SIZE}

// Encode transforms raw with the default codec.
func Encode(raw []byte) ([]byte, error) {
	return Default.Encode(raw)
}

// Decode reverses Encode.
func Decode(text []byte) ([]byte, error) {
	return Default.Decode(text)
}

// EncodedLen is the base64 length of an n-byte payload.
func EncodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

// Encode applies the size policy, then base64-encodes raw.
func (c Codec) Encode(raw []byte) ([]byte, error) {
	// Step 1: Reject before spending memory on the encoding
	if len(raw) > c.Limit {
		return nil, oops.New(oops.SizeLimitExceeded, nil,
			"payload of %d bytes exceeds chunk limit of %d bytes", len(raw), c.Limit)
	}

	// Step 2: Encoded text plus keyword prefix must fit the data field
	encodedLen := EncodedLen(len(raw))
	if encodedLen+spec.KEYWORD_SIZE > c.Limit {
		return nil, oops.New(oops.SizeLimitExceeded, nil,
			"encoded payload of %d bytes plus %d byte keyword exceeds chunk limit of %d bytes",
			encodedLen, spec.KEYWORD_SIZE, c.Limit)
	}

	out := make([]byte, encodedLen)
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// Decode base64-decodes text, rejecting anything outside the standard
// alphabet, bad padding, or non-zero trailing bits.
func (c Codec) Decode(text []byte) ([]byte, error) {
	// encoding/base64 skips line breaks silently; they are not alphabet bytes here
	if i := bytes.IndexAny(text, "\r\n"); i >= 0 {
		return nil, oops.New(oops.InvalidEncoding, nil, "line break at offset %d in payload", i)
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Strict().Decode(out, text)
	if err != nil {
		return nil, oops.New(oops.InvalidEncoding, err, "payload is not valid base64")
	}
	return out[:n], nil
}
