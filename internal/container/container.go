package container

import (
	"bytes"
	"encoding/binary"

	"github.com/faanross/simulacra_png/internal/chunk"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/spec"
)

// StripTerminator returns everything before the trailing IEND chunk. The last
// 12 bytes of c must be exactly the terminator.
func StripTerminator(c []byte) ([]byte, error) {
	if len(c) < spec.TERMINATOR_LEN {
		return nil, oops.New(oops.MalformedContainer, nil,
			"container of %d bytes is shorter than the %d byte terminator", len(c), spec.TERMINATOR_LEN)
	}

	size := len(c) - spec.TERMINATOR_LEN
	if !bytes.Equal(c[size:], spec.Terminator()) {
		return nil, oops.New(oops.MalformedContainer, nil,
			"container does not end with IEND terminator (found % X)", c[size:])
	}

	return c[:size], nil
}

// EncodeInto returns a new container with p embedded in a tEXt chunk placed
// immediately before the terminator. c is not modified.
func EncodeInto(c, p []byte) ([]byte, error) {
	prefix, err := StripTerminator(c)
	if err != nil {
		return nil, err
	}

	textChunk, err := chunk.BuildTextChunk(p)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(prefix)+len(textChunk)+spec.TERMINATOR_LEN)
	out = append(out, prefix...)
	out = append(out, textChunk...)
	out = append(out, spec.Terminator()...)
	return out, nil
}

// DecodeFrom recovers the payload embedded by EncodeInto. When several payload
// chunks are present the last one wins; tEXt chunks with other keywords are
// skipped.
func DecodeFrom(c []byte) ([]byte, error) {
	prefix, err := StripTerminator(c)
	if err != nil {
		return nil, err
	}

	headers, err := walk(prefix)
	if err != nil {
		return nil, err
	}

	found := -1
	for i, h := range headers {
		if IsPayloadChunk(prefix, h) {
			found = i
		}
	}
	if found < 0 {
		return nil, oops.New(oops.PayloadNotFound, nil,
			"no %s chunk with keyword %q among %d chunks", spec.TEXT_TYPE, spec.KEYWORD, len(headers))
	}

	return chunk.ParseTextChunk(headers[found].Raw(prefix))
}

// Chunks lists every chunk in c after the signature, terminator included.
func Chunks(c []byte) ([]chunk.Header, error) {
	prefix, err := StripTerminator(c)
	if err != nil {
		return nil, err
	}

	headers, err := walk(prefix)
	if err != nil {
		return nil, err
	}

	// The terminator was verified byte for byte
	terminator := spec.Terminator()
	iend := chunk.Header{
		Offset: len(prefix),
		Length: 0,
		Type:   spec.TERMINAL_TYPE,
		CRC:    binary.BigEndian.Uint32(terminator[spec.LENGTH_SIZE+spec.TYPE_SIZE:]),
	}
	return append(headers, iend), nil
}

// PayloadIn reports whether any of headers, as returned by Chunks for stream,
// is a chunk DecodeFrom would select.
func PayloadIn(stream []byte, headers []chunk.Header) bool {
	for _, h := range headers {
		if IsPayloadChunk(stream, h) {
			return true
		}
	}
	return false
}

// walk reads chunk framing from the end of the signature to the end of
// prefix. The signature itself is skipped, not checked.
func walk(prefix []byte) ([]chunk.Header, error) {
	if len(prefix) < spec.SIGNATURE_SIZE {
		return nil, oops.New(oops.MalformedContainer, nil,
			"container has %d bytes before the terminator, less than the %d byte signature",
			len(prefix), spec.SIGNATURE_SIZE)
	}

	var headers []chunk.Header
	for offset := spec.SIGNATURE_SIZE; offset < len(prefix); {
		h, err := chunk.ReadHeader(prefix, offset)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
		offset = h.End()
	}
	return headers, nil
}

// IsPayloadChunk reports whether DecodeFrom would select h: a tEXt chunk keyed
// "data". A tEXt chunk whose CRC fails is also selected, since its keyword
// can't be trusted and parsing it reports the corruption.
func IsPayloadChunk(stream []byte, h chunk.Header) bool {
	if h.Type != spec.TEXT_TYPE {
		return false
	}
	if !h.Valid(stream) {
		return true
	}
	keyword, ok := h.Keyword(stream)
	return ok && keyword == spec.KEYWORD
}
