package chunk

import (
	"bytes"
	"encoding/binary"

	"github.com/faanross/simulacra_png/internal/checksum"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/payload"
	"github.com/faanross/simulacra_png/internal/spec"
)

// Header describes one chunk located inside a container byte stream.
// Byte layout at Offset:
//
//	0-3:      Length (big-endian, data field only)
//	4-7:      Type
//	8-8+L:    Data
//	8+L-12+L: CRC-32 over Type and Data (big-endian)
type Header struct {
	Offset int
	Length uint32
	Type   string
	CRC    uint32
}

// DataStart is the stream offset of the chunk's data field.
func (h Header) DataStart() int {
	return h.Offset + spec.LENGTH_SIZE + spec.TYPE_SIZE
}

// End is the stream offset just past the chunk's CRC.
func (h Header) End() int {
	return h.DataStart() + int(h.Length) + spec.CRC_SIZE
}

// Data returns the chunk's data field within stream.
func (h Header) Data(stream []byte) []byte {
	return stream[h.DataStart() : h.DataStart()+int(h.Length)]
}

// Raw returns the whole chunk, length field through CRC.
func (h Header) Raw(stream []byte) []byte {
	return stream[h.Offset:h.End()]
}

// Valid recomputes the CRC over type and data and compares it to the stored one.
func (h Header) Valid(stream []byte) bool {
	return checksum.Verify(stream[h.Offset+spec.LENGTH_SIZE:h.DataStart()+int(h.Length)], h.CRC)
}

// Keyword returns the text keyword of a tEXt chunk: the data bytes before the
// first NUL. ok is false if there is no NUL separator.
func (h Header) Keyword(stream []byte) (keyword string, ok bool) {
	data := h.Data(stream)
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return "", false
	}
	return string(data[:i]), true
}

// ReadHeader reads the framing of the chunk starting at offset without
// checking its CRC.
func ReadHeader(stream []byte, offset int) (Header, error) {
	if offset < 0 || len(stream)-offset < spec.CHUNK_OVERHEAD {
		return Header{}, oops.New(oops.MalformedContainer, nil,
			"truncated chunk at offset %d: %d bytes left, need at least %d",
			offset, len(stream)-offset, spec.CHUNK_OVERHEAD)
	}

	length := binary.BigEndian.Uint32(stream[offset : offset+spec.LENGTH_SIZE])
	if length > spec.MAX_CHUNK_DATA_SIZE {
		return Header{}, oops.New(oops.MalformedContainer, nil,
			"chunk at offset %d declares length %d, above maximum %d",
			offset, length, spec.MAX_CHUNK_DATA_SIZE)
	}

	// Compare in int64 so a huge length can't overflow on 32-bit platforms
	if int64(len(stream)-offset) < int64(spec.CHUNK_OVERHEAD)+int64(length) {
		return Header{}, oops.New(oops.MalformedContainer, nil,
			"chunk at offset %d declares %d data bytes, runs past end of stream",
			offset, length)
	}

	typeStart := offset + spec.LENGTH_SIZE
	h := Header{
		Offset: offset,
		Length: length,
		Type:   string(stream[typeStart : typeStart+spec.TYPE_SIZE]),
	}
	crcStart := h.DataStart() + int(length)
	h.CRC = binary.BigEndian.Uint32(stream[crcStart : crcStart+spec.CRC_SIZE])

	return h, nil
}

// Build assembles a chunk of the given type around data.
func Build(chunkType string, data []byte) ([]byte, error) {
	if len(chunkType) != spec.TYPE_SIZE {
		return nil, oops.New(oops.FormatMismatch, nil, "chunk type %q is not %d bytes", chunkType, spec.TYPE_SIZE)
	}
	if len(data) > spec.MAX_CHUNK_DATA_SIZE {
		return nil, oops.New(oops.SizeLimitExceeded, nil,
			"chunk data of %d bytes exceeds maximum %d", len(data), spec.MAX_CHUNK_DATA_SIZE)
	}

	out := make([]byte, 0, spec.CHUNK_OVERHEAD+len(data))
	out = putUint32(out, uint32(len(data)))
	out = append(out, chunkType...)
	out = append(out, data...)
	out = putUint32(out, checksum.Sum(out[spec.LENGTH_SIZE:]))
	return out, nil
}

// BuildTextChunk wraps raw as a tEXt chunk: keyword "data", a NUL, then the
// base64 text of raw.
func BuildTextChunk(raw []byte) ([]byte, error) {
	return buildTextChunk(payload.Default, raw)
}

func buildTextChunk(codec payload.Codec, raw []byte) ([]byte, error) {
	// Step 1: Encode, applying the size policy
	encoded, err := codec.Encode(raw)
	if err != nil {
		return nil, err
	}

	// Step 2: Data field is keyword, NUL, encoded text; its length is the chunk length
	data := make([]byte, 0, spec.KEYWORD_SIZE+len(encoded))
	data = append(data, spec.KeywordPrefix()...)
	data = append(data, encoded...)

	// Step 3: Frame with length, type and CRC over type and data
	return Build(spec.TEXT_TYPE, data)
}

// ParseTextChunk reverses BuildTextChunk. b must hold exactly one chunk.
func ParseTextChunk(b []byte) ([]byte, error) {
	return parseTextChunk(payload.Default, b)
}

func parseTextChunk(codec payload.Codec, b []byte) ([]byte, error) {
	// Step 1: Framing
	h, err := ReadHeader(b, 0)
	if err != nil {
		return nil, err
	}
	if h.End() != len(b) {
		return nil, oops.New(oops.MalformedContainer, nil,
			"%d trailing bytes after chunk of length %d", len(b)-h.End(), h.Length)
	}

	// Step 2: Integrity before anything is trusted
	if !h.Valid(b) {
		return nil, oops.New(oops.ChecksumMismatch, nil,
			"%s chunk CRC %08X does not match computed %08X",
			h.Type, h.CRC, checksum.Sum(b[spec.LENGTH_SIZE:h.End()-spec.CRC_SIZE]))
	}

	// Step 3: Type tag
	if h.Type != spec.TEXT_TYPE {
		return nil, oops.New(oops.FormatMismatch, nil, "chunk type %q, expected %q", h.Type, spec.TEXT_TYPE)
	}

	// Step 4: Keyword prefix
	data := h.Data(b)
	if !bytes.HasPrefix(data, spec.KeywordPrefix()) {
		return nil, oops.New(oops.PayloadNotFound, nil, "text chunk does not start with keyword %q", spec.KEYWORD)
	}

	// Step 5: Reverse the transform
	return codec.Decode(data[spec.KEYWORD_SIZE:])
}

func putUint32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
