package decoder

import (
	"os"

	"github.com/faanross/simulacra_png/internal/chunk"
	"github.com/faanross/simulacra_png/internal/container"
	"github.com/faanross/simulacra_png/internal/fileio"
	"github.com/faanross/simulacra_png/internal/logging"
	"github.com/faanross/simulacra_png/internal/spec"
)

// Options control the file-level decode operation
type Options struct {
	Password []byte
	Mode     os.FileMode
}

// DecodeFile reads sourcePNG, recovers the hidden payload and writes it to
// outputPath. Nothing is written if any step fails.
func DecodeFile(sourcePNG, outputPath string, opts Options) (*ExtractedMessage, error) {
	png, err := fileio.Read(sourcePNG)
	if err != nil {
		return nil, err
	}

	logging.Info().Str("container", sourcePNG).Int("size", len(png)).Msg("decoding")

	result, err := NewPNGDecoder(png, opts.Password).Decode()
	if err != nil {
		return nil, err
	}

	if err := fileio.Write(outputPath, result.Message, opts.Mode); err != nil {
		return nil, err
	}

	logging.Info().Str("output", outputPath).Int("size", len(result.Message)).Msg("wrote payload")
	return result, nil
}

// ChunkInfo summarizes one chunk for display
type ChunkInfo struct {
	Offset   int
	Type     string
	Length   uint32
	CRC      uint32
	CRCValid bool
	Keyword  string // tEXt chunks only
}

// Report describes a container's chunk layout
type Report struct {
	Size       int
	Chunks     []ChunkInfo
	HasPayload bool
}

// Analyze lists the chunks of an in-memory container
func Analyze(png []byte) (*Report, error) {
	headers, err := container.Chunks(png)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Size:       len(png),
		Chunks:     make([]ChunkInfo, 0, len(headers)),
		HasPayload: container.PayloadIn(png, headers),
	}
	for _, h := range headers {
		report.Chunks = append(report.Chunks, describe(png, h))
	}
	return report, nil
}

// Inspect reads sourcePNG and analyzes its chunk layout
func Inspect(sourcePNG string) (*Report, error) {
	png, err := fileio.Read(sourcePNG)
	if err != nil {
		return nil, err
	}
	return Analyze(png)
}

func describe(png []byte, h chunk.Header) ChunkInfo {
	info := ChunkInfo{
		Offset:   h.Offset,
		Type:     h.Type,
		Length:   h.Length,
		CRC:      h.CRC,
		CRCValid: h.Valid(png),
	}
	if h.Type == spec.TEXT_TYPE {
		info.Keyword, _ = h.Keyword(png)
	}
	return info
}
