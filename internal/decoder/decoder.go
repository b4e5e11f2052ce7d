package decoder

import (
	"github.com/faanross/simulacra_png/internal/container"
	"github.com/faanross/simulacra_png/internal/logging"
	"github.com/faanross/simulacra_png/internal/scrypto"
)

// PNGDecoder recovers a payload hidden in a PNG container held in memory
type PNGDecoder struct {
	container []byte
	password  []byte
}

// ExtractedMessage contains the recovered payload and metadata
type ExtractedMessage struct {
	Message     []byte
	Sealed      bool
	EmbeddedLen int // bytes stored in the chunk before unsealing
}

// NewPNGDecoder creates a decoder; a nil password returns the payload as stored
func NewPNGDecoder(container, password []byte) *PNGDecoder {
	return &PNGDecoder{
		container: container,
		password:  password,
	}
}

// Decode locates the payload chunk, verifies it and reverses the transform
func (pd *PNGDecoder) Decode() (*ExtractedMessage, error) {
	// Step 1: Find and parse the last payload chunk
	embedded, err := container.DecodeFrom(pd.container)
	if err != nil {
		return nil, err
	}

	result := &ExtractedMessage{
		Message:     embedded,
		EmbeddedLen: len(embedded),
	}

	// Step 2: Optionally unseal
	if pd.password != nil {
		opened, err := scrypto.Open(embedded, pd.password)
		if err != nil {
			return nil, err
		}
		result.Message = opened
		result.Sealed = true
	}

	logging.Debug().
		Int("embedded_size", result.EmbeddedLen).
		Int("payload_size", len(result.Message)).
		Bool("sealed", result.Sealed).
		Msg("recovered payload chunk")

	return result, nil
}
