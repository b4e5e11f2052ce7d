package encoder

import (
	"github.com/faanross/simulacra_png/internal/container"
	"github.com/faanross/simulacra_png/internal/logging"
	"github.com/faanross/simulacra_png/internal/scrypto"
)

// PNGEncoder hides a payload inside a PNG container held in memory
type PNGEncoder struct {
	container []byte
	payload   []byte
	password  []byte
}

// NewPNGEncoder creates an encoder; a nil password embeds the payload as-is
func NewPNGEncoder(container, payload, password []byte) *PNGEncoder {
	return &PNGEncoder{
		container: container,
		payload:   payload,
		password:  password,
	}
}

// Encode returns a new container with the payload chunk inserted before IEND
func (pe *PNGEncoder) Encode() ([]byte, error) {
	data := pe.payload

	// Step 1: Optionally seal
	if pe.password != nil {
		sealed, err := scrypto.Seal(data, pe.password)
		if err != nil {
			return nil, err
		}
		logging.Debug().
			Int("plain_size", len(data)).
			Int("sealed_size", len(sealed)).
			Msg("sealed payload with AES-256-GCM")
		data = sealed
	}

	// Step 2: Splice the chunk in
	out, err := container.EncodeInto(pe.container, data)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Int("container_size", len(pe.container)).
		Int("payload_size", len(data)).
		Int("output_size", len(out)).
		Msg("inserted payload chunk")

	return out, nil
}
