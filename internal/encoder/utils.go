package encoder

import (
	"os"

	"github.com/faanross/simulacra_png/internal/fileio"
	"github.com/faanross/simulacra_png/internal/logging"
)

// Options control the file-level encode operation
type Options struct {
	Password []byte
	Mode     os.FileMode // zero means config.Config.OutputMode
}

// EncodeFile reads sourcePNG and payloadPath, embeds the payload, and writes
// the result to outputPath. Nothing is written if any step fails.
func EncodeFile(sourcePNG, payloadPath, outputPath string, opts Options) error {
	png, err := fileio.Read(sourcePNG)
	if err != nil {
		return err
	}

	payload, err := fileio.Read(payloadPath)
	if err != nil {
		return err
	}

	logging.Info().
		Str("container", sourcePNG).
		Str("payload", payloadPath).
		Int("payload_size", len(payload)).
		Bool("sealed", opts.Password != nil).
		Msg("encoding")

	out, err := NewPNGEncoder(png, payload, opts.Password).Encode()
	if err != nil {
		return err
	}

	if err := fileio.Write(outputPath, out, opts.Mode); err != nil {
		return err
	}

	logging.Info().Str("output", outputPath).Int("size", len(out)).Msg("wrote container")
	return nil
}
