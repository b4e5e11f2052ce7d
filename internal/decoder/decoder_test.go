package decoder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/faanross/simulacra_png/internal/chunk"
	"github.com/faanross/simulacra_png/internal/container"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/pngtest"
	"github.com/faanross/simulacra_png/internal/scrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	png, err := container.EncodeInto(pngtest.OnePixel(), []byte("Hi"))
	require.NoError(t, err)

	result, err := NewPNGDecoder(png, nil).Decode()
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(result.Message))
	assert.False(t, result.Sealed)
	assert.Equal(t, 2, result.EmbeddedLen)
}

func TestDecodeSealed(t *testing.T) {
	password := []byte("hunter2hunter2")
	sealed, err := scrypto.Seal([]byte("Hi"), password)
	require.NoError(t, err)
	png, err := container.EncodeInto(pngtest.OnePixel(), sealed)
	require.NoError(t, err)

	result, err := NewPNGDecoder(png, password).Decode()
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(result.Message))
	assert.True(t, result.Sealed)
	assert.Equal(t, len(sealed), result.EmbeddedLen)

	_, err = NewPNGDecoder(png, []byte("wrong password")).Decode()
	assert.True(t, errors.Is(err, oops.AuthenticationFailed))
}

func TestDecodeNoPayload(t *testing.T) {
	_, err := NewPNGDecoder(pngtest.OnePixel(), nil).Decode()
	assert.True(t, errors.Is(err, oops.PayloadNotFound))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "stego.png")
	out := filepath.Join(dir, "recovered.bin")

	png, err := container.EncodeInto(pngtest.OnePixel(), []byte("hidden file contents\n"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, png, 0644))

	result, err := DecodeFile(src, out, Options{})
	require.NoError(t, err)
	assert.Equal(t, "hidden file contents\n", string(result.Message))

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hidden file contents\n", string(written))
}

func TestDecodeFileCorruptWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "stego.png")
	out := filepath.Join(dir, "recovered.bin")

	png, err := container.EncodeInto(pngtest.Bare(), []byte("hidden"))
	require.NoError(t, err)
	png[len(png)-20] ^= 0x01 // inside the base64 text
	require.NoError(t, os.WriteFile(src, png, 0644))

	_, err = DecodeFile(src, out, Options{})
	assert.True(t, errors.Is(err, oops.ChecksumMismatch))

	_, err = os.Stat(out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAnalyze(t *testing.T) {
	comment, err := chunk.Build("tEXt", []byte("Comment\x00hello"))
	require.NoError(t, err)
	base := pngtest.OnePixel()
	withComment := append(append(append([]byte(nil), base[:len(base)-12]...), comment...), base[len(base)-12:]...)

	report, err := Analyze(withComment)
	require.NoError(t, err)
	assert.False(t, report.HasPayload)
	require.Len(t, report.Chunks, 4)
	assert.Equal(t, "Comment", report.Chunks[2].Keyword)

	png, err := container.EncodeInto(withComment, []byte("Hi"))
	require.NoError(t, err)
	report, err = Analyze(png)
	require.NoError(t, err)
	assert.True(t, report.HasPayload)
	assert.Equal(t, len(png), report.Size)

	var types []string
	for _, c := range report.Chunks {
		types = append(types, c.Type)
		assert.True(t, c.CRCValid)
	}
	assert.Equal(t, []string{"IHDR", "IDAT", "tEXt", "tEXt", "IEND"}, types)
	assert.Equal(t, "data", report.Chunks[3].Keyword)
	assert.Equal(t, 8, report.Chunks[0].Offset)
}

func TestAnalyzeCorruptPayload(t *testing.T) {
	png, err := container.EncodeInto(pngtest.OnePixel(), []byte("Hi"))
	require.NoError(t, err)
	png[len(png)-12-4-1] ^= 0x01

	report, err := Analyze(png)
	require.NoError(t, err)
	assert.True(t, report.HasPayload)
	require.Len(t, report.Chunks, 4)
	assert.False(t, report.Chunks[2].CRCValid)

	_, err = container.DecodeFrom(png)
	assert.True(t, errors.Is(err, oops.ChecksumMismatch))
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.png"))
	assert.True(t, errors.Is(err, oops.IO))
}
