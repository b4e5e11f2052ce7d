// Package pngtest provides small, valid PNG containers for tests.
package pngtest

import "github.com/faanross/simulacra_png/internal/spec"

// Bare is the smallest container: signature immediately followed by IEND.
func Bare() []byte {
	out := spec.Signature()
	return append(out, spec.Terminator()...)
}

// OnePixel is a decodable 1x1 8-bit greyscale PNG.
func OnePixel() []byte {
	out := spec.Signature()
	// IHDR: 1x1, depth 8, greyscale
	out = append(out,
		0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x00, 0x00, 0x00, 0x00,
		0x3A, 0x7E, 0x9B, 0x55,
	)
	// IDAT: zlib of filter byte 0 + one black pixel
	out = append(out,
		0x00, 0x00, 0x00, 0x0A, 'I', 'D', 'A', 'T',
		0x78, 0x9C, 0x63, 0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01,
		0x48, 0xAF, 0xA4, 0x71,
	)
	return append(out, spec.Terminator()...)
}
