package checksum

import "hash/crc32"

// Sum computes the CRC-32 (IEEE, reflected) of b, the checksum PNG stores at
// the end of every chunk.
func Sum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// Verify reports whether b checksums to want.
func Verify(b []byte, want uint32) bool {
	return Sum(b) == want
}
