package spec

// PNG framing constants
const (
	SIGNATURE_SIZE = 8 // PNG file signature
	LENGTH_SIZE    = 4 // Chunk length field
	TYPE_SIZE      = 4 // Chunk type tag
	CRC_SIZE       = 4 // Chunk CRC-32
	CHUNK_OVERHEAD = LENGTH_SIZE + TYPE_SIZE + CRC_SIZE
	TERMINATOR_LEN = 12 // Zero-length IEND chunk

	// Largest data field a chunk may declare (2^31 - 1)
	MAX_CHUNK_DATA_SIZE = 1<<31 - 1

	TEXT_TYPE     = "tEXt"
	TERMINAL_TYPE = "IEND"
	KEYWORD       = "data"
	KEYWORD_SIZE  = len(KEYWORD) + 1 // keyword plus NUL separator
)

// Security constants
const (
	SALT_SIZE    = 32     // Salt for PBKDF2
	NONCE_SIZE   = 12     // GCM nonce size
	KEY_SIZE     = 32     // AES-256 key size
	TAG_SIZE     = 16     // GCM authentication tag
	PBKDF2_ITERS = 100000 // PBKDF2 iterations
	MIN_PASSWORD = 8

	// Magic bytes to verify successful decryption
	MAGIC_HEADER = 0xDEADBEEF
)

// Signature is the 8-byte PNG file signature.
func Signature() []byte {
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
}

// Terminator is the exact IEND chunk every container ends with.
func Terminator() []byte {
	return []byte{0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}
}

// KeywordPrefix is the keyword followed by its NUL separator.
func KeywordPrefix() []byte {
	return append([]byte(KEYWORD), 0)
}
