// Package format defines the wire-level vocabulary shared across bookblob's
// packages: block and compression tags, the page and metadata data model,
// and the table-of-contents entry shape. It has no dependencies beyond the
// standard library and errs, so every other package can depend on it
// without creating import cycles.
package format

type (
	// BlockType identifies how a data block's payload is stored on disk.
	BlockType uint8

	// CompressionType identifies which codec compresses a data block.
	CompressionType uint8
)

const (
	// BlockUncompressed stores the payload as raw bytes.
	BlockUncompressed BlockType = 1
	// BlockDeflate stores the payload as a raw DEFLATE stream (RFC 1951).
	BlockDeflate BlockType = 2
	// BlockLZ4 stores the payload as an LZ4 frame.
	BlockLZ4 BlockType = 3
)

func (t BlockType) String() string {
	switch t {
	case BlockUncompressed:
		return "Uncompressed"
	case BlockDeflate:
		return "Deflate"
	case BlockLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

const (
	// CompressionNone disables compression for data blocks.
	CompressionNone CompressionType = 1
	// CompressionDeflate compresses data blocks with DEFLATE.
	CompressionDeflate CompressionType = 2
	// CompressionLZ4 compresses data blocks with the LZ4 frame format.
	CompressionLZ4 CompressionType = 3
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionDeflate:
		return "Deflate"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// BlockType returns the block tag written for this compression choice.
func (c CompressionType) BlockType() BlockType {
	switch c {
	case CompressionDeflate:
		return BlockDeflate
	case CompressionLZ4:
		return BlockLZ4
	default:
		return BlockUncompressed
	}
}
