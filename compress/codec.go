// Package compress implements the three block codecs a data block may be
// stored under: none, DEFLATE, and LZ4 frame. Each codec operates on a
// single block's payload at a time; callers choose a codec per write and
// record the choice in the block's leading tag byte (format.BlockType).
package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/bookblob/format"
)

// Compressor compresses a single block payload.
type Compressor interface {
	// Compress returns the compressed form of data. data is never
	// modified; NoOpCodec returns data itself, every other codec a newly
	// allocated buffer.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a single block payload to its original bytes.
type Decompressor interface {
	// Decompress returns the original data. data is never modified;
	// NoOpCodec returns data itself, every other codec a newly allocated
	// buffer.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a single compression algorithm.
type Codec interface {
	Compressor
	Decompressor
	// BlockType reports the on-disk tag this codec's output is written
	// under.
	BlockType() format.BlockType
}

// DefaultDeflateLevel replaces a DEFLATE level outside flate's accepted
// range, and is the level NewDecoder's DEFLATE codec is built with.
const DefaultDeflateLevel = 6

// NewCodec builds the Codec for the given compression choice. level only
// affects CompressionDeflate, where it is normally 0 (stored, no
// compression) through 9 (maximum compression); flate's special levels -1
// (default) and -2 (Huffman-only) are also accepted, and any other value
// falls back to DefaultDeflateLevel.
func NewCodec(compressionType format.CompressionType, level int) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionDeflate:
		return NewDeflateCodec(level), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compress: invalid compression type %s", compressionType)
	}
}

// NewDecoder builds a Decompressor for the block type tag read back from a
// data block, without needing to know which level it was written at.
func NewDecoder(blockType format.BlockType) (Decompressor, error) {
	switch blockType {
	case format.BlockUncompressed:
		return NewNoOpCodec(), nil
	case format.BlockDeflate:
		return NewDeflateCodec(DefaultDeflateLevel), nil
	case format.BlockLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compress: invalid block type %s", blockType)
	}
}

// NewStreamWriter builds the incremental encoder a data block uses while
// it is open, wrapping w so every compressor exposes the same
// io.WriteCloser shape regardless of algorithm.
func NewStreamWriter(compressionType format.CompressionType, level int, w io.Writer) (io.WriteCloser, format.BlockType, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpStreamWriter(w), format.BlockUncompressed, nil
	case format.CompressionDeflate:
		sw, err := NewDeflateStreamWriter(w, level)
		return sw, format.BlockDeflate, err
	case format.CompressionLZ4:
		return NewLZ4StreamWriter(w), format.BlockLZ4, nil
	default:
		return nil, 0, fmt.Errorf("compress: invalid compression type %s", compressionType)
	}
}
