package datablock

import (
	"encoding/binary"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arloliu/bookblob/compress"
	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
)

// CacheSize bounds the number of decoded blocks a Reader retains.
const CacheSize = 16

// Reader wraps a seekable input and serves decoded fragment slices,
// caching decoded block payloads across calls. It is not safe for
// concurrent use.
type Reader struct {
	r     io.ReaderAt
	size  int64
	cache *lru.Cache[BlockID, []byte]
}

// NewReader creates a Reader over r, where size is the number of readable
// bytes starting at r's origin; reads past size are rejected rather than
// left to the underlying reader to fault on.
func NewReader(r io.ReaderAt, size int64) *Reader {
	cache, _ := lru.New[BlockID, []byte](CacheSize)

	return &Reader{r: r, size: size, cache: cache}
}

// WithBlock decodes the block at blockID (reusing the cached payload if
// present), validates offset against its decoded length, and hands the
// slice from offset onward to f.
func WithBlock[T any](rd *Reader, blockID BlockID, offset uint64, f func(decoded []byte) (T, error)) (T, error) {
	var zero T

	decoded, ok := rd.cache.Get(blockID)
	if !ok {
		var err error

		decoded, err = rd.readBlock(blockID)
		if err != nil {
			return zero, err
		}

		rd.cache.Add(blockID, decoded)
	}

	if offset > uint64(len(decoded)) {
		return zero, errs.ErrInvalidLength
	}

	return f(decoded[offset:])
}

func (rd *Reader) readBlock(blockID BlockID) ([]byte, error) {
	var header [5]byte

	if _, err := readFullAt(rd.r, header[:], int64(blockID)); err != nil {
		return nil, err
	}

	blockType := format.BlockType(header[0])
	switch blockType {
	case format.BlockUncompressed, format.BlockDeflate, format.BlockLZ4:
	default:
		return nil, errs.ErrInvalidBlockType
	}

	length := binary.BigEndian.Uint32(header[1:5])

	if int64(blockID)+5+int64(length) > rd.size {
		return nil, errs.ErrInvalidLength
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := readFullAt(rd.r, payload, int64(blockID)+5); err != nil {
			return nil, err
		}
	}

	decoder, err := compress.NewDecoder(blockType)
	if err != nil {
		return nil, err
	}

	return decoder.Decompress(payload)
}

func readFullAt(r io.ReaderAt, buf []byte, off int64) (int, error) {
	n, err := r.ReadAt(buf, off)
	if err != nil && !(err == io.EOF && n == len(buf)) {
		return n, err
	}

	return n, nil
}
