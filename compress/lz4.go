package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/arloliu/bookblob/format"
	"github.com/pierrec/lz4/v4"
)

// lz4WriterPool pools lz4.Writer instances; they carry a match-finder table
// that is comparatively expensive to allocate per block.
var lz4WriterPool = sync.Pool{
	New: func() any { return lz4.NewWriter(nil) },
}

// LZ4Codec compresses block payloads using the LZ4 frame format, matching
// what any standard lz4 command-line tool produces.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 frame codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress writes data as a single self-contained LZ4 frame.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress reads a single LZ4 frame back to its original bytes.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c LZ4Codec) BlockType() format.BlockType {
	return format.BlockLZ4
}

// NewLZ4StreamWriter wraps w in an LZ4 frame encoder suited to incremental
// fragment-by-fragment writes within a single data block; Close writes the
// frame's end mark.
func NewLZ4StreamWriter(w io.Writer) io.WriteCloser {
	return lz4.NewWriter(w)
}
