package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/bookblob/format"
	"github.com/klauspost/compress/flate"
)

// DeflateCodec compresses block payloads with raw DEFLATE (RFC 1951, no
// zlib or gzip wrapper).
type DeflateCodec struct {
	level int
}

var _ Codec = DeflateCodec{}

// NewDeflateCodec creates a DEFLATE codec at the given level. A level
// outside flate's accepted range (-2 through 9) is replaced by
// DefaultDeflateLevel.
func NewDeflateCodec(level int) DeflateCodec {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = DefaultDeflateLevel
	}

	return DeflateCodec{level: level}
}

// Level reports the configured compression level.
func (c DeflateCodec) Level() int {
	return c.level
}

// Compress returns data compressed with raw DEFLATE at the codec's level.
func (c DeflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress restores data from a raw DEFLATE stream. The level the data
// was compressed at does not need to match c's configured level.
func (c DeflateCodec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c DeflateCodec) BlockType() format.BlockType {
	return format.BlockDeflate
}

// NewDeflateStreamWriter wraps w in a raw DEFLATE encoder at level suited
// to incremental fragment-by-fragment writes within a single data block;
// Close flushes the final block.
func NewDeflateStreamWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = DefaultDeflateLevel
	}

	return flate.NewWriter(w, level)
}
