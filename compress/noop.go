package compress

import (
	"io"

	"github.com/arloliu/bookblob/format"
)

// NoOpCodec stores a block's payload verbatim.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a codec that bypasses compression entirely.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged; no copy is made.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged; no copy is made.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) BlockType() format.BlockType {
	return format.BlockUncompressed
}

// passthroughWriteCloser adapts a plain io.Writer to io.WriteCloser with a
// no-op Close, so the data-block writer can treat all three block types
// uniformly.
type passthroughWriteCloser struct {
	io.Writer
}

func (passthroughWriteCloser) Close() error { return nil }

// NewNoOpStreamWriter wraps w so it satisfies io.WriteCloser without
// altering the bytes written.
func NewNoOpStreamWriter(w io.Writer) io.WriteCloser {
	return passthroughWriteCloser{Writer: w}
}
