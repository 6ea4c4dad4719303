package datablock

import "io"

// countingWriter tracks the number of bytes written through it, used to
// learn a block's compressed payload length without a second pass.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
