// Package kvlist implements the self-describing, LEB128-framed tagged-value
// list format shared by book- and page-level metadata.
//
// Wire form, per entry: tag (1 byte) · payload_len (LEB128 unsigned) ·
// payload_len bytes. The list ends with a single 0x00 tag byte; no length
// follows the terminator. Tag 0 is reserved for the terminator and must
// never appear in a caller-supplied enumeration.
package kvlist

import (
	"io"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/internal/leb128"
)

// Entry is a single (tag, payload) pair in the list.
type Entry struct {
	Tag     byte
	Payload []byte
}

// Write serializes entries followed by the terminator byte.
//
// Tag 0 in any entry is a programmer error (it collides with the
// terminator) and returns errs.ErrInvalidByteTag.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if e.Tag == 0 {
			return errs.ErrInvalidByteTag
		}

		if _, err := w.Write([]byte{e.Tag}); err != nil {
			return err
		}

		if err := leb128.WriteUvarint(w, uint64(len(e.Payload))); err != nil {
			return err
		}

		if len(e.Payload) > 0 {
			if _, err := w.Write(e.Payload); err != nil {
				return err
			}
		}
	}

	_, err := w.Write([]byte{0})

	return err
}

// Reader deserializes a KV-list from an underlying stream.
//
// Once Next reports an error, the reader is poisoned: all subsequent calls
// return the same terminal state (ok=false, err=nil) rather than attempting
// to resynchronize with the stream.
type Reader struct {
	src       *countingByteReader
	totalLen  int64
	poisoned  bool
	failed    bool
	validTags map[byte]struct{}
}

// NewReader creates a Reader over r. totalLen is the size, in bytes, of the
// readable input starting at the reader's current position; it bounds the
// payload-length validation. validTags lists every tag the caller accepts;
// it must not include 0.
func NewReader(r io.Reader, totalLen int64, validTags []byte) *Reader {
	tags := make(map[byte]struct{}, len(validTags))
	for _, t := range validTags {
		tags[t] = struct{}{}
	}

	return &Reader{
		src:       newCountingByteReader(r),
		totalLen:  totalLen,
		validTags: tags,
	}
}

// Next returns the next entry. ok is false when the list is exhausted
// (terminator seen) or the reader is poisoned from a prior error; err is
// non-nil only the first time a failure is observed.
func (kr *Reader) Next() (entry Entry, ok bool, err error) {
	if kr.poisoned {
		return Entry{}, false, nil
	}

	tag, err := kr.src.ReadByte()
	if err != nil {
		kr.poisoned = true

		return Entry{}, false, err
	}

	if tag == 0 {
		kr.poisoned = true

		return Entry{}, false, nil
	}

	if _, known := kr.validTags[tag]; !known {
		kr.poisoned = true

		return Entry{}, false, errs.ErrInvalidByteTag
	}

	length, err := leb128.ReadUvarint(kr.src)
	if err != nil {
		kr.poisoned = true

		return Entry{}, false, err
	}

	remaining := kr.totalLen - kr.src.n
	if int64(length) > remaining {
		kr.poisoned = true

		return Entry{}, false, errs.ErrInvalidLength
	}

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(kr.src, payload); err != nil {
			kr.poisoned = true

			return Entry{}, false, err
		}
	}

	return Entry{Tag: tag, Payload: payload}, true, nil
}

// ReadAll drains the reader into a slice, stopping at the first error.
func ReadAll(kr *Reader) ([]Entry, error) {
	var entries []Entry
	for {
		e, ok, err := kr.Next()
		if err != nil {
			return entries, err
		}
		if !ok {
			return entries, nil
		}

		entries = append(entries, e)
	}
}

// countingByteReader adapts an io.Reader to io.ByteReader while tracking the
// number of bytes consumed, needed to compute the remaining-input bound
// during validation.
type countingByteReader struct {
	r io.Reader
	n int64
	// buf is a 1-byte scratch buffer for ReadByte when r is not already a
	// ByteReader.
	buf [1]byte
	br  io.ByteReader
}

func newCountingByteReader(r io.Reader) *countingByteReader {
	cbr := &countingByteReader{r: r}
	if br, ok := r.(io.ByteReader); ok {
		cbr.br = br
	}

	return cbr
}

func (c *countingByteReader) ReadByte() (byte, error) {
	if c.br != nil {
		b, err := c.br.ReadByte()
		if err != nil {
			return 0, err
		}
		c.n++

		return b, nil
	}

	if _, err := io.ReadFull(c.r, c.buf[:]); err != nil {
		return 0, err
	}
	c.n++

	return c.buf[0], nil
}

func (c *countingByteReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
