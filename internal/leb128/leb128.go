// Package leb128 implements unsigned LEB128 variable-length integers on top
// of io.Reader/io.Writer streams.
//
// Go's encoding/binary already speaks this exact wire format through
// Uvarint/PutUvarint (base-128, little-endian group order, continuation bit
// in the high bit of each byte) — this package only adds the streaming
// read/write glue that the KV-list and content-fragment codecs need.
package leb128

import (
	"encoding/binary"
	"io"

	"github.com/arloliu/bookblob/errs"
)

// MaxSize is the maximum number of bytes a uint64 can occupy when encoded.
const MaxSize = binary.MaxVarintLen64

// WriteUvarint writes v to w as an unsigned LEB128 integer.
func WriteUvarint(w io.Writer, v uint64) error {
	var buf [MaxSize]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])

	return err
}

// Size returns the number of bytes needed to encode v.
func Size(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// ReadUvarint reads an unsigned LEB128 integer from r one byte at a time.
//
// Unlike binary.ReadUvarint, a short read (EOF before a terminating byte)
// is reported as io.ErrUnexpectedEOF rather than io.EOF, since callers only
// ever call this mid-stream where a value is expected.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < MaxSize; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i > 0 {
				return 0, io.ErrUnexpectedEOF
			}

			return 0, err
		}

		if b < 0x80 {
			if i == MaxSize-1 && b > 1 {
				return 0, errs.ErrInvalidLength
			}

			return x | uint64(b)<<s, nil
		}

		x |= uint64(b&0x7f) << s
		s += 7
	}

	return 0, errs.ErrInvalidLength
}

// ReadUvarintFromBytes decodes an unsigned LEB128 integer from the start of
// data, returning the value and the number of bytes consumed.
func ReadUvarintFromBytes(data []byte) (uint64, int, error) {
	v, n := binary.Uvarint(data)
	if n == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if n < 0 {
		return 0, 0, errs.ErrInvalidLength
	}

	return v, n, nil
}
