// Package container implements the v1 file container: magic, fixed header,
// write order, and load dispatch.
package container

import (
	"encoding/binary"

	"github.com/arloliu/bookblob/errs"
)

// HeaderSize is the fixed on-disk width of the v1 header.
const HeaderSize = 16

// ReservedOffset marks a header offset field that is not used (the
// full-text-search slot, reserved but unwritten in v1).
const ReservedOffset = 0xFFFFFFFF

// Header is the v1 container header: four big-endian u32 fields
// immediately following the magic.
type Header struct {
	NumPages uint32
	// MetadataPos and PagesPos are byte offsets from the container's
	// start, not from the start of the underlying stream.
	MetadataPos uint32
	PagesPos    uint32
	// FtsPos is reserved for a future full-text-search index and is
	// always written as ReservedOffset.
	FtsPos uint32
}

// Bytes encodes the header as HeaderSize bytes.
func (h Header) Bytes() []byte {
	var b [HeaderSize]byte

	binary.BigEndian.PutUint32(b[0:4], h.NumPages)
	binary.BigEndian.PutUint32(b[4:8], h.MetadataPos)
	binary.BigEndian.PutUint32(b[8:12], h.PagesPos)
	binary.BigEndian.PutUint32(b[12:16], h.FtsPos)

	return b[:]
}

// ParseHeader decodes a HeaderSize-byte header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, errs.ErrInvalidLength
	}

	return Header{
		NumPages:    binary.BigEndian.Uint32(data[0:4]),
		MetadataPos: binary.BigEndian.Uint32(data[4:8]),
		PagesPos:    binary.BigEndian.Uint32(data[8:12]),
		FtsPos:      binary.BigEndian.Uint32(data[12:16]),
	}, nil
}
