// Package pagestore writes pages through the data-block writer and emits
// the fixed-width page index; on the read side it rebuilds a Page from one
// index entry.
package pagestore

import (
	"encoding/binary"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/datablock"
)

// IndexEntrySize is the fixed on-disk width of one page index entry: six
// big-endian u32 fields.
const IndexEntrySize = 24

// IndexEntry locates a page's content and metadata fragments within the
// data-block stream.
type IndexEntry struct {
	ID       format.PageID
	ParentID format.PageID

	MetadataBlockID     datablock.BlockID
	MetadataBlockOffset uint32

	ContentBlockID     datablock.BlockID
	ContentBlockOffset uint32
}

// Bytes encodes the entry as IndexEntrySize bytes: id, parent_id,
// metadata_block_id, metadata_block_offset, content_block_id,
// content_block_offset, each a big-endian u32.
func (e IndexEntry) Bytes() []byte {
	var b [IndexEntrySize]byte

	binary.BigEndian.PutUint32(b[0:4], uint32(e.ID))
	binary.BigEndian.PutUint32(b[4:8], uint32(e.ParentID))
	binary.BigEndian.PutUint32(b[8:12], uint32(e.MetadataBlockID))
	binary.BigEndian.PutUint32(b[12:16], e.MetadataBlockOffset)
	binary.BigEndian.PutUint32(b[16:20], uint32(e.ContentBlockID))
	binary.BigEndian.PutUint32(b[20:24], e.ContentBlockOffset)

	return b[:]
}

// ParseIndexEntry decodes one IndexEntrySize-byte index entry.
func ParseIndexEntry(data []byte) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidLength
	}

	return IndexEntry{
		ID:                  format.PageID(binary.BigEndian.Uint32(data[0:4])),
		ParentID:            format.PageID(binary.BigEndian.Uint32(data[4:8])),
		MetadataBlockID:     datablock.BlockID(binary.BigEndian.Uint32(data[8:12])),
		MetadataBlockOffset: binary.BigEndian.Uint32(data[12:16]),
		ContentBlockID:      datablock.BlockID(binary.BigEndian.Uint32(data[16:20])),
		ContentBlockOffset:  binary.BigEndian.Uint32(data[20:24]),
	}, nil
}
