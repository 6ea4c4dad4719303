package container

import (
	"io"
	"math"
	"sort"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/datablock"
	"github.com/arloliu/bookblob/internal/metadata"
	"github.com/arloliu/bookblob/internal/pagestore"
)

// Magic identifies a v1 book container. The leading 0x89 byte, as in PNG,
// makes a non-ASCII stream trivial to detect; 0x01 is the version tag the
// loader dispatches on.
var Magic = [8]byte{0x89, 0x01, 'T', 'H', 'R', 'P', 'K', 'G'}

// Source is the random-access stream a Loaded container reads from: seeks
// for the header and book metadata, ReadAt for data blocks.
type Source interface {
	io.ReaderAt
	io.ReadSeeker
}

// Dump writes a v1 container to w starting at its current position,
// following the write order: magic, placeholder header, book metadata
// KV-list, page data blocks and index, then the patched header.
func Dump(w io.WriteSeeker, bookMetadata []format.MetadataEntry, pages []format.Page, compression format.CompressionType, level int) error {
	beginning, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}

	placeholder := Header{
		NumPages:    uint32(len(pages)),
		MetadataPos: ReservedOffset,
		PagesPos:    ReservedOffset,
		FtsPos:      ReservedOffset,
	}
	if _, err := w.Write(placeholder.Bytes()); err != nil {
		return err
	}

	metadataPosAbs, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if err := metadata.Write(w, bookMetadata); err != nil {
		return err
	}

	entries, err := pagestore.Write(w, pages, compression, level)
	if err != nil {
		return err
	}

	pagesPosAbs, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if _, err := w.Write(e.Bytes()); err != nil {
			return err
		}
	}

	metadataPos := metadataPosAbs - beginning
	pagesPos := pagesPosAbs - beginning
	if metadataPos < 0 || metadataPos > math.MaxUint32 || pagesPos < 0 || pagesPos > math.MaxUint32 {
		return errs.ErrTooManyPages
	}

	header := Header{
		NumPages:    uint32(len(pages)),
		MetadataPos: uint32(metadataPos),
		PagesPos:    uint32(pagesPos),
		FtsPos:      ReservedOffset,
	}

	if _, err := w.Seek(beginning+8, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.Write(header.Bytes()); err != nil {
		return err
	}

	_, err = w.Seek(0, io.SeekEnd)

	return err
}

// Loaded is an opened v1 container: its header, the in-memory page index
// keyed by id, and a data-block reader bounded to the pages section.
type Loaded struct {
	Source Source

	Beginning      int64
	Header         Header
	MetadataPosAbs int64

	// SortedIDs lists every page id in ascending order, the iteration
	// order Book.Pages and Book.TOC use.
	SortedIDs []format.PageID
	Index     map[format.PageID]pagestore.IndexEntry

	Blocks *datablock.Reader
}

// Load reads a v1 container from src starting at its current position.
func Load(src Source) (*Loaded, error) {
	beginning, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	var magic [8]byte
	if _, err := io.ReadFull(src, magic[:]); err != nil {
		return nil, errs.ErrInvalidMagic
	}
	if magic != Magic {
		return nil, errs.ErrInvalidMagic
	}

	var headerBytes [HeaderSize]byte
	if _, err := io.ReadFull(src, headerBytes[:]); err != nil {
		return nil, err
	}

	header, err := ParseHeader(headerBytes[:])
	if err != nil {
		return nil, err
	}

	metadataPosAbs := beginning + int64(header.MetadataPos)
	pagesPosAbs := beginning + int64(header.PagesPos)

	if _, err := src.Seek(pagesPosAbs, io.SeekStart); err != nil {
		return nil, err
	}

	indexBytes := make([]byte, int64(header.NumPages)*pagestore.IndexEntrySize)
	if len(indexBytes) > 0 {
		if _, err := io.ReadFull(src, indexBytes); err != nil {
			return nil, err
		}
	}

	index := make(map[format.PageID]pagestore.IndexEntry, header.NumPages)
	ids := make([]format.PageID, 0, header.NumPages)

	for i := uint32(0); i < header.NumPages; i++ {
		entry, err := pagestore.ParseIndexEntry(indexBytes[i*pagestore.IndexEntrySize : (i+1)*pagestore.IndexEntrySize])
		if err != nil {
			return nil, err
		}

		if entry.ID.IsZero() {
			return nil, errs.ErrInvalidID
		}
		if _, dup := index[entry.ID]; dup {
			return nil, errs.ErrDuplicatedID
		}

		index[entry.ID] = entry
		ids = append(ids, entry.ID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return &Loaded{
		Source:         src,
		Beginning:      beginning,
		Header:         header,
		MetadataPosAbs: metadataPosAbs,
		SortedIDs:      ids,
		Index:          index,
		Blocks:         datablock.NewReader(src, pagesPosAbs),
	}, nil
}
