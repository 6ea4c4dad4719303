package bookblob

import (
	"io"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/container"
	"github.com/arloliu/bookblob/internal/metadata"
	"github.com/arloliu/bookblob/internal/pagestore"
	"github.com/arloliu/bookblob/internal/toc"
)

// Book is a loaded, read-only handle on a v1 container: its page index and
// a data-block reader over the underlying stream. A Book holds mutable
// cursor and cache state and is not safe for concurrent use. Metadata,
// Pages, and GetPageByID return fully materialized values, which stay
// valid across later calls on the same Book.
type Book struct {
	loaded *container.Loaded
}

// Open reads a v1 container from src starting at its current position and
// returns a Book handle for random page access and table-of-contents
// derivation.
func Open(src container.Source) (*Book, error) {
	loaded, err := container.Load(src)
	if err != nil {
		return nil, err
	}

	return &Book{loaded: loaded}, nil
}

// NumPages reports how many pages the book contains.
func (b *Book) NumPages() int {
	return len(b.loaded.SortedIDs)
}

// Metadata decodes the book-level metadata KV-list. It seeks the
// underlying stream directly (not through the data-block reader), so
// callers must not interleave it with other Book operations that move the
// stream's cursor.
func (b *Book) Metadata() ([]format.MetadataEntry, error) {
	end, err := b.loaded.Source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if _, err := b.loaded.Source.Seek(b.loaded.MetadataPosAbs, io.SeekStart); err != nil {
		return nil, err
	}

	return metadata.Read(b.loaded.Source, end-b.loaded.MetadataPosAbs)
}

// Pages returns every page in the book, materialized in ascending id
// order. Use GetPageByID for single-page random access instead when only
// one page is needed.
func (b *Book) Pages() ([]format.Page, error) {
	pages := make([]format.Page, 0, len(b.loaded.SortedIDs))

	for _, id := range b.loaded.SortedIDs {
		page, err := pagestore.BuildPage(b.loaded.Blocks, b.loaded.Index[id])
		if err != nil {
			return nil, err
		}

		pages = append(pages, page)
	}

	return pages, nil
}

// GetPageByID looks up id in the page index and materializes the
// corresponding Page. An id absent from the index returns ErrInvalidID.
func (b *Book) GetPageByID(id format.PageID) (format.Page, error) {
	entry, ok := b.loaded.Index[id]
	if !ok {
		return format.Page{}, errs.ErrInvalidID
	}

	return pagestore.BuildPage(b.loaded.Blocks, entry)
}

// TOC derives the table of contents by walking parent pointers in
// ascending page-id order, assigning 1-based hierarchical section
// numbers. See internal/toc for the bounded-depth walk and its two
// failure modes (ErrInvalidParent, ErrParentLoop).
func (b *Book) TOC() ([]format.TocEntry, error) {
	return toc.Build(b.loaded.Blocks, b.loaded.SortedIDs, b.loaded.Index)
}
