package bookblob

import (
	"io"
	"math"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/container"
)

// Option configures a BookBuilder at construction time.
type Option interface {
	apply(*BookBuilder)
}

// optionFunc adapts a plain function to Option.
type optionFunc func(*BookBuilder)

func (f optionFunc) apply(bb *BookBuilder) { f(bb) }

// WithNoCompression disables compression. This is the default.
func WithNoCompression() Option {
	return optionFunc(func(bb *BookBuilder) {
		bb.compression = format.CompressionNone
		bb.level = 0
	})
}

// WithDeflate selects DEFLATE compression at the given level (0-9). At
// dump time a level outside flate's accepted range is replaced by
// compress.DefaultDeflateLevel.
func WithDeflate(level int) Option {
	return optionFunc(func(bb *BookBuilder) {
		bb.compression = format.CompressionDeflate
		bb.level = level
	})
}

// WithLZ4 selects LZ4 frame compression.
func WithLZ4() Option {
	return optionFunc(func(bb *BookBuilder) {
		bb.compression = format.CompressionLZ4
		bb.level = 0
	})
}

// BookBuilder assembles a book in memory: book-level metadata and an
// ordered sequence of pages, each assigned a monotonically increasing id
// starting at 1 and saturating at the 32-bit maximum. A BookBuilder owns
// all of its pages until Dump; it has no relationship to any Book opened
// from a previously dumped container.
type BookBuilder struct {
	metadata []format.MetadataEntry
	pages    []format.Page
	byID     map[format.PageID]int

	nextID format.PageID

	compression format.CompressionType
	level       int
}

// NewBookBuilder creates an empty builder, applying opts in order. The
// error return exists for forward compatibility with options that may
// need to reject a combination of settings; none currently do.
func NewBookBuilder(opts ...Option) (*BookBuilder, error) {
	bb := &BookBuilder{
		byID:        make(map[format.PageID]int),
		nextID:      1,
		compression: format.CompressionNone,
	}

	for _, opt := range opts {
		opt.apply(bb)
	}

	return bb, nil
}

// AddMetadata appends entries to the book-level metadata, preserving
// their order and multiplicity.
func (bb *BookBuilder) AddMetadata(entries ...format.MetadataEntry) {
	bb.metadata = append(bb.metadata, entries...)
}

// NewPage appends a page with the given title and content, returning its
// assigned id. The builder always inserts the title as the page's first
// metadata entry; use AddPageMetadata to append more.
func (bb *BookBuilder) NewPage(title string, content []byte) format.PageID {
	id := bb.nextID
	if bb.nextID != math.MaxUint32 {
		bb.nextID++
	}

	bb.byID[id] = len(bb.pages)
	bb.pages = append(bb.pages, format.Page{
		ID:       id,
		Metadata: []format.MetadataEntry{format.Title(title)},
		Content:  content,
	})

	return id
}

// SetParent records id's parent as parentID. id must be a page already
// added to this builder, otherwise ErrInvalidID is returned; parentID is
// not checked here, and the relationship is only validated when a Book
// derives a table of contents.
func (bb *BookBuilder) SetParent(id, parentID format.PageID) error {
	idx, ok := bb.byID[id]
	if !ok {
		return errs.ErrInvalidID
	}

	bb.pages[idx].ParentID = parentID

	return nil
}

// AddPageMetadata appends entries to id's metadata, after its builder-
// inserted title.
func (bb *BookBuilder) AddPageMetadata(id format.PageID, entries ...format.MetadataEntry) error {
	idx, ok := bb.byID[id]
	if !ok {
		return errs.ErrInvalidID
	}

	bb.pages[idx].Metadata = append(bb.pages[idx].Metadata, entries...)

	return nil
}

// Dump writes the assembled book to w as a v1 container, starting at w's
// current position. The builder may be reused afterward; Dump does not
// consume its pages or metadata.
func (bb *BookBuilder) Dump(w io.WriteSeeker) error {
	return container.Dump(w, bb.metadata, bb.pages, bb.compression, bb.level)
}
