package format

// TocEntry is a single node in a book's table of contents, derived at read
// time from the parent relation between pages.
type TocEntry struct {
	ID PageID

	Title string

	// SectionNumber is the 1-based hierarchical numbering of this entry,
	// e.g. [2, 1, 3] for the third child of the first child of the second
	// root page.
	SectionNumber []uint32

	// Children are ordered the same way they were discovered: ascending by
	// page id, which is also insertion order among siblings.
	Children []TocEntry
}
