package format

import "fmt"

// PageID is a strictly positive page identifier. Zero is the sentinel used
// in on-disk fields to mean "no parent"; it must never appear as a page's
// own id.
type PageID uint32

// IsZero reports whether id is the "no parent" / "no page" sentinel.
func (id PageID) IsZero() bool {
	return id == 0
}

func (id PageID) String() string {
	return fmt.Sprintf("PageID(%d)", uint32(id))
}

// MetadataTag identifies the variant carried by a MetadataEntry. Existing
// tag numbers are permanently reserved; new variants must use a fresh tag.
type MetadataTag uint8

const (
	// TagTerminator ends a KV-list; it is never a valid entry tag.
	TagTerminator MetadataTag = 0
	TagTitle      MetadataTag = 1
	TagAuthor     MetadataTag = 2
	TagLanguage   MetadataTag = 3
	TagDate       MetadataTag = 4
	TagLicense    MetadataTag = 5
	TagKeyword    MetadataTag = 6
	TagUser       MetadataTag = 100
)

func (t MetadataTag) String() string {
	switch t {
	case TagTitle:
		return "Title"
	case TagAuthor:
		return "Author"
	case TagLanguage:
		return "Language"
	case TagDate:
		return "Date"
	case TagLicense:
		return "License"
	case TagKeyword:
		return "Keyword"
	case TagUser:
		return "User"
	default:
		return "Unknown"
	}
}

// ValidMetadataTags lists every recognized non-terminator tag, used to
// bound KV-list validation when decoding metadata.
var ValidMetadataTags = []byte{
	byte(TagTitle), byte(TagAuthor), byte(TagLanguage),
	byte(TagDate), byte(TagLicense), byte(TagKeyword), byte(TagUser),
}

// MetadataEntry is a single typed value attached to a book or a page.
//
// It is a closed tagged union: Tag selects which of Text, Date, or
// (UserKey, Text) is meaningful. Use the constructor functions below rather
// than building a MetadataEntry by hand.
type MetadataEntry struct {
	Tag MetadataTag

	// Text holds the string payload for Title, Author, Language, License,
	// Keyword, and the value half of User.
	Text string

	// Date holds the payload for a Date entry, as a Unix-style unsigned
	// timestamp. Its unit is left to the caller.
	Date uint64

	// UserKey holds the key half of a User entry.
	UserKey string
}

// Title creates a Title metadata entry.
func Title(s string) MetadataEntry { return MetadataEntry{Tag: TagTitle, Text: s} }

// Author creates an Author metadata entry.
func Author(s string) MetadataEntry { return MetadataEntry{Tag: TagAuthor, Text: s} }

// Language creates a Language metadata entry.
func Language(s string) MetadataEntry { return MetadataEntry{Tag: TagLanguage, Text: s} }

// DateEntry creates a Date metadata entry from a u64 timestamp value; it
// is stored on disk as 8 big-endian bytes.
func DateEntry(d uint64) MetadataEntry { return MetadataEntry{Tag: TagDate, Date: d} }

// License creates a License metadata entry.
func License(s string) MetadataEntry { return MetadataEntry{Tag: TagLicense, Text: s} }

// Keyword creates a Keyword metadata entry.
func Keyword(s string) MetadataEntry { return MetadataEntry{Tag: TagKeyword, Text: s} }

// User creates a User metadata entry from a free-form key and value.
func User(key, value string) MetadataEntry {
	return MetadataEntry{Tag: TagUser, UserKey: key, Text: value}
}

// Page is a single unit of content in a Book: an identifier, an optional
// parent identifier, its own ordered metadata, and an opaque payload.
type Page struct {
	ID PageID

	// ParentID is zero when the page has no parent.
	ParentID PageID

	Metadata []MetadataEntry

	Content []byte
}

// Title returns the text of the first Title entry in the page's metadata,
// or the empty string if none is present.
func (p Page) Title() string {
	for _, m := range p.Metadata {
		if m.Tag == TagTitle {
			return m.Text
		}
	}

	return ""
}
