// Package errs collects the sentinel errors returned across bookblob's
// packages. Callers should match them with errors.Is; wrapped instances
// keep the underlying sentinel reachable through errors.Unwrap.
package errs

import "errors"

var (
	// ErrInvalidMagic is returned when the leading bytes of a stream do not
	// match a known container magic, including short reads.
	ErrInvalidMagic = errors.New("bookblob: invalid magic number")

	// ErrTooManyPages is returned when a page count or byte offset does not
	// fit in the on-disk width (currently u32). The name is historical: it
	// covers every size-overflow case in the container header.
	ErrTooManyPages = errors.New("bookblob: book exceeds on-disk size limits")

	// ErrInvalidNumber is returned when a numeric conversion between widths
	// fails (e.g. a header field does not fit in the target integer type).
	ErrInvalidNumber = errors.New("bookblob: invalid numeric conversion")

	// ErrInvalidBlockType is returned when a data block's leading tag byte
	// is not one of the recognized block types.
	ErrInvalidBlockType = errors.New("bookblob: invalid data block type")

	// ErrBlockTooLarge is returned when a data block's compressed payload
	// would not fit in a u32 length field.
	ErrBlockTooLarge = errors.New("bookblob: data block payload too large")

	// ErrInvalidLength is returned when a length prefix (LEB128 or a KV-list
	// payload length) exceeds the remaining readable input, or when a fixed
	// width value (e.g. a Date payload) has the wrong size.
	ErrInvalidLength = errors.New("bookblob: invalid length")

	// ErrInvalidByteTag is returned when a KV-list entry uses a tag byte
	// outside the caller's recognized enumeration.
	ErrInvalidByteTag = errors.New("bookblob: invalid byte tag")

	// ErrUnicode is returned when a metadata string field is not valid UTF-8.
	ErrUnicode = errors.New("bookblob: invalid UTF-8 sequence")

	// ErrInvalidID is returned for a zero page id on disk, or an unknown id
	// passed to a lookup.
	ErrInvalidID = errors.New("bookblob: invalid page id")

	// ErrDuplicatedID is returned when the page index contains the same id
	// more than once.
	ErrDuplicatedID = errors.New("bookblob: duplicated page id")

	// ErrInvalidParent is returned by the table-of-contents builder when a
	// page's parent chain references an id that has not been observed yet.
	ErrInvalidParent = errors.New("bookblob: invalid parent reference")

	// ErrParentLoop is returned by the table-of-contents builder when a
	// page's parent chain does not reach a root within the bounded depth.
	ErrParentLoop = errors.New("bookblob: parent chain too deep or cyclic")
)
