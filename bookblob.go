// Package bookblob stores a book — an ordered collection of pages with
// structured metadata — in a single seekable binary file, and reads it
// back with random page access and table-of-contents derivation.
//
// # Core Features
//
//   - Chunked, optionally compressed data-block substrate (None, DEFLATE, LZ4)
//   - Self-describing LEB128-framed metadata shared by books and pages
//   - Fixed-width page index for O(1) lookup by id
//   - Bounded-depth table-of-contents derivation from parent pointers
//   - Position-independent container: no requirement to start at offset 0
//
// # Basic Usage
//
// Building and writing a book:
//
//	builder, _ := bookblob.NewBookBuilder(bookblob.WithDeflate(9))
//	builder.AddMetadata(format.Title("Theory Example"))
//
//	first := builder.NewPage("First", []byte("1"))
//	second := builder.NewPage("Second", []byte("2"))
//	_ = builder.SetParent(second, first)
//
//	f, _ := os.Create("book.bin")
//	defer f.Close()
//	_ = builder.Dump(f)
//
// Reading a book back:
//
//	f, _ := os.Open("book.bin")
//	defer f.Close()
//
//	book, _ := bookblob.Open(f)
//	page, _ := book.GetPageByID(2)
//	fmt.Println(string(page.Content))
package bookblob

import (
	"os"

	"github.com/arloliu/bookblob/internal/container"
)

// OpenFile opens path and loads a Book from it, starting at offset 0. The
// caller is responsible for closing the returned file once the Book is no
// longer needed.
func OpenFile(path string) (*Book, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	book, err := Open(f)
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	return book, f, nil
}

// DumpToFile creates (or truncates) path and dumps bb into it.
func (bb *BookBuilder) DumpToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bb.Dump(f)
}

var _ container.Source = (*os.File)(nil)
