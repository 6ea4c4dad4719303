// Command inspect prints the contents of a book container: page count,
// book metadata, then each page's id, parent id, metadata, and content
// length with an ASCII-escaped dump.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/bookblob"
	"github.com/arloliu/bookblob/format"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <book>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	book, f, err := bookblob.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Printf("num_pages: %d\n", book.NumPages())

	meta, err := book.Metadata()
	if err != nil {
		return fmt.Errorf("book metadata: %w", err)
	}

	fmt.Println("metadata:")
	printMetadata(meta, "  ")

	pages, err := book.Pages()
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}

	for _, page := range pages {
		fmt.Printf("page %d (parent=%s):\n", page.ID, parentString(page.ParentID))
		printMetadata(page.Metadata, "  ")
		fmt.Printf("  content (%d bytes): %s\n", len(page.Content), escapeASCII(page.Content))
	}

	return nil
}

func parentString(id format.PageID) string {
	if id.IsZero() {
		return "none"
	}

	return strconv.FormatUint(uint64(id), 10)
}

func printMetadata(entries []format.MetadataEntry, indent string) {
	for _, e := range entries {
		switch e.Tag {
		case format.TagDate:
			fmt.Printf("%s%s: %d\n", indent, e.Tag, e.Date)
		case format.TagUser:
			fmt.Printf("%s%s(%s): %s\n", indent, e.Tag, e.UserKey, e.Text)
		default:
			fmt.Printf("%s%s: %s\n", indent, e.Tag, e.Text)
		}
	}
}

func escapeASCII(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\x%02x", c)
		}
	}

	return b.String()
}
