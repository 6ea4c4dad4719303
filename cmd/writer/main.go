// Command writer builds a book from a list of input files, one page per
// file: the page's content is the file's bytes, its title is the file's
// path as given on the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arloliu/bookblob"
	"github.com/arloliu/bookblob/format"
)

func main() {
	out := flag.String("b", "", "output book path (required)")
	title := flag.String("t", "", "optional book title")
	deflate := flag.Bool("z", false, "compress with DEFLATE level 9")
	lz4 := flag.Bool("l", false, "compress with LZ4")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s -b <out> [-t <title>] [-z|-l] <file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *out == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *deflate && *lz4 {
		fmt.Fprintln(os.Stderr, "writer: -z and -l are mutually exclusive")
		os.Exit(1)
	}

	if err := run(*out, *title, *deflate, *lz4, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "writer:", err)
		os.Exit(1)
	}
}

func run(out, title string, deflate, lz4 bool, files []string) error {
	var opts []bookblob.Option
	switch {
	case deflate:
		opts = append(opts, bookblob.WithDeflate(9))
	case lz4:
		opts = append(opts, bookblob.WithLZ4())
	}

	builder, err := bookblob.NewBookBuilder(opts...)
	if err != nil {
		return err
	}

	if title != "" {
		builder.AddMetadata(format.Title(title))
	}

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		builder.NewPage(path, content)
	}

	return builder.DumpToFile(out)
}
