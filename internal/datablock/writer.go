// Package datablock implements the chunked, optionally compressed
// substrate that the page store lays variable-length fragments into: the
// writer batches fragments into size-bounded blocks and patches each
// block's length header on close; the reader locates a block by its
// absolute stream offset, decompresses it, and caches the decoded payload.
package datablock

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/arloliu/bookblob/compress"
	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
)

// MaxBlockSize is the target maximum decoded size of a single block.
const MaxBlockSize = 32 * 1024

// ForceNewBlock, passed as a Fragment size hint, always closes any active
// block before opening a fresh one. The page store uses this for the
// metadata fragment, which must live alone in its own block.
const ForceNewBlock = math.MaxUint64

// BlockID is the absolute byte offset of a block's header byte in the
// underlying stream.
type BlockID uint32

// Writer batches fragment writes into size-bounded, optionally compressed
// blocks against a seekable output. It is not safe for concurrent use.
type Writer struct {
	w           io.WriteSeeker
	compression format.CompressionType
	level       int
	active      *activeBlock
}

type activeBlock struct {
	blockID       int64
	decodedOffset uint64
	compressed    io.WriteCloser
	counting      *countingWriter
}

// NewWriter creates a Writer that compresses every block it opens using
// compression (and level, meaningful only for format.CompressionDeflate).
func NewWriter(w io.WriteSeeker, compression format.CompressionType, level int) *Writer {
	return &Writer{w: w, compression: compression, level: level}
}

// Fragment opens (or reuses) an active block for a new fragment and
// returns its address. sizeHint is the fragment's expected decoded size,
// used only to decide whether a new block is needed; it never truncates a
// write. Pass ForceNewBlock to always start a fresh block.
//
// The caller must follow Fragment with exactly the fragment's bytes
// written via Write before calling Fragment or Finish again.
func (w *Writer) Fragment(sizeHint uint64) (blockID BlockID, offset uint64, err error) {
	var currentOffset uint64
	if w.active != nil {
		currentOffset = w.active.decodedOffset
	}

	forceNew := w.active != nil && sizeHint == ForceNewBlock
	overflows := w.active != nil && currentOffset > 0 && currentOffset+sizeHint > MaxBlockSize

	if forceNew || overflows {
		if err := w.closeCurrent(); err != nil {
			return 0, 0, err
		}
	}

	if w.active == nil {
		if err := w.openBlock(); err != nil {
			return 0, 0, err
		}
	}

	return BlockID(w.active.blockID), w.active.decodedOffset, nil
}

// Write appends data to the fragment most recently opened with Fragment.
func (w *Writer) Write(data []byte) (int, error) {
	if w.active == nil {
		return 0, errs.ErrInvalidLength
	}

	n, err := w.active.compressed.Write(data)
	w.active.decodedOffset += uint64(n)

	return n, err
}

// Finish closes any active block, patching its length header.
func (w *Writer) Finish() error {
	return w.closeCurrent()
}

func (w *Writer) openBlock() error {
	pos, err := w.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if pos < 0 || pos > math.MaxUint32 {
		return errs.ErrTooManyPages
	}

	blockType := w.compression.BlockType()
	if _, err := w.w.Write([]byte{byte(blockType), 0, 0, 0, 0}); err != nil {
		return err
	}

	cw := &countingWriter{w: w.w}

	sw, _, err := compress.NewStreamWriter(w.compression, w.level, cw)
	if err != nil {
		return err
	}

	w.active = &activeBlock{blockID: pos, compressed: sw, counting: cw}

	return nil
}

func (w *Writer) closeCurrent() error {
	if w.active == nil {
		return nil
	}

	a := w.active
	w.active = nil

	if err := a.compressed.Close(); err != nil {
		return err
	}

	if a.counting.n > math.MaxUint32 {
		return errs.ErrBlockTooLarge
	}

	cur, err := w.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if _, err := w.w.Seek(a.blockID+1, io.SeekStart); err != nil {
		return err
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(a.counting.n))

	if _, err := w.w.Write(lenBuf[:]); err != nil {
		return err
	}

	_, err = w.w.Seek(cur, io.SeekStart)

	return err
}
