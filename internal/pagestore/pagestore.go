package pagestore

import (
	"io"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/datablock"
	"github.com/arloliu/bookblob/internal/leb128"
	"github.com/arloliu/bookblob/internal/metadata"
	"github.com/arloliu/bookblob/internal/pool"
)

// Write lays pages out through a fresh data-block writer over w: one
// content fragment per page (LEB128 length prefix, then raw bytes), and a
// single fragment holding every page's KV-list-serialized metadata back to
// back. It returns one IndexEntry per input page, in the same order.
func Write(w io.WriteSeeker, pages []format.Page, compression format.CompressionType, level int) ([]IndexEntry, error) {
	entries := make([]IndexEntry, len(pages))
	if len(pages) == 0 {
		return entries, nil
	}

	dw := datablock.NewWriter(w, compression, level)

	staging := pool.GetMetadataBuffer()
	defer pool.PutMetadataBuffer(staging)

	metaOffsets := make([]uint32, len(pages))

	for i, p := range pages {
		contentBlockID, contentOffset, err := dw.Fragment(uint64(len(p.Content)))
		if err != nil {
			return nil, err
		}

		if err := leb128.WriteUvarint(dw, uint64(len(p.Content))); err != nil {
			return nil, err
		}
		if len(p.Content) > 0 {
			if _, err := dw.Write(p.Content); err != nil {
				return nil, err
			}
		}

		entries[i].ID = p.ID
		entries[i].ParentID = p.ParentID
		entries[i].ContentBlockID = contentBlockID
		entries[i].ContentBlockOffset = uint32(contentOffset)

		metaOffsets[i] = uint32(staging.Len())

		if err := metadata.Write(staging, p.Metadata); err != nil {
			return nil, err
		}
	}

	metaBlockID, metaStart, err := dw.Fragment(datablock.ForceNewBlock)
	if err != nil {
		return nil, err
	}
	if metaStart != 0 {
		return nil, errs.ErrInvalidLength
	}

	if _, err := dw.Write(staging.Bytes()); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].MetadataBlockID = metaBlockID
		entries[i].MetadataBlockOffset = metaOffsets[i]
	}

	if err := dw.Finish(); err != nil {
		return nil, err
	}

	return entries, nil
}

// BuildPage reconstructs a Page from its index entry by reading its
// content and metadata fragments through r.
func BuildPage(r *datablock.Reader, entry IndexEntry) (format.Page, error) {
	if entry.ID.IsZero() {
		return format.Page{}, errs.ErrInvalidID
	}

	content, err := datablock.WithBlock(r, entry.ContentBlockID, uint64(entry.ContentBlockOffset),
		func(decoded []byte) ([]byte, error) {
			length, n, err := leb128.ReadUvarintFromBytes(decoded)
			if err != nil {
				return nil, err
			}
			if n+int(length) > len(decoded) {
				return nil, errs.ErrInvalidLength
			}

			return append([]byte(nil), decoded[n:n+int(length)]...), nil
		})
	if err != nil {
		return format.Page{}, err
	}

	meta, err := datablock.WithBlock(r, entry.MetadataBlockID, uint64(entry.MetadataBlockOffset),
		func(decoded []byte) ([]format.MetadataEntry, error) {
			return metadata.ReadFromBytes(decoded)
		})
	if err != nil {
		return format.Page{}, err
	}

	return format.Page{ID: entry.ID, ParentID: entry.ParentID, Metadata: meta, Content: content}, nil
}
