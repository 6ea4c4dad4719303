// Package metadata maps format.MetadataEntry values to and from the
// KV-list wire format shared by book- and page-level metadata.
package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/kvlist"
	"github.com/arloliu/bookblob/internal/leb128"
)

// Write serializes entries as a KV-list terminated by the 0x00 sentinel.
func Write(w io.Writer, entries []format.MetadataEntry) error {
	kvEntries := make([]kvlist.Entry, len(entries))

	for i, e := range entries {
		ke, err := encodeEntry(e)
		if err != nil {
			return err
		}

		kvEntries[i] = ke
	}

	return kvlist.Write(w, kvEntries)
}

// Read deserializes a KV-list of totalLen readable bytes starting at r's
// current position into an ordered sequence of MetadataEntry.
func Read(r io.Reader, totalLen int64) ([]format.MetadataEntry, error) {
	kr := kvlist.NewReader(r, totalLen, format.ValidMetadataTags)

	var out []format.MetadataEntry
	for {
		e, ok, err := kr.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}

		me, err := decodeEntry(e)
		if err != nil {
			return out, err
		}

		out = append(out, me)
	}
}

// ReadFromBytes deserializes a KV-list held entirely in data, as used when
// a page's metadata is read from its already-decoded block slice.
func ReadFromBytes(data []byte) ([]format.MetadataEntry, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

func encodeEntry(e format.MetadataEntry) (kvlist.Entry, error) {
	switch e.Tag {
	case format.TagTitle, format.TagAuthor, format.TagLanguage, format.TagLicense, format.TagKeyword:
		return kvlist.Entry{Tag: byte(e.Tag), Payload: []byte(e.Text)}, nil

	case format.TagDate:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], e.Date)

		return kvlist.Entry{Tag: byte(e.Tag), Payload: buf[:]}, nil

	case format.TagUser:
		keyBytes := []byte(e.UserKey)

		var lenBuf [leb128.MaxSize]byte
		n := binary.PutUvarint(lenBuf[:], uint64(len(keyBytes)))

		payload := make([]byte, 0, n+len(keyBytes)+len(e.Text))
		payload = append(payload, lenBuf[:n]...)
		payload = append(payload, keyBytes...)
		payload = append(payload, e.Text...)

		return kvlist.Entry{Tag: byte(e.Tag), Payload: payload}, nil

	default:
		return kvlist.Entry{}, fmt.Errorf("metadata: unrecognized tag %d", e.Tag)
	}
}

func decodeEntry(e kvlist.Entry) (format.MetadataEntry, error) {
	tag := format.MetadataTag(e.Tag)

	switch tag {
	case format.TagTitle, format.TagAuthor, format.TagLanguage, format.TagLicense, format.TagKeyword:
		if !utf8.Valid(e.Payload) {
			return format.MetadataEntry{}, errs.ErrUnicode
		}

		return format.MetadataEntry{Tag: tag, Text: string(e.Payload)}, nil

	case format.TagDate:
		if len(e.Payload) != 8 {
			return format.MetadataEntry{}, errs.ErrInvalidLength
		}

		return format.MetadataEntry{Tag: tag, Date: binary.BigEndian.Uint64(e.Payload)}, nil

	case format.TagUser:
		keyLen, n, err := leb128.ReadUvarintFromBytes(e.Payload)
		if err != nil {
			return format.MetadataEntry{}, err
		}
		if n+int(keyLen) > len(e.Payload) {
			return format.MetadataEntry{}, errs.ErrInvalidLength
		}

		keyBytes := e.Payload[n : n+int(keyLen)]
		valueBytes := e.Payload[n+int(keyLen):]

		if !utf8.Valid(keyBytes) || !utf8.Valid(valueBytes) {
			return format.MetadataEntry{}, errs.ErrUnicode
		}

		return format.MetadataEntry{Tag: tag, UserKey: string(keyBytes), Text: string(valueBytes)}, nil

	default:
		return format.MetadataEntry{}, errs.ErrInvalidByteTag
	}
}
