package container

import (
	"io"
	"testing"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/arloliu/bookblob/internal/metadata"
	"github.com/arloliu/bookblob/internal/pagestore"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	buf []byte
	pos int64
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end

	return len(p), nil
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = m.pos + offset
	case io.SeekEnd:
		target = int64(len(m.buf)) + offset
	}
	m.pos = target

	return target, nil
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func TestDumpLoad_EmptyBook(t *testing.T) {
	mf := &memFile{}
	require.NoError(t, Dump(mf, nil, nil, format.CompressionNone, 0))

	mf.pos = 0
	loaded, err := Load(mf)
	require.NoError(t, err)
	require.Equal(t, uint32(0), loaded.Header.NumPages)
	require.Empty(t, loaded.Index)
	require.Equal(t, uint32(ReservedOffset), loaded.Header.FtsPos)
}

func TestDumpLoad_TwoPages(t *testing.T) {
	bookMeta := []format.MetadataEntry{format.Title("Theory Example")}
	pages := []format.Page{
		{ID: 1, Metadata: []format.MetadataEntry{format.Title("First")}, Content: []byte("1")},
		{ID: 2, Metadata: []format.MetadataEntry{format.Title("Second")}, Content: []byte("2")},
	}

	mf := &memFile{}
	require.NoError(t, Dump(mf, bookMeta, pages, format.CompressionNone, 0))

	mf.pos = 0
	loaded, err := Load(mf)
	require.NoError(t, err)
	require.Equal(t, uint32(2), loaded.Header.NumPages)
	require.Equal(t, []format.PageID{1, 2}, loaded.SortedIDs)

	mf.pos = loaded.MetadataPosAbs
	end, err := mf.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	_, err = mf.Seek(loaded.MetadataPosAbs, io.SeekStart)
	require.NoError(t, err)

	gotBookMeta, err := metadata.Read(mf, end-loaded.MetadataPosAbs)
	require.NoError(t, err)
	require.Equal(t, bookMeta, gotBookMeta)

	entry := loaded.Index[2]
	page, err := pagestore.BuildPage(loaded.Blocks, entry)
	require.NoError(t, err)
	require.Equal(t, []byte("2"), page.Content)
}

func TestDumpLoad_CompressionVariants(t *testing.T) {
	pages := []format.Page{
		{ID: 1, Metadata: []format.MetadataEntry{format.Title("A")}, Content: []byte("hello world")},
	}

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionDeflate, format.CompressionLZ4} {
		mf := &memFile{}
		require.NoError(t, Dump(mf, nil, pages, ct, 9))

		mf.pos = 0
		loaded, err := Load(mf)
		require.NoError(t, err)

		page, err := pagestore.BuildPage(loaded.Blocks, loaded.Index[1])
		require.NoError(t, err)
		require.Equal(t, []byte("hello world"), page.Content)
	}
}

func TestLoad_InvalidMagic(t *testing.T) {
	mf := &memFile{buf: []byte("not a book container.....")}
	_, err := Load(mf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestLoad_DuplicatedID(t *testing.T) {
	pages := []format.Page{
		{ID: 1, Metadata: []format.MetadataEntry{format.Title("A")}, Content: []byte("a")},
	}

	mf := &memFile{}
	require.NoError(t, Dump(mf, nil, pages, format.CompressionNone, 0))

	mf.pos = 0
	loaded, err := Load(mf)
	require.NoError(t, err)
	require.Len(t, loaded.Index, 1)

	// Append a second index entry duplicating id 1 and bump NumPages to
	// match, exercising the duplicate-id rejection on reload.
	entry := loaded.Index[1]
	mf.buf = append(mf.buf, entry.Bytes()...)

	hdr := Header{NumPages: 2, MetadataPos: loaded.Header.MetadataPos, PagesPos: loaded.Header.PagesPos, FtsPos: ReservedOffset}
	copy(mf.buf[8:8+HeaderSize], hdr.Bytes())

	mf.pos = 0
	_, err = Load(mf)
	require.ErrorIs(t, err, errs.ErrDuplicatedID)
}
