package bookblob

import (
	"testing"

	"github.com/arloliu/bookblob/errs"
	"github.com/arloliu/bookblob/format"
	"github.com/stretchr/testify/require"
)

func TestNewBookBuilder_DefaultsToNoCompression(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, bb.compression)
	require.Equal(t, 0, bb.level)
}

func TestWithNoCompression(t *testing.T) {
	bb, err := NewBookBuilder(WithDeflate(9), WithNoCompression())
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, bb.compression)
	require.Equal(t, 0, bb.level)
}

func TestWithDeflate(t *testing.T) {
	bb, err := NewBookBuilder(WithDeflate(3))
	require.NoError(t, err)
	require.Equal(t, format.CompressionDeflate, bb.compression)
	require.Equal(t, 3, bb.level)
}

func TestWithLZ4(t *testing.T) {
	bb, err := NewBookBuilder(WithLZ4())
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, bb.compression)
	require.Equal(t, 0, bb.level)
}

func TestNewBookBuilder_LastOptionWins(t *testing.T) {
	bb, err := NewBookBuilder(WithLZ4(), WithDeflate(1), WithNoCompression(), WithDeflate(9))
	require.NoError(t, err)
	require.Equal(t, format.CompressionDeflate, bb.compression)
	require.Equal(t, 9, bb.level)
}

func TestNewBookBuilder_NoOptionsIsUsable(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)

	id := bb.NewPage("Only", []byte("content"))
	require.Equal(t, format.PageID(1), id)
}

func TestBookBuilder_SetParent_UnknownIDRejected(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)

	id := bb.NewPage("A", nil)
	require.ErrorIs(t, bb.SetParent(id+1, id), errs.ErrInvalidID)
}

func TestBookBuilder_AddPageMetadata_UnknownIDRejected(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)

	err = bb.AddPageMetadata(99, format.Author("nobody"))
	require.ErrorIs(t, err, errs.ErrInvalidID)
}

func TestBookBuilder_AddPageMetadata_AppendsAfterTitle(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)

	id := bb.NewPage("Title", nil)
	require.NoError(t, bb.AddPageMetadata(id, format.Author("A. Writer"), format.Language("en")))

	page := bb.pages[bb.byID[id]]
	require.Equal(t, []format.MetadataEntry{
		format.Title("Title"),
		format.Author("A. Writer"),
		format.Language("en"),
	}, page.Metadata)
}

func TestBookBuilder_NewPage_IDsAreMonotonic(t *testing.T) {
	bb, err := NewBookBuilder()
	require.NoError(t, err)

	first := bb.NewPage("First", nil)
	second := bb.NewPage("Second", nil)
	require.Equal(t, format.PageID(1), first)
	require.Equal(t, format.PageID(2), second)
}
