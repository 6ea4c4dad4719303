package kvlist

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/bookblob/errs"
	"github.com/stretchr/testify/require"
)

func TestWrite_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	require.Equal(t, []byte{0}, buf.Bytes())
}

func TestWrite_RejectsTerminatorTag(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{{Tag: 0, Payload: []byte("x")}})
	require.ErrorIs(t, err, errs.ErrInvalidByteTag)
}

func TestWrite_MultipleEntries(t *testing.T) {
	var buf bytes.Buffer
	entries := []Entry{
		{Tag: 1, Payload: []byte("hello")},
		{Tag: 2, Payload: nil},
		{Tag: 6, Payload: []byte("x")},
	}
	require.NoError(t, Write(&buf, entries))

	expected := []byte{
		1, 5, 'h', 'e', 'l', 'l', 'o',
		2, 0,
		6, 1, 'x',
		0,
	}
	require.Equal(t, expected, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Tag: 1, Payload: []byte("Title Here")},
		{Tag: 2, Payload: []byte("An Author")},
		{Tag: 100, Payload: []byte("value")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	r := NewReader(&buf, int64(buf.Len()), []byte{1, 2, 3, 4, 5, 6, 100})
	got, err := ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

func TestReader_UnknownTag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Entry{{Tag: 9, Payload: []byte("x")}}))

	r := NewReader(&buf, int64(buf.Len()), []byte{1, 2})
	_, ok, err := r.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrInvalidByteTag)

	// Poisoned: further calls return the terminal state without error.
	_, ok, err = r.Next()
	require.False(t, ok)
	require.NoError(t, err)
}

func TestReader_LengthExceedsRemaining(t *testing.T) {
	// Hand-crafted: tag 1, varint length 50, but only "x" follows.
	raw := []byte{1, 50, 'x'}
	r := NewReader(bytes.NewReader(raw), int64(len(raw)), []byte{1})

	_, ok, err := r.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}

func TestReader_TruncatedStream(t *testing.T) {
	// The payload declares 5 bytes and fits the stated 16-byte input, but
	// the stream itself ends after 2 payload bytes.
	raw := []byte{1, 5, 'h', 'i'}
	r := NewReader(bytes.NewReader(raw), 16, []byte{1})

	_, ok, err := r.Next()
	require.False(t, ok)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReader_PoisonedAfterTerminator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Entry{{Tag: 1, Payload: []byte("a")}}))

	r := NewReader(&buf, int64(buf.Len()), []byte{1})
	_, ok, err := r.Next()
	require.True(t, ok)
	require.NoError(t, err)

	_, ok, err = r.Next()
	require.False(t, ok)
	require.NoError(t, err)
}
