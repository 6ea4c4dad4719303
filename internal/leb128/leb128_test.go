package leb128

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/bookblob/errs"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<64 - 1}

	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteUvarint(&buf, v))
		require.Equal(t, Size(v), buf.Len())

		got, err := ReadUvarint(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestReadUvarint_ShortReadIsUnexpectedEOF(t *testing.T) {
	// A continuation byte with nothing following.
	_, err := ReadUvarint(bytes.NewReader([]byte{0x80}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadUvarint_EmptyIsEOF(t *testing.T) {
	_, err := ReadUvarint(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadUvarintFromBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUvarint(&buf, 300))
	buf.WriteByte(0xFF) // trailing data must not be consumed

	v, n, err := ReadUvarintFromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)
	require.Equal(t, 2, n)
}

func TestReadUvarintFromBytes_Truncated(t *testing.T) {
	_, _, err := ReadUvarintFromBytes([]byte{0x80})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadUvarintFromBytes_Overflow(t *testing.T) {
	// 10 bytes of continuation, final byte too large for a uint64.
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02}
	_, _, err := ReadUvarintFromBytes(data)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}
