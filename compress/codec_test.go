package compress

import (
	"testing"

	"github.com/arloliu/bookblob/format"
	"github.com/stretchr/testify/require"
)

func TestNewCodec_RoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")

	cases := []struct {
		name string
		ct   format.CompressionType
		bt   format.BlockType
	}{
		{"none", format.CompressionNone, format.BlockUncompressed},
		{"deflate", format.CompressionDeflate, format.BlockDeflate},
		{"lz4", format.CompressionLZ4, format.BlockLZ4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := NewCodec(tc.ct, 9)
			require.NoError(t, err)
			require.Equal(t, tc.bt, codec.BlockType())

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decoder, err := NewDecoder(tc.bt)
			require.NoError(t, err)

			out, err := decoder.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, out)
		})
	}
}

func TestNewCodec_InvalidType(t *testing.T) {
	_, err := NewCodec(format.CompressionType(99), 0)
	require.Error(t, err)
}

func TestNewDecoder_InvalidBlockType(t *testing.T) {
	_, err := NewDecoder(format.BlockType(99))
	require.Error(t, err)
}

func TestNoOpCodec_DoesNotCopy(t *testing.T) {
	data := []byte("abc")
	codec := NewNoOpCodec()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)
	require.Same(t, &data[0], &compressed[0])

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.Same(t, &data[0], &out[0])
}

func TestDeflateCodec_OutOfRangeLevelFallsBack(t *testing.T) {
	codec := NewDeflateCodec(-5)
	require.Equal(t, DefaultDeflateLevel, codec.Level())

	codec = NewDeflateCodec(99)
	require.Equal(t, DefaultDeflateLevel, codec.Level())

	codec = NewDeflateCodec(0)
	require.Equal(t, 0, codec.Level())
}

func TestDeflateCodec_EmptyInput(t *testing.T) {
	codec := NewDeflateCodec(6)

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLZ4Codec_EmptyInput(t *testing.T) {
	codec := NewLZ4Codec()

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)

	out, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, out)
}
