// Package compress provides the block-level compression codecs: none,
// DEFLATE, and LZ4 frame.
//
// # Overview
//
// A data block's leading tag byte records which codec produced its
// payload (format.BlockType); decoding looks the codec up from that tag
// alone, so any block can be read without knowing how the book was
// configured when it was written.
//
//	codec, err := compress.NewCodec(format.CompressionDeflate, 9)
//	compressed, err := codec.Compress(payload)
//
//	decoder, err := compress.NewDecoder(format.BlockDeflate)
//	original, err := decoder.Decompress(compressed)
//
// # Algorithm selection
//
//   - None: zero overhead, use when payloads are already compressed or
//     incompressible.
//   - Deflate: tunable level 0-9, good ratio on text-heavy metadata and
//     page content.
//   - LZ4: fast decompression, frame-format output compatible with the
//     standard lz4 tool.
package compress
