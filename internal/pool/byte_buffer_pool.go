// Package pool provides a reusable byte buffer pool, used by the page store
// to accumulate the shared per-book metadata staging buffer (see
// internal/pagestore) without a fresh allocation per dump.
package pool

import "sync"

// Default and max-retained sizes for the metadata staging pool. Most books
// have a modest amount of per-page metadata; the threshold exists only to
// avoid pinning an oversized buffer in the pool after one very large book.
const (
	MetadataBufferDefaultSize = 4 * 1024
	MetadataBufferMaxRetained = 1024 * 1024
)

// ByteBuffer is a growable byte slice wrapper designed for pool reuse.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the buffer's current contents.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer while keeping its backing array for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends data to the buffer, growing it as needed. It always
// succeeds, satisfying io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)

	return len(data), nil
}

// ByteBufferPool pools ByteBuffers behind a sync.Pool, discarding buffers
// that grew past maxThreshold instead of returning them to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose fresh buffers start at defaultSize
// and which refuses to retain buffers larger than maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating one if empty.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)

	return bb
}

// Put returns a ByteBuffer to the pool for reuse, unless it grew beyond the
// pool's retention threshold.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var metadataStagingPool = NewByteBufferPool(MetadataBufferDefaultSize, MetadataBufferMaxRetained)

// GetMetadataBuffer retrieves a ByteBuffer from the shared metadata staging
// pool, used while accumulating a book's page-metadata block before it is
// flushed to the data-block writer.
func GetMetadataBuffer() *ByteBuffer {
	return metadataStagingPool.Get()
}

// PutMetadataBuffer returns a ByteBuffer to the shared metadata staging
// pool.
func PutMetadataBuffer(bb *ByteBuffer) {
	metadataStagingPool.Put(bb)
}
