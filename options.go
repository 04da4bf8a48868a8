// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

// DefaultWindowSize is the historical process-wide default window size
// (svn_txdelta__window_size): it bounds the quadratic worst case of
// pathological inputs and keeps the hash table's working set in cache.
// Represented here as a constant consumed by Options, not as mutable
// global state.
const DefaultWindowSize = 102400

// keySize is the fixed vdelta hash key length in bytes (VD_KEY_SIZE).
const keySize = 4

// Allocator is the scratch allocator Generate consumes: a single Alloc
// call returning zero-initialized memory valid until the allocator is
// released. Generate never frees memory itself.
type Allocator interface {
	// Alloc returns a zero-initialized []byte of length n, or an error if
	// the allocator cannot satisfy the request. The core does not mask or
	// translate this error.
	Alloc(n int) ([]byte, error)
}

// Options configures one Generate call.
type Options struct {
	// WindowSize bounds the size of a single delta computation. It has no
	// effect on Generate's correctness — callers are responsible for
	// paging source/target into windows of at most this size before
	// calling Generate — but callers that want the bound enforced can
	// check it against sourceLen+targetLen themselves. Zero means
	// DefaultWindowSize.
	WindowSize int

	// Allocator is charged for the byte footprint of the hash table's
	// bucket and next arrays, and its error is returned unmasked. The
	// table's arrays are allocated with make, not from the buffers Alloc
	// returns. Nil means a SliceAllocator (plain make, cannot fail).
	Allocator Allocator

	// CollectStats requests that Generate populate and return a non-nil
	// *Stats describing hash-table load. Disabled by default: the original
	// vdelta.c keeps this instrumentation behind a compile-time #if 0
	// because it costs one extra pass over the bucket array.
	CollectStats bool
}

// DefaultOptions returns Options with DefaultWindowSize, a SliceAllocator,
// and stats collection disabled.
func DefaultOptions() *Options {
	return &Options{
		WindowSize: DefaultWindowSize,
		Allocator:  SliceAllocator{},
	}
}

// resolved returns opts if non-nil, else DefaultOptions(); fills in any
// zero-valued fields of a caller-supplied Options with their defaults.
func (o *Options) resolved() *Options {
	if o == nil {
		return DefaultOptions()
	}

	out := *o
	if out.WindowSize == 0 {
		out.WindowSize = DefaultWindowSize
	}
	if out.Allocator == nil {
		out.Allocator = SliceAllocator{}
	}

	return &out
}

// SliceAllocator is the default Allocator: it calls make and never fails.
type SliceAllocator struct{}

// Alloc implements Allocator.
func (SliceAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Stats reports hash-table load after a Generate call, for manual tuning.
// This is the live equivalent of the #if 0-guarded instrumentation block
// at the end of svn_txdelta__vdelta in the original C source.
type Stats struct {
	// BucketCount is the number of buckets the hash table was created with.
	BucketCount int
	// EmptyBuckets is the number of buckets with no chain at all.
	EmptyBuckets int
	// Collisions is the number of slots in a chain beyond its head (i.e.
	// total chain length minus one per non-empty bucket).
	Collisions int
}
