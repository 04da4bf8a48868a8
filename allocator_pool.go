// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

import "sync"

// scratchBufPool recycles scratch byte buffers across Generate calls
// instead of letting each call pay for a fresh make().
var scratchBufPool = sync.Pool{
	New: func() any {
		return new([]byte)
	},
}

// PooledAllocator is an Allocator that recycles its backing byte slices
// through a sync.Pool instead of calling make on every Generate call. It
// is safe for reuse across sequential Generate calls but is not safe for
// concurrent use: its record of handed-out buffers is not synchronized.
type PooledAllocator struct {
	bufs [][]byte // buffers handed out by this allocator instance, for Release
}

// Alloc implements Allocator. The returned slice is zero-initialized and
// sized exactly n.
func (p *PooledAllocator) Alloc(n int) ([]byte, error) {
	bufPtr := scratchBufPool.Get().(*[]byte)
	buf := *bufPtr
	if cap(buf) < n {
		buf = make([]byte, n)
	} else {
		buf = buf[:n]
		clear(buf)
	}

	p.bufs = append(p.bufs, buf)
	return buf, nil
}

// Release returns every buffer handed out by this allocator back to the
// pool. Call it once Generate has returned and the caller is done reading
// its result.
func (p *PooledAllocator) Release() {
	for _, buf := range p.bufs {
		b := buf
		scratchBufPool.Put(&b)
	}
	p.bufs = nil
}
