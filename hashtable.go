// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

// noNext marks the end of a hash-bucket chain (or an as-yet-empty bucket
// head). The chain is a parallel next-index array with a sentinel for
// "end of chain", rather than a linked list of owning nodes.
const noNext = -1

// hashTable is the vdelta multimap over 4-byte keys. The slot at array
// index i represents the key starting at buffer offset i;
// that identity is load-bearing — given a slot you recover its offset for
// free, with no reverse lookup.
//
// Collisions (both hash collisions between distinct keys, and the same
// key recurring at different offsets) are preserved as chains: the
// algorithm must see every historical occurrence of a key, not just the
// most recent, for the greedy extension in match.go to find the true
// longest match.
type hashTable struct {
	numBuckets int
	buckets    []int32 // head slot index per bucket, or noNext
	next       []int32 // next[i] is the next slot after slot i in its chain, or noNext
	linked     []bool  // linked[i] is true once slot i has been stored
}

// newHashTable allocates a hash table sized for numSlots keys (the sum of
// source and target length). alloc is charged for the byte footprint of
// the bucket and next arrays and its error is returned unmasked; the
// table's arrays themselves are allocated with make, and the buffers
// alloc returns are not used as their backing store. numBuckets = (numSlots/3)|1: roughly a third of the slot count, forced
// odd — empirically well loaded for vdelta's insertion pattern.
func newHashTable(numSlots int, alloc Allocator) (*hashTable, error) {
	if numSlots < 0 {
		return nil, ErrInvalidBuffer
	}

	numBuckets := (numSlots / 3) | 1

	// Charge the allocator for the byte footprint of the buckets and next
	// arrays before building them; scratch exhaustion surfaces through the
	// allocator's own error channel, unmasked. The returned buffers are
	// discarded.
	if _, err := alloc.Alloc(numBuckets * 4); err != nil {
		return nil, err
	}
	if _, err := alloc.Alloc(numSlots * 4); err != nil {
		return nil, err
	}

	t := &hashTable{
		numBuckets: numBuckets,
		buckets:    make([]int32, numBuckets),
		next:       make([]int32, numSlots),
		linked:     make([]bool, numSlots),
	}

	for i := range t.buckets {
		t.buckets[i] = noNext
	}
	for i := range t.next {
		t.next[i] = noNext
	}

	return t, nil
}

// bucketOf computes the 2-universal multiplicative hash of the 4-byte key
// at data[offset:offset+4] and reduces it to a bucket index. h = h*127+b
// per byte; 127 is the original vdelta.c constant and must stay fixed so
// that a given (buffer, lengths) pair produces a deterministic,
// reproducible instruction stream for a given (buffer, lengths) pair.
func (t *hashTable) bucketOf(data []byte, offset int) int {
	var h uint32
	for i := 0; i < keySize; i++ {
		h = h*127 + uint32(data[offset+i])
	}
	return int(h % uint32(t.numBuckets))
}

// store links the slot at keyOffset onto the head of its bucket's chain.
// It is a programmer error to store the same keyOffset twice: a slot is
// either unlinked, or appears in exactly one bucket chain.
func (t *hashTable) store(data []byte, keyOffset int) error {
	if t.linked[keyOffset] {
		return ErrInternal
	}

	bucket := t.bucketOf(data, keyOffset)
	t.next[keyOffset] = t.buckets[bucket]
	t.buckets[bucket] = int32(keyOffset)
	t.linked[keyOffset] = true
	return nil
}

// walk calls visit for every slot offset in the bucket chain for the
// 4-byte key at data[offset:offset+4], newest first (LIFO insertion
// order). The caller must still verify a candidate by byte comparison —
// walk only narrows by hash bucket, which may itself collide between
// distinct keys.
func (t *hashTable) walk(data []byte, offset int, visit func(slotOffset int) (stop bool)) {
	bucket := t.bucketOf(data, offset)
	for slot := t.buckets[bucket]; slot != noNext; slot = t.next[slot] {
		if visit(int(slot)) {
			return
		}
	}
}

// stats computes hash-table load statistics (see Stats) by walking every
// bucket once. This is the live equivalent of the #if 0-guarded block at
// the end of svn_txdelta__vdelta in the original C source.
func (t *hashTable) stats() Stats {
	s := Stats{BucketCount: t.numBuckets}

	for _, head := range t.buckets {
		if head == noNext {
			s.EmptyBuckets++
			continue
		}

		for slot := t.next[head]; slot != noNext; slot = t.next[slot] {
			s.Collisions++
		}
	}

	return s
}
