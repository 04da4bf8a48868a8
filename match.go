// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

// findBestMatch performs the iterative three-byte extension search: the
// subtlest part of the algorithm. For the scan position here (within
// [start, end) on pass 2, or within [0, start) on pass 1), it returns the
// longest match found and the buffer offset it starts at, or matchLen < 4
// if no usable match exists.
//
// The search re-probes after every improvement: once a candidate of
// length L is found, the next lookup key is the last three matched bytes
// plus one unmatched byte (here+L-3), not simply "the next four bytes" —
// this lets the search walk a hash chain whose key didn't match at here
// but does match further into the run, which is exactly how vdelta
// recovers matches after a near-miss instead of giving up at length 4.
func findBestMatch(data []byte, table *hashTable, start, here, end int) (matchPos, matchLen int) {
	matchPos = -1
	key := here

	for {
		progress := false

		table.walk(data, key, func(slotOffset int) bool {
			if tooCloseToStart(slotOffset, key, here) {
				return false
			}

			candidate := slotOffset - (key - here)
			length := longestPrefixMatch(data, candidate, here, end)
			length = clampToBoundary(candidate, length, start)

			if length >= keySize && length > matchLen {
				matchPos = candidate
				matchLen = length
				progress = true
			}

			return false // always walk the full chain: a later (older) slot may still win
		})

		if !progress {
			return matchPos, matchLen
		}

		key = here + matchLen - (keySize - 1)
		if end-key < keySize {
			return matchPos, matchLen
		}
	}
}

// tooCloseToStart reports whether slotOffset, aligned so the lookup key
// sits at the same relative position within the candidate as it does
// within the running match, would place the candidate before the start
// of the buffer.
func tooCloseToStart(slotOffset, key, here int) bool {
	return slotOffset < key-here
}

// longestPrefixMatch scans forward while data[candidate+i] == data[from+i]
// and from+i < end, returning the number of matching bytes. Every read
// stays in bounds: from+i < end is checked, candidate >= 0 is guaranteed
// by the caller's too-close-to-start guard, and candidate < from holds
// because every slot in the table was stored at an offset before the
// current scan position.
func longestPrefixMatch(data []byte, candidate, from, end int) int {
	n := 0
	for from+n < end && data[candidate+n] == data[from+n] {
		n++
	}
	return n
}

// clampToBoundary shortens length so the match [candidate, candidate+length)
// never crosses start: a single emitted instruction must not cross the
// source/target boundary, since the wire format distinguishes the two
// copy kinds.
func clampToBoundary(candidate, length, start int) int {
	if candidate < start && candidate+length > start {
		return start - candidate
	}
	return length
}
