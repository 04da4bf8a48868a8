// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

import "math"

// Generate computes the delta instruction sequence that reconstructs the
// target half of data from its source half. data must hold sourceLen
// source bytes followed by targetLen target bytes, contiguously. Generate
// never retains data, table state, or window beyond the call; it performs
// exactly two allocations via opts.Allocator (or opts resolved to
// DefaultOptions) regardless of input size.
//
// Errors propagate either from opts.Allocator (scratch exhaustion) or as
// ErrInvalidBuffer / ErrSourceTargetOverflow / ErrInternal for
// programmer-error contract violations (offsets out of range,
// source_len+target_len overflow). Generate produces no partial
// instructions past the point of failure: on error, window has received
// only the instructions emitted before the failing step.
func Generate(window Window, data []byte, sourceLen, targetLen int, opts *Options) (*Stats, error) {
	if sourceLen < 0 || targetLen < 0 {
		return nil, ErrInvalidBuffer
	}
	if sourceLen > math.MaxInt-targetLen {
		return nil, ErrSourceTargetOverflow
	}

	total := sourceLen + targetLen
	if len(data) < total {
		return nil, ErrInvalidBuffer
	}
	if targetLen > 0 && window == nil {
		return nil, ErrInvalidBuffer
	}

	opts = opts.resolved()

	table, err := newHashTable(total, opts.Allocator)
	if err != nil {
		return nil, err
	}

	start := sourceLen

	// Pass 1: seed the table from the source half only. Scanning an empty
	// source range is a provable no-op, so it is skipped outright rather
	// than run for its own sake.
	if sourceLen > 0 {
		if err := scan(data, table, start, 0, start, false, nil); err != nil {
			return nil, err
		}
	}

	// Pass 2: scan the target half, emitting instructions.
	if err := scan(data, table, start, start, start+targetLen, true, window); err != nil {
		return nil, err
	}

	if !opts.CollectStats {
		return nil, nil
	}
	stats := table.stats()
	return &stats, nil
}

// noPendingInsert is the sentinel for "no insert run is currently
// accumulating".
const noPendingInsert = -1

// scan performs one pass over [from, to): the match search/extension
// loop, the pending-insert coalescing, and the emission policy. start is
// the fixed source/target boundary shared by both passes, used for the
// boundary clamp and the source-vs-target emission decision — it is not
// necessarily equal to from or to.
//
// When outputflag is false (pass 1), window is never dereferenced: every
// use of window is guarded by outputflag, so callers may pass nil.
func scan(data []byte, table *hashTable, start, from, to int, outputflag bool, window Window) error {
	here := from
	insertFrom := noPendingInsert

	for {
		// Termination: not enough bytes left for another key lookup.
		if to-here < keySize {
			insertStart := insertFrom
			if insertStart == noPendingInsert {
				insertStart = here
			}
			if outputflag && insertStart < to {
				window.EmitInsert(data[insertStart:to])
			}
			return nil
		}

		matchPos, matchLen := findBestMatch(data, table, start, here, to)

		if matchLen < keySize {
			// No usable match: index this position and grow the pending insert.
			if err := table.store(data, here); err != nil {
				return err
			}
			if insertFrom == noPendingInsert {
				insertFrom = here
			}
			here++
			continue
		}

		if outputflag {
			if insertFrom != noPendingInsert {
				window.EmitInsert(data[insertFrom:here])
				insertFrom = noPendingInsert
			}

			if matchPos < start {
				window.EmitCopySource(matchPos, matchLen)
			} else {
				window.EmitCopyTarget(matchPos-start, matchLen)
			}
		}

		here += matchLen

		// Index the last three positions of the match, so a lookup starting
		// just inside this match's tail can still find a continuation.
		if to-here >= keySize {
			for last := here - (keySize - 1); last < here; last++ {
				if err := table.store(data, last); err != nil {
					return err
				}
			}
		}
	}
}
