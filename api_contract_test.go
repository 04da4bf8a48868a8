// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestContract_EmptySourceAndTarget covers the invariant that an empty
// target emits nothing, combined with an empty source.
func TestContract_EmptySourceAndTarget(t *testing.T) {
	win := NewInstructionWindow()
	defer win.Release()

	stats, err := Generate(win, nil, 0, 0, nil)
	require.NoError(t, err)
	require.Nil(t, stats)
	require.Empty(t, win.Instructions())
}

// TestContract_EmptyTarget covers the same invariant directly: nonempty
// source, empty target, no instructions regardless.
func TestContract_EmptyTarget(t *testing.T) {
	win := NewInstructionWindow()
	defer win.Release()

	source := []byte("some reasonably long source string, just in case")
	_, err := Generate(win, source, len(source), 0, nil)
	require.NoError(t, err)
	require.Empty(t, win.Instructions())
}

// TestContract_IdentityDelta covers the identity-delta case: source ==
// target collapses to (up to a short leading insert) a single source
// copy.
func TestContract_IdentityDelta(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog")
	data := append(append([]byte{}, text...), text...)

	win := NewInstructionWindow()
	defer win.Release()

	_, err := Generate(win, data, len(text), len(text), nil)
	require.NoError(t, err)

	instrs := win.Instructions()
	require.NotEmpty(t, instrs)

	totalLen := 0
	leadingInsertLen := 0
	for i, instr := range instrs {
		totalLen += instr.Length
		if i == 0 && instr.Op == OpInsert {
			leadingInsertLen = instr.Length
		} else {
			require.Equal(t, OpCopySource, instr.Op, "identity delta must not self-reference the target")
		}
	}
	require.LessOrEqual(t, leadingInsertLen, keySize-1)
	require.Equal(t, len(text), totalLen)
}

// TestContract_MinimumCopyLength forces a 3-byte repeat (one below the
// key size) and confirms it never becomes a copy instruction.
func TestContract_MinimumCopyLength(t *testing.T) {
	source := []byte("xyz")
	target := []byte("12xyz34")
	data := append(append([]byte{}, source...), target...)

	win := NewInstructionWindow()
	defer win.Release()

	_, err := Generate(win, data, len(source), len(target), nil)
	require.NoError(t, err)

	for _, instr := range win.Instructions() {
		if instr.Op != OpInsert {
			require.GreaterOrEqual(t, instr.Length, keySize)
		}
	}
}

// TestContract_DeterminismAcrossRepeatedRuns confirms the emitted
// instruction sequence is stable across repeated runs over identical
// input.
func TestContract_DeterminismAcrossRepeatedRuns(t *testing.T) {
	source := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	target := []byte("9876543210zyxwvutsrqponmlkjihgfedcba abcdefgh")
	data := append(append([]byte{}, source...), target...)

	var runs [][]Instruction
	for i := 0; i < 5; i++ {
		win := NewInstructionWindow()
		_, err := Generate(win, data, len(source), len(target), nil)
		require.NoError(t, err)
		runs = append(runs, append([]Instruction{}, win.Instructions()...))
		win.Release()
	}

	for i := 1; i < len(runs); i++ {
		require.Equal(t, runs[0], runs[i], "run %d diverged from run 0", i)
	}
}

// TestEmptySource_NoSourcePass_APILevel exercises the empty-source case
// through the public Generate entry point: an empty source must never
// yield a COPY_FROM_SOURCE, and Generate must succeed without ever
// touching the (zero-length) source half.
func TestEmptySource_NoSourcePass_APILevel(t *testing.T) {
	target := []byte("abcabcabcabc")

	win := NewInstructionWindow()
	defer win.Release()

	_, err := Generate(win, target, 0, len(target), nil)
	require.NoError(t, err)

	for _, instr := range win.Instructions() {
		require.NotEqual(t, OpCopySource, instr.Op)
	}
}

// TestContract_CustomAllocatorErrorPropagates covers the scratch
// exhaustion error class: Generate must return the allocator's own error
// unmasked.
func TestContract_CustomAllocatorErrorPropagates(t *testing.T) {
	opts := &Options{Allocator: failingAllocator{}}
	_, err := Generate(NewInstructionWindow(), []byte("abcdefgh"), 4, 4, opts)
	require.Error(t, err)
	require.Equal(t, "scratch exhausted", err.Error())
}
