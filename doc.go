// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

/*
Package vdelta implements the vdelta binary delta algorithm (Hunt, Vo and
Tichy), adapted to a split source/target window as used by Subversion's
txdelta pipeline.

Given a source byte string and a target byte string, Generate produces a
sequence of Insert / CopySource / CopyTarget instructions that, applied to
the source, reconstruct the target exactly. The algorithm is greedy and
runs in expected linear time: it trades optimal compression for a single
forward pass with no backtracking.

# Generate

Data must be a single contiguous buffer holding the source bytes followed
by the target bytes:

	data := append(append([]byte{}, source...), target...)
	win := vdelta.NewInstructionWindow()
	_, err := vdelta.Generate(win, data, len(source), len(target), nil)
	instructions := win.Instructions()

Options may be nil (uses DefaultOptions: a 102400-byte default window and
a plain slice allocator). Instructions are emitted in strictly increasing
target order; no instruction crosses the source/target boundary.

This package does not serialize instructions to any wire format (e.g.
vcdiff) and does not itself apply a delta back to a target — those are
external collaborators by design (see internal/applier for a minimal
reference applier used by this module's own tests and its CLI).
*/
package vdelta
