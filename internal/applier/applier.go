// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

// Package applier is a minimal reference applier for vdelta instruction
// sequences. It is internal on purpose: the editor/stream framework that
// drives deltas through a repository edit, and the byte-level wire
// encoder, are external collaborators that belong outside the core, and
// this applier is not a production-grade substitute for either. It
// exists only so vdelta's own tests and its CLI demo can reconstruct a
// target and check it against the real one — it is not a supported
// public API, and does not serialize to any wire format.
package applier

import (
	"errors"

	"github.com/txdelta/vdelta"
)

// ErrOutOfRange is returned when an instruction references bytes outside
// the source, or a COPY_FROM_TARGET instruction is not strictly backward
// within the already-reconstructed prefix (target self-reference at or
// beyond the current position is never valid).
var ErrOutOfRange = errors.New("applier: instruction references out-of-range bytes")

// ErrUnknownOp is returned for an Instruction whose Op is none of
// vdelta's three known kinds.
var ErrUnknownOp = errors.New("applier: unknown instruction op")

// Apply reconstructs the target byte string described by instructions,
// given the original source bytes. literalBytes must return the literal
// payload for an OpInsert instruction (e.g. InstructionWindow.InsertBytes).
func Apply(source []byte, instructions []vdelta.Instruction, literalBytes func(vdelta.Instruction) []byte) ([]byte, error) {
	var out []byte

	for _, instr := range instructions {
		switch instr.Op {
		case vdelta.OpInsert:
			out = append(out, literalBytes(instr)...)

		case vdelta.OpCopySource:
			if instr.Offset < 0 || instr.Length < 0 || instr.Offset+instr.Length > len(source) {
				return nil, ErrOutOfRange
			}
			out = append(out, source[instr.Offset:instr.Offset+instr.Length]...)

		case vdelta.OpCopyTarget:
			if instr.Offset < 0 || instr.Offset > len(out) {
				return nil, ErrOutOfRange
			}
			var err error
			out, err = appendBackRef(out, instr.Offset, instr.Length)
			if err != nil {
				return nil, err
			}

		default:
			return nil, ErrUnknownOp
		}
	}

	return out, nil
}

// appendBackRef appends length bytes read starting at offset within out
// (the already-reconstructed target prefix) to out itself. When
// offset+length would reach past the current end of out — a
// self-overlapping copy, the only way a run of length >4 can be encoded
// as a 4-byte-minimum copy — it grows the match by repeatedly doubling
// from the region already written, the same technique as copy.go's
// copyBackRef, generalized from one ring-relative address space to a
// plain growing slice.
func appendBackRef(out []byte, offset, length int) ([]byte, error) {
	if length < 0 {
		return nil, ErrOutOfRange
	}

	dist := len(out) - offset
	if dist <= 0 {
		return nil, ErrOutOfRange
	}

	if dist >= length {
		return append(out, out[offset:offset+length]...), nil
	}

	out = append(out, out[offset:offset+dist]...)
	copied := dist
	for copied < length {
		n := copied
		if remaining := length - copied; n > remaining {
			n = remaining
		}
		out = append(out, out[offset:offset+n]...)
		copied += n
	}

	return out, nil
}
