// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

import "github.com/valyala/bytebufferpool"

// Op identifies the kind of a delta Instruction: the three instruction
// kinds are modeled as a tagged sum type rather than a class hierarchy,
// and Op is that tag.
type Op int

const (
	// OpInsert carries literal bytes inline.
	OpInsert Op = iota
	// OpCopySource copies Length bytes starting at Offset within the
	// source half.
	OpCopySource
	// OpCopyTarget copies Length bytes starting at Offset within the
	// target half already reconstructed.
	OpCopyTarget
)

// String implements fmt.Stringer for readable test failures and CLI output.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "INSERT"
	case OpCopySource:
		return "COPY_FROM_SOURCE"
	case OpCopyTarget:
		return "COPY_FROM_TARGET"
	default:
		return "UNKNOWN"
	}
}

// Instruction is one unit of delta output. For OpInsert, Offset indexes
// into the InstructionWindow's own literal-byte store (see InsertBytes),
// not into the source or target buffer; Length is the literal run
// length. For OpCopySource/OpCopyTarget, Offset/Length are the copy's
// starting offset and length within its respective half.
type Instruction struct {
	Op     Op
	Offset int
	Length int
}

// Window is the instruction sink the core requires from its collaborator.
// It is a small capability set, not a class hierarchy: emit the three
// instruction kinds the generator produces, in the order produced.
// The core makes no assumption about how a Window serializes or stores
// them; it only guarantees emission order and the minimum copy length.
type Window interface {
	// EmitInsert appends an insert instruction carrying len(bytes) literal
	// bytes. The generator never calls this with an empty slice.
	EmitInsert(bytes []byte)
	// EmitCopySource appends a source-half copy of length bytes starting
	// at offset.
	EmitCopySource(offset, length int)
	// EmitCopyTarget appends a target-half copy of length bytes starting
	// at offset.
	EmitCopyTarget(offset, length int)
}

// InstructionWindow is the default in-memory Window: it records every
// emitted instruction as an Instruction value. Insert payloads are copied
// into one pooled, growing buffer (rather than one make([]byte, n) per
// Insert) so a delta over many small literal runs does the usual one
// copy per run, not one allocation per run.
type InstructionWindow struct {
	instructions []Instruction
	literals     *bytebufferpool.ByteBuffer
}

// NewInstructionWindow returns a ready-to-use InstructionWindow. Call
// Release when done with it to return its pooled literal buffer.
func NewInstructionWindow() *InstructionWindow {
	return &InstructionWindow{
		literals: bytebufferpool.Get(),
	}
}

// EmitInsert implements Window.
func (w *InstructionWindow) EmitInsert(bytes []byte) {
	offset := w.literals.Len()
	_, _ = w.literals.Write(bytes) // bytebufferpool.ByteBuffer.Write never errors
	w.instructions = append(w.instructions, Instruction{
		Op:     OpInsert,
		Offset: offset,
		Length: len(bytes),
	})
}

// EmitCopySource implements Window.
func (w *InstructionWindow) EmitCopySource(offset, length int) {
	w.instructions = append(w.instructions, Instruction{Op: OpCopySource, Offset: offset, Length: length})
}

// EmitCopyTarget implements Window.
func (w *InstructionWindow) EmitCopyTarget(offset, length int) {
	w.instructions = append(w.instructions, Instruction{Op: OpCopyTarget, Offset: offset, Length: length})
}

// Instructions returns the recorded instruction sequence, in emission
// order. The returned slice aliases internal state and must not be
// mutated.
func (w *InstructionWindow) Instructions() []Instruction {
	return w.instructions
}

// InsertBytes returns the literal payload for an OpInsert instruction.
// The caller must pass an Instruction this Window actually emitted.
func (w *InstructionWindow) InsertBytes(instr Instruction) []byte {
	return w.literals.B[instr.Offset : instr.Offset+instr.Length]
}

// Release returns the pooled literal buffer. After Release, InsertBytes
// results are no longer valid. Calling Release again is a no-op.
func (w *InstructionWindow) Release() {
	if w.literals == nil {
		return
	}
	bytebufferpool.Put(w.literals)
	w.literals = nil
}
