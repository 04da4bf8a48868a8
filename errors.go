// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

package vdelta

import "errors"

// Sentinel errors for delta generation.
var (
	// ErrInvalidBuffer is returned when data is too short for sourceLen+targetLen,
	// or sourceLen/targetLen is negative.
	ErrInvalidBuffer = errors.New("vdelta: invalid buffer for given source/target length")

	// ErrSourceTargetOverflow is returned when sourceLen+targetLen overflows an int.
	ErrSourceTargetOverflow = errors.New("vdelta: source_len + target_len overflows")

	// ErrInternal is returned when the generator hits an internal invariant violation
	// (programmer error per the core's contract, not a data-dependent failure).
	// Callers can use errors.Is(err, vdelta.ErrInternal).
	ErrInternal = errors.New("vdelta: internal generator error")
)
