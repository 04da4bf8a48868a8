// SPDX-License-Identifier: MIT
// Source: github.com/txdelta/vdelta

// Command vdelta is a small demonstration CLI around the vdelta package:
// it computes the delta between two files and prints the resulting
// instruction stream, optionally round-tripping it through the
// reference applier to confirm it reconstructs the target exactly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/txdelta/vdelta"
	"github.com/txdelta/vdelta/internal/applier"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vdelta:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("vdelta", pflag.ContinueOnError)
	apply := flags.Bool("apply", false, "round-trip the generated instructions through the reference applier and verify they reproduce target")
	window := flags.Int("window", vdelta.DefaultWindowSize, "advisory window size bound, in bytes")
	stats := flags.Bool("stats", false, "print hash table load statistics after generation")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: vdelta [flags] <source-file> <target-file>")
		flags.PrintDefaults()
		return fmt.Errorf("expected exactly 2 positional arguments, got %d", flags.NArg())
	}

	source, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	target, err := os.ReadFile(flags.Arg(1))
	if err != nil {
		return fmt.Errorf("reading target: %w", err)
	}

	data := make([]byte, 0, len(source)+len(target))
	data = append(data, source...)
	data = append(data, target...)

	win := vdelta.NewInstructionWindow()
	defer win.Release()

	opts := vdelta.DefaultOptions()
	opts.WindowSize = *window
	opts.CollectStats = *stats

	result, err := vdelta.Generate(win, data, len(source), len(target), opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	instructions := win.Instructions()
	for _, instr := range instructions {
		switch instr.Op {
		case vdelta.OpInsert:
			fmt.Printf("%-16s len=%d\n", instr.Op, instr.Length)
		default:
			fmt.Printf("%-16s offset=%d len=%d\n", instr.Op, instr.Offset, instr.Length)
		}
	}

	if *stats && result != nil {
		fmt.Fprintf(os.Stderr, "buckets=%d empty=%d collisions=%d\n", result.BucketCount, result.EmptyBuckets, result.Collisions)
	}

	if !*apply {
		return nil
	}

	rebuilt, err := applier.Apply(source, instructions, win.InsertBytes)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	if string(rebuilt) != string(target) {
		return fmt.Errorf("apply produced %d bytes, target is %d bytes: mismatch", len(rebuilt), len(target))
	}

	fmt.Fprintln(os.Stderr, "apply: reconstructed target matches exactly")
	return nil
}
