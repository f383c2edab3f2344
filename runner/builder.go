// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package runner

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
)

// Options parameterize the construction of one execution context.
type Options struct {
	// Contract is the address the test body executes as. Derived deployment
	// addresses use it as the deployer.
	Contract forge.Address

	// Caller is the caller the test body observes unless a prank overrides
	// it.
	Caller forge.Address

	// Calldata is passed to the entry point through the calldata segment.
	Calldata []forge.Felt
}

// Build assembles the execution context for one run of the named entry point.
// It resolves the entry offset, validates the function's builtins against the
// program's declared set, serializes the instruction stream, derives the
// offset-keyed hint table, and allocates the initial memory segments. Build
// failures mean the VM is never invoked.
func Build(unit *forge.CompiledUnit, function string, opts Options) (*forge.ExecutionContext, error) {
	f, err := unit.Function(function)
	if err != nil {
		return nil, err
	}
	for _, builtin := range f.Builtins {
		if !unit.HasBuiltin(builtin) {
			return nil, fmt.Errorf("%w: function %q requires %v", forge.ErrIncompatibleBuiltins, function, builtin)
		}
	}

	words := unit.AssembleWords()
	programData := make([]forge.Felt, len(words))
	for i, w := range words {
		programData[i] = forge.NewFelt(w)
	}

	return &forge.ExecutionContext{
		Words:       words,
		Hints:       unit.HintTable(),
		EntryOffset: f.EntryOffset,
		Builtins:    f.Builtins,
		Segments: []forge.Segment{
			{ID: forge.SegmentProgram, Data: programData},
			{ID: forge.SegmentExecution, Data: []forge.Felt{forge.NewFelt(uint64(f.EntryOffset))}},
			{ID: forge.SegmentCalldata, Data: opts.Calldata},
			{ID: forge.SegmentSyscall},
		},
		Contract:  opts.Contract,
		Caller:    opts.Caller,
		Calldata:  opts.Calldata,
		Resources: &forge.ResourceUsage{},
	}, nil
}
