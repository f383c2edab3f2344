// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

// Package replayvm provides a deterministic reference implementation of the
// forge.VirtualMachine contract. It executes trace programs: compiled units
// whose instructions carry the full event stream of a run as hints. Each
// instruction costs its op size in steps. The package exists so the sandbox
// is exercisable end to end without an external interpreter.
package replayvm

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
)

func init() {
	err := forge.RegisterVirtualMachineFactory("replay", newVirtualMachine)
	if err != nil {
		panic(fmt.Sprintf("failed to register replay VM: %v", err))
	}
}

func newVirtualMachine(config any) (forge.VirtualMachine, error) {
	if config != nil {
		return nil, fmt.Errorf("replay VM accepts no configuration, got %v", config)
	}
	return New(), nil
}

// New creates a replay VM instance. Instances are stateless and may be shared
// across runs.
func New() forge.VirtualMachine {
	return &machine{}
}

type machine struct{}

// Run walks the program words from the entry offset, charging one step per
// word and raising the hints attached to each offset through the handler. A
// HintReturn without arguments returns the values of the last syscall
// response with a success tag prepended. Handler failures terminate the run
// as a *forge.RunError carrying the faulting offset.
func (m *machine) Run(ctx *forge.ExecutionContext, handler forge.HintHandler) (forge.RunResult, error) {
	if ctx.EntryOffset < 0 || ctx.EntryOffset > len(ctx.Words) {
		return forge.RunResult{}, fmt.Errorf("entry offset %d outside program of %d words", ctx.EntryOffset, len(ctx.Words))
	}

	var lastResponse []forge.Felt
	stepsSinceSuspension := uint64(0)

	for offset := ctx.EntryOffset; offset < len(ctx.Words); offset++ {
		ctx.Resources.Steps++
		stepsSinceSuspension++

		for _, hint := range ctx.Hints[offset] {
			switch hint.Kind {
			case forge.HintSyscall:
				ctx.Resources.Syscalls++
				res, err := handler.ExecuteSyscall(forge.Syscall{
					Selector:  hint.Selector,
					Contract:  ctx.Contract,
					Caller:    ctx.Caller,
					Args:      hint.Args,
					StepsUsed: stepsSinceSuspension,
				})
				if err != nil {
					return forge.RunResult{Resources: *ctx.Resources}, &forge.RunError{Offset: offset, Cause: err}
				}
				lastResponse = res.Values
				stepsSinceSuspension = 0

			case forge.HintReturn:
				values := hint.Args
				if len(values) == 0 {
					values = append([]forge.Felt{{}}, lastResponse...)
				}
				return forge.RunResult{
					Status:    forge.RunReturned,
					Values:    values,
					Resources: *ctx.Resources,
				}, nil

			case forge.HintPanic:
				return forge.RunResult{
					Status:    forge.RunPanicked,
					Values:    hint.Args,
					Resources: *ctx.Resources,
				}, nil

			default:
				if err := handler.ExecuteHint(hint); err != nil {
					return forge.RunResult{Resources: *ctx.Resources}, &forge.RunError{Offset: offset, Cause: err}
				}
			}
		}
	}

	// Falling off the end of the program is a clean return without data.
	return forge.RunResult{Status: forge.RunReturned, Resources: *ctx.Resources}, nil
}
