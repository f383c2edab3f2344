// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

// Package runner assembles execution contexts for test cases, intercepts
// cheatcode hints during their runs, and maps terminal VM signals to test
// outcomes. It owns no interpretation: instruction-level execution is behind
// the forge.VirtualMachine contract.
package runner

import (
	"github.com/feltforge/feltforge/cheatnet"
	"github.com/feltforge/feltforge/forge"
	"github.com/feltforge/feltforge/state"
)

// Execute runs one test case end to end: context construction, the VM run
// with cheatcode interception, and result assembly. The state and cheat
// registry must be exclusive to this case.
func Execute(vm forge.VirtualMachine, unit *forge.CompiledUnit, function string, st state.State, cheats *cheatnet.State, block BlockContext, opts Options) Outcome {
	ctx, err := Build(unit, function, opts)
	if err != nil {
		return Errored(err)
	}
	interceptor := NewInterceptor(st, cheats, NewStateHandler(st, block))
	result, err := vm.Run(ctx, interceptor)
	return Assemble(result, *ctx.Resources, err)
}
