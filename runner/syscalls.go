// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package runner

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
	"github.com/feltforge/feltforge/state"
)

//go:generate mockgen -source syscalls.go -destination syscalls_mock.go -package runner

// SyscallHandler answers syscalls that are not intercepted as cheatcodes.
// The production implementation binds the layered state of the test case;
// tests substitute mocks.
type SyscallHandler interface {
	Call(call forge.Syscall) (forge.SyscallResult, error)
}

// BlockContext carries the block-level environment a contract observes unless
// a roll or warp cheat overrides it.
type BlockContext struct {
	Number    uint64
	Timestamp uint64
}

// Platform syscall selectors answered by the state-bound handler.
var (
	selectorStorageRead       = forge.SelectorFromName("storage_read")
	selectorStorageWrite      = forge.SelectorFromName("storage_write")
	selectorGetCallerAddress  = forge.SelectorFromName("get_caller_address")
	selectorGetBlockNumber    = forge.SelectorFromName("get_block_number")
	selectorGetBlockTimestamp = forge.SelectorFromName("get_block_timestamp")
	selectorCallContract      = forge.SelectorFromName("call_contract")
)

// stateHandler is the default syscall handler, answering platform services
// against the layered state of the test case and a fixed block context.
// Selectors it does not recognize resolve to an empty result, so programs
// probing for optional services keep running.
type stateHandler struct {
	state state.State
	block BlockContext
}

// NewStateHandler creates the default handler bound to the given state.
func NewStateHandler(st state.State, block BlockContext) SyscallHandler {
	return &stateHandler{state: st, block: block}
}

func (h *stateHandler) Call(call forge.Syscall) (forge.SyscallResult, error) {
	switch call.Selector {
	case selectorStorageRead:
		if len(call.Args) < 1 {
			return forge.SyscallResult{}, fmt.Errorf("storage_read: missing key argument")
		}
		value, err := h.state.ReadStorage(call.Contract, forge.Key(call.Args[0]))
		if err != nil {
			return forge.SyscallResult{}, err
		}
		return forge.SyscallResult{Values: []forge.Felt{value}}, nil

	case selectorStorageWrite:
		if len(call.Args) < 2 {
			return forge.SyscallResult{}, fmt.Errorf("storage_write: missing key or value argument")
		}
		h.state.WriteStorage(call.Contract, forge.Key(call.Args[0]), call.Args[1])
		return forge.SyscallResult{}, nil

	case selectorGetCallerAddress:
		return forge.SyscallResult{Values: []forge.Felt{forge.Felt(call.Caller)}}, nil

	case selectorGetBlockNumber:
		return forge.SyscallResult{Values: []forge.Felt{forge.NewFelt(h.block.Number)}}, nil

	case selectorGetBlockTimestamp:
		return forge.SyscallResult{Values: []forge.Felt{forge.NewFelt(h.block.Timestamp)}}, nil

	case selectorCallContract:
		// Without a nested VM instance behind the handler an inter-contract
		// call resolves to an empty return; the interceptor answers mocked
		// calls before they reach this point.
		return forge.SyscallResult{}, nil
	}
	return forge.SyscallResult{}, nil
}
