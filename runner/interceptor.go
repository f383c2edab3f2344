// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package runner

import (
	"fmt"

	"github.com/feltforge/feltforge/cheatnet"
	"github.com/feltforge/feltforge/forge"
	"github.com/feltforge/feltforge/state"
)

// Interceptor receives every hint and syscall raised during a VM run. It
// answers recognized cheatcode selectors from the cheatcode state, applies
// active cheats to caller and block queries, and forwards everything else to
// the bound fallback handler. Dispatch is by exact selector match.
type Interceptor struct {
	state    state.State
	cheats   *cheatnet.State
	fallback SyscallHandler

	printed []string
}

// NewInterceptor wires the interception layer of one test case. The fallback
// handler answers all selectors the interceptor does not recognize.
func NewInterceptor(st state.State, cheats *cheatnet.State, fallback SyscallHandler) *Interceptor {
	return &Interceptor{state: st, cheats: cheats, fallback: fallback}
}

// Printed lists the print-hint lines captured during the run, in order.
func (i *Interceptor) Printed() []string {
	return i.printed
}

func (i *Interceptor) ExecuteSyscall(call forge.Syscall) (forge.SyscallResult, error) {
	if err := i.cheats.ConsumeSteps(call.StepsUsed); err != nil {
		return forge.SyscallResult{}, err
	}
	if entry, found := cheatcodes[call.Selector]; found {
		res, err := entry.handle(i, call)
		if err != nil {
			return forge.SyscallResult{}, fmt.Errorf("%s: %w", entry.name, err)
		}
		return res, nil
	}
	return i.fallback.Call(call)
}

func (i *Interceptor) ExecuteHint(hint forge.Hint) error {
	if hint.Kind == forge.HintPrint {
		i.printed = append(i.printed, forge.FeltsToText(hint.Args))
	}
	return nil
}

// cheatcodeFunc answers one intercepted cheatcode invocation.
type cheatcodeFunc func(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error)

type cheatcodeEntry struct {
	name   string
	handle cheatcodeFunc
}

// cheatcodes is the package-level dispatch table, populated once during
// initialization. Registration is by name; the selector is derived from it.
var cheatcodes = map[forge.Selector]cheatcodeEntry{}

func registerCheatcode(name string, handle cheatcodeFunc) {
	selector := forge.SelectorFromName(name)
	if _, found := cheatcodes[selector]; found {
		panic(fmt.Sprintf("duplicate cheatcode registration: %s", name))
	}
	cheatcodes[selector] = cheatcodeEntry{name: name, handle: handle}
}

func init() {
	registerCheatcode("start_prank", startPrank)
	registerCheatcode("stop_prank", stopPrank)
	registerCheatcode("start_roll", startRoll)
	registerCheatcode("stop_roll", stopRoll)
	registerCheatcode("start_warp", startWarp)
	registerCheatcode("stop_warp", stopWarp)
	registerCheatcode("mock_call", mockCall)
	registerCheatcode("stop_mock_call", stopMockCall)
	registerCheatcode("store", storeValue)
	registerCheatcode("load", loadValue)
	registerCheatcode("deploy", deployContract)
	registerCheatcode("set_available_steps", setAvailableSteps)
	registerCheatcode("get_caller_address", getCallerAddress)
	registerCheatcode("get_block_number", getBlockNumber)
	registerCheatcode("get_block_timestamp", getBlockTimestamp)
	registerCheatcode("call_contract", callContract)
}

// scopeFor maps a cheatcode's target argument to a scope. The zero address is
// the wildcard: the cheat applies to every contract.
func scopeFor(target forge.Address) cheatnet.Scope {
	if target == (forge.Address{}) {
		return cheatnet.GlobalScope()
	}
	return cheatnet.AddressScope(target)
}

// activeCheat resolves the effective cheat of the given kind for the contract
// issuing the call, consulting its class binding for class-scoped cheats.
func (i *Interceptor) activeCheat(target forge.Address, kind cheatnet.CheatKind) (cheatnet.Cheat, bool, error) {
	class, _, err := i.state.GetClassHash(target)
	if err != nil {
		return cheatnet.Cheat{}, false, err
	}
	cheat, found := i.cheats.ActiveFor(target, class, kind)
	return cheat, found, nil
}

func requireArgs(call forge.Syscall, n int) error {
	if len(call.Args) < n {
		return fmt.Errorf("wanted at least %d arguments, got %d", n, len(call.Args))
	}
	return nil
}

func startPrank(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Install(cheatnet.Cheat{
		Kind:   cheatnet.PrankCaller,
		Scope:  scopeFor(forge.Address(call.Args[0])),
		Caller: forge.Address(call.Args[1]),
	})
	return forge.SyscallResult{}, nil
}

func stopPrank(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Cancel(scopeFor(forge.Address(call.Args[0])), cheatnet.PrankCaller)
	return forge.SyscallResult{}, nil
}

func startRoll(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Install(cheatnet.Cheat{
		Kind:        cheatnet.RollBlockNumber,
		Scope:       scopeFor(forge.Address(call.Args[0])),
		BlockNumber: call.Args[1].Uint64(),
	})
	return forge.SyscallResult{}, nil
}

func stopRoll(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Cancel(scopeFor(forge.Address(call.Args[0])), cheatnet.RollBlockNumber)
	return forge.SyscallResult{}, nil
}

func startWarp(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Install(cheatnet.Cheat{
		Kind:      cheatnet.WarpTimestamp,
		Scope:     scopeFor(forge.Address(call.Args[0])),
		Timestamp: call.Args[1].Uint64(),
	})
	return forge.SyscallResult{}, nil
}

func stopWarp(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Cancel(scopeFor(forge.Address(call.Args[0])), cheatnet.WarpTimestamp)
	return forge.SyscallResult{}, nil
}

func mockCall(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Install(cheatnet.Cheat{
		Kind:       cheatnet.MockCall,
		Scope:      scopeFor(forge.Address(call.Args[0])),
		Entry:      forge.Selector(call.Args[1]),
		ReturnData: append([]forge.Felt{}, call.Args[2:]...),
	})
	return forge.SyscallResult{}, nil
}

func stopMockCall(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.Cancel(scopeFor(forge.Address(call.Args[0])), cheatnet.MockCall)
	return forge.SyscallResult{}, nil
}

// overlayState is implemented by states carrying a cheat overlay. Deployments
// and prophecies land there when available, so real writes shadow them.
type overlayState interface {
	Overlay() *state.Overlay
}

func storeValue(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 3); err != nil {
		return forge.SyscallResult{}, err
	}
	target := forge.Address(call.Args[0])
	key := forge.Key(call.Args[1])
	value := call.Args[2]
	if os, ok := i.state.(overlayState); ok && os.Overlay() != nil {
		os.Overlay().SetStorage(target, key, value)
	} else {
		i.state.WriteStorage(target, key, value)
	}
	i.cheats.Install(cheatnet.Cheat{
		Kind:  cheatnet.StoreProphecy,
		Scope: cheatnet.AddressScope(target),
		Key:   key,
		Value: value,
	})
	return forge.SyscallResult{}, nil
}

func loadValue(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	value, err := i.state.ReadStorage(forge.Address(call.Args[0]), forge.Key(call.Args[1]))
	if err != nil {
		return forge.SyscallResult{}, err
	}
	return forge.SyscallResult{Values: []forge.Felt{value}}, nil
}

// deployContract derives a deterministic address from the deployer, a fresh
// salt, and the class hash, and binds the address to the class.
func deployContract(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	class := forge.ClassHash(call.Args[0])
	salt := i.cheats.NextDeploySalt()
	addr := forge.DeriveContractAddress(call.Contract, salt, class)
	if os, ok := i.state.(overlayState); ok && os.Overlay() != nil {
		os.Overlay().BindClass(addr, class)
	} else {
		i.state.SetClassHash(addr, class)
	}
	return forge.SyscallResult{Values: []forge.Felt{forge.Felt(addr)}}, nil
}

func setAvailableSteps(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 1); err != nil {
		return forge.SyscallResult{}, err
	}
	i.cheats.SetStepBudget(call.Args[0].Uint64())
	return forge.SyscallResult{}, nil
}

func getCallerAddress(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	cheat, found, err := i.activeCheat(call.Contract, cheatnet.PrankCaller)
	if err != nil {
		return forge.SyscallResult{}, err
	}
	if found {
		i.cheats.Expire(cheat)
		return forge.SyscallResult{Values: []forge.Felt{forge.Felt(cheat.Caller)}}, nil
	}
	return i.fallback.Call(call)
}

func getBlockNumber(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	cheat, found, err := i.activeCheat(call.Contract, cheatnet.RollBlockNumber)
	if err != nil {
		return forge.SyscallResult{}, err
	}
	if found {
		i.cheats.Expire(cheat)
		return forge.SyscallResult{Values: []forge.Felt{forge.NewFelt(cheat.BlockNumber)}}, nil
	}
	return i.fallback.Call(call)
}

func getBlockTimestamp(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	cheat, found, err := i.activeCheat(call.Contract, cheatnet.WarpTimestamp)
	if err != nil {
		return forge.SyscallResult{}, err
	}
	if found {
		i.cheats.Expire(cheat)
		return forge.SyscallResult{Values: []forge.Felt{forge.NewFelt(cheat.Timestamp)}}, nil
	}
	return i.fallback.Call(call)
}

// callContract routes a low-level inter-contract call, applying active mocks
// and pranks to the target before handing the call to the fallback handler.
func callContract(i *Interceptor, call forge.Syscall) (forge.SyscallResult, error) {
	if err := requireArgs(call, 2); err != nil {
		return forge.SyscallResult{}, err
	}
	target := forge.Address(call.Args[0])
	entry := forge.Selector(call.Args[1])

	mock, found, err := i.activeCheat(target, cheatnet.MockCall)
	if err != nil {
		return forge.SyscallResult{}, err
	}
	if found && mock.Entry == entry {
		i.cheats.Expire(mock)
		return forge.SyscallResult{Values: append([]forge.Felt{}, mock.ReturnData...)}, nil
	}

	caller := call.Contract
	if prank, found, err := i.activeCheat(target, cheatnet.PrankCaller); err != nil {
		return forge.SyscallResult{}, err
	} else if found {
		i.cheats.Expire(prank)
		caller = prank.Caller
	}

	return i.fallback.Call(forge.Syscall{
		Selector: call.Selector,
		Contract: target,
		Caller:   caller,
		Args:     call.Args[2:],
	})
}
