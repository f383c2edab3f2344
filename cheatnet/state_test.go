// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package cheatnet

import (
	"errors"
	"testing"

	"github.com/feltforge/feltforge/forge"
)

func TestState_InstallReplacesSameScopeAndKind(t *testing.T) {
	state := NewState()
	scope := AddressScope(forge.Address{1})

	state.Install(Cheat{Kind: PrankCaller, Scope: scope, Caller: forge.Address{2}})
	state.Install(Cheat{Kind: PrankCaller, Scope: scope, Caller: forge.Address{3}})

	cheat, found := state.ActiveFor(forge.Address{1}, forge.ClassHash{}, PrankCaller)
	if !found {
		t.Fatalf("installed cheat not found")
	}
	if cheat.Caller != (forge.Address{3}) {
		t.Errorf("second install must replace the first, got caller %v", cheat.Caller)
	}
	if len(state.Active()) != 1 {
		t.Errorf("cheats must replace, not stack, got %d active", len(state.Active()))
	}
}

func TestState_ScopePrecedence(t *testing.T) {
	addr := forge.Address{1}
	class := forge.ClassHash{2}

	tests := map[string]struct {
		installed []Scope
		want      Scope
	}{
		"address shadows class and global": {
			installed: []Scope{GlobalScope(), ClassScope(class), AddressScope(addr)},
			want:      AddressScope(addr),
		},
		"class shadows global": {
			installed: []Scope{GlobalScope(), ClassScope(class)},
			want:      ClassScope(class),
		},
		"global applies without more specific cheats": {
			installed: []Scope{GlobalScope()},
			want:      GlobalScope(),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			state := NewState()
			for _, scope := range test.installed {
				state.Install(Cheat{Kind: RollBlockNumber, Scope: scope, BlockNumber: uint64(scope.Kind)})
			}
			cheat, found := state.ActiveFor(addr, class, RollBlockNumber)
			if !found {
				t.Fatalf("no cheat resolved")
			}
			if cheat.Scope != test.want {
				t.Errorf("unexpected scope, wanted %v, got %v", test.want, cheat.Scope)
			}
		})
	}
}

func TestState_CancelRemovesCheat(t *testing.T) {
	state := NewState()
	scope := AddressScope(forge.Address{1})
	state.Install(Cheat{Kind: WarpTimestamp, Scope: scope, Timestamp: 42})

	state.Cancel(scope, WarpTimestamp)
	if _, found := state.ActiveFor(forge.Address{1}, forge.ClassHash{}, WarpTimestamp); found {
		t.Errorf("canceled cheat must not resolve")
	}

	// Canceling again is a no-op.
	state.Cancel(scope, WarpTimestamp)
}

func TestState_ExpireRemovesOnceCheatsOnly(t *testing.T) {
	state := NewState()
	once := Cheat{Kind: PrankCaller, Scope: GlobalScope(), Span: SpanOnce}
	state.Install(once)
	state.Expire(once)
	if _, found := state.ActiveFor(forge.Address{1}, forge.ClassHash{}, PrankCaller); found {
		t.Errorf("once-spanned cheat must expire after use")
	}

	indefinite := Cheat{Kind: PrankCaller, Scope: GlobalScope(), Span: SpanIndefinite}
	state.Install(indefinite)
	state.Expire(indefinite)
	if _, found := state.ActiveFor(forge.Address{1}, forge.ClassHash{}, PrankCaller); !found {
		t.Errorf("indefinite cheat must survive Expire")
	}
}

func TestState_ActivePreservesInsertionOrder(t *testing.T) {
	state := NewState()
	state.Install(Cheat{Kind: RollBlockNumber, Scope: GlobalScope(), BlockNumber: 1})
	state.Install(Cheat{Kind: WarpTimestamp, Scope: GlobalScope(), Timestamp: 2})
	// Replacing the first cheat keeps its position.
	state.Install(Cheat{Kind: RollBlockNumber, Scope: GlobalScope(), BlockNumber: 3})

	active := state.Active()
	if len(active) != 2 {
		t.Fatalf("unexpected number of active cheats: %d", len(active))
	}
	if active[0].Kind != RollBlockNumber || active[0].BlockNumber != 3 {
		t.Errorf("replacement must keep the insertion position, got %v", active[0])
	}
	if active[1].Kind != WarpTimestamp {
		t.Errorf("unexpected second cheat %v", active[1])
	}
}

func TestState_DeploySaltsAreStrictlyIncreasing(t *testing.T) {
	state := NewState()
	last := state.NextDeploySalt()
	for i := 0; i < 100; i++ {
		salt := state.NextDeploySalt()
		if salt <= last {
			t.Fatalf("salts must be strictly increasing, got %d after %d", salt, last)
		}
		last = salt
	}
}

func TestState_StepBudgetAccounting(t *testing.T) {
	state := NewState()

	// Without a budget, consumption is unbounded.
	if err := state.ConsumeSteps(1 << 40); err != nil {
		t.Fatalf("unbounded run must not fail: %v", err)
	}

	state.SetStepBudget(10)
	if err := state.ConsumeSteps(7); err != nil {
		t.Fatalf("consumption within budget failed: %v", err)
	}
	if remaining, bound := state.RemainingSteps(); !bound || remaining != 3 {
		t.Errorf("unexpected remaining budget %d", remaining)
	}

	err := state.ConsumeSteps(4)
	if !errors.Is(err, forge.ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}

	// Once exhausted, every further debit fails.
	if err := state.ConsumeSteps(1); !errors.Is(err, forge.ErrResourceExhausted) {
		t.Errorf("expected exhaustion to persist, got %v", err)
	}
}
