// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package cheatnet

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
)

// State is the process-local registry of active cheats for one test case,
// plus the deploy-salt counter and the optional step budget. One instance
// serves exactly one test case and is discarded at teardown; it is never
// shared across concurrent test cases.
type State struct {
	order  []cheatKey
	cheats map[cheatKey]Cheat

	deploySalt uint32

	stepBudget  uint64
	budgetBound bool
}

type cheatKey struct {
	scope Scope
	kind  CheatKind
}

func NewState() *State {
	return &State{
		cheats: map[cheatKey]Cheat{},
	}
}

// Install upserts a cheat under its (scope, kind) key. Installing a cheat
// with the same key replaces the prior one in place, preserving the original
// insertion position.
func (s *State) Install(cheat Cheat) {
	key := cheatKey{scope: cheat.Scope, kind: cheat.Kind}
	if _, found := s.cheats[key]; !found {
		s.order = append(s.order, key)
	}
	s.cheats[key] = cheat
}

// Cancel removes the cheat installed under (scope, kind), a no-op if none is
// present.
func (s *State) Cancel(scope Scope, kind CheatKind) {
	key := cheatKey{scope: scope, kind: kind}
	if _, found := s.cheats[key]; !found {
		return
	}
	delete(s.cheats, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ActiveFor resolves the effective cheat of the given kind for a target
// address of the given class. An address-scoped cheat shadows a class-scoped
// cheat, which shadows a global one.
func (s *State) ActiveFor(addr forge.Address, class forge.ClassHash, kind CheatKind) (Cheat, bool) {
	if cheat, found := s.cheats[cheatKey{scope: AddressScope(addr), kind: kind}]; found {
		return cheat, true
	}
	if cheat, found := s.cheats[cheatKey{scope: ClassScope(class), kind: kind}]; found {
		return cheat, true
	}
	cheat, found := s.cheats[cheatKey{scope: GlobalScope(), kind: kind}]
	return cheat, found
}

// Expire removes a once-spanned cheat after its first effective use, a no-op
// for indefinite cheats.
func (s *State) Expire(cheat Cheat) {
	if cheat.Span != SpanOnce {
		return
	}
	s.Cancel(cheat.Scope, cheat.Kind)
}

// Active lists the installed cheats in insertion order.
func (s *State) Active() []Cheat {
	res := make([]Cheat, 0, len(s.order))
	for _, key := range s.order {
		res = append(res, s.cheats[key])
	}
	return res
}

// NextDeploySalt returns the current deploy salt and increments the counter.
// Callers must consume a salt for every address derivation, which guarantees
// distinct deployment addresses within one test case. The counter never
// resets within a test case.
func (s *State) NextDeploySalt() uint32 {
	salt := s.deploySalt
	s.deploySalt++
	return salt
}

// SetStepBudget bounds the remaining steps of the run. Without a budget no
// accounting occurs and the run is step-unbounded.
func (s *State) SetStepBudget(steps uint64) {
	s.stepBudget = steps
	s.budgetBound = true
}

// RemainingSteps reports the remaining budget; the flag is false when no
// budget is tracked.
func (s *State) RemainingSteps() (uint64, bool) {
	return s.stepBudget, s.budgetBound
}

// ConsumeSteps debits the budget by the given number of steps. It fails with
// ErrResourceExhausted when the remaining budget would go negative; the
// budget is left at zero in that case so subsequent debits fail as well.
func (s *State) ConsumeSteps(steps uint64) error {
	if !s.budgetBound {
		return nil
	}
	if steps > s.stepBudget {
		s.stepBudget = 0
		return fmt.Errorf("%w: %d steps requested", forge.ErrResourceExhausted, steps)
	}
	s.stepBudget -= steps
	return nil
}
