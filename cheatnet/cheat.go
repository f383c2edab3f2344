// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package cheatnet

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
)

// CheatKind enumerates the test-only overrides the sandbox supports.
type CheatKind byte

const (
	// PrankCaller impersonates the caller observed by the target.
	PrankCaller CheatKind = iota
	// RollBlockNumber overrides the block number observed by the target.
	RollBlockNumber
	// WarpTimestamp overrides the block timestamp observed by the target.
	WarpTimestamp
	// MockCall forces the return value of calls into the target.
	MockCall
	// StoreProphecy plants a storage value visible to the target until it is
	// overwritten by a real write.
	StoreProphecy
	// StepBudgetHint bounds the remaining steps of the ongoing run.
	StepBudgetHint
)

func (k CheatKind) String() string {
	switch k {
	case PrankCaller:
		return "prank"
	case RollBlockNumber:
		return "roll"
	case WarpTimestamp:
		return "warp"
	case MockCall:
		return "mock_call"
	case StoreProphecy:
		return "store"
	case StepBudgetHint:
		return "step_budget"
	}
	return fmt.Sprintf("CheatKind(%d)", k)
}

// ScopeKind distinguishes the target granularities a cheat can apply to.
type ScopeKind byte

const (
	ScopeGlobal ScopeKind = iota
	ScopeClass
	ScopeAddress
)

// Scope names the target of a cheat: a specific contract address, every
// contract of a class, or every contract. Address-scoped cheats shadow
// class-scoped ones, which shadow global ones.
type Scope struct {
	Kind    ScopeKind
	Address forge.Address
	Class   forge.ClassHash
}

func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

func ClassScope(class forge.ClassHash) Scope {
	return Scope{Kind: ScopeClass, Class: class}
}

func AddressScope(addr forge.Address) Scope {
	return Scope{Kind: ScopeAddress, Address: addr}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeAddress:
		return fmt.Sprintf("address(%v)", s.Address)
	case ScopeClass:
		return fmt.Sprintf("class(%v)", s.Class)
	}
	return "global"
}

// Span is the validity of a cheat: a single effective use or until it is
// explicitly canceled.
type Span byte

const (
	SpanIndefinite Span = iota
	SpanOnce
)

// Cheat is one installed override. The meaning of the payload fields depends
// on the kind; unrelated fields are ignored.
type Cheat struct {
	Kind  CheatKind
	Scope Scope
	Span  Span

	Caller      forge.Address // PrankCaller
	BlockNumber uint64        // RollBlockNumber
	Timestamp   uint64        // WarpTimestamp
	Entry       forge.Selector
	ReturnData  []forge.Felt // MockCall
	Key         forge.Key    // StoreProphecy
	Value       forge.Felt   // StoreProphecy
	Steps       uint64       // StepBudgetHint
}
