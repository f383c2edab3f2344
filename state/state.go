// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import (
	"fmt"

	"github.com/feltforge/feltforge/forge"
)

// State is the capability interface through which executions access and
// manipulate ledger state. Call sites are oblivious to which tier of the
// layered implementation answered a read.
//
// Reads never fail on absence: a storage slot that was never written reads as
// the zero felt, and an unbound address resolves to no class. The only error
// a read can produce is a remote transport failure.
type State interface {
	ReadStorage(addr forge.Address, key forge.Key) (forge.Felt, error)
	WriteStorage(addr forge.Address, key forge.Key, value forge.Felt)

	GetClassHash(addr forge.Address) (forge.ClassHash, bool, error)
	SetClassHash(addr forge.Address, class forge.ClassHash)

	DeclareClass(class forge.ClassHash, code forge.Bytecode) error
	GetBytecode(class forge.ClassHash) (forge.Bytecode, bool, error)
}

type storageSlot struct {
	addr forge.Address
	key  forge.Key
}

// LayeredState is an ownership-based three-tier store: a mutable top cache,
// backed by an optional cheat overlay, backed by an optional remote fork
// source. Writes always land in the top cache; overlay and remote are read
// paths only. One instance serves exactly one test case and is never shared.
type LayeredState struct {
	storage map[storageSlot]forge.Felt
	classes map[forge.Address]forge.ClassHash
	code    map[forge.ClassHash]forge.Bytecode

	overlay *Overlay
	remote  *forkReader
}

// NewLayeredState creates a standalone state without fork access. Reads that
// miss the cache resolve to defaults, matching the behavior of a fresh chain.
func NewLayeredState() *LayeredState {
	return &LayeredState{
		storage: map[storageSlot]forge.Felt{},
		classes: map[forge.Address]forge.ClassHash{},
		code:    map[forge.ClassHash]forge.Bytecode{},
	}
}

// NewForkedState creates a state whose cache misses fall through the cheat
// overlay to the given remote source. Remote results are cached, so a slot
// resolves to a stable value for the remainder of the test case.
func NewForkedState(remote RemoteReader) *LayeredState {
	state := NewLayeredState()
	state.overlay = NewOverlay()
	state.remote = newForkReader(remote)
	return state
}

// Overlay grants access to the cheat overlay, or nil in standalone mode.
func (s *LayeredState) Overlay() *Overlay {
	return s.overlay
}

// EnableOverlay attaches a cheat overlay to a standalone state. Forked states
// carry one from construction.
func (s *LayeredState) EnableOverlay() *Overlay {
	if s.overlay == nil {
		s.overlay = NewOverlay()
	}
	return s.overlay
}

func (s *LayeredState) ReadStorage(addr forge.Address, key forge.Key) (forge.Felt, error) {
	if value, found := s.storage[storageSlot{addr, key}]; found {
		return value, nil
	}
	if s.overlay != nil {
		if value, found := s.overlay.storageAt(addr, key); found {
			return value, nil
		}
	}
	if s.remote != nil {
		return s.remote.storageAt(addr, key)
	}
	return forge.Felt{}, nil
}

func (s *LayeredState) WriteStorage(addr forge.Address, key forge.Key, value forge.Felt) {
	s.storage[storageSlot{addr, key}] = value
}

func (s *LayeredState) GetClassHash(addr forge.Address) (forge.ClassHash, bool, error) {
	if class, found := s.classes[addr]; found {
		return class, true, nil
	}
	if s.overlay != nil {
		if class, found := s.overlay.classAt(addr); found {
			return class, true, nil
		}
	}
	if s.remote != nil {
		return s.remote.classHashAt(addr)
	}
	return forge.ClassHash{}, false, nil
}

func (s *LayeredState) SetClassHash(addr forge.Address, class forge.ClassHash) {
	s.classes[addr] = class
}

// DeclareClass registers the bytecode of a class. Redeclaring an already
// present class is reported as ErrClassAlreadyDeclared and leaves the first
// declaration untouched.
func (s *LayeredState) DeclareClass(class forge.ClassHash, code forge.Bytecode) error {
	if _, found := s.code[class]; found {
		return fmt.Errorf("%w: %v", forge.ErrClassAlreadyDeclared, class)
	}
	s.code[class] = code
	return nil
}

func (s *LayeredState) GetBytecode(class forge.ClassHash) (forge.Bytecode, bool, error) {
	if code, found := s.code[class]; found {
		return code, true, nil
	}
	if s.remote != nil {
		return s.remote.classAt(class)
	}
	return nil, false, nil
}
