// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Builtin identifies a fixed-function unit provided by the virtual machine.
// Programs declare the builtins they were compiled against; functions list
// the subset they require.
type Builtin byte

const (
	BuiltinPedersen Builtin = iota
	BuiltinRangeCheck
	BuiltinBitwise
	BuiltinEcOp
	BuiltinPoseidon
	BuiltinSegmentArena
	numBuiltins int = iota
)

var builtinNames = map[Builtin]string{
	BuiltinPedersen:     "pedersen",
	BuiltinRangeCheck:   "range_check",
	BuiltinBitwise:      "bitwise",
	BuiltinEcOp:         "ec_op",
	BuiltinPoseidon:     "poseidon",
	BuiltinSegmentArena: "segment_arena",
}

func (b Builtin) String() string {
	if name, found := builtinNames[b]; found {
		return name
	}
	return fmt.Sprintf("Builtin(%d)", b)
}

func (b Builtin) MarshalText() ([]byte, error) {
	name, found := builtinNames[b]
	if !found {
		return nil, fmt.Errorf("invalid builtin: %v", b)
	}
	return []byte(name), nil
}

func (b *Builtin) UnmarshalText(data []byte) error {
	for builtin, name := range builtinNames {
		if name == string(data) {
			*b = builtin
			return nil
		}
	}
	return fmt.Errorf("unknown builtin: %s", data)
}

// HintKind distinguishes the directives the compiler attaches to
// instructions. Syscalls are the well-known subtype representing calls into
// platform services; the remaining kinds are plain host-side directives.
type HintKind byte

const (
	// HintSyscall suspends the VM and routes a call into platform services
	// through the bound hint handler.
	HintSyscall HintKind = iota
	// HintPrint emits formatted output captured by the host.
	HintPrint
	// HintReturn terminates the run with the attached values as return data.
	// Without arguments, the values of the last syscall response are
	// returned with a success tag prepended.
	HintReturn
	// HintPanic terminates the run with a contract-level panic carrying the
	// attached payload.
	HintPanic
)

// Hint is a single compiler-emitted directive bound to an instruction offset.
type Hint struct {
	Kind     HintKind `json:"kind"`
	Selector Selector `json:"selector,omitempty"`
	Args     []Felt   `json:"args,omitempty"`
}

// Instruction is one encoded VM instruction together with its attached hints.
// The op size is the number of program words the instruction occupies; it
// determines the offsets of all subsequent instructions.
type Instruction struct {
	Words []hexutil.Uint64 `json:"words"`
	Hints []Hint           `json:"hints,omitempty"`
}

// OpSize returns the number of program words occupied by the instruction.
func (i Instruction) OpSize() int {
	return len(i.Words)
}

// Function describes a callable entry point of a compiled unit.
type Function struct {
	Name        string    `json:"name"`
	EntryOffset int       `json:"entry_offset"`
	Builtins    []Builtin `json:"builtins,omitempty"`
}

// CompiledUnit is the artifact produced by the (external) build collaborator:
// the full instruction stream of a compiled program plus its entry points and
// the builtin set it was compiled against.
type CompiledUnit struct {
	Builtins     []Builtin     `json:"builtins,omitempty"`
	Functions    []Function    `json:"functions"`
	Instructions []Instruction `json:"instructions"`
}

// Function resolves an entry point by name.
func (u *CompiledUnit) Function(name string) (Function, error) {
	for _, f := range u.Functions {
		if f.Name == name {
			return f, nil
		}
	}
	return Function{}, fmt.Errorf("%w: %q", ErrFunctionNotFound, name)
}

// HasBuiltin reports whether the compiled program declares the given builtin.
func (u *CompiledUnit) HasBuiltin(builtin Builtin) bool {
	for _, b := range u.Builtins {
		if b == builtin {
			return true
		}
	}
	return false
}

// AssembleWords serializes the instruction stream into a flat program image.
func (u *CompiledUnit) AssembleWords() []uint64 {
	size := 0
	for _, inst := range u.Instructions {
		size += inst.OpSize()
	}
	words := make([]uint64, 0, size)
	for _, inst := range u.Instructions {
		for _, w := range inst.Words {
			words = append(words, uint64(w))
		}
	}
	return words
}

// HintTable extracts the hints of all instructions, keyed by the program
// offset of the instruction they are attached to. Offsets accumulate each
// instruction's op size, so multi-word instructions shift the offsets of
// everything that follows.
func (u *CompiledUnit) HintTable() map[int][]Hint {
	table := make(map[int][]Hint)
	offset := 0
	for _, inst := range u.Instructions {
		if len(inst.Hints) > 0 {
			table[offset] = inst.Hints
		}
		offset += inst.OpSize()
	}
	return table
}
