// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Address represents the 256-bit identifier of a deployed contract instance.
// Addresses are immutable once assigned.
type Address [32]byte

// ClassHash represents the 256-bit identifier of a compiled contract class.
// Many addresses may be bound to one class hash.
type ClassHash [32]byte

// Key represents the 256-bit key of a contract storage slot.
type Key [32]byte

// Selector identifies an entry point, a syscall, or a hint by name. Selectors
// are derived from names once and compared by value, never by string.
type Selector [32]byte

// Bytecode represents the compiled instruction stream of a contract class.
type Bytecode []byte

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

func (h ClassHash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h ClassHash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *ClassHash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func (k Key) String() string {
	return fmt.Sprintf("0x%x", k[:])
}

func (k Key) MarshalText() ([]byte, error) {
	return bytesToText(k[:])
}

func (k *Key) UnmarshalText(data []byte) error {
	return textToBytes(k[:], data)
}

func (s Selector) String() string {
	return fmt.Sprintf("0x%x", s[:])
}

// SelectorFromName derives the selector of the given name by hashing it and
// masking the result to 250 bits, keeping selectors within the felt range.
func SelectorFromName(name string) (result Selector) {
	hash := crypto.Keccak256([]byte(name))
	copy(result[:], hash)
	result[0] &= 0x03
	return
}

// DeriveContractAddress computes the deterministic deployment address for the
// given deployer, salt, and class hash. Consuming a fresh salt for every
// deployment guarantees distinct addresses within one test case.
func DeriveContractAddress(deployer Address, salt uint32, class ClassHash) (result Address) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], salt)
	hash := crypto.Keccak256([]byte("feltforge_contract_address"), deployer[:], buf[:], class[:])
	copy(result[:], hash)
	result[0] &= 0x03
	return
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg, data)
	return nil
}
