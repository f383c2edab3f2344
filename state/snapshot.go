// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/feltforge/feltforge/forge"
)

// SnapshotReader is a RemoteReader backed by a ledger snapshot captured in a
// single JSON document. It serves fork executions from a fixed dataset
// without network access and is the remote source used by the driver's
// --fork flag.
type SnapshotReader struct {
	storage map[storageSlot]forge.Felt
	classes map[forge.Address]forge.ClassHash
	code    map[forge.ClassHash]forge.Bytecode
}

type snapshotDocument struct {
	Storage []snapshotSlot     `json:"storage,omitempty"`
	Classes []snapshotBinding  `json:"classes,omitempty"`
	Code    []snapshotBytecode `json:"code,omitempty"`
}

type snapshotSlot struct {
	Address forge.Address `json:"address"`
	Key     forge.Key     `json:"key"`
	Value   forge.Felt    `json:"value"`
}

type snapshotBinding struct {
	Address forge.Address   `json:"address"`
	Class   forge.ClassHash `json:"class"`
}

type snapshotBytecode struct {
	Class forge.ClassHash `json:"class"`
	Code  hexutil.Bytes   `json:"code"`
}

// NewSnapshotReader parses a snapshot document and returns a reader serving
// its content.
func NewSnapshotReader(data []byte) (*SnapshotReader, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	reader := &SnapshotReader{
		storage: map[storageSlot]forge.Felt{},
		classes: map[forge.Address]forge.ClassHash{},
		code:    map[forge.ClassHash]forge.Bytecode{},
	}
	for _, slot := range doc.Storage {
		reader.storage[storageSlot{slot.Address, slot.Key}] = slot.Value
	}
	for _, binding := range doc.Classes {
		reader.classes[binding.Address] = binding.Class
	}
	for _, code := range doc.Code {
		reader.code[code.Class] = forge.Bytecode(code.Code)
	}
	return reader, nil
}

func (r *SnapshotReader) StorageAt(addr forge.Address, key forge.Key) (forge.Felt, error) {
	return r.storage[storageSlot{addr, key}], nil
}

func (r *SnapshotReader) ClassHashAt(addr forge.Address) (forge.ClassHash, bool, error) {
	class, found := r.classes[addr]
	return class, found, nil
}

func (r *SnapshotReader) ClassAt(class forge.ClassHash) (forge.Bytecode, bool, error) {
	code, found := r.code[class]
	return code, found, nil
}
