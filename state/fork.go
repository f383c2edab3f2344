// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/feltforge/feltforge/forge"
)

// forkStorageCacheSize bounds the number of remote storage reads kept per
// test case. Class lookups are far fewer and kept unbounded.
const forkStorageCacheSize = 4096

// forkReader wraps a RemoteReader and caches its answers, guaranteeing that a
// given slot resolves to a stable value for the remainder of the test case
// and that the remote is consulted at most once per key. Transport failures
// are wrapped as ErrRemoteUnavailable and never defaulted.
type forkReader struct {
	remote  RemoteReader
	storage *lru.Cache[storageSlot, forge.Felt]
	classes map[forge.Address]classHashEntry
	code    map[forge.ClassHash]forge.Bytecode
}

type classHashEntry struct {
	class forge.ClassHash
	bound bool
}

func newForkReader(remote RemoteReader) *forkReader {
	// The cache cannot fail to initialize for a positive fixed size.
	storage, err := lru.New[storageSlot, forge.Felt](forkStorageCacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize fork read cache: %v", err))
	}
	return &forkReader{
		remote:  remote,
		storage: storage,
		classes: map[forge.Address]classHashEntry{},
		code:    map[forge.ClassHash]forge.Bytecode{},
	}
}

func (f *forkReader) storageAt(addr forge.Address, key forge.Key) (forge.Felt, error) {
	slot := storageSlot{addr, key}
	if value, found := f.storage.Get(slot); found {
		return value, nil
	}
	value, err := f.remote.StorageAt(addr, key)
	if err != nil {
		return forge.Felt{}, fmt.Errorf("%w: %w", forge.ErrRemoteUnavailable, err)
	}
	f.storage.Add(slot, value)
	return value, nil
}

func (f *forkReader) classHashAt(addr forge.Address) (forge.ClassHash, bool, error) {
	if entry, found := f.classes[addr]; found {
		return entry.class, entry.bound, nil
	}
	class, bound, err := f.remote.ClassHashAt(addr)
	if err != nil {
		return forge.ClassHash{}, false, fmt.Errorf("%w: %w", forge.ErrRemoteUnavailable, err)
	}
	f.classes[addr] = classHashEntry{class: class, bound: bound}
	return class, bound, nil
}

func (f *forkReader) classAt(class forge.ClassHash) (forge.Bytecode, bool, error) {
	if code, found := f.code[class]; found {
		return code, code != nil, nil
	}
	code, declared, err := f.remote.ClassAt(class)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", forge.ErrRemoteUnavailable, err)
	}
	if !declared {
		code = nil
	}
	f.code[class] = code
	return code, declared, nil
}
