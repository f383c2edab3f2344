// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import "github.com/feltforge/feltforge/forge"

// Overlay is the middle read tier of a LayeredState, holding values installed
// by cheatcodes: contract-to-class bindings of sandbox deployments and
// storage prophecies planted by test setup. The executing contract never
// writes here; only the interception layer mutates the overlay through its
// installers.
type Overlay struct {
	storage map[storageSlot]forge.Felt
	classes map[forge.Address]forge.ClassHash
}

func NewOverlay() *Overlay {
	return &Overlay{
		storage: map[storageSlot]forge.Felt{},
		classes: map[forge.Address]forge.ClassHash{},
	}
}

// BindClass installs a contract-to-class binding for a sandbox deployment.
func (o *Overlay) BindClass(addr forge.Address, class forge.ClassHash) {
	o.classes[addr] = class
}

// SetStorage plants a storage prophecy: the value a slot resolves to unless
// the contract overwrites it during execution.
func (o *Overlay) SetStorage(addr forge.Address, key forge.Key, value forge.Felt) {
	o.storage[storageSlot{addr, key}] = value
}

// ClearStorage removes a previously planted prophecy, a no-op otherwise.
func (o *Overlay) ClearStorage(addr forge.Address, key forge.Key) {
	delete(o.storage, storageSlot{addr, key})
}

func (o *Overlay) storageAt(addr forge.Address, key forge.Key) (forge.Felt, bool) {
	value, found := o.storage[storageSlot{addr, key}]
	return value, found
}

func (o *Overlay) classAt(addr forge.Address) (forge.ClassHash, bool) {
	class, found := o.classes[addr]
	return class, found
}
