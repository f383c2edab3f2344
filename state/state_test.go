// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import (
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"pgregory.net/rand"

	"github.com/feltforge/feltforge/forge"
)

func TestLayeredState_UnwrittenSlotsReadAsZero(t *testing.T) {
	state := NewLayeredState()
	rnd := rand.New(0)

	for i := 0; i < 100; i++ {
		var addr forge.Address
		var key forge.Key
		rnd.Read(addr[:])
		rnd.Read(key[:])

		value, err := state.ReadStorage(addr, key)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !value.IsZero() {
			t.Errorf("unwritten slot (%v, %v) must read as zero, got %v", addr, key, value)
		}
	}
}

func TestLayeredState_UnwrittenSlotsReadAsZeroWithRemoteAttached(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	remote.EXPECT().StorageAt(gomock.Any(), gomock.Any()).Return(forge.Felt{}, nil).AnyTimes()

	state := NewForkedState(remote)
	value, err := state.ReadStorage(forge.Address{1}, forge.Key{2})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !value.IsZero() {
		t.Errorf("slot unknown to the remote must read as zero, got %v", value)
	}
}

func TestLayeredState_ReadYourWrites(t *testing.T) {
	state := NewLayeredState()
	addr := forge.Address{1}
	key := forge.Key{2}

	state.WriteStorage(addr, key, forge.NewFelt(7))
	value, err := state.ReadStorage(addr, key)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if value != forge.NewFelt(7) {
		t.Errorf("unexpected value, wanted 7, got %v", value)
	}
}

func TestLayeredState_WritesShadowOverlayAndRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	// Once the slot is written locally, neither overlay nor remote may be
	// consulted again.
	remote.EXPECT().StorageAt(gomock.Any(), gomock.Any()).Times(0)

	state := NewForkedState(remote)
	addr := forge.Address{1}
	key := forge.Key{2}
	state.Overlay().SetStorage(addr, key, forge.NewFelt(42))

	state.WriteStorage(addr, key, forge.NewFelt(7))
	value, err := state.ReadStorage(addr, key)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if value != forge.NewFelt(7) {
		t.Errorf("local write must shadow the overlay, got %v", value)
	}
}

func TestLayeredState_OverlayShadowsRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	remote.EXPECT().StorageAt(gomock.Any(), gomock.Any()).Times(0)

	state := NewForkedState(remote)
	addr := forge.Address{1}
	key := forge.Key{2}
	state.Overlay().SetStorage(addr, key, forge.NewFelt(42))

	value, err := state.ReadStorage(addr, key)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if value != forge.NewFelt(42) {
		t.Errorf("overlay value expected, got %v", value)
	}
}

func TestLayeredState_RemoteReadsAreCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	addr := forge.Address{1}
	key := forge.Key{2}
	remote.EXPECT().StorageAt(addr, key).Return(forge.NewFelt(9), nil).Times(1)

	state := NewForkedState(remote)
	for i := 0; i < 3; i++ {
		value, err := state.ReadStorage(addr, key)
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if value != forge.NewFelt(9) {
			t.Errorf("read %d returned unexpected value %v", i, value)
		}
	}
}

func TestLayeredState_RemoteTransportFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	transportErr := errors.New("connection refused")
	remote.EXPECT().StorageAt(gomock.Any(), gomock.Any()).Return(forge.Felt{}, transportErr)

	state := NewForkedState(remote)
	_, err := state.ReadStorage(forge.Address{1}, forge.Key{2})
	if !errors.Is(err, forge.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("the transport cause must remain recoverable, got %v", err)
	}
}

func TestLayeredState_DeclareClassIsIdempotent(t *testing.T) {
	state := NewLayeredState()
	class := forge.ClassHash{1}

	if err := state.DeclareClass(class, forge.Bytecode{0x01}); err != nil {
		t.Fatalf("first declaration failed: %v", err)
	}
	err := state.DeclareClass(class, forge.Bytecode{0x02})
	if !errors.Is(err, forge.ErrClassAlreadyDeclared) {
		t.Fatalf("expected ErrClassAlreadyDeclared, got %v", err)
	}

	code, found, err := state.GetBytecode(class)
	if err != nil || !found {
		t.Fatalf("bytecode lookup failed: %v", err)
	}
	if len(code) != 1 || code[0] != 0x01 {
		t.Errorf("redeclaration must leave the first bytecode unchanged, got %x", code)
	}
}

func TestLayeredState_ClassHashResolution(t *testing.T) {
	state := NewLayeredState()
	addr := forge.Address{1}

	if _, found, _ := state.GetClassHash(addr); found {
		t.Errorf("unbound address must resolve to no class")
	}

	state.SetClassHash(addr, forge.ClassHash{7})
	class, found, err := state.GetClassHash(addr)
	if err != nil || !found {
		t.Fatalf("class lookup failed: %v", err)
	}
	if class != (forge.ClassHash{7}) {
		t.Errorf("unexpected class hash %v", class)
	}
}

func TestLayeredState_OverlayClassBindingsAreVisible(t *testing.T) {
	state := NewLayeredState()
	overlay := state.EnableOverlay()
	addr := forge.Address{1}
	overlay.BindClass(addr, forge.ClassHash{7})

	class, found, err := state.GetClassHash(addr)
	if err != nil || !found {
		t.Fatalf("class lookup failed: %v", err)
	}
	if class != (forge.ClassHash{7}) {
		t.Errorf("unexpected class hash %v", class)
	}
}

func TestLayeredState_RemoteClassLookupsAreCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := NewMockRemoteReader(ctrl)
	addr := forge.Address{1}
	class := forge.ClassHash{7}
	remote.EXPECT().ClassHashAt(addr).Return(class, true, nil).Times(1)
	remote.EXPECT().ClassAt(class).Return(forge.Bytecode{0xAA}, true, nil).Times(1)

	state := NewForkedState(remote)
	for i := 0; i < 2; i++ {
		got, found, err := state.GetClassHash(addr)
		if err != nil || !found || got != class {
			t.Fatalf("class hash lookup %d failed: %v %v %v", i, got, found, err)
		}
		code, found, err := state.GetBytecode(class)
		if err != nil || !found || len(code) != 1 {
			t.Fatalf("bytecode lookup %d failed: %v %v %v", i, code, found, err)
		}
	}
}
