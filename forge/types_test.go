// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import (
	"testing"

	"pgregory.net/rand"
)

func TestSelector_DerivationIsDeterministic(t *testing.T) {
	a := SelectorFromName("storage_read")
	b := SelectorFromName("storage_read")
	if a != b {
		t.Errorf("selector derivation is not deterministic: %v != %v", a, b)
	}
}

func TestSelector_DistinctNamesYieldDistinctSelectors(t *testing.T) {
	names := []string{
		"storage_read", "storage_write", "call_contract", "deploy",
		"start_prank", "stop_prank", "roll", "warp", "mock_call",
	}
	seen := map[Selector]string{}
	for _, name := range names {
		selector := SelectorFromName(name)
		if prev, found := seen[selector]; found {
			t.Errorf("selector collision between %q and %q", prev, name)
		}
		seen[selector] = name
	}
}

func TestSelector_StaysWithinFeltRange(t *testing.T) {
	selector := SelectorFromName("a name whose hash has high bits set")
	if selector[0]&0xfc != 0 {
		t.Errorf("selector exceeds the 250-bit felt range: %v", selector)
	}
}

func TestDeriveContractAddress_DistinctSaltsNeverCollide(t *testing.T) {
	rnd := rand.New(0)
	deployer := Address{1}
	class := ClassHash{2}

	seen := map[Address]uint32{}
	for i := 0; i < 1000; i++ {
		salt := rnd.Uint32()
		address := DeriveContractAddress(deployer, salt, class)
		if prev, found := seen[address]; found && prev != salt {
			t.Fatalf("address collision between salts %d and %d", prev, salt)
		}
		seen[address] = salt
	}
}

func TestDeriveContractAddress_DependsOnAllInputs(t *testing.T) {
	base := DeriveContractAddress(Address{1}, 0, ClassHash{2})
	tests := map[string]Address{
		"different deployer": DeriveContractAddress(Address{3}, 0, ClassHash{2}),
		"different salt":     DeriveContractAddress(Address{1}, 1, ClassHash{2}),
		"different class":    DeriveContractAddress(Address{1}, 0, ClassHash{4}),
	}
	for name, address := range tests {
		if address == base {
			t.Errorf("%s should change the derived address", name)
		}
	}
}

func TestTypes_StringRendersAsHex(t *testing.T) {
	if want, got := "0x0100000000000000000000000000000000000000000000000000000000000000", (Address{1}).String(); want != got {
		t.Errorf("unexpected address rendering, wanted %v, got %v", want, got)
	}
}
