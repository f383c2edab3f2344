// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"strings"

	"github.com/holiman/uint256"
)

// Felt represents a single 256-bit field scalar as processed by the virtual
// machine. Storage values, calldata, return data, and syscall arguments are
// all sequences of felts. The zero value is the field element zero.
type Felt [32]byte

// NewFelt creates a new Felt instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a felt of zero.
func NewFelt(args ...uint64) (result Felt) {
	if len(args) > 4 {
		panic("Too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < 4; i++ {
		start := (offset * 8) + i*8
		end := start + 8
		binary.BigEndian.PutUint64(result[start:end], args[i])
	}
	return
}

// FeltFromUint256 converts a *uint256.Int to a Felt.
// If the input is nil, it returns 0.
func FeltFromUint256(value *uint256.Int) (result Felt) {
	if value == nil {
		return result
	}
	return value.Bytes32()
}

// FeltFromText converts a short ASCII string of at most 31 bytes into a felt,
// right-aligned. Longer inputs are truncated to their first 31 bytes. This is
// the encoding used for panic payloads and error messages produced by
// contracts under test.
func FeltFromText(s string) (result Felt) {
	data := []byte(s)
	if len(data) > 31 {
		data = data[:31]
	}
	copy(result[32-len(data):], data)
	return
}

func (f Felt) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(f[:])
}

func (f Felt) Uint64() uint64 {
	return binary.BigEndian.Uint64(f[24:32])
}

// ToText decodes the felt as a right-aligned short ASCII string, the inverse
// of FeltFromText. Non-printable content is rendered in hex instead.
func (f Felt) ToText() string {
	start := 0
	for start < 32 && f[start] == 0 {
		start++
	}
	data := f[start:]
	for _, b := range data {
		if b < 0x20 || b > 0x7e {
			return f.String()
		}
	}
	return string(data)
}

func (f Felt) String() string {
	return f.ToUint256().Hex()
}

func (f Felt) Cmp(o Felt) int {
	return bytes.Compare(f[:], o[:])
}

func (f Felt) IsZero() bool {
	return f == Felt{}
}

// Add computes the 256-bit wrap-around sum of two felts.
func Add(a, b Felt) (z Felt) {
	res, carry := bits.Add64(a.getInternalUint64(0), b.getInternalUint64(0), 0)
	binary.BigEndian.PutUint64(z[24:32], res)

	res, carry = bits.Add64(a.getInternalUint64(1), b.getInternalUint64(1), carry)
	binary.BigEndian.PutUint64(z[16:24], res)

	res, carry = bits.Add64(a.getInternalUint64(2), b.getInternalUint64(2), carry)
	binary.BigEndian.PutUint64(z[8:16], res)

	res, _ = bits.Add64(a.getInternalUint64(3), b.getInternalUint64(3), carry)
	binary.BigEndian.PutUint64(z[0:8], res)

	return z
}

func (f Felt) MarshalText() ([]byte, error) {
	return bytesToText(f[:])
}

func (f *Felt) UnmarshalText(data []byte) error {
	return textToBytes(f[:], data)
}

// FeltsToText renders a panic payload as human-readable text. Each felt is
// decoded as a short string; multiple felts are joined with a single space.
func FeltsToText(payload []Felt) string {
	parts := make([]string, 0, len(payload))
	for _, f := range payload {
		parts = append(parts, f.ToText())
	}
	return strings.Join(parts, " ")
}

func (f Felt) getInternalUint64(index int) uint64 {
	start := 24 - index*8
	end := start + 8
	return binary.BigEndian.Uint64(f[start:end])
}
