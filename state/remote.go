// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package state

import "github.com/feltforge/feltforge/forge"

//go:generate mockgen -source remote.go -destination remote_mock.go -package state

// RemoteReader is a read-only data source representing a snapshot of an
// external ledger, consulted only on local cache miss. It is the only
// collaborator that may perform blocking I/O; it must be safely callable from
// a single-threaded caller. Errors indicate transport failures, never
// absence: a slot the remote does not know reads as zero, an unknown address
// as unbound.
type RemoteReader interface {
	StorageAt(addr forge.Address, key forge.Key) (forge.Felt, error)
	ClassHashAt(addr forge.Address) (forge.ClassHash, bool, error)
	ClassAt(class forge.ClassHash) (forge.Bytecode, bool, error)
}
