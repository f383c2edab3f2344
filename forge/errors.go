// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import "fmt"

// ConstError is an error type that can be used to define immutable error
// constants that can be matched with errors.Is.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// The closed error taxonomy of the sandbox. Build errors abort a test case
// before the VM is invoked and map to an Errored outcome. Cheatcode errors
// and resource exhaustion surface as VM-level hint errors and map to a
// Failed outcome. Remote errors always propagate as Errored.
const (
	// ErrFunctionNotFound indicates that the requested entry point does not
	// exist in the compiled unit.
	ErrFunctionNotFound = ConstError("function not found in compiled unit")

	// ErrIncompatibleBuiltins indicates that a function requires a builtin
	// the compiled program does not declare.
	ErrIncompatibleBuiltins = ConstError("incompatible builtin set")

	// ErrResourceExhausted indicates that the step budget of a run has been
	// fully consumed.
	ErrResourceExhausted = ConstError("resource exhausted")

	// ErrRemoteUnavailable indicates a transport failure while consulting the
	// remote fork source. It is never silently defaulted: returning a zero
	// value instead would be indistinguishable from legitimate empty storage.
	ErrRemoteUnavailable = ConstError("remote state source unavailable")

	// ErrClassAlreadyDeclared reports an attempt to redeclare a class hash.
	// It is a recoverable condition, not a fault; the first declaration stays
	// in place.
	ErrClassAlreadyDeclared = ConstError("class already declared")
)

// HintErrorMarker is the fixed wrapper text virtual machines put in front of
// the cause when a hint handler fails. Outcome formatting strips it; it must
// never be relied on for classification.
const HintErrorMarker = "Custom Hint Error: "

// RunError is a runtime fault raised during a VM run, including failures of
// intercepted cheatcode hints. It terminates the run but not the test
// harness: result assembly maps it to a Failed outcome. The structured cause
// remains reachable through Unwrap, so classification never depends on the
// formatted message.
type RunError struct {
	Offset int   // instruction offset at which the fault was raised
	Cause  error // the underlying failure
}

func (e *RunError) Error() string {
	return fmt.Sprintf("error at instruction offset %d: %s%v", e.Offset, HintErrorMarker, e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}
