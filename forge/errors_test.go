// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConstError_Error(t *testing.T) {
	// Define a constant error
	const myError = ConstError("this is a constant error")

	// Test the Error() method
	if myError.Error() != "this is a constant error" {
		t.Errorf("expected 'this is a constant error', got '%s'", myError.Error())
	}

	// tests error.Is
	if !errors.Is(myError, ConstError("this is a constant error")) {
		t.Errorf("expected true, got false")
	}
}

func TestConstError_Empty(t *testing.T) {
	// Define an empty constant error
	const emptyError ConstError = ""

	// Test the Error() method
	if emptyError.Error() != "" {
		t.Errorf("expected empty string, got '%s'", emptyError.Error())
	}
}

func TestConstError_WrappingPreservesIdentity(t *testing.T) {
	wrapped := fmt.Errorf("%w: test_case", ErrFunctionNotFound)
	if !errors.Is(wrapped, ErrFunctionNotFound) {
		t.Errorf("wrapping must preserve the error identity")
	}
}

func TestRunError_CarriesMarkerAndCause(t *testing.T) {
	cause := ConstError("malformed cheatcode arguments")
	err := &RunError{Offset: 12, Cause: cause}

	if !strings.Contains(err.Error(), HintErrorMarker) {
		t.Errorf("formatted message must contain the hint error marker, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("the structured cause must remain reachable through Unwrap")
	}
}
