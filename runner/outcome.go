// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/feltforge/feltforge/forge"
)

// OutcomeKind is the closed set of terminal test results.
type OutcomeKind byte

const (
	// OutcomePassed indicates a clean return with a success tag.
	OutcomePassed OutcomeKind = iota
	// OutcomeFailed indicates a contract-level panic, a failed assertion, or
	// an exhausted step budget. Failures are expected results, not faults.
	OutcomeFailed
	// OutcomeIgnored indicates a test case skipped by selection.
	OutcomeIgnored
	// OutcomeErrored indicates an infrastructure fault: a build failure, a
	// remote transport failure, or a VM-internal fault. Errored results abort
	// the surrounding run.
	OutcomeErrored
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeErrored:
		return "errored"
	}
	return "unknown"
}

// Outcome is the result of one test case. Message carries the human-readable
// failure presentation; Err retains the structured cause for programmatic
// classification, which never depends on the formatted message.
type Outcome struct {
	Kind      OutcomeKind
	Output    []forge.Felt
	Message   string
	Resources forge.ResourceUsage
	Err       error
}

// stepBudgetMessage is the fixed presentation of an exhausted step budget.
const stepBudgetMessage = "test exceeded available steps"

// Assemble maps the terminal signal of a VM run to a test outcome. The
// resources argument reflects everything charged up to the terminal point,
// including runs that ended in a fault.
func Assemble(result forge.RunResult, resources forge.ResourceUsage, err error) Outcome {
	if err != nil {
		return assembleFault(resources, err)
	}

	switch result.Status {
	case forge.RunPanicked:
		return Outcome{
			Kind:      OutcomeFailed,
			Output:    result.Values,
			Message:   forge.FeltsToText(result.Values),
			Resources: result.Resources,
		}
	case forge.RunReturned:
		// First felt of the return data is the success flag; the payload
		// follows.
		if len(result.Values) > 0 && !result.Values[0].IsZero() {
			return Outcome{
				Kind:      OutcomeFailed,
				Output:    result.Values[1:],
				Message:   forge.FeltsToText(result.Values[1:]),
				Resources: result.Resources,
			}
		}
		output := result.Values
		if len(output) > 0 {
			output = output[1:]
		}
		return Outcome{
			Kind:      OutcomePassed,
			Output:    output,
			Resources: result.Resources,
		}
	}
	return Outcome{
		Kind:      OutcomeErrored,
		Err:       fmt.Errorf("unexpected run status %v", result.Status),
		Resources: result.Resources,
	}
}

func assembleFault(resources forge.ResourceUsage, err error) Outcome {
	if errors.Is(err, forge.ErrResourceExhausted) {
		return Outcome{
			Kind:      OutcomeFailed,
			Message:   stepBudgetMessage,
			Resources: resources,
			Err:       err,
		}
	}
	if errors.Is(err, forge.ErrRemoteUnavailable) {
		return Outcome{Kind: OutcomeErrored, Resources: resources, Err: err}
	}
	var runErr *forge.RunError
	if errors.As(err, &runErr) {
		return Outcome{
			Kind:      OutcomeFailed,
			Message:   formatRunError(runErr),
			Resources: resources,
			Err:       err,
		}
	}
	return Outcome{Kind: OutcomeErrored, Resources: resources, Err: err}
}

// Ignored is the outcome of a test case excluded by selection.
func Ignored() Outcome {
	return Outcome{Kind: OutcomeIgnored}
}

// Errored wraps a fault raised before the VM was invoked.
func Errored(err error) Outcome {
	return Outcome{Kind: OutcomeErrored, Err: err}
}

// formatRunError renders a runtime fault for human consumption: the internal
// hint-error wrapper is replaced by a four-space indented continuation line.
func formatRunError(err *forge.RunError) string {
	return strings.ReplaceAll(err.Error(), " "+forge.HintErrorMarker, "\n    ")
}
