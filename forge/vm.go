// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package forge

//go:generate mockgen -source vm.go -destination vm_mock.go -package forge

// VirtualMachine is the narrow contract through which the sandbox drives a
// deterministic interpreter. The sandbox constructs an execution context,
// supplies a hint handler, and reads back resource usage and return data; the
// instruction-level interpretation is owned by the implementation.
type VirtualMachine interface {
	// Run executes the program described by the context, suspending on each
	// hint and syscall to invoke the given handler. The run is strictly
	// single-threaded: a suspension is a synchronous call into the handler,
	// not a scheduler yield.
	//
	// The returned error is nil for every completed execution, including
	// runs that ended in a contract-level panic. Runtime faults, including
	// failures raised by the handler, are reported as a *RunError. Any other
	// error indicates an interpreter-level fault and renders the result
	// undefined.
	Run(ctx *ExecutionContext, handler HintHandler) (RunResult, error)
}

// HintHandler receives every hint and every syscall raised during one VM run.
// Implementations answer synchronously and never block on I/O. Returning an
// error aborts the run with a runtime fault; it must not unwind the host.
type HintHandler interface {
	// ExecuteSyscall answers a call into platform services. The result
	// values are written back into the VM's memory by the caller.
	ExecuteSyscall(call Syscall) (SyscallResult, error)

	// ExecuteHint executes a plain compiler-emitted directive.
	ExecuteHint(hint Hint) error
}

// ExecutionContext is the fully assembled input of a single VM run, bound to
// one mutable state and one resource-accounting object. Contexts are built by
// the execution context builder, used for exactly one run, and discarded.
type ExecutionContext struct {
	// Program image.
	Words       []uint64
	Hints       map[int][]Hint
	EntryOffset int
	Builtins    []Builtin

	// Initial memory segments seeded by the builder.
	Segments []Segment

	// Call frame.
	Contract Address
	Caller   Address
	Calldata []Felt

	// Resources is the accounting object the VM charges during the run. It
	// remains readable after a fault, reflecting all steps executed up to
	// the fault point.
	Resources *ResourceUsage
}

// Segment is one of the VM's initial memory segments, seeded with read-only
// infrastructure data by the builder.
type Segment struct {
	ID   int
	Data []Felt
}

// Well-known segment identifiers assigned by the builder.
const (
	SegmentProgram = iota
	SegmentExecution
	SegmentCalldata
	SegmentSyscall
)

// Syscall is the payload of a suspension on a system call.
type Syscall struct {
	Selector Selector
	Contract Address // the contract being executed
	Caller   Address // the caller as seen by the VM
	Args     []Felt

	// StepsUsed is the VM-reported number of steps executed since the
	// previous suspension point. The handler debits it against the optional
	// step budget.
	StepsUsed uint64
}

// SyscallResult carries the values a syscall resolves to, synthetic or not.
type SyscallResult struct {
	Values []Felt
}

// RunStatus is the terminal signal of a completed VM run.
type RunStatus byte

const (
	// RunReturned indicates a normal return; the values carry the tagged
	// return data.
	RunReturned RunStatus = iota
	// RunPanicked indicates a contract-level panic; the values carry the
	// panic payload.
	RunPanicked
)

func (s RunStatus) String() string {
	switch s {
	case RunReturned:
		return "returned"
	case RunPanicked:
		return "panicked"
	}
	return "unknown"
}

// RunResult summarizes a completed VM run.
type RunResult struct {
	Status    RunStatus
	Values    []Felt
	Resources ResourceUsage
}

// ResourceUsage accumulates the resources charged during one run.
type ResourceUsage struct {
	Steps    uint64
	Syscalls uint64
	Builtins [numBuiltins]uint64
}

// AddBuiltin charges n applications of the given builtin.
func (r *ResourceUsage) AddBuiltin(builtin Builtin, n uint64) {
	r.Builtins[builtin] += n
}

// BuiltinCount reports the charged applications of the given builtin.
func (r *ResourceUsage) BuiltinCount(builtin Builtin) uint64 {
	return r.Builtins[builtin]
}
