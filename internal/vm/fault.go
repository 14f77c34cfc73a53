package vm

import (
	"fmt"

	"langtwo/internal/ir"
)

// FaultCode identifies the type of VM fault. Stable values - do not change.
type FaultCode int

const (
	// FaultUnresolvedLabel reports a transfer to a label with no Label op.
	FaultUnresolvedLabel FaultCode = 2001 // VM2001
	// FaultDuplicateLabel reports two Label ops for the same label.
	FaultDuplicateLabel FaultCode = 2002 // VM2002
	// FaultStackUnderflow reports a pop from an empty operand stack.
	FaultStackUnderflow FaultCode = 2003 // VM2003
	// FaultReturnUnderflow reports a return with no saved return address.
	FaultReturnUnderflow FaultCode = 2004 // VM2004
	// FaultFrameUnderflow reports a frame pop that would remove the global frame.
	FaultFrameUnderflow FaultCode = 2005 // VM2005
	// FaultCallDepth reports call-stack exhaustion (runaway recursion).
	FaultCallDepth FaultCode = 2006 // VM2006
	// FaultDivideByZero reports integer division or modulo by zero.
	FaultDivideByZero FaultCode = 2007 // VM2007
	// FaultRegRange reports a register index outside the frame capacity.
	FaultRegRange FaultCode = 2008 // VM2008
	// FaultUnimplemented reports an operation the dispatcher cannot execute.
	FaultUnimplemented FaultCode = 2999 // VM2999
)

// String returns the code as "VM2001" format.
func (c FaultCode) String() string {
	return fmt.Sprintf("VM%d", int(c))
}

// Fault is an unrecoverable execution failure. Faults indicate a builder or
// artifact bug rather than a user-program error; the VM does not continue
// after one.
type Fault struct {
	Code    FaultCode
	Message string
	IP      int           // instruction pointer at the fault
	Op      *ir.Operation // offending operation, nil for construction faults
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Op != nil {
		return fmt.Sprintf("fault %s: %s (ip=%d: %s)", f.Code, f.Message, f.IP, ir.FormatOp(f.Op))
	}
	return fmt.Sprintf("fault %s: %s", f.Code, f.Message)
}

// fault builds a Fault carrying the current instruction context.
func (vm *VM) fault(code FaultCode, msg string) *Fault {
	f := &Fault{Code: code, Message: msg, IP: vm.ip}
	if vm.ip >= 0 && vm.ip < len(vm.artifact.Instructions) {
		f.Op = &vm.artifact.Instructions[vm.ip]
	}
	return f
}
