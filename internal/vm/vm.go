// Package vm executes IR artifacts on a stack of fixed-size register files.
// Global-class registers resolve against the bottom frame, ARP-class
// registers against the top frame; the operand stack carries arguments and
// return values across calls.
package vm

import (
	"fmt"
	"io"

	"langtwo/internal/ir"
)

// DefaultMaxDepth caps the call stack so runaway recursion surfaces as a
// resource-exhaustion fault instead of unbounded growth.
const DefaultMaxDepth = 4096

// Options configures VM execution.
type Options struct {
	Trace    bool      // log each executed instruction
	TraceW   io.Writer // trace destination, required when Trace is set
	MaxDepth int       // call-stack cap; 0 means DefaultMaxDepth
}

// frame is one activation record: a fixed-capacity register file.
type frame struct {
	regs [ir.FrameCapacity]int32
}

// VM executes one artifact. A VM is single-use and owns all of its mutable
// state; two programs run concurrently only on two VMs.
type VM struct {
	artifact *ir.IR
	labels   map[ir.Label]int

	ip      int
	stack   []int32  // operand stack: Push/Pop/PushI only
	returns []int    // return-address stack
	frames  []*frame // frames[0] is the global frame

	opts Options
}

// New scans the instruction list once, resolving every Label operation to
// its instruction index. Duplicate labels are a construction error.
func New(artifact *ir.IR, opts Options) (*VM, error) {
	labels := make(map[ir.Label]int)
	for i := range artifact.Instructions {
		op := &artifact.Instructions[i]
		if op.Kind != ir.OpLabel {
			continue
		}
		if prev, ok := labels[op.Label]; ok {
			return nil, &Fault{
				Code:    FaultDuplicateLabel,
				Message: fmt.Sprintf("label %s defined at both %d and %d", op.Label, prev, i),
				IP:      i,
				Op:      op,
			}
		}
		labels[op.Label] = i
	}

	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &VM{
		artifact: artifact,
		labels:   labels,
		frames:   []*frame{{}},
		opts:     opts,
	}, nil
}

// Run executes until the instruction pointer runs off the end of the list.
// There is no halt instruction. Returns nil on completion or the fault that
// stopped execution.
func (vm *VM) Run() *Fault {
	instrs := vm.artifact.Instructions
	for vm.ip < len(instrs) {
		op := &instrs[vm.ip]
		if vm.opts.Trace {
			fmt.Fprintf(vm.opts.TraceW, "%4d  %s\n", vm.ip, ir.FormatOp(op))
		}
		if fault := vm.step(op); fault != nil {
			return fault
		}
		// Control ops set ip to the target label index; the shared advance
		// moves past it, so execution continues at the following instruction.
		vm.ip++
	}
	return nil
}

func (vm *VM) step(op *ir.Operation) *Fault {
	switch op.Kind {
	case ir.OpLabel:
		// No-op at execution time.
		return nil

	case ir.OpCall:
		if len(vm.frames) >= vm.opts.MaxDepth {
			return vm.fault(FaultCallDepth, fmt.Sprintf("call depth exceeds %d frames", vm.opts.MaxDepth))
		}
		target, ok := vm.labels[op.Label]
		if !ok {
			return vm.fault(FaultUnresolvedLabel, fmt.Sprintf("call target %s is not defined", op.Label))
		}
		vm.returns = append(vm.returns, vm.ip)
		vm.frames = append(vm.frames, &frame{})
		vm.ip = target
		return nil

	case ir.OpReturn:
		if len(vm.returns) == 0 {
			return vm.fault(FaultReturnUnderflow, "return with empty return-address stack")
		}
		if len(vm.frames) <= 1 {
			return vm.fault(FaultFrameUnderflow, "return would pop the global frame")
		}
		vm.ip = vm.returns[len(vm.returns)-1]
		vm.returns = vm.returns[:len(vm.returns)-1]
		vm.frames = vm.frames[:len(vm.frames)-1]
		return nil

	case ir.OpPush:
		val, fault := vm.regGet(op.Reg)
		if fault != nil {
			return fault
		}
		vm.stack = append(vm.stack, val)
		return nil

	case ir.OpPushI:
		vm.stack = append(vm.stack, op.Imm)
		return nil

	case ir.OpPop:
		if len(vm.stack) == 0 {
			return vm.fault(FaultStackUnderflow, "pop from empty operand stack")
		}
		val := vm.stack[len(vm.stack)-1]
		vm.stack = vm.stack[:len(vm.stack)-1]
		return vm.regSet(op.Reg, val)

	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpMod:
		return vm.stepArith(op)

	case ir.OpAddI, ir.OpSubI, ir.OpMulI, ir.OpDivI:
		return vm.stepArithImm(op)

	case ir.OpCmpEq, ir.OpCmpLt, ir.OpCmpLte, ir.OpCmpGt, ir.OpCmpGte:
		return vm.stepCompare(op)

	case ir.OpLoadI:
		return vm.regSet(op.Out, op.Imm)

	case ir.OpI2i:
		val, fault := vm.regGet(op.Lhs)
		if fault != nil {
			return fault
		}
		return vm.regSet(op.Rhs, val)

	case ir.OpJumpI:
		target, ok := vm.labels[op.Label]
		if !ok {
			return vm.fault(FaultUnresolvedLabel, fmt.Sprintf("jump target %s is not defined", op.Label))
		}
		vm.ip = target
		return nil

	case ir.OpCondBranch:
		val, fault := vm.regGet(op.Cond)
		if fault != nil {
			return fault
		}
		// True only on exact 1: this matches the comparison encoding and is
		// deliberately not C-style truthiness.
		label := op.False
		if val == 1 {
			label = op.True
		}
		target, ok := vm.labels[label]
		if !ok {
			return vm.fault(FaultUnresolvedLabel, fmt.Sprintf("branch target %s is not defined", label))
		}
		vm.ip = target
		return nil
	}
	return vm.fault(FaultUnimplemented, fmt.Sprintf("operation kind %d", op.Kind))
}

func (vm *VM) stepArith(op *ir.Operation) *Fault {
	lhs, fault := vm.regGet(op.Lhs)
	if fault != nil {
		return fault
	}
	rhs, fault := vm.regGet(op.Rhs)
	if fault != nil {
		return fault
	}
	result, fault := vm.arith(op.Kind, lhs, rhs)
	if fault != nil {
		return fault
	}
	return vm.regSet(op.Out, result)
}

func (vm *VM) stepArithImm(op *ir.Operation) *Fault {
	lhs, fault := vm.regGet(op.Lhs)
	if fault != nil {
		return fault
	}
	var kind ir.OpKind
	switch op.Kind {
	case ir.OpAddI:
		kind = ir.OpAdd
	case ir.OpSubI:
		kind = ir.OpSub
	case ir.OpMulI:
		kind = ir.OpMul
	case ir.OpDivI:
		kind = ir.OpDiv
	}
	result, fault := vm.arith(kind, lhs, op.Imm)
	if fault != nil {
		return fault
	}
	return vm.regSet(op.Out, result)
}

// arith computes one 32-bit operation; overflow wraps.
func (vm *VM) arith(kind ir.OpKind, lhs, rhs int32) (int32, *Fault) {
	switch kind {
	case ir.OpAdd:
		return lhs + rhs, nil
	case ir.OpSub:
		return lhs - rhs, nil
	case ir.OpMul:
		return lhs * rhs, nil
	case ir.OpDiv:
		if rhs == 0 {
			return 0, vm.fault(FaultDivideByZero, "division by zero")
		}
		return lhs / rhs, nil
	case ir.OpMod:
		if rhs == 0 {
			return 0, vm.fault(FaultDivideByZero, "modulo by zero")
		}
		return lhs % rhs, nil
	}
	return 0, vm.fault(FaultUnimplemented, fmt.Sprintf("arithmetic kind %d", kind))
}

func (vm *VM) stepCompare(op *ir.Operation) *Fault {
	lhs, fault := vm.regGet(op.Lhs)
	if fault != nil {
		return fault
	}
	rhs, fault := vm.regGet(op.Rhs)
	if fault != nil {
		return fault
	}
	var truth bool
	switch op.Kind {
	case ir.OpCmpEq:
		truth = lhs == rhs
	case ir.OpCmpLt:
		truth = lhs < rhs
	case ir.OpCmpLte:
		truth = lhs <= rhs
	case ir.OpCmpGt:
		truth = lhs > rhs
	case ir.OpCmpGte:
		truth = lhs >= rhs
	}
	result := int32(0)
	if truth {
		result = 1
	}
	return vm.regSet(op.Out, result)
}

// regGet resolves a register against its frame: ARP against the top frame,
// global against frame 0.
func (vm *VM) regGet(reg ir.Register) (int32, *Fault) {
	f, fault := vm.frameFor(reg)
	if fault != nil {
		return 0, fault
	}
	return f.regs[reg.Index], nil
}

func (vm *VM) regSet(reg ir.Register, val int32) *Fault {
	f, fault := vm.frameFor(reg)
	if fault != nil {
		return fault
	}
	f.regs[reg.Index] = val
	return nil
}

func (vm *VM) frameFor(reg ir.Register) (*frame, *Fault) {
	if int(reg.Index) >= ir.FrameCapacity {
		return nil, vm.fault(FaultRegRange, fmt.Sprintf("register %s outside frame capacity %d", reg, ir.FrameCapacity))
	}
	if reg.Class == ir.RegArp {
		return vm.frames[len(vm.frames)-1], nil
	}
	return vm.frames[0], nil
}

// Result returns the final program value after Run: the content of the
// artifact's result register, or ok=false if the program had no expression
// result.
func (vm *VM) Result() (int32, bool) {
	if vm.artifact.Result == nil {
		return 0, false
	}
	val, fault := vm.regGet(*vm.artifact.Result)
	if fault != nil {
		return 0, false
	}
	return val, true
}
