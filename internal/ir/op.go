package ir

// OpKind enumerates instruction kinds.
type OpKind uint8

const (
	// OpLabel marks a branch target. No-op at execution time; the VM only
	// uses it to build the label-to-index map.
	OpLabel OpKind = iota
	// OpCall transfers to a label, saving the return address and pushing a
	// fresh frame.
	OpCall
	// OpReturn pops the return address and the topmost frame.
	OpReturn

	// OpPush pushes a register value onto the operand stack.
	OpPush
	// OpPushI pushes an immediate onto the operand stack.
	OpPushI
	// OpPop pops the operand stack into a register.
	OpPop

	// OpAdd..OpMod are register-register arithmetic: out = lhs <op> rhs.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// OpAddI..OpDivI are register-immediate arithmetic variants. They are
	// part of the model but not emitted by the current lowering.
	OpAddI
	OpSubI
	OpMulI
	OpDivI

	// OpCmpEq..OpCmpGte write 1 (true) or 0 (false) into out.
	OpCmpEq
	OpCmpLt
	OpCmpLte
	OpCmpGt
	OpCmpGte

	// OpLoadI writes an immediate into out.
	OpLoadI
	// OpI2i copies register Lhs into register Rhs.
	OpI2i

	// OpJumpI transfers unconditionally to a label.
	OpJumpI
	// OpCondBranch reads Cond and transfers to True when its value equals 1,
	// otherwise to False. There is no fallthrough.
	OpCondBranch
)

var opNames = map[OpKind]string{
	OpLabel:      "label",
	OpCall:       "call",
	OpReturn:     "return",
	OpPush:       "push",
	OpPushI:      "pushI",
	OpPop:        "pop",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpMod:        "mod",
	OpAddI:       "addI",
	OpSubI:       "subI",
	OpMulI:       "mulI",
	OpDivI:       "divI",
	OpCmpEq:      "cmp_EQ",
	OpCmpLt:      "cmp_LT",
	OpCmpLte:     "cmp_LE",
	OpCmpGt:      "cmp_GT",
	OpCmpGte:     "cmp_GE",
	OpLoadI:      "loadI",
	OpI2i:        "i2i",
	OpJumpI:      "jumpI",
	OpCondBranch: "cbr",
}

func (k OpKind) String() string {
	if name, ok := opNames[k]; ok {
		return name
	}
	return "unknown"
}

// Operation is one IR instruction. Exactly the fields relevant to Kind are
// set; the struct is flat so artifacts serialize without custom codecs.
type Operation struct {
	Kind OpKind

	Label Label    // OpLabel, OpCall, OpJumpI
	Reg   Register // OpPush, OpPop
	Imm   int32    // OpPushI, OpLoadI, rhs of the *I arithmetic variants

	Lhs Register // arithmetic/comparison lhs; OpI2i source
	Rhs Register // arithmetic/comparison rhs; OpI2i destination
	Out Register // arithmetic/comparison destination; OpLoadI destination

	Cond  Register // OpCondBranch
	True  Label    // OpCondBranch
	False Label    // OpCondBranch
}

// Constructors keep lowering code close to the instruction mnemonics.

func MkLabel(l Label) Operation  { return Operation{Kind: OpLabel, Label: l} }
func Call(l Label) Operation     { return Operation{Kind: OpCall, Label: l} }
func Return() Operation          { return Operation{Kind: OpReturn} }
func Push(r Register) Operation  { return Operation{Kind: OpPush, Reg: r} }
func PushI(v int32) Operation    { return Operation{Kind: OpPushI, Imm: v} }
func Pop(r Register) Operation   { return Operation{Kind: OpPop, Reg: r} }
func JumpI(l Label) Operation    { return Operation{Kind: OpJumpI, Label: l} }

func LoadI(v int32, out Register) Operation {
	return Operation{Kind: OpLoadI, Imm: v, Out: out}
}

func I2i(lhs, rhs Register) Operation {
	return Operation{Kind: OpI2i, Lhs: lhs, Rhs: rhs}
}

// Bin builds a register-register arithmetic or comparison instruction.
func Bin(kind OpKind, lhs, rhs, out Register) Operation {
	return Operation{Kind: kind, Lhs: lhs, Rhs: rhs, Out: out}
}

func CondBranch(cond Register, labelTrue, labelFalse Label) Operation {
	return Operation{Kind: OpCondBranch, Cond: cond, True: labelTrue, False: labelFalse}
}
