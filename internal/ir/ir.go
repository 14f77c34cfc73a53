// Package ir defines the ILOC-style intermediate representation shared by
// the builder and the VM: two register address classes (global and
// activation-record-relative), named and numbered labels, and a flat
// instruction stream with explicit stack-based call sequences.
package ir

// IR is a compiled artifact: an ordered instruction sequence plus the
// register holding the value of the last top-level expression statement.
// Result is nil when the program produced no expression result.
type IR struct {
	Instructions []Operation
	Result       *Register
}

// New creates an artifact. result may be nil.
func New(instructions []Operation, result *Register) *IR {
	return &IR{Instructions: instructions, Result: result}
}
