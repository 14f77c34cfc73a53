package ir

import "fmt"

// FrameCapacity is the fixed register-file size of one activation record.
// The builder bounds-checks allocation against it; the VM sizes frames with it.
const FrameCapacity = 256

// RegClass distinguishes the two register address classes.
type RegClass uint8

const (
	// RegGlobal addresses slot N of the bottom (frame 0) register file.
	RegGlobal RegClass = iota
	// RegArp addresses slot N relative to the active frame (ARP + offset).
	RegArp
)

// Register identifies one storage slot. Identity is purely positional;
// every slot holds a 32-bit signed integer.
type Register struct {
	Class RegClass
	Index uint16
}

// Global returns the global-class register for slot n.
func Global(n uint16) Register {
	return Register{Class: RegGlobal, Index: n}
}

// Arp returns the frame-relative register for slot n.
func Arp(n uint16) Register {
	return Register{Class: RegArp, Index: n}
}

func (r Register) String() string {
	if r.Class == RegArp {
		return fmt.Sprintf("arp+%d", r.Index)
	}
	return fmt.Sprintf("r%d", r.Index)
}
