package ir

import "fmt"

// LabelClass distinguishes the two label naming classes.
type LabelClass uint8

const (
	// LabelNamed is a function entry label keyed by function name.
	LabelNamed LabelClass = iota
	// LabelNumbered is an anonymous, monotonically assigned label.
	LabelNumbered
)

// Label is a branch target. Labels are comparable and usable as map keys.
type Label struct {
	Class LabelClass
	Name  string
	Num   uint32
}

// Named returns the function entry label for name.
func Named(name string) Label {
	return Label{Class: LabelNamed, Name: name}
}

// Numbered returns the anonymous label n.
func Numbered(n uint32) Label {
	return Label{Class: LabelNumbered, Num: n}
}

func (l Label) String() string {
	if l.Class == LabelNamed {
		return "@" + l.Name
	}
	return fmt.Sprintf("L%d", l.Num)
}
