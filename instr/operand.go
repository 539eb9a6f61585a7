package instr

import "strconv"

// OperandKind tells how an operand produces its value.
type OperandKind int

const (
	// None marks the zero Operand, used by instructions with one operand.
	None OperandKind = iota
	// Register operands read the named register of the executing machine.
	Register
	// Literal operands carry their value inline.
	Literal
)

// Operand is a value reference. It is either a named register or an integer
// literal and never changes after construction.
type Operand struct {
	Kind  OperandKind
	Name  string
	Value int64
}

// A RegisterReader can look up register values. Absent registers read as 0.
type RegisterReader interface {
	Read(name string) int64
}

// Reg creates a register operand.
func Reg(name string) Operand {
	if name == "" {
		panic("register name must not be empty")
	}

	return Operand{Kind: Register, Name: name}
}

// Lit creates a literal operand.
func Lit(v int64) Operand {
	return Operand{Kind: Literal, Value: v}
}

// IsRegister returns true if the operand names a register.
func (o Operand) IsRegister() bool {
	return o.Kind == Register
}

// IsLiteral returns true if the operand carries an inline value.
func (o Operand) IsLiteral() bool {
	return o.Kind == Literal
}

// Resolve returns the value of the operand. Registers are read from regs.
func (o Operand) Resolve(regs RegisterReader) int64 {
	switch o.Kind {
	case Register:
		return regs.Read(o.Name)
	case Literal:
		return o.Value
	default:
		panic("cannot resolve an empty operand")
	}
}

func (o Operand) String() string {
	switch o.Kind {
	case Register:
		return o.Name
	case Literal:
		return strconv.FormatInt(o.Value, 10)
	default:
		return ""
	}
}
