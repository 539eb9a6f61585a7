package program

import "github.com/sarchlab/duet/instr"

// InstFormat describes how the operands of an instruction are written.
type InstFormat struct {
	Op instr.Opcode

	// NumOperands is the number of operands that must follow the mnemonic.
	NumOperands int

	// DstIsRegister is set if the first operand names the register being
	// written, so a literal is rejected there.
	DstIsRegister bool
}

// ISA maps mnemonics to instruction formats.
type ISA struct {
	isaName      string
	nameToFormat map[string]InstFormat
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		nameToFormat: make(map[string]InstFormat),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Lookup returns the format of a mnemonic.
func (isa *ISA) Lookup(mnemonic string) (InstFormat, bool) {
	f, ok := isa.nameToFormat[mnemonic]
	return f, ok
}

func (isa *ISA) registerNewInst(op instr.Opcode, dstIsRegister bool) {
	isa.nameToFormat[op.Name()] = InstFormat{
		Op:            op,
		NumOperands:   op.Arity(),
		DstIsRegister: dstIsRegister,
	}
}

var defaultISA = newDefaultISA()

func newDefaultISA() *ISA {
	isa := NewISA("Duet")

	isa.registerNewInst(instr.OpSnd, false)
	isa.registerNewInst(instr.OpSet, true)
	isa.registerNewInst(instr.OpAdd, true)
	isa.registerNewInst(instr.OpMul, true)
	isa.registerNewInst(instr.OpMod, true)
	isa.registerNewInst(instr.OpRcv, true)
	isa.registerNewInst(instr.OpJgz, false)

	return isa
}

// DefaultISA returns the instruction set understood by the decoder.
func DefaultISA() *ISA {
	return defaultISA
}
