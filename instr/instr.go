// Package instr defines the instruction set of the duet register machine.
package instr

import (
	"fmt"
	"strings"
)

// Opcode identifies the operation of an instruction.
type Opcode int

// The seven operations understood by the machine.
const (
	OpInvalid Opcode = iota
	OpSnd
	OpSet
	OpAdd
	OpMul
	OpMod
	OpRcv
	OpJgz
)

var opcodeNames = [...]string{
	OpInvalid: "invalid",
	OpSnd:     "snd",
	OpSet:     "set",
	OpAdd:     "add",
	OpMul:     "mul",
	OpMod:     "mod",
	OpRcv:     "rcv",
	OpJgz:     "jgz",
}

// Name returns the mnemonic of the opcode.
func (op Opcode) Name() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		panic(fmt.Sprintf("invalid opcode %d", int(op)))
	}

	return opcodeNames[op]
}

func (op Opcode) String() string {
	return op.Name()
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	switch op {
	case OpSnd, OpRcv:
		return 1
	case OpSet, OpAdd, OpMul, OpMod, OpJgz:
		return 2
	default:
		panic(fmt.Sprintf("invalid opcode %d", int(op)))
	}
}

// Inst is one decoded instruction.
//
// Operand placement depends on the opcode:
//
//	snd src        -> Src
//	rcv dst        -> Dst
//	set/add/mul/mod dst src
//	jgz cond offset -> Dst=cond, Src=offset
type Inst struct {
	Op  Opcode
	Dst Operand
	Src Operand
}

// Snd creates an instruction that sends the value of src.
func Snd(src Operand) Inst {
	return Inst{Op: OpSnd, Src: src}
}

// Set creates an instruction that copies src into the register dst.
func Set(dst string, src Operand) Inst {
	return Inst{Op: OpSet, Dst: Reg(dst), Src: src}
}

// Add creates an instruction that adds src to the register dst.
func Add(dst string, src Operand) Inst {
	return Inst{Op: OpAdd, Dst: Reg(dst), Src: src}
}

// Mul creates an instruction that multiplies the register dst by src.
func Mul(dst string, src Operand) Inst {
	return Inst{Op: OpMul, Dst: Reg(dst), Src: src}
}

// Mod creates an instruction that replaces the register dst with dst % src.
func Mod(dst string, src Operand) Inst {
	return Inst{Op: OpMod, Dst: Reg(dst), Src: src}
}

// Rcv creates an instruction that receives a value into the register dst.
func Rcv(dst string) Inst {
	return Inst{Op: OpRcv, Dst: Reg(dst)}
}

// Jgz creates an instruction that jumps by offset if cond is positive.
func Jgz(cond, offset Operand) Inst {
	return Inst{Op: OpJgz, Dst: cond, Src: offset}
}

// Operands returns the operands in source order.
func (i Inst) Operands() []Operand {
	switch i.Op {
	case OpSnd:
		return []Operand{i.Src}
	case OpRcv:
		return []Operand{i.Dst}
	default:
		return []Operand{i.Dst, i.Src}
	}
}

func (i Inst) String() string {
	parts := []string{i.Op.Name()}
	for _, o := range i.Operands() {
		parts = append(parts, o.String())
	}

	return strings.Join(parts, " ")
}

// Program is an ordered, read-only sequence of instructions.
type Program []Inst

func (p Program) String() string {
	lines := make([]string, len(p))
	for i, inst := range p {
		lines[i] = inst.String()
	}

	return strings.Join(lines, "\n")
}
