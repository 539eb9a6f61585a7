// Package program turns duet assembly text into instruction lists.
//
// A program is one instruction per line, "<opcode> <operand> [<operand>]".
// An operand is either a single letter, naming a register, or a signed
// decimal integer. Blank lines and lines starting with '#' are skipped.
package program

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/duet/instr"
)

// ParseError reports a line that is not a valid instruction.
type ParseError struct {
	// Line is the 1-based source line, or 0 if the text was not read from a
	// multi-line source.
	Line   int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Token)
	}

	return fmt.Sprintf("%s: %q", e.Reason, e.Token)
}

// ParseLine decodes a single instruction.
func ParseLine(line string) (instr.Inst, error) {
	return defaultISA.ParseLine(line)
}

// ParseLine decodes a single instruction against the ISA.
func (isa *ISA) ParseLine(line string) (instr.Inst, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return instr.Inst{}, &ParseError{Token: line, Reason: "empty instruction"}
	}

	format, ok := isa.Lookup(fields[0])
	if !ok {
		return instr.Inst{}, &ParseError{Token: fields[0], Reason: "unknown opcode"}
	}

	if len(fields)-1 != format.NumOperands {
		return instr.Inst{}, &ParseError{
			Token:  strings.TrimSpace(line),
			Reason: fmt.Sprintf("%s takes %d operand(s), got %d",
				fields[0], format.NumOperands, len(fields)-1),
		}
	}

	operands := make([]instr.Operand, 0, format.NumOperands)
	for _, tok := range fields[1:] {
		op, err := parseOperand(tok)
		if err != nil {
			return instr.Inst{}, err
		}

		operands = append(operands, op)
	}

	if format.DstIsRegister && !operands[0].IsRegister() {
		return instr.Inst{}, &ParseError{
			Token:  fields[1],
			Reason: fmt.Sprintf("%s needs a register to write", fields[0]),
		}
	}

	return buildInst(format.Op, operands), nil
}

func buildInst(op instr.Opcode, operands []instr.Operand) instr.Inst {
	switch op {
	case instr.OpSnd:
		return instr.Snd(operands[0])
	case instr.OpSet:
		return instr.Set(operands[0].Name, operands[1])
	case instr.OpAdd:
		return instr.Add(operands[0].Name, operands[1])
	case instr.OpMul:
		return instr.Mul(operands[0].Name, operands[1])
	case instr.OpMod:
		return instr.Mod(operands[0].Name, operands[1])
	case instr.OpRcv:
		return instr.Rcv(operands[0].Name)
	case instr.OpJgz:
		return instr.Jgz(operands[0], operands[1])
	default:
		panic("invalid opcode")
	}
}

func parseOperand(tok string) (instr.Operand, error) {
	if len(tok) == 1 && isLetter(tok[0]) {
		return instr.Reg(tok), nil
	}

	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return instr.Operand{}, &ParseError{
			Token:  tok,
			Reason: "operand is neither a register nor an integer",
		}
	}

	return instr.Lit(v), nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Parse decodes a whole program. Decoding stops at the first bad line.
func Parse(r io.Reader) (instr.Program, error) {
	return defaultISA.Parse(r)
}

// Parse decodes a whole program against the ISA.
func (isa *ISA) Parse(r io.Reader) (instr.Program, error) {
	prog := instr.Program{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		if skipLine(scanner.Text()) {
			continue
		}

		inst, err := isa.ParseLine(scanner.Text())
		if err != nil {
			err.(*ParseError).Line = lineNo
			return nil, err
		}

		prog = append(prog, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("program: read: %w", err)
	}

	return prog, nil
}

// ParseString decodes a program held in a string.
func ParseString(text string) (instr.Program, error) {
	return Parse(strings.NewReader(text))
}

// ParseLines decodes a program given as one instruction per element.
func ParseLines(lines []string) (instr.Program, error) {
	prog := make(instr.Program, 0, len(lines))

	for i, line := range lines {
		if skipLine(line) {
			continue
		}

		inst, err := ParseLine(line)
		if err != nil {
			err.(*ParseError).Line = i + 1
			return nil, err
		}

		prog = append(prog, inst)
	}

	return prog, nil
}

// MustParseString is like ParseString but panics on error. It is meant for
// programs embedded in the binary.
func MustParseString(text string) instr.Program {
	prog, err := ParseString(text)
	if err != nil {
		panic(err)
	}

	return prog
}

func skipLine(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}
