package core

import (
	"slices"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/instr"
)

// DefaultIDRegister is the register that holds the instance id of a duet
// machine.
const DefaultIDRegister = "p"

// DefaultQuantum is the number of instructions a machine may run in one turn
// before it yields.
const DefaultQuantum = 1 << 16

// Builder can create new machines.
type Builder struct {
	program    instr.Program
	id         int64
	idRegister string
	inbound    *Channel
	outbound   *Channel
	quantum    int
	hooks      []sim.Hook
}

// NewBuilder creates a builder with default settings.
func NewBuilder() Builder {
	return Builder{
		idRegister: DefaultIDRegister,
		quantum:    DefaultQuantum,
	}
}

// WithProgram sets the program the machine runs. The program is shared and
// never modified.
func (b Builder) WithProgram(program instr.Program) Builder {
	b.program = program
	return b
}

// WithID sets the instance id of a duet machine.
func (b Builder) WithID(id int64) Builder {
	b.id = id
	return b
}

// WithIDRegister sets the register that is seeded with the instance id.
func (b Builder) WithIDRegister(name string) Builder {
	if name == "" {
		panic("id register must not be empty")
	}

	b.idRegister = name
	return b
}

// WithInbound sets the channel the machine receives from.
func (b Builder) WithInbound(c *Channel) Builder {
	b.inbound = c
	return b
}

// WithOutbound sets the channel the machine sends to.
func (b Builder) WithOutbound(c *Channel) Builder {
	b.outbound = c
	return b
}

// WithQuantum sets how many instructions may run in one turn.
func (b Builder) WithQuantum(n int) Builder {
	if n <= 0 {
		panic("quantum must be positive")
	}

	b.quantum = n
	return b
}

// WithHook registers a hook on the machine.
func (b Builder) WithHook(h sim.Hook) Builder {
	b.hooks = append(slices.Clip(b.hooks), h)
	return b
}

// Build creates a machine. A machine with both channels runs in duet mode and
// has its id register seeded. A machine without channels runs solo.
func (b Builder) Build(name string) *Machine {
	if b.program == nil {
		panic("program is not set")
	}

	if (b.inbound == nil) != (b.outbound == nil) {
		panic("a duet machine needs both an inbound and an outbound channel")
	}

	m := &Machine{
		name:    name,
		quantum: b.quantum,
	}

	m.state = machineState{
		ID:        b.id,
		Mode:      SoloMode,
		Code:      b.program,
		Registers: NewRegisterFile(),
		Inbound:   b.inbound,
		Outbound:  b.outbound,
	}

	if b.inbound != nil {
		m.state.Mode = DuetMode
		m.state.Registers.Write(b.idRegister, b.id)
	}

	for _, h := range b.hooks {
		m.AcceptHook(h)
	}

	return m
}
