package api

import (
	"slices"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/core"
	"github.com/sarchlab/duet/instr"
)

// DefaultMaxTurns is the turn ceiling of a pair run.
const DefaultMaxTurns = 1_000_000

// DefaultMaxSteps is the instruction ceiling of a solo run, and of both
// machines together in a pair run.
const DefaultMaxSteps = 10_000_000

// DefaultMaxQueued is how many values may wait in one channel of a pair run.
const DefaultMaxQueued = 1 << 16

// DriverBuilder creates a new instance of Driver. The zero value builds a
// driver with default settings.
type DriverBuilder struct {
	maxTurns   int
	maxSteps   int
	maxQueued  int
	quantum    int
	idRegister string
	hooks      []sim.Hook
}

// WithMaxTurns sets how many turns a pair run may take.
func (b DriverBuilder) WithMaxTurns(n int) DriverBuilder {
	b.maxTurns = n
	return b
}

// WithMaxSteps sets how many instructions a solo run, or both machines of a
// pair run together, may execute.
func (b DriverBuilder) WithMaxSteps(n int) DriverBuilder {
	b.maxSteps = n
	return b
}

// WithMaxQueued sets how many values may wait in one channel of a pair run.
func (b DriverBuilder) WithMaxQueued(n int) DriverBuilder {
	b.maxQueued = n
	return b
}

// WithQuantum sets how many instructions a machine may execute in one turn of
// a pair run.
func (b DriverBuilder) WithQuantum(n int) DriverBuilder {
	b.quantum = n
	return b
}

// WithIDRegister sets the register that holds the machine id in a pair run.
func (b DriverBuilder) WithIDRegister(name string) DriverBuilder {
	b.idRegister = name
	return b
}

// WithHook registers a hook on every machine and channel the driver creates.
func (b DriverBuilder) WithHook(h sim.Hook) DriverBuilder {
	b.hooks = append(slices.Clip(b.hooks), h)
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build(name string) Driver {
	return b.build(name)
}

// BuildScheduler creates a scheduler for one pair run of the program.
func (b DriverBuilder) BuildScheduler(name string, prog instr.Program) *Scheduler {
	return b.build(name).newScheduler(prog)
}

func (b DriverBuilder) build(name string) *driverImpl {
	d := &driverImpl{
		name:       name,
		maxTurns:   b.maxTurns,
		maxSteps:   b.maxSteps,
		maxQueued:  b.maxQueued,
		quantum:    b.quantum,
		idRegister: b.idRegister,
		hooks:      b.hooks,
	}

	if d.maxTurns <= 0 {
		d.maxTurns = DefaultMaxTurns
	}

	if d.maxSteps <= 0 {
		d.maxSteps = DefaultMaxSteps
	}

	if d.maxQueued <= 0 {
		d.maxQueued = DefaultMaxQueued
	}

	if d.quantum <= 0 {
		d.quantum = core.DefaultQuantum
	}

	if d.idRegister == "" {
		d.idRegister = core.DefaultIDRegister
	}

	return d
}
