// Package api runs duet programs, either on a single machine that recovers a
// frequency or on a pair of machines that talk through channels.
package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/core"
	"github.com/sarchlab/duet/instr"
)

var (
	// ErrNoFrequency is returned when a solo run leaves the program without
	// recovering a frequency.
	ErrNoFrequency = errors.New("no frequency recovered")

	// ErrDidNotConverge is returned when a run reaches its turn or step
	// ceiling before it terminates.
	ErrDidNotConverge = errors.New("run did not converge")
)

// Driver runs programs.
type Driver interface {
	// RunSolo runs the program on one machine and returns the frequency
	// recovered by the first receive on a non-zero register.
	RunSolo(prog instr.Program) (int64, error)

	// RunPair runs two copies of the program, with ids 0 and 1, until they
	// deadlock or halt. It returns the number of values sent by machine 1.
	RunPair(prog instr.Program) (int, error)

	// RunPairResult is like RunPair but returns the full result.
	RunPairResult(prog instr.Program) (Result, error)
}

type driverImpl struct {
	name       string
	maxTurns   int
	maxSteps   int
	maxQueued  int
	quantum    int
	idRegister string
	hooks      []sim.Hook
}

func (d *driverImpl) RunSolo(prog instr.Program) (int64, error) {
	m := d.machineBuilder(prog).Build(d.name + ".Solo")

	for !m.Halted() && m.Steps() < d.maxSteps {
		m.Exec()
	}

	core.LogState(m)

	if err := m.Fault(); err != nil {
		return 0, fmt.Errorf("%s: %w", m.Name(), err)
	}

	if !m.Halted() {
		return 0, fmt.Errorf("%w: %d steps executed without recovery",
			ErrDidNotConverge, m.Steps())
	}

	if !m.Recovered() {
		return 0, fmt.Errorf("%w: program ended at pc %d after %d steps",
			ErrNoFrequency, m.PC(), m.Steps())
	}

	freq, _ := m.Frequency()

	slog.Debug("Recovered",
		"Driver", d.name,
		"Frequency", freq,
		"Steps", m.Steps(),
	)

	return freq, nil
}

func (d *driverImpl) RunPair(prog instr.Program) (int, error) {
	result, err := d.RunPairResult(prog)
	if err != nil {
		return 0, err
	}

	return result.Sent[1], nil
}

func (d *driverImpl) RunPairResult(prog instr.Program) (Result, error) {
	return d.newScheduler(prog).Run()
}

func (d *driverImpl) machineBuilder(prog instr.Program) core.Builder {
	b := core.NewBuilder().
		WithProgram(prog).
		WithIDRegister(d.idRegister).
		WithQuantum(d.quantum)

	for _, h := range d.hooks {
		b = b.WithHook(h)
	}

	return b
}

func (d *driverImpl) newScheduler(prog instr.Program) *Scheduler {
	c01 := core.NewChannel("0->1")
	c10 := core.NewChannel("1->0")

	for _, h := range d.hooks {
		c01.AcceptHook(h)
		c10.AcceptHook(h)
	}

	b := d.machineBuilder(prog)
	m0 := b.WithID(0).WithInbound(c10).WithOutbound(c01).Build(d.name + ".M0")
	m1 := b.WithID(1).WithInbound(c01).WithOutbound(c10).Build(d.name + ".M1")

	return &Scheduler{
		name:      d.name + ".Scheduler",
		machines:  [2]*core.Machine{m0, m1},
		channels:  [2]*core.Channel{c01, c10},
		maxTurns:  d.maxTurns,
		maxSteps:  d.maxSteps,
		maxQueued: d.maxQueued,
	}
}

// RunSolo runs the program on one machine with default settings.
func RunSolo(prog instr.Program) (int64, error) {
	return DriverBuilder{}.Build("Driver").RunSolo(prog)
}

// RunPair runs the program on two machines with default settings and
// returns the number of values sent by machine 1.
func RunPair(prog instr.Program) (int, error) {
	return DriverBuilder{}.Build("Driver").RunPair(prog)
}
