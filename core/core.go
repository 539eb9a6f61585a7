package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/duet/instr"
)

// HookPosInstExecuted marks when a machine completes an instruction.
var HookPosInstExecuted = &sim.HookPos{Name: "Inst Executed"}

// HookPosMachineBlocked marks when a machine suspends on an empty channel.
var HookPosMachineBlocked = &sim.HookPos{Name: "Machine Blocked"}

// HookPosMachineHalted marks when a machine stops for good.
var HookPosMachineHalted = &sim.HookPos{Name: "Machine Halted"}

type machineState struct {
	PC        int
	ID        int64
	Mode      Mode
	Code      instr.Program
	Registers *RegisterFile

	Inbound  *Channel
	Outbound *Channel

	SentCount int
	Steps     int
	Blocked   bool
	Halted    bool
	Fault     error

	// Solo mode only.
	Frequency    int64
	HasFrequency bool
	Recovered    bool
}

// Machine is one instance of the register machine. It is an explicit
// resumable state object: every call to Exec or Step continues from the
// stored program counter.
type Machine struct {
	sim.HookableBase

	name    string
	state   machineState
	emu     instEmulator
	quantum int
}

// Name returns the name of the machine.
func (m *Machine) Name() string {
	return m.name
}

// ID returns the instance id the machine was seeded with.
func (m *Machine) ID() int64 {
	return m.state.ID
}

// Mode returns whether the machine runs solo or as half of a duet.
func (m *Machine) Mode() Mode {
	return m.state.Mode
}

// PC returns the index of the next instruction.
func (m *Machine) PC() int {
	return m.state.PC
}

// Registers returns the private register file of the machine.
func (m *Machine) Registers() *RegisterFile {
	return m.state.Registers
}

// Inbound returns the channel the machine receives from.
func (m *Machine) Inbound() *Channel {
	return m.state.Inbound
}

// Outbound returns the channel the machine sends to.
func (m *Machine) Outbound() *Channel {
	return m.state.Outbound
}

// SentCount returns the number of values sent so far.
func (m *Machine) SentCount() int {
	return m.state.SentCount
}

// Steps returns the number of instructions completed so far.
func (m *Machine) Steps() int {
	return m.state.Steps
}

// Blocked returns true if the machine last stopped on an empty channel.
func (m *Machine) Blocked() bool {
	return m.state.Blocked
}

// Halted returns true if the machine will not execute again.
func (m *Machine) Halted() bool {
	return m.state.Halted
}

// Fault returns the error that halted the machine, if any.
func (m *Machine) Fault() error {
	return m.state.Fault
}

// Frequency returns the last value sent in solo mode.
func (m *Machine) Frequency() (int64, bool) {
	return m.state.Frequency, m.state.HasFrequency
}

// Recovered returns true if a solo machine halted on a receive.
func (m *Machine) Recovered() bool {
	return m.state.Recovered
}

// Exec executes the instruction at the program counter.
//
// It returns Blocked without advancing if the instruction is a receive on an
// empty channel, Halted if the machine stopped for good, and Continuing
// otherwise.
func (m *Machine) Exec() Status {
	if m.state.Halted {
		return Halted
	}

	if !m.pcInRange() {
		return m.halt("ProgramEnd")
	}

	inst := m.state.Code[m.state.PC]

	status := m.emu.RunInst(inst, &m.state)
	if status == Blocked {
		m.block(inst)
		return Blocked
	}

	if m.state.Fault != nil {
		return m.halt("Fault")
	}

	m.state.Steps++
	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosInstExecuted,
		Item:   inst,
	})

	switch {
	case m.state.Recovered:
		return m.halt("Recovered")
	case status == Halted, !m.pcInRange():
		return m.halt("ProgramEnd")
	}

	return Continuing
}

// Step runs one turn. The machine executes consecutive instructions until it
// blocks or halts. A turn that reaches the quantum of the machine ends with
// Continuing so that a machine that never waits still yields.
func (m *Machine) Step() Status {
	for n := 0; n < m.quantum; n++ {
		status := m.Exec()
		if status != Continuing {
			return status
		}
	}

	return Continuing
}

func (m *Machine) pcInRange() bool {
	return m.state.PC >= 0 && m.state.PC < len(m.state.Code)
}

func (m *Machine) block(inst instr.Inst) {
	Trace("Machine",
		"Behavior", "Block",
		"Name", m.name,
		"PC", m.state.PC,
		"Inst", inst.String(),
		"Channel", m.state.Inbound.Name(),
	)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosMachineBlocked,
		Item:   inst,
	})
}

func (m *Machine) halt(reason string) Status {
	m.state.Halted = true
	m.state.Blocked = false

	Trace("Machine",
		"Behavior", "Halt",
		"Name", m.name,
		"Reason", reason,
		"PC", m.state.PC,
		"Steps", m.state.Steps,
		"Sent", m.state.SentCount,
	)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosMachineHalted,
		Item:   reason,
	})

	return Halted
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s(id=%d, pc=%d, sent=%d)",
		m.name, m.state.ID, m.state.PC, m.state.SentCount)
}
