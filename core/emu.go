package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/duet/instr"
)

// ErrModuloByZero is the fault raised by a mod instruction with a zero
// divisor.
var ErrModuloByZero = errors.New("modulo by zero")

type instEmulator struct {
}

// RunInst executes one instruction against the state. It advances the program
// counter unless the instruction blocks, jumps or halts.
func (i instEmulator) RunInst(inst instr.Inst, state *machineState) Status {
	switch inst.Op {
	case instr.OpSnd:
		return i.runSnd(inst, state)
	case instr.OpSet:
		return i.runSet(inst, state)
	case instr.OpAdd:
		return i.runAdd(inst, state)
	case instr.OpMul:
		return i.runMul(inst, state)
	case instr.OpMod:
		return i.runMod(inst, state)
	case instr.OpRcv:
		return i.runRcv(inst, state)
	case instr.OpJgz:
		return i.runJgz(inst, state)
	default:
		panic(fmt.Sprintf("unknown instruction %d at PC %d", int(inst.Op), state.PC))
	}
}

func (i instEmulator) runSnd(inst instr.Inst, state *machineState) Status {
	v := inst.Src.Resolve(state.Registers)

	if state.Mode == SoloMode {
		state.Frequency = v
		state.HasFrequency = true
		state.PC++

		return Continuing
	}

	state.Outbound.Enqueue(v)
	state.SentCount++
	state.PC++

	Trace("DataFlow",
		"Behavior", "Send",
		"ID", state.ID,
		"Data", v,
		"Channel", state.Outbound.Name(),
		"Sent", state.SentCount,
	)

	return Continuing
}

func (i instEmulator) runSet(inst instr.Inst, state *machineState) Status {
	state.Registers.Write(inst.Dst.Name, inst.Src.Resolve(state.Registers))
	state.PC++

	return Continuing
}

func (i instEmulator) runAdd(inst instr.Inst, state *machineState) Status {
	dst := inst.Dst.Name
	state.Registers.Write(dst,
		state.Registers.Read(dst)+inst.Src.Resolve(state.Registers))
	state.PC++

	return Continuing
}

func (i instEmulator) runMul(inst instr.Inst, state *machineState) Status {
	dst := inst.Dst.Name
	state.Registers.Write(dst,
		state.Registers.Read(dst)*inst.Src.Resolve(state.Registers))
	state.PC++

	return Continuing
}

func (i instEmulator) runMod(inst instr.Inst, state *machineState) Status {
	dst := inst.Dst.Name

	divisor := inst.Src.Resolve(state.Registers)
	if divisor == 0 {
		state.Fault = fmt.Errorf("%w: %q at pc %d", ErrModuloByZero, inst.String(), state.PC)
		return Halted
	}

	state.Registers.Write(dst, state.Registers.Read(dst)%divisor)
	state.PC++

	return Continuing
}

func (i instEmulator) runRcv(inst instr.Inst, state *machineState) Status {
	dst := inst.Dst.Name

	if state.Mode == SoloMode {
		// A receive only recovers once something was sent and the register
		// is non-zero. Otherwise it does nothing.
		if state.Registers.Read(dst) != 0 && state.HasFrequency {
			state.Registers.Write(dst, state.Frequency)
			state.Recovered = true

			Trace("DataFlow",
				"Behavior", "Recover",
				"Data", state.Frequency,
				"PC", state.PC,
			)

			return Halted
		}

		state.PC++

		return Continuing
	}

	v, ok := state.Inbound.TryDequeue()
	if !ok {
		state.Blocked = true
		return Blocked
	}

	state.Registers.Write(dst, v)
	state.Blocked = false
	state.PC++

	Trace("DataFlow",
		"Behavior", "Recv",
		"ID", state.ID,
		"Data", v,
		"Channel", state.Inbound.Name(),
	)

	return Continuing
}

func (i instEmulator) runJgz(inst instr.Inst, state *machineState) Status {
	if inst.Dst.Resolve(state.Registers) > 0 {
		state.PC += int(inst.Src.Resolve(state.Registers))
		return Continuing
	}

	state.PC++

	return Continuing
}
