package api

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/duet/core"
)

// Scheduler interleaves two machines on a single thread. Machine 0 goes
// first and the machines alternate turns. A halted machine is skipped. A
// blocked machine keeps its turn so that it can retry its receive.
//
// Besides the turn ceiling, a run is bounded by the instructions both
// machines executed together and by the number of values waiting in a
// channel.
//
// The scheduler owns both machines and both channels. Once the run has
// terminated, further calls to Run return the same result without executing
// anything.
type Scheduler struct {
	name      string
	machines  [2]*core.Machine
	channels  [2]*core.Channel
	maxTurns  int
	maxSteps  int
	maxQueued int

	next   int
	result Result
	err    error
}

// Name returns the name of the scheduler.
func (s *Scheduler) Name() string {
	return s.name
}

// Machine returns the machine with the given id.
func (s *Scheduler) Machine(id int) *core.Machine {
	return s.machines[id]
}

// Machines returns both machines, indexed by id.
func (s *Scheduler) Machines() []*core.Machine {
	return s.machines[:]
}

// Channels returns the channel from 0 to 1 and the channel from 1 to 0.
func (s *Scheduler) Channels() []*core.Channel {
	return s.channels[:]
}

// Result returns the result so far.
func (s *Scheduler) Result() Result {
	return s.result
}

// Run gives turns to the machines until the pair terminates, a machine
// faults, or the turn ceiling is reached.
func (s *Scheduler) Run() (Result, error) {
	for {
		if s.err != nil {
			return s.result, s.err
		}

		if s.result.Outcome != Running {
			return s.result, nil
		}

		if outcome := s.terminalOutcome(); outcome != Running {
			s.finish(outcome)
			return s.result, nil
		}

		if err := s.checkCeilings(); err != nil {
			return s.result, err
		}

		s.turn()
	}
}

func (s *Scheduler) checkCeilings() error {
	if s.result.Turns >= s.maxTurns {
		return fmt.Errorf("%w: %d turns taken, %d and %d values sent",
			ErrDidNotConverge, s.result.Turns, s.result.Sent[0], s.result.Sent[1])
	}

	steps := s.machines[0].Steps() + s.machines[1].Steps()
	if steps >= s.maxSteps {
		return fmt.Errorf("%w: %d steps executed in %d turns",
			ErrDidNotConverge, steps, s.result.Turns)
	}

	for _, c := range s.channels {
		if c.Len() > s.maxQueued {
			return fmt.Errorf("%w: %d values waiting in channel %s after %d turns",
				ErrDidNotConverge, c.Len(), c.Name(), s.result.Turns)
		}
	}

	return nil
}

func (s *Scheduler) turn() {
	id := s.next
	s.next = 1 - s.next

	m := s.machines[id]
	if m.Halted() {
		return
	}

	status := m.Step()
	s.result.Turns++
	s.result.Sent[id] = m.SentCount()

	core.Trace("Scheduler",
		"Behavior", "Turn",
		"Turn", s.result.Turns,
		"Machine", m.Name(),
		"Status", status,
		"PC", m.PC(),
		"Sent", m.SentCount(),
	)

	if err := m.Fault(); err != nil {
		s.err = fmt.Errorf("%s: %w", m.Name(), err)
		s.finish(Faulted)
	}
}

// terminalOutcome checks whether any machine can still make progress. A
// blocked machine can only progress if its inbound channel has data or its
// peer can still send.
func (s *Scheduler) terminalOutcome() Outcome {
	m0, m1 := s.machines[0], s.machines[1]

	stuck0 := m0.Blocked() && m0.Inbound().Empty()
	stuck1 := m1.Blocked() && m1.Inbound().Empty()

	switch {
	case m0.Halted() && m1.Halted():
		return BothHalted
	case stuck0 && stuck1:
		return Deadlock
	case m0.Halted() && stuck1, m1.Halted() && stuck0:
		return HaltedAndBlocked
	}

	return Running
}

func (s *Scheduler) finish(outcome Outcome) {
	s.result.Outcome = outcome

	slog.Debug("Scheduler",
		"Behavior", "Terminate",
		"Name", s.name,
		"Outcome", outcome,
		"Turns", s.result.Turns,
		"Sent0", s.result.Sent[0],
		"Sent1", s.result.Sent[1],
	)

	for _, m := range s.machines {
		core.LogState(m)
	}
}
