package api

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Outcome tells how a pair run ended.
type Outcome int

const (
	// Running means the run has not terminated yet.
	Running Outcome = iota
	// Deadlock means both machines wait on empty channels.
	Deadlock
	// BothHalted means both machines stopped for good.
	BothHalted
	// HaltedAndBlocked means one machine stopped and the other waits on a
	// channel that nothing can fill any more.
	HaltedAndBlocked
	// Faulted means a machine hit a runtime fault.
	Faulted
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Deadlock:
		return "Deadlock"
	case BothHalted:
		return "BothHalted"
	case HaltedAndBlocked:
		return "HaltedAndBlocked"
	case Faulted:
		return "Faulted"
	default:
		panic("invalid outcome")
	}
}

// Result is the outcome of a pair run.
type Result struct {
	// Sent holds the number of values each machine sent, indexed by id.
	Sent [2]int

	// Turns is the number of turns that were given to a machine. Turns
	// skipped because the machine had halted are not counted.
	Turns int

	Outcome Outcome
}

// Table lists the result as a table.
func (r Result) Table() table.Writer {
	t := table.NewWriter()
	t.SetTitle("Pair Run")
	t.AppendHeader(table.Row{"Outcome", "Turns", "Sent by 0", "Sent by 1"})
	t.AppendRow(table.Row{r.Outcome, r.Turns, r.Sent[0], r.Sent[1]})

	return t
}

// Render returns the result as a text table.
func (r Result) Render() string {
	return r.Table().Render()
}
