package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// LevelTrace is the log level of per-value data flow records. It sits below
// debug so that the hot loop stays quiet unless asked for.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs a record at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// StateTable builds a table that lists the state of the given machines, one
// column per machine.
func StateTable(machines ...*Machine) table.Writer {
	t := table.NewWriter()
	t.SetTitle("Machine State")

	header := table.Row{""}
	for _, m := range machines {
		header = append(header, m.Name())
	}
	t.AppendHeader(header)

	t.AppendRow(stateRow("Mode", machines, func(m *Machine) any { return m.Mode() }))
	t.AppendRow(stateRow("PC", machines, func(m *Machine) any { return m.PC() }))
	t.AppendRow(stateRow("Steps", machines, func(m *Machine) any { return m.Steps() }))
	t.AppendRow(stateRow("Sent", machines, func(m *Machine) any { return m.SentCount() }))
	t.AppendRow(stateRow("Blocked", machines, func(m *Machine) any { return m.Blocked() }))
	t.AppendRow(stateRow("Halted", machines, func(m *Machine) any { return m.Halted() }))
	t.AppendRow(stateRow("Inbound", machines, func(m *Machine) any {
		if m.Inbound() == nil {
			return "-"
		}
		return fmt.Sprintf("%s (%d waiting)", m.Inbound().Name(), m.Inbound().Len())
	}))
	t.AppendSeparator()

	for _, name := range registerNames(machines) {
		t.AppendRow(stateRow(name, machines, func(m *Machine) any {
			return m.Registers().Read(name)
		}))
	}

	return t
}

// PrintState writes the state table of the machines to w.
func PrintState(w io.Writer, machines ...*Machine) {
	fmt.Fprintln(w, StateTable(machines...).Render())
}

// LogState logs the state of a machine at debug level.
func LogState(m *Machine) {
	regs := make([]string, 0, m.Registers().Len())
	for _, r := range m.Registers().Snapshot() {
		regs = append(regs, fmt.Sprintf("%s=%d", r.Name, r.Value))
	}

	slog.Debug("StateCheckpoint",
		"Name", m.Name(),
		"PC", m.PC(),
		"Steps", m.Steps(),
		"Sent", m.SentCount(),
		"Blocked", m.Blocked(),
		"Halted", m.Halted(),
		"Registers", strings.Join(regs, " "),
	)
}

func stateRow(label string, machines []*Machine, f func(*Machine) any) table.Row {
	row := table.Row{label}
	for _, m := range machines {
		row = append(row, f(m))
	}

	return row
}

func registerNames(machines []*Machine) []string {
	seen := make(map[string]bool)
	var names []string

	for _, m := range machines {
		for _, r := range m.Registers().Snapshot() {
			if !seen[r.Name] {
				seen[r.Name] = true
				names = append(names, r.Name)
			}
		}
	}

	sort.Strings(names)

	return names
}
