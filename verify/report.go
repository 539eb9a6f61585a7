package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/duet/api"
	"github.com/sarchlab/duet/instr"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	ProgramName  string
	ProgramLen   int
	LintIssues   []Issue
	StructIssues []Issue
	SoloIssues   []Issue
	DuetIssues   []Issue

	Frequency int64
	SoloErr   error

	Pair    api.Result
	PairErr error
}

// GenerateReport runs lint and both kinds of runs, returns a report.
// idRegister must be the id register the driver seeds in a pair run.
func GenerateReport(
	name string,
	prog instr.Program,
	idRegister string,
	driver api.Driver,
) *VerificationReport {
	report := &VerificationReport{
		ProgramName: name,
		ProgramLen:  len(prog),
	}

	report.LintIssues = RunLint(prog, idRegister)

	for _, issue := range report.LintIssues {
		switch issue.Type {
		case IssueStruct:
			report.StructIssues = append(report.StructIssues, issue)
		case IssueSolo:
			report.SoloIssues = append(report.SoloIssues, issue)
		case IssueDuet:
			report.DuetIssues = append(report.DuetIssues, issue)
		}
	}

	report.Frequency, report.SoloErr = driver.RunSolo(prog)
	report.Pair, report.PairErr = driver.RunPairResult(prog)

	return report
}

// OK returns true if both runs finished and lint found no STRUCT issue.
func (r *VerificationReport) OK() bool {
	return len(r.StructIssues) == 0 && r.SoloErr == nil && r.PairErr == nil
}

// IssueTable lists the lint issues as a table.
func (r *VerificationReport) IssueTable() table.Writer {
	t := table.NewWriter()
	t.SetTitle("Lint Issues")
	t.AppendHeader(table.Row{"Type", "PC", "Inst", "Message"})

	for _, issue := range r.LintIssues {
		pc := "-"
		if issue.PC >= 0 {
			pc = fmt.Sprint(issue.PC)
		}

		t.AppendRow(table.Row{issue.Type, pc, issue.Inst, issue.Message})
	}

	return t
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "DUET PROGRAM REPORT: %s\n", r.ProgramName)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\n%d instructions\n", r.ProgramLen)

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintln(w, r.IssueTable().Render())
	}

	// STAGE 2: RUNS
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: RUNS")
	fmt.Fprintln(w, separator)

	if r.SoloErr == nil {
		fmt.Fprintf(w, "Solo: recovered frequency %d\n", r.Frequency)
	} else {
		fmt.Fprintf(w, "Solo: %v\n", r.SoloErr)
	}

	if r.PairErr == nil {
		fmt.Fprintf(w, "Pair: machine 1 sent %d values\n", r.Pair.Sent[1])
	} else {
		fmt.Fprintf(w, "Pair: %v\n", r.PairErr)
	}
	fmt.Fprintln(w, r.Pair.Render())

	// STAGE 3: SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d SOLO, %d DUET)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.SoloIssues), len(r.DuetIssues))

	if r.OK() {
		fmt.Fprintln(w, "PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "PROGRAM NEEDS ATTENTION")
	}

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
