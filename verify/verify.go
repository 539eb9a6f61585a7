// Package verify provides static checks and run reports for duet programs.
//
// Verification has two stages:
//
// 1. Static lint (lint.go): checks that need no execution.
//   - STRUCT checks: division by a literal zero, jumps that can never move,
//     literal jump targets outside the program
//   - SOLO checks: programs that can never recover a frequency
//   - DUET checks: programs that cannot wait on their peer, receives that
//     overwrite the id register
//
// 2. Runs (report.go): the program is run solo and as a pair through an
// api.Driver and the outcomes are collected next to the lint issues.
//
// # Usage Example
//
//	prog, _ := program.LoadProgramFile("duet.asm")
//
//	for _, issue := range verify.RunLint(prog, core.DefaultIDRegister) {
//	    log.Printf("[%s] pc=%d %s: %s", issue.Type, issue.PC, issue.Inst, issue.Message)
//	}
//
//	report := verify.GenerateReport("duet", prog, core.DefaultIDRegister,
//	    api.DriverBuilder{}.Build("Driver"))
//	report.WriteReport(os.Stdout)
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Instruction that cannot work as written
	IssueSolo   IssueType = "SOLO"   // Program that cannot finish a solo run
	IssueDuet   IssueType = "DUET"   // Program that misbehaves in a pair run
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, SOLO or DUET
	PC      int                    // Instruction index (-1 if not applicable)
	Inst    string                 // Instruction text, empty if not applicable
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
