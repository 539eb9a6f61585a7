package verify

import (
	"fmt"

	"github.com/sarchlab/duet/instr"
)

// RunLint performs static lint checks on a program. idRegister is the
// register that a pair run seeds with the machine id. Returns a list of
// issues found, or empty list if no issues.
func RunLint(prog instr.Program, idRegister string) []Issue {
	var issues []Issue

	numSnd, numRcv := 0, 0

	for pc, inst := range prog {
		switch inst.Op {
		case instr.OpSnd:
			numSnd++
		case instr.OpRcv:
			numRcv++
			issues = append(issues, checkRcv(pc, inst, idRegister)...)
		case instr.OpMod:
			issues = append(issues, checkMod(pc, inst)...)
		case instr.OpJgz:
			issues = append(issues, checkJgz(pc, inst, len(prog))...)
		}
	}

	// SOLO: a recovery needs a value and a receive.
	if numSnd == 0 {
		issues = append(issues, Issue{
			Type:    IssueSolo,
			PC:      -1,
			Message: "Program never sends; a solo run cannot recover a frequency",
		})
	}

	if numRcv == 0 {
		issues = append(issues, Issue{
			Type:    IssueSolo,
			PC:      -1,
			Message: "Program never receives; a solo run cannot recover a frequency",
		})
	}

	// DUET: without a receive a machine never waits on its peer.
	if numSnd > 0 && numRcv == 0 {
		issues = append(issues, Issue{
			Type:    IssueDuet,
			PC:      -1,
			Message: "Program sends but never receives; a pair run can only halt or hit the turn ceiling",
			Details: map[string]interface{}{"sends": numSnd},
		})
	}

	return issues
}

func checkRcv(pc int, inst instr.Inst, idRegister string) []Issue {
	if inst.Dst.Name != idRegister {
		return nil
	}

	return []Issue{{
		Type:    IssueDuet,
		PC:      pc,
		Inst:    inst.String(),
		Message: fmt.Sprintf("Receive overwrites the id register %q", idRegister),
		Details: map[string]interface{}{"register": idRegister},
	}}
}

func checkMod(pc int, inst instr.Inst) []Issue {
	if !inst.Src.IsLiteral() || inst.Src.Value != 0 {
		return nil
	}

	return []Issue{{
		Type:    IssueStruct,
		PC:      pc,
		Inst:    inst.String(),
		Message: "Modulo by literal zero always faults",
	}}
}

func checkJgz(pc int, inst instr.Inst, length int) []Issue {
	if !inst.Src.IsLiteral() {
		return nil
	}

	var issues []Issue

	always := inst.Dst.IsLiteral() && inst.Dst.Value > 0
	offset := inst.Src.Value

	if always && offset == 0 {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Inst:    inst.String(),
			Message: "Jump to itself with a constant positive condition never ends",
		})
	}

	target := int64(pc) + offset
	if target < 0 || target >= int64(length) {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			PC:      pc,
			Inst:    inst.String(),
			Message: fmt.Sprintf("Jump target %d is outside the program; the machine halts there", target),
			Details: map[string]interface{}{
				"target":      target,
				"length":      length,
				"conditional": !always,
			},
		})
	}

	return issues
}
