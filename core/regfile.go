package core

import "sort"

// RegisterFile maps register names to values. Registers that were never
// written read as 0.
type RegisterFile struct {
	regs map[string]int64
}

// RegisterValue is one entry of a register file snapshot.
type RegisterValue struct {
	Name  string
	Value int64
}

// NewRegisterFile creates an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{regs: make(map[string]int64)}
}

// Read returns the value of the named register.
func (r *RegisterFile) Read(name string) int64 {
	return r.regs[name]
}

// Write sets the named register, creating it if needed.
func (r *RegisterFile) Write(name string, value int64) {
	r.regs[name] = value
}

// Len returns the number of registers that have been written.
func (r *RegisterFile) Len() int {
	return len(r.regs)
}

// Snapshot returns the written registers sorted by name.
func (r *RegisterFile) Snapshot() []RegisterValue {
	values := make([]RegisterValue, 0, len(r.regs))
	for name, v := range r.regs {
		values = append(values, RegisterValue{Name: name, Value: v})
	}

	sort.Slice(values, func(i, j int) bool {
		return values[i].Name < values[j].Name
	})

	return values
}
