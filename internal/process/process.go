// Package process tracks the guest application process that is currently running.
package process

import (
	"fmt"
	"strconv"
	"strings"
)

// Result describes a loaded guest application.
type Result struct {
	ProgramID      uint64
	DisplayVersion string
	Name           string
}

// ProgramIDText renders the program id as 16 upper-case hex digits.
func (r Result) ProgramIDText() string {
	return fmt.Sprintf("%016X", r.ProgramID)
}

// ParseProgramID parses a hexadecimal program id, with or without a 0x prefix.
func ParseProgramID(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	id, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid program id %q: %w", s, err)
	}
	return id, nil
}

// Table holds the active application, if any.
type Table struct {
	active *Result
}

func NewTable() *Table {
	return &Table{}
}

// Activate makes r the active application.
func (t *Table) Activate(r Result) {
	t.active = &r
}

// Clear forgets the active application.
func (t *Table) Clear() {
	t.active = nil
}

// ActiveApplication returns the running application.
func (t *Table) ActiveApplication() (Result, bool) {
	if t.active == nil {
		return Result{}, false
	}
	return *t.active, true
}
