package errors

import "fmt"

// StoreError represents errors related to the title metadata library
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("library %s failed", e.Op)
	}
	return fmt.Sprintf("library %s failed: %v", e.Op, e.Err)
}

func (e StoreError) Unwrap() error { return e.Err }

// SinkError represents errors raised by a presence publishing transport
type SinkError struct {
	Sink string
	Op   string
	Err  error
}

func (e SinkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s sink %s failed", e.Sink, e.Op)
	}
	return fmt.Sprintf("%s sink %s failed: %v", e.Sink, e.Op, e.Err)
}

func (e SinkError) Unwrap() error { return e.Err }

// ScriptError represents errors in an event script, Step is 1-based (0 when
// the error concerns the whole script)
type ScriptError struct {
	Step int
	Op   string
	Err  error
}

func (e ScriptError) Error() string {
	prefix := fmt.Sprintf("script %s", e.Op)
	if e.Step > 0 {
		prefix = fmt.Sprintf("script step %d %s", e.Step, e.Op)
	}
	if e.Err == nil {
		return prefix + " failed"
	}
	return fmt.Sprintf("%s failed: %v", prefix, e.Err)
}

func (e ScriptError) Unwrap() error { return e.Err }
