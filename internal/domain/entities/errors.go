package entities

import "fmt"

// ValidationError reports an input string that violates the sanitization
// policy. It is surfaced to the caller immediately and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Reason)
}

// ParseError reports a markdown document that yields no usable deck.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// AdapterError reports a failure talking to an external generative model.
// Callers recover from it by falling back to the offline template.
type AdapterError struct {
	Provider string
	Err      error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s adapter: %v", e.Provider, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// PersistenceError reports a failure writing request artifacts. It is
// fatal for the request.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
