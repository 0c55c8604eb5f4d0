// Package parsing recovers structured candidate records from free-text LLM
// replies and normalizes them for persistence.
package parsing

import "fmt"

// snippetLimit bounds how much of an unrecoverable reply is retained for
// diagnostics, so a runaway model reply cannot blow up logs.
const snippetLimit = 256

// ParseRecoveryError indicates the LLM reply could not be recovered as a
// structured record after fence-stripping. Snippet holds a bounded prefix of
// the offending raw reply.
type ParseRecoveryError struct {
	Message string
	Snippet string
	Cause   error
}

func (e *ParseRecoveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse recovery failed: %s: %v (reply prefix: %q)", e.Message, e.Cause, e.Snippet)
	}
	return fmt.Sprintf("parse recovery failed: %s (reply prefix: %q)", e.Message, e.Snippet)
}

func (e *ParseRecoveryError) Unwrap() error {
	return e.Cause
}

// snippet returns at most snippetLimit bytes of the raw reply.
func snippet(raw string) string {
	if len(raw) > snippetLimit {
		return raw[:snippetLimit]
	}
	return raw
}
