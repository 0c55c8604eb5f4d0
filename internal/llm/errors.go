package llm

import "fmt"

// UpstreamError indicates the completion call failed at the transport level
// or with a non-success status from the provider.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm upstream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm upstream error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// UpstreamMalformedError indicates the provider replied without the expected
// candidate/content/text shape.
type UpstreamMalformedError struct {
	Message string
}

func (e *UpstreamMalformedError) Error() string {
	return fmt.Sprintf("llm reply malformed: %s", e.Message)
}
