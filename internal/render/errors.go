package render

import (
	"fmt"
	"strings"
)

// AttemptError records why one rendering attempt failed. Explanation is the
// human-readable form surfaced to callers.
type AttemptError struct {
	Attempt     int
	Explanation string
	Err         error
}

func (e *AttemptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attempt %d: %s: %v", e.Attempt, e.Explanation, e.Err)
	}
	return fmt.Sprintf("attempt %d: %s", e.Attempt, e.Explanation)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// RenderError is returned once every attempt is exhausted. Its message is the
// first sub-error's explanation; the full attempt trail is kept for logging.
type RenderError struct {
	Attempts []*AttemptError
}

func (e *RenderError) Error() string {
	if len(e.Attempts) == 0 {
		return "rendering failed"
	}
	return e.Attempts[0].Explanation
}

// Detail joins every attempt's failure for log output.
func (e *RenderError) Detail() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return strings.Join(parts, "; ")
}
