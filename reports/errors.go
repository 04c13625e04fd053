package reports

import (
	"errors"
	"fmt"
)

// Engine error taxonomy. The HTTP boundary maps these to status codes.
var (
	// ErrForbidden — valid caller, insufficient role or ownership.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound — no report with the given id.
	ErrNotFound = errors.New("report not found")
)

// ValidationError carries a user-facing message naming the violated rule.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UploadError attributes a failed submission to one image file.
// The submission is aborted and nothing is persisted.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %q: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
