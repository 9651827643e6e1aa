package utils

import "fmt"

// ErrorWithSuggestion wraps an error with a user-friendly suggestion.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *ErrorWithSuggestion) Error() string {
	return fmt.Sprintf("%s\n\nSuggestion: %s", e.Err.Error(), e.Suggestion)
}

// GetSuggestion returns the suggestion text.
func (e *ErrorWithSuggestion) GetSuggestion() string {
	return e.Suggestion
}

// Unwrap returns the underlying error for error chain support.
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WrapWithSuggestion wraps an existing error with a suggestion.
func WrapWithSuggestion(err error, suggestion string) error {
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// ErrUnknownBackend returns an error for an unrecognized backend name.
func ErrUnknownBackend(name string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("unknown backend: %s", name),
		Suggestion: "Valid backends are 'flatfile' and 'sqlite'",
	}
}

// ErrInvalidTaskID returns an error for input that is not a task id.
func ErrInvalidTaskID(input string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid task id: %s", input),
		Suggestion: "Task ids are the integers shown by 'checklist list'",
	}
}

// ErrConfigUnreadable returns an error for a config file that cannot be parsed.
func ErrConfigUnreadable(path string, err error) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("cannot read config %s: %w", path, err),
		Suggestion: "Fix or delete the file; a default config is created on next run",
	}
}
