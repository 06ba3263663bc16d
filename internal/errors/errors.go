package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrEmptyInput      = fmt.Errorf("%w: input is empty or contains only whitespace", ErrInvalidJSON)
	ErrMultipleJSON    = fmt.Errorf("%w: multiple JSON values found at the root, only one is allowed", ErrInvalidJSON)
	ErrTooDeep         = errors.New("JSON nesting exceeds the maximum depth")
	ErrInvalidOptions  = errors.New("invalid generation options")
	ErrUnknownTarget   = errors.New("unknown target")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeOptions  ErrorType = "options"
	ErrorTypeDepth    ErrorType = "depth"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same Type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing. message is the
// parser's own description of the failure.
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewOptionsError creates a new error for rejected generation options
func NewOptionsError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOptions, Message: message, Err: err}
}

// NewDepthError creates a new error for input nested beyond the safety bound
func NewDepthError(limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeDepth,
		Message: fmt.Sprintf("nesting deeper than %d levels", limit),
		Err:     ErrTooDeep,
	}
}

// NewGenerateError creates a new error related to code generation
func NewGenerateError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeGenerate, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// IsInvalidJSON reports whether err means the input did not parse.
func IsInvalidJSON(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}

// IsTooDeep reports whether err means the input exceeded the depth limit.
func IsTooDeep(err error) bool {
	return errors.Is(err, ErrTooDeep)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeOptions:
			return fmt.Sprintf("Option error: %s", appErr.Message)
		case ErrorTypeDepth:
			return fmt.Sprintf("Input too deep: %s", appErr.Message)
		case ErrorTypeGenerate:
			return fmt.Sprintf("Code generation error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	// ErrMultipleJSON wraps ErrInvalidJSON, so it is checked first.
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON document."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrTooDeep) {
		return "Error: The input is nested too deeply to process."
	}
	if errors.Is(err, ErrUnknownTarget) {
		return "Error: Unknown target. Run with --list-targets to see the available targets."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
