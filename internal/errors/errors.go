package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies a catchup pipeline failure.
type Code string

const (
	CodeNotFound       Code = "NOT_FOUND"       // chat.db missing at the given path
	CodeNoMatch        Code = "NO_MATCH"        // chat name resolution failed
	CodeAutomation     Code = "AUTOMATION"      // clipboard automation command failed
	CodeService        Code = "SERVICE"         // AI text service call failed
	CodeInvalidRequest Code = "INVALID_REQUEST" // missing or invalid user input
)

// Error is a typed pipeline error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFound reports a missing message store.
func NewNotFound(path string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("chat database not found at %s", path),
	}
}

// NewNoMatch reports that no chat matched the given name, exactly or by substring.
func NewNoMatch(chatName string) *Error {
	return &Error{
		Code:    CodeNoMatch,
		Message: fmt.Sprintf("no chat found matching %q; try an exact display name or check the db path", chatName),
	}
}

// NewAutomation reports a failed clipboard automation command.
// diag carries the command's stderr output.
func NewAutomation(diag string, cause error) *Error {
	msg := "clipboard automation failed"
	if diag != "" {
		msg = fmt.Sprintf("clipboard automation failed: %s", diag)
	}
	return &Error{
		Code:    CodeAutomation,
		Message: msg,
		Cause:   cause,
	}
}

// NewService reports a failed AI text service call.
func NewService(cause error) *Error {
	msg := "summarization request failed"
	if cause != nil {
		msg = fmt.Sprintf("summarization request failed: %v", cause)
	}
	return &Error{
		Code:    CodeService,
		Message: msg,
		Cause:   cause,
	}
}

// NewInvalidRequest reports missing or invalid user input.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    CodeInvalidRequest,
		Message: msg,
	}
}

// Is checks whether err is, or wraps, a catchup Error with the given code.
func Is(err error, code Code) bool {
	var cErr *Error
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
