package compiler

import (
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
)

// CompileError reports a tree that cannot be rendered for the dialect.
type CompileError struct {
	Msg string
	Err error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func compileErrorf(format string, args ...any) *CompileError {
	return &CompileError{Msg: fmt.Sprintf(format, args...)}
}

// ArgumentError reports an invalid construct, such as a constraint naming
// columns of another table, or a missing parameter value.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string {
	return e.Msg
}

func argumentErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// IdentifierError reports a name that cannot be rendered within the
// dialect's identifier limits.
type IdentifierError = ident.IdentifierError
