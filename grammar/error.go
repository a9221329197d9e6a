package grammar

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined construction errors (sentinel values).
// These are returned by the grammar builders and decoders, never
// collected into a ParseResult.
var (
	ErrNilSymbol      = NewError("nil symbol handed to a builder")
	ErrNoAlias        = NewError("symbol declared without any alias")
	ErrDuplicateAlias = NewError("duplicate alias")
	ErrInvalidArity   = NewError("invalid arity rule")
	ErrBadPredicate   = NewError("predicate compilation failed")
)

// Error represents a construction error with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this Error was derived
// from. Derived values produced by With and Wrap keep the base message,
// so comparison is by message identity.
func (e *Error) Is(target error) bool {
	t := &Error{}
	if !errors.As(target, &t) {
		return false
	}

	return e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// aliasInUseError formats the fatal construction error raised when two
// sibling symbols claim the same alias.
func aliasInUseError(alias string) *Error {
	return ErrDuplicateAlias.Wrap(
		fmt.Errorf("Alias '%s' is already in use.", alias),
	)
}

// ParseError is one diagnostic produced while matching or validating a
// token sequence. ParseErrors are accumulated on the ParseResult; they
// are never raised as control flow during parsing itself.
type ParseError struct {
	// Message is the human-readable diagnostic text.
	Message string
	// Symbol is a non-owning reference to the symbol implicated, when
	// one exists. It remains valid as long as the Grammar it belongs to.
	Symbol *Symbol
}

// Error implements the error interface.
func (e *ParseError) Error() string { return e.Message }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("message", e.Message)}

	if e.Symbol != nil {
		attrs = append(attrs, slog.String("symbol", e.Symbol.Name()))
	}

	return slog.GroupValue(attrs...)
}

// unrecognizedError reports a token that matched no alias and could not
// be claimed as an argument.
func unrecognizedError(token string) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("Option '%s' is not recognized.", token),
	}
}

// missingArgumentError reports an arity minimum that was not met, or a
// supplied value outside the allowed set. Both cases share one message.
func missingArgumentError(sym *Symbol) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(
			"Required argument missing for option: %s", sym.Name(),
		),
		Symbol: sym,
	}
}

// exclusiveSubcommandError reports multiple subcommands matched under a
// command that permits only one. Names appear in encounter order.
func exclusiveSubcommandError(sym *Symbol, names []string) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(
			"Command '%s' only accepts a single subcommand but %d were provided: %s",
			sym.Name(), len(names), strings.Join(names, ", "),
		),
		Symbol: sym,
	}
}
