// Package errors provides error handling for xmldoc.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//   - Marking, so domain sentinels survive wrapping
//
// Usage:
//
//	// Wrap with context
//	if err := parser.Parse(ctx, path, src); err != nil {
//	    return errors.Wrapf(err, "failed to parse %s", path)
//	}
//
//	// Configuration problems carry a hint for the user
//	return errors.WithHint(errors.NewConfigurationError("template %q has no {name} placeholder", tmpl),
//	    "set class.summary.template in .xmldoc.toml")
//
//	// Check errors
//	if errors.IsConfigurationError(err) {
//	    // report and exit
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	FlattenHints   = crdb.FlattenHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors shared across xmldoc.
// Use these with errors.Is(); wrap them to add context while preserving the mark.
var (
	// ErrConfiguration indicates a template or option that cannot produce documentation
	ErrConfiguration = New("configuration error")

	// ErrUnsupportedKind indicates no strategy is registered for a declaration kind
	ErrUnsupportedKind = New("unsupported declaration kind")

	// ErrNotFound indicates the requested file or resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input from a caller
	ErrInvalidRequest = New("invalid request")
)

// NewConfigurationError creates an error marked as ErrConfiguration.
// The message is kept as-is so hints and details can be layered on top.
func NewConfigurationError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConfiguration)
}

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsUnsupportedKindError checks if an error is or wraps ErrUnsupportedKind
func IsUnsupportedKindError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedKind)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// WrapNotFound wraps an error as a not-found error with context
func WrapNotFound(err error, context string) error {
	return Wrap(Mark(err, ErrNotFound), context)
}

// NewUnsupportedKindError creates an error marked as ErrUnsupportedKind for the given kind
func NewUnsupportedKindError(kind string) error {
	return Mark(Newf("no strategy registered for %s", kind), ErrUnsupportedKind)
}
