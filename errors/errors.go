// Package errors provides error handling for shufa.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Wrap with context
//	if err := loadDataset(path); err != nil {
//	    return errors.Wrap(err, "failed to load dataset")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "pass --dataset with a .toml or .yaml file")
//
// The query engine itself never returns these to its callers: every failure
// there is rendered as a string. This package serves the layers around it
// (dataset loading, configuration, gateway, CLI).
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
)

// User-facing messages and details
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors. Wrap these with errors.Wrap() to add context while
// preserving the type for errors.Is().
var (
	// ErrNotFound indicates the requested entity or file does not exist
	ErrNotFound = New("not found")

	// ErrInvalidDataset indicates a knowledge base dataset failed validation
	ErrInvalidDataset = New("invalid dataset")

	// ErrUnsupportedFormat indicates a dataset file extension or export format we cannot handle
	ErrUnsupportedFormat = New("unsupported format")

	// ErrGateway indicates the free-text rewriting service failed
	ErrGateway = New("gateway failure")

	// ErrInvalidConfig indicates configuration values that cannot be used
	ErrInvalidConfig = New("invalid configuration")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidDatasetError checks if an error is or wraps ErrInvalidDataset
func IsInvalidDatasetError(err error) bool {
	return err != nil && Is(err, ErrInvalidDataset)
}

// IsGatewayError checks if an error is or wraps ErrGateway
func IsGatewayError(err error) bool {
	return err != nil && Is(err, ErrGateway)
}

// NewInvalidDatasetError creates an invalid-dataset error with a formatted message
func NewInvalidDatasetError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidDataset, Newf(format, args...).Error())
}

// NewUnsupportedFormatError creates an unsupported-format error with a formatted message
func NewUnsupportedFormatError(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedFormat, Newf(format, args...).Error())
}

// WrapGateway wraps an error as a gateway error with context
func WrapGateway(err error, context string) error {
	return Wrap(Wrap(ErrGateway, err.Error()), context)
}
