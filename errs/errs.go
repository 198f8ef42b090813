// Package errs holds the error kinds shared by the parsing and query
// packages. Callers branch on them with errors.Is; every returned error wraps
// exactly one of these.
package errs

import "errors"

var (
	// ErrNotFound reports a missing model or error matrix file.
	ErrNotFound = errors.New("not found")

	// ErrParse reports malformed or unrecognized file content.
	ErrParse = errors.New("parse error")

	// ErrRange reports a residue position outside [1, length].
	ErrRange = errors.New("residue out of range")

	// ErrDimension reports a structure and error matrix of different sizes.
	ErrDimension = errors.New("dimension mismatch")

	// ErrQuery reports an unsupported query argument.
	ErrQuery = errors.New("invalid query")
)
