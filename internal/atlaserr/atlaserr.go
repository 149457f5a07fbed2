// Package atlaserr defines the error taxonomy shared by every packer
// component: usage, I/O, data, resource, and invariant-violation
// errors. Call sites wrap one of the category sentinels with
// github.com/pkg/errors so a caller can still errors.Is against the
// category while getting a readable chain, matching the wrapping
// style used throughout outofforest/quantum.
package atlaserr

import "github.com/pkg/errors"

var (
	// ErrUsage marks a bad command-line invocation.
	ErrUsage = errors.New("usage error")

	// ErrIO marks a directory-enumeration, file, or codec failure.
	ErrIO = errors.New("io error")

	// ErrData marks inconsistent input data (e.g. mismatched bpp).
	ErrData = errors.New("data error")

	// ErrResource marks arena exhaustion or other allocation failure.
	ErrResource = errors.New("resource error")

	// ErrInvariant marks a violated structural invariant of the
	// partition tree or LRU cache. Reaching this means the packer
	// itself has a bug, not that the input was bad.
	ErrInvariant = errors.New("invariant violation")
)

// Assert panics with an ErrInvariant-wrapped error when cond is false.
// Intended to trip during development the same way the original
// source's assert() calls do; it is not meant to be recovered from in
// normal operation other than at the top-level CLI boundary, which
// turns it into a fatal exit.
func Assert(cond bool, msg string) {
	if !cond {
		panic(errors.Wrap(ErrInvariant, msg))
	}
}
