// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package errs holds the sentinel errors shared by every layer of the
// parser, so that a TRE decoder, a record engine, and the top-level loader
// can all raise (and callers can all errors.Is against) the same small,
// closed set of conditions without an import cycle back through the root
// package.
package errs

import (
	"errors"
	"fmt"
)

// The closed set of error conditions the parser can raise.
var (
	// ErrFileNotFound is returned when the requested NITF source does not
	// exist on disk.
	ErrFileNotFound = errors.New("nitf: file not found")

	// ErrFileTooSmall is returned when a source is shorter than the
	// smallest legal NITF file header.
	ErrFileTooSmall = errors.New("nitf: file smaller than minimum NITF header")

	// ErrUnexpectedEOF is returned when the stream runs out of bytes before
	// a field's declared width is satisfied.
	ErrUnexpectedEOF = errors.New("nitf: unexpected end of stream")

	// ErrMalformedField is returned when a field's bytes cannot be decoded
	// under its declared kind (e.g. non-decimal BCS_N content).
	ErrMalformedField = errors.New("nitf: malformed field")

	// ErrFileLengthMismatch is returned by fhdr.FileHeader.Validate when FL
	// disagrees with the observed file size.
	ErrFileLengthMismatch = errors.New("nitf: file length mismatch")

	// ErrTruncatedTRE is returned when a TRE block ends mid-record: fewer
	// bytes remain than CETAG+CEL require, or CEDATA is shorter than CEL.
	ErrTruncatedTRE = errors.New("nitf: truncated TRE block")

	// ErrNoCodecForCompression is returned when an image segment's
	// compression code has no registered imagecodec.Codec.
	ErrNoCodecForCompression = errors.New("nitf: no codec registered for compression code")

	// ErrDecoderInvariantViolation is returned when a TRE decoder consumes
	// a number of bytes different from CEL, or otherwise violates its own
	// documented invariant.
	ErrDecoderInvariantViolation = errors.New("nitf: TRE decoder invariant violation")
)

// Wrap annotates sentinel with context while preserving errors.Is against
// sentinel.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
