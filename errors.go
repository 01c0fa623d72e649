// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package nitf

import "github.com/Terminus-Geospatial/terminus-nitf-go/internal/errs"

// The public error taxonomy. The parse failures listed here are wrapped so
// that errors.Is matches the sentinel; an OS error from opening or mapping
// the file, and a record engine error for a negative or unresolved field
// width, are returned without one of these sentinels. internal/errs holds the
// sentinels themselves so that the record engine and the TRE subsystem can
// raise them without importing the root package.
var (
	// ErrFileNotFound is returned when the requested NITF source does not
	// exist on disk.
	ErrFileNotFound = errs.ErrFileNotFound

	// ErrFileTooSmall is returned when a source is shorter than the
	// smallest legal NITF file header.
	ErrFileTooSmall = errs.ErrFileTooSmall

	// ErrUnexpectedEOF is returned when the stream runs out of bytes before
	// a field's declared width is satisfied.
	ErrUnexpectedEOF = errs.ErrUnexpectedEOF

	// ErrMalformedField is returned when a field's bytes cannot be decoded
	// under its declared kind.
	ErrMalformedField = errs.ErrMalformedField

	// ErrFileLengthMismatch is returned by FileHeader.Validate when FL
	// disagrees with the observed file size.
	ErrFileLengthMismatch = errs.ErrFileLengthMismatch

	// ErrTruncatedTRE is returned when a TRE block ends mid-record.
	ErrTruncatedTRE = errs.ErrTruncatedTRE

	// ErrNoCodecForCompression is returned when an image segment's
	// compression code has no registered imagecodec.Codec.
	ErrNoCodecForCompression = errs.ErrNoCodecForCompression

	// ErrDecoderInvariantViolation is returned when a TRE decoder consumes
	// a number of bytes different from CEL.
	ErrDecoderInvariantViolation = errs.ErrDecoderInvariantViolation
)
