// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package nitf

import "strings"

// ImageCompression identifies an Image Subheader's IC field: the
// compression algorithm (or absence of one) applied to an image segment's
// pixel data.
type ImageCompression int

// The closed set of NITF 2.1 compression codes.
const (
	C1 ImageCompression = iota
	C3
	C4
	C5
	C6
	C7
	C8
	I1
	M1
	M3
	M4
	M5
	M6
	M7
	M8
	NC
	NM
)

var imageCompressionNames = map[ImageCompression]string{
	C1: "C1", C3: "C3", C4: "C4", C5: "C5", C6: "C6", C7: "C7", C8: "C8",
	I1: "I1",
	M1: "M1", M3: "M3", M4: "M4", M5: "M5", M6: "M6", M7: "M7", M8: "M8",
	NC: "NC", NM: "NM",
}

// String returns the two-character IC code, e.g. "NC".
func (c ImageCompression) String() string {
	if s, ok := imageCompressionNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// ImageCompressionFromStr maps an IC field's text (case-insensitively) to
// its ImageCompression, or false if s names none of the closed set.
func ImageCompressionFromStr(s string) (ImageCompression, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range imageCompressionNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}
