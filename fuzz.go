// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package nitf

// Fuzz is a go-fuzz entry point: it round-trips LoadBytes over data and
// reports whether the result parsed (and, when it did, closes it so
// repeated fuzz runs don't accumulate file descriptors — LoadBytes holds
// none, but Close is always safe to call).
func Fuzz(data []byte) int {
	c, err := LoadBytes(data, nil)
	if err != nil {
		return 0
	}
	_ = c.Close()
	return 1
}
