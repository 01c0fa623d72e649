// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// MIMCSA carries motion-imagery collection metadata: layer identity, frame
// rate bounds, and the temporal/decoder profile the layer requires. Fixed
// width, no repeats.
var mimcsaSchema = []record.FieldSchema{
	{Name: "LAYER_ID", Width: 36, Kind: field.BCSA},
	{Name: "NOMINAL_FRAME_RATE", Width: 13, Kind: field.BCSA},
	{Name: "MIN_FRAME_RATE", Width: 13, Kind: field.BCSA},
	{Name: "MAX_FRAME_RATE", Width: 13, Kind: field.BCSA},
	{Name: "T_RSET", Width: 2, Kind: field.BCSNP},
	{Name: "MI_REQ_DECODER", Width: 2, Kind: field.BCSA},
	{Name: "MI_REQ_PROFILE", Width: 36, Kind: field.BCSA},
	{Name: "MI_REQ_LEVEL", Width: 6, Kind: field.BCSA},
}

func isMIMCSA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "MIMCSA") }

func buildMIMCSA(cetag string, cel int, cedata []byte) (*TRE, error) {
	return parseFixed(trimmed(cetag), cel, cedata, mimcsaSchema)
}
