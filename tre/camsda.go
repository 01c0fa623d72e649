// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// CAMSDA carries multi-camera collection metadata. Only the TRE-level
// camera-set counters are decoded here; the per-camera-set/per-camera
// nested tables (NUM_CAMERAS_IN_SET_N, CAMERA_ID_N_M, …) are intentionally
// left undecoded — the camera-set/camera-count pair needed to iterate them
// is not actually exposed by CEL alone without also knowing the packing
// convention CAMSDA uses across TRE instances, which the retrieved source
// never resolved either. Downstream tooling wanting the per-camera rows can
// walk Raw directly.
var camsdaSchema = []record.FieldSchema{
	{Name: "NUM_CAMERA_SETS", Width: 3, Kind: field.BCSNP},
	{Name: "NUM_CAMERA_SETS_IN_TRE", Width: 3, Kind: field.BCSNP},
	{Name: "FIRST_CAMERA_SET_IN_TRE", Width: 3, Kind: field.BCSNP},
}

func isCAMSDA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "CAMSDA") }

func buildCAMSDA(cetag string, cel int, cedata []byte) (*TRE, error) {
	cur := record.NewCursor(cedata)
	eng := record.NewEngine(cur, camsdaSchema)
	if err := eng.Run(); err != nil {
		return nil, err
	}
	return &TRE{Tag: trimmed(cetag), CEL: cel, Raw: cedata, Fields: eng.Fields()}, nil
}
