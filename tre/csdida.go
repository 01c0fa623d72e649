// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/field"
	"github.com/Terminus-Geospatial/terminus-nitf-go/internal/record"
)

// CSDIDA carries compressed-dataset collection identification: date,
// platform, sensor, and processing timestamps. Fixed-width, no repeats.
var csdidaSchema = []record.FieldSchema{
	{Name: "DAY", Width: 2, Kind: field.BCSNP},
	{Name: "MONTH", Width: 3, Kind: field.BCSA},
	{Name: "YEAR", Width: 4, Kind: field.BCSNP},
	{Name: "PLATFORM_CODE", Width: 2, Kind: field.BCSA},
	{Name: "VEHICLE_ID", Width: 2, Kind: field.BCSA},
	{Name: "PASS", Width: 2, Kind: field.BCSNP},
	{Name: "OPERATION", Width: 3, Kind: field.BCSNP},
	{Name: "SENSOR_ID", Width: 2, Kind: field.BCSA},
	{Name: "PRODUCT_ID", Width: 2, Kind: field.BCSA},
	{Name: "RESERVED_1", Width: 4, Kind: field.BCSA},
	{Name: "TIME", Width: 14, Kind: field.BCSNP},
	{Name: "PROCESS_TIME", Width: 14, Kind: field.BCSNP},
	{Name: "RESERVED_2", Width: 2, Kind: field.BCSNP},
	{Name: "RESERVED_3", Width: 2, Kind: field.BCSNP},
	{Name: "RESERVED_4", Width: 1, Kind: field.BCSA},
	{Name: "RESERVED_5", Width: 1, Kind: field.BCSA},
	{Name: "SOFTWARE_VERSION_NUMBER", Width: 10, Kind: field.BCSA},
}

func isCSDIDA(cetag string, _ int, _ []byte) bool { return trimmedTagIs(cetag, "CSDIDA") }

func buildCSDIDA(cetag string, cel int, cedata []byte) (*TRE, error) {
	return parseFixed(trimmed(cetag), cel, cedata, csdidaSchema)
}
