// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package tre

import (
	"strings"
	"testing"
)

// blanks returns n space bytes — every field kind this package decodes
// accepts an all-blank run (BCS_N/BCS_NP become Absent, BCS_A/ECS_A trim to
// empty), so a schema's total width in spaces is always a valid payload.
func blanks(n int) string { return strings.Repeat(" ", n) }

func withFieldAt(payload string, offset int, value string) string {
	return payload[:offset] + value + payload[offset+len(value):]
}

func TestBuildACFTBFixedSchema(t *testing.T) {
	widths := []int{20, 10, 12, 4, 6, 1, 6, 8, 6, 5, 3, 25, 6, 6, 1, 25, 6, 7, 7, 1, 7, 1, 6, 6, 7, 8, 4, 3}
	total := 0
	for _, w := range widths {
		total += w
	}
	payload := withFieldAt(blanks(total), 0, "MSN1")

	got, err := buildACFTB("ACFTB", total, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msn, ok := got.Get("AC_MSN_ID", 0)
	if !ok || strings.TrimSpace(msn.Value.Text()) != "MSN1" {
		t.Errorf("AC_MSN_ID = %+v, want \"MSN1\"", msn)
	}
}

func TestBuildAIMIDBFixedSchema(t *testing.T) {
	widths := []int{14, 4, 10, 2, 3, 2, 2, 3, 1, 3, 5, 2, 3, 5, 2, 4, 11, 13}
	total := 0
	for _, w := range widths {
		total += w
	}
	payload := blanks(total)

	got, err := buildAIMIDB("AIMIDB", total, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Get("LOCATION", 0); !ok {
		t.Error("expected LOCATION field to be present (even if blank)")
	}
}

func TestBuildBLOCKAFixedSchema(t *testing.T) {
	widths := []int{2, 5, 5, 3, 3, 16, 21, 21, 21, 21, 5}
	total := 0
	for _, w := range widths {
		total += w
	}
	payload := blanks(total)

	got, err := buildBLOCKA("BLOCKA", total, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Get("FRLC_LOC", 0); !ok {
		t.Error("expected FRLC_LOC field to be present")
	}
}

func TestBuildCSDIDAFixedSchema(t *testing.T) {
	widths := []int{2, 3, 4, 2, 2, 2, 3, 2, 2, 4, 14, 14, 2, 2, 1, 1, 10}
	total := 0
	for _, w := range widths {
		total += w
	}
	payload := blanks(total)

	got, err := buildCSDIDA("CSDIDA", total, []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Get("SOFTWARE_VERSION_NUMBER", 0); !ok {
		t.Error("expected SOFTWARE_VERSION_NUMBER field to be present")
	}
}

func TestBuildCAMSDACounters(t *testing.T) {
	payload := "001" + "001" + "001"
	got, err := buildCAMSDA("CAMSDA", len(payload), []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := got.Get("NUM_CAMERA_SETS", 0)
	if !ok || n.Value.Int() != 1 {
		t.Errorf("NUM_CAMERA_SETS = %+v, want 1", n)
	}
}

func TestBuildACCHZBZeroRegions(t *testing.T) {
	payload := "00"
	got, err := buildACCHZB("ACCHZB", len(payload), []byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Fields) != 1 {
		t.Errorf("len(Fields) = %d, want 1 (just NUM_ACHZ)", len(got.Fields))
	}
}

func TestBuildACCHZBOneRegionWithPolygon(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("01")                  // NUM_ACHZ = 1
	sb.WriteString(blanks(3))              // UNIAAH_N blank: no AAH_N
	sb.WriteString(blanks(3))              // UNIAPH_N blank: no APH_N
	sb.WriteString("001")                  // NUM_PTS_N = 1
	sb.WriteString(strings.Repeat("1", 15)) // LON_1_1
	sb.WriteString(strings.Repeat("2", 15)) // LAT_1_1

	got, err := buildACCHZB("ACCHZB", sb.Len(), []byte(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lon, ok := got.Get("LON_N_M", 0)
	if !ok || lon.Value.Int() != 111111111111111 {
		t.Errorf("LON_N_M = %+v, want 111111111111111", lon)
	}
	if _, ok := got.Get("AAH_N", 0); ok {
		t.Error("blank UNIAAH_N should not gate in AAH_N")
	}
}

func TestBuildCCINFAOneEntry(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("001") // NUMCODE = 1
	sb.WriteString("3")   // CODE_LEN_N
	sb.WriteString("ABC") // CODE_N
	sb.WriteString("E")   // EQTYPE_N
	sb.WriteString("03")  // ESURN_LEN_N
	sb.WriteString("XYZ") // ESURN_N
	sb.WriteString("00000") // DETAIL_LEN_N = 0

	got, err := buildCCINFA("CCINFA", sb.Len(), []byte(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code, ok := got.Get("CODE_N", 0)
	if !ok || code.Value.Text() != "ABC" {
		t.Errorf("CODE_N = %+v, want \"ABC\"", code)
	}
	if _, ok := got.Get("DETAIL_N", 0); ok {
		t.Error("DETAIL_LEN_N=0 should not gate in a DETAIL_N field")
	}
}

func TestBuildENGRDAOneRecord(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(blanks(20)) // RESRC
	sb.WriteString("001")      // RECNT = 1
	sb.WriteString("03")       // ENGLN_N = 3
	sb.WriteString("LBL")      // ENGLBL_N
	sb.WriteString("0001")     // ENGMTXC_N = 1
	sb.WriteString("0001")     // ENGMTXR_N = 1
	sb.WriteString("I")        // ENGTYP_N
	sb.WriteString("2")        // ENGDTS_N = 2 bytes per element
	sb.WriteString("U ")       // ENGDATU_N
	sb.WriteString("00000002") // ENGDATC_N (informational; element count is mtxc*mtxr)
	sb.WriteString("\x00\x01") // one 2-byte ENGDATA_N element

	got, err := buildENGRDA("ENGRDA", sb.Len(), []byte(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lbl, ok := got.Get("ENGLBL_N", 0)
	if !ok || lbl.Value.Text() != "LBL" {
		t.Errorf("ENGLBL_N = %+v, want \"LBL\"", lbl)
	}
	data, ok := got.Get("ENGDATA_N", 0)
	if !ok || len(data.Value.Bytes()) != 2 {
		t.Errorf("ENGDATA_N = %+v, want 2 raw bytes", data)
	}
}

func TestBuildMATESAOneGroupOneMate(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(blanks(42))              // CUR_SOURCE
	sb.WriteString(blanks(16))              // CUR_MATE_TYPE
	sb.WriteString("0004")                  // CUR_FILE_ID_LEN = 4
	sb.WriteString("FID1")                  // CUR_FILE_ID
	sb.WriteString("0001")                  // NUM_GROUPS = 1
	sb.WriteString(blanks(24))              // RELATIONSHIP_1
	sb.WriteString("0001")                  // NUM_MATES_1 = 1
	sb.WriteString(blanks(42))              // SOURCE_1_1
	sb.WriteString(blanks(16))              // MATE_TYPE_1_1
	sb.WriteString("0003")                  // MATE_ID_LEN_1 = 3
	sb.WriteString("MID")                   // MATE_ID_1_1

	got, err := buildMATESA("MATESA", sb.Len(), []byte(sb.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fid, ok := got.Get("CUR_FILE_ID", 0)
	if !ok || fid.Value.Text() != "FID1" {
		t.Errorf("CUR_FILE_ID = %+v, want \"FID1\"", fid)
	}
	mate, ok := got.Get("MATE_ID_N_M", 0)
	if !ok || mate.Value.Text() != "MID" {
		t.Errorf("MATE_ID_N_M = %+v, want \"MID\"", mate)
	}
}
