package plinkpca

import (
	"math"
	"strings"
	"testing"
)

const sheetIn = `ID	site	depth
S1	north	4.0
S2	north	8.0
S3	south	12.0
`

func TestReadSampleSheet(t *testing.T) {
	sheet, e := ReadSampleSheet(strings.NewReader(sheetIn))
	if e != nil {
		t.Fatal(e)
	}
	if len(sheet.Cols) != 3 || sheet.Cols[2] != "depth" {
		t.Errorf("cols = %v", sheet.Cols)
	}
	if len(sheet.Rows) != 3 {
		t.Errorf("len(rows) = %v, want 3", len(sheet.Rows))
	}

	cov, e := sheet.Covariate("depth", []string{"S3", "S1"})
	if e != nil {
		t.Fatal(e)
	}
	if cov[0] != 12.0 || cov[1] != 4.0 {
		t.Errorf("cov = %v, want [12 4]", cov)
	}
}

func TestCovariateMissingSample(t *testing.T) {
	sheet, e := ReadSampleSheet(strings.NewReader(sheetIn))
	if e != nil {
		t.Fatal(e)
	}
	if _, e := sheet.Covariate("depth", []string{"S9"}); e == nil {
		t.Error("missing sample: expected error")
	}
	if _, e := sheet.Covariate("site", []string{"S1"}); e == nil {
		t.Error("non-numeric covariate: expected error")
	}
	if _, e := sheet.Covariate("nope", []string{"S1"}); e == nil {
		t.Error("unknown column: expected error")
	}
}

func TestCheckCovariate(t *testing.T) {
	dir := t.TempDir()
	// PC1 is exactly 0.01 * depth
	vec := "FAM1 S1 0.04 0.1\nFAM1 S2 0.08 -0.1\nFAM2 S3 0.12 0.0\n"
	r, e := Load(write(t, dir, "k.eigenval", eigenval2), write(t, dir, "k.eigenvec", vec), "")
	if e != nil {
		t.Fatal(e)
	}
	sheet, e := ReadSampleSheet(strings.NewReader(sheetIn))
	if e != nil {
		t.Fatal(e)
	}

	cs, e := CheckCovariate(r, sheet, 1, "depth")
	if e != nil {
		t.Fatal(e)
	}
	if cs.N != 3 {
		t.Errorf("N = %v, want 3", cs.N)
	}
	if math.Abs(cs.Correlation-1.0) > 1e-9 {
		t.Errorf("correlation = %v, want 1", cs.Correlation)
	}
	if math.Abs(cs.R2-1.0) > 1e-6 {
		t.Errorf("R2 = %v, want 1", cs.R2)
	}
}
