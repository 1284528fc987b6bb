package plinkpca

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const eigenval3 = `10
5
5
`

const eigenvec3 = `FAM1 S1 0.12 -0.03 0.5
FAM1 S2 -0.08 0.11 -0.2
FAM2 S3 0.01 0.02 0.03
`

const eigenval2 = `12.5
7.5
`

const eigenvec2 = `FAM1 S1 0.12 -0.03
FAM1 S2 -0.08 0.11
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if e := os.WriteFile(path, []byte(content), 0644); e != nil {
		t.Fatal(e)
	}
	return path
}

func load3(t *testing.T) *Result {
	t.Helper()
	dir := t.TempDir()
	r, e := Load(write(t, dir, "a.eigenval", eigenval3), write(t, dir, "a.eigenvec", eigenvec3), "")
	if e != nil {
		t.Fatal(e)
	}
	return r
}

func TestVarianceExplained(t *testing.T) {
	r := load3(t)

	v, e := r.VarianceExplained([]int{1}, 3, true)
	if e != nil {
		t.Fatal(e)
	}
	if len(v) != 1 || v[0] != 50.0 {
		t.Errorf("VarianceExplained([1]) = %v, want [50]", v)
	}

	v, e = r.VarianceExplained([]int{2, 3}, 3, true)
	if e != nil {
		t.Fatal(e)
	}
	if len(v) != 2 || v[0] != 25.0 || v[1] != 25.0 {
		t.Errorf("VarianceExplained([2,3]) = %v, want [25 25]", v)
	}
}

func TestVarianceExplainedSumsTo100(t *testing.T) {
	r := load3(t)
	all := []int{1, 2, 3}
	v, e := r.VarianceExplained(all, 3, true)
	if e != nil {
		t.Fatal(e)
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	if math.Abs(sum-100) > 1 {
		t.Errorf("sum(VarianceExplained(all)) = %v, want ~100", sum)
	}
}

func TestVarianceExplainedOutOfRange(t *testing.T) {
	r := load3(t)
	for _, c := range []int{0, 4, -1} {
		_, e := r.VarianceExplained([]int{c}, 3, true)
		var ie IndexError
		if !errors.As(e, &ie) {
			t.Errorf("VarianceExplained([%v]): got %v, want IndexError", c, e)
		}
	}
}

func TestRoundSigFigs(t *testing.T) {
	if got := roundSigFigs(0.034567, 3); got != 0.0346 {
		t.Errorf("roundSigFigs(0.034567, 3) = %v, want 0.0346", got)
	}
	if got := roundSigFigs(12345.0, 2); got != 12000.0 {
		t.Errorf("roundSigFigs(12345, 2) = %v, want 12000", got)
	}
	if got := roundSigFigs(0.5, 3); got != 0.5 {
		t.Errorf("roundSigFigs(0.5, 3) = %v, want 0.5", got)
	}
}

func TestCoordinates(t *testing.T) {
	dir := t.TempDir()
	r, e := Load(write(t, dir, "b.eigenval", eigenval2), write(t, dir, "b.eigenvec", eigenvec2), "sampleID")
	if e != nil {
		t.Fatal(e)
	}

	tab, e := r.Coordinates(1, 2)
	if e != nil {
		t.Fatal(e)
	}

	wantHeader := []string{"sampleID", "PC1", "PC2"}
	if len(tab.Header) != 3 {
		t.Fatalf("header %v, want %v", tab.Header, wantHeader)
	}
	for i, h := range wantHeader {
		if tab.Header[i] != h {
			t.Errorf("header[%v] = %v, want %v", i, tab.Header[i], h)
		}
	}

	if len(tab.IDs) != 2 || tab.IDs[0] != "S1" || tab.IDs[1] != "S2" {
		t.Errorf("ids = %v, want [S1 S2]", tab.IDs)
	}
	if tab.Rows[0][0] != 0.12 || tab.Rows[0][1] != -0.03 {
		t.Errorf("row 0 = %v, want [0.12 -0.03]", tab.Rows[0])
	}
	if tab.Rows[1][0] != -0.08 || tab.Rows[1][1] != 0.11 {
		t.Errorf("row 1 = %v, want [-0.08 0.11]", tab.Rows[1])
	}
}

func TestCoordinatesRepeatedAndReordered(t *testing.T) {
	r := load3(t)
	tab, e := r.Coordinates(2, 1, 2)
	if e != nil {
		t.Fatal(e)
	}
	if len(tab.Header) != 4 {
		t.Errorf("len(header) = %v, want 4", len(tab.Header))
	}
	if tab.Header[1] != "PC2" || tab.Header[2] != "PC1" || tab.Header[3] != "PC2" {
		t.Errorf("header = %v, want [ID PC2 PC1 PC2]", tab.Header)
	}
	if tab.Rows[0][0] != tab.Rows[0][2] {
		t.Errorf("repeated column differs: %v", tab.Rows[0])
	}
}

func TestCoordinatesEmpty(t *testing.T) {
	r := load3(t)
	tab, e := r.Coordinates()
	if e != nil {
		t.Fatal(e)
	}
	if len(tab.Header) != 1 || tab.Header[0] != "ID" {
		t.Errorf("header = %v, want [ID]", tab.Header)
	}
	if len(tab.IDs) != 3 {
		t.Errorf("len(ids) = %v, want 3", len(tab.IDs))
	}
}

func TestCoordinatesOutOfRange(t *testing.T) {
	r := load3(t)
	for _, c := range []int{0, 4} {
		_, e := r.Coordinates(c)
		var ie IndexError
		if !errors.As(e, &ie) {
			t.Errorf("Coordinates(%v): got %v, want IndexError", c, e)
		}
	}
}

func TestSampleIDsMatchFirstColumn(t *testing.T) {
	r := load3(t)
	ids := r.SampleIDs()
	tab, e := r.Coordinates(1)
	if e != nil {
		t.Fatal(e)
	}
	if len(ids) != len(tab.IDs) {
		t.Fatalf("len mismatch: %v vs %v", len(ids), len(tab.IDs))
	}
	for i := range ids {
		if ids[i] != tab.IDs[i] {
			t.Errorf("ids[%v] = %v != table id %v", i, ids[i], tab.IDs[i])
		}
	}
}

func TestIdempotentQueries(t *testing.T) {
	r := load3(t)
	v1, e := r.VarianceExplained([]int{1, 2}, 3, true)
	if e != nil {
		t.Fatal(e)
	}
	v2, e := r.VarianceExplained([]int{1, 2}, 3, true)
	if e != nil {
		t.Fatal(e)
	}
	if v1[0] != v2[0] || v1[1] != v2[1] {
		t.Errorf("repeated calls differ: %v vs %v", v1, v2)
	}

	t1, e := r.Coordinates(1, 2)
	if e != nil {
		t.Fatal(e)
	}
	t2, e := r.Coordinates(1, 2)
	if e != nil {
		t.Fatal(e)
	}
	for i := range t1.Rows {
		for j := range t1.Rows[i] {
			if t1.Rows[i][j] != t2.Rows[i][j] {
				t.Errorf("repeated Coordinates differ at %v,%v", i, j)
			}
		}
	}
}

func TestLoadRaggedFails(t *testing.T) {
	dir := t.TempDir()
	ragged := "FAM1 S1 0.1 0.2\nFAM1 S2 0.3\n"
	_, e := Load(write(t, dir, "c.eigenval", eigenval2), write(t, dir, "c.eigenvec", ragged), "")
	var fe FormatError
	if !errors.As(e, &fe) {
		t.Errorf("ragged load: got %v, want FormatError", e)
	}
}

func TestLoadTooFewColumnsFails(t *testing.T) {
	dir := t.TempDir()
	short := "FAM1 S1\nFAM1 S2\n"
	_, e := Load(write(t, dir, "d.eigenval", eigenval2), write(t, dir, "d.eigenvec", short), "")
	var fe FormatError
	if !errors.As(e, &fe) {
		t.Errorf("short-row load: got %v, want FormatError", e)
	}
}

func TestLoadNonNumericFails(t *testing.T) {
	dir := t.TempDir()
	bad := "FAM1 S1 0.1 zork\n"
	_, e := Load(write(t, dir, "e.eigenval", eigenval2), write(t, dir, "e.eigenvec", bad), "")
	var fe FormatError
	if !errors.As(e, &fe) {
		t.Errorf("non-numeric load: got %v, want FormatError", e)
	}
}

func TestLoadMissingEigenvalFails(t *testing.T) {
	dir := t.TempDir()
	r, e := Load(filepath.Join(dir, "nope.eigenval"), write(t, dir, "f.eigenvec", eigenvec2), "")
	var re ReadError
	if !errors.As(e, &re) {
		t.Errorf("missing eigenval: got %v, want ReadError", e)
	}
	if r != nil {
		t.Errorf("missing eigenval: got non-nil result %v", r)
	}
}

func TestLoadEmptyEigenvalFails(t *testing.T) {
	dir := t.TempDir()
	_, e := Load(write(t, dir, "g.eigenval", ""), write(t, dir, "g.eigenvec", eigenvec2), "")
	var re ReadError
	if !errors.As(e, &re) {
		t.Errorf("empty eigenval: got %v, want ReadError", e)
	}
}

func TestLoadCountMismatchFails(t *testing.T) {
	dir := t.TempDir()
	_, e := Load(write(t, dir, "h.eigenval", eigenval3), write(t, dir, "h.eigenvec", eigenvec2), "")
	var fe FormatError
	if !errors.As(e, &fe) {
		t.Errorf("count mismatch: got %v, want FormatError", e)
	}
}

func TestTableWrite(t *testing.T) {
	dir := t.TempDir()
	r, e := Load(write(t, dir, "i.eigenval", eigenval2), write(t, dir, "i.eigenvec", eigenvec2), "sampleID")
	if e != nil {
		t.Fatal(e)
	}
	tab, e := r.Coordinates(1, 2)
	if e != nil {
		t.Fatal(e)
	}

	var b strings.Builder
	if e := tab.Write(&b); e != nil {
		t.Fatal(e)
	}
	expect := "sampleID\tPC1\tPC2\nS1\t0.12\t-0.03\nS2\t-0.08\t0.11\n"
	if b.String() != expect {
		t.Errorf("Write output %q != expect %q", b.String(), expect)
	}
}

func TestDuplicateIDsPassThrough(t *testing.T) {
	dir := t.TempDir()
	dup := "FAM1 S1 0.1 0.2\nFAM1 S1 0.3 0.4\n"
	r, e := Load(write(t, dir, "j.eigenval", eigenval2), write(t, dir, "j.eigenvec", dup), "")
	if e != nil {
		t.Fatal(e)
	}
	ids := r.SampleIDs()
	if len(ids) != 2 || ids[0] != "S1" || ids[1] != "S1" {
		t.Errorf("ids = %v, want [S1 S1]", ids)
	}
}
