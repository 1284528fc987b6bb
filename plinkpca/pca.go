package plinkpca

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/montanaflynn/stats"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Eigenvalues and per-sample coordinates from one plink --pca run
// (.eigenval plus .eigenvec). Read-only after Load.
type Result struct {
	idCol     string
	eigenvals []float64
	ids       []string
	coords    [][]float64
}

// Load reads an .eigenval and .eigenvec pair. idCol names the sample
// identifier column in output tables; "" means "ID". The .eigenvec
// family ID column is dropped and the coordinate columns become
// PC1..PCK.
func Load(eigenvalPath, eigenvecPath, idCol string) (*Result, error) {
	h := handle("Load: %w")
	if idCol == "" {
		idCol = "ID"
	}

	vals, e := readEigenvals(eigenvalPath)
	if e != nil {
		return nil, h(e)
	}

	ids, coords, e := readEigenvecs(eigenvecPath)
	if e != nil {
		return nil, h(e)
	}

	if len(coords) > 0 && len(coords[0]) != len(vals) {
		return nil, h(FormatError{
			Path: eigenvecPath,
			Msg:  fmt.Sprintf("%v coordinate columns but %v eigenvalues in %v", len(coords[0]), len(vals), eigenvalPath),
		})
	}

	return &Result{idCol: idCol, eigenvals: vals, ids: ids, coords: coords}, nil
}

func readEigenvals(path string) ([]float64, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, ReadError{Path: path, Err: e}
	}
	defer r.Close()

	buf, e := io.ReadAll(r)
	if e != nil {
		return nil, ReadError{Path: path, Err: e}
	}

	toks := strings.Fields(string(buf))
	if len(toks) == 0 {
		return nil, ReadError{Path: path, Err: fmt.Errorf("no eigenvalues in file")}
	}

	vals := make([]float64, 0, len(toks))
	for i, tok := range toks {
		v, e := strconv.ParseFloat(tok, 64)
		if e != nil {
			return nil, FormatError{Path: path, Line: i + 1, Msg: fmt.Sprintf("bad eigenvalue %q", tok)}
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func readEigenvecs(path string) ([]string, [][]float64, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, nil, ReadError{Path: path, Err: e}
	}
	defer r.Close()

	var ids []string
	var coords [][]float64
	ncol := -1

	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e9)
	lineno := 0
	for s.Scan() {
		lineno++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if ncol == -1 {
			if len(fields) < 3 {
				return nil, nil, FormatError{Path: path, Line: lineno, Msg: fmt.Sprintf("%v columns; need family ID, sample ID, and coordinates", len(fields))}
			}
			ncol = len(fields)
		}
		if len(fields) != ncol {
			return nil, nil, FormatError{Path: path, Line: lineno, Msg: fmt.Sprintf("%v columns != %v in first row", len(fields), ncol)}
		}

		row := make([]float64, 0, ncol-2)
		for _, tok := range fields[2:] {
			v, e := strconv.ParseFloat(tok, 64)
			if e != nil {
				return nil, nil, FormatError{Path: path, Line: lineno, Msg: fmt.Sprintf("bad coordinate %q", tok)}
			}
			row = append(row, v)
		}
		ids = append(ids, fields[1])
		coords = append(coords, row)
	}
	if e := s.Err(); e != nil {
		return nil, nil, ReadError{Path: path, Err: e}
	}
	if len(ids) == 0 {
		return nil, nil, ReadError{Path: path, Err: fmt.Errorf("no rows in file")}
	}

	return ids, coords, nil
}

func (r *Result) NumComponents() int {
	return len(r.eigenvals)
}

// SampleIDs returns sample identifiers in file order. Duplicates, if
// present in the input, are passed through unchanged.
func (r *Result) SampleIDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func (r *Result) checkComponent(c int) error {
	if c < 1 || c > len(r.eigenvals) {
		return IndexError{Component: c, Max: len(r.eigenvals)}
	}
	return nil
}

// VarianceExplained returns, for each requested 1-based component, the
// fraction of total variance its eigenvalue captures, rounded to
// sigFigs significant figures and then scaled to percent if asPercent
// is set.
func (r *Result) VarianceExplained(components []int, sigFigs int, asPercent bool) ([]float64, error) {
	h := handle("VarianceExplained: %w")

	sum, e := stats.Sum(r.eigenvals)
	if e != nil {
		return nil, h(e)
	}

	out := make([]float64, 0, len(components))
	for _, c := range components {
		if e := r.checkComponent(c); e != nil {
			return nil, h(e)
		}
		v := roundSigFigs(r.eigenvals[c-1]/sum, sigFigs)
		if asPercent {
			v *= 100
		}
		out = append(out, v)
	}
	return out, nil
}

// roundSigFigs rounds to n significant figures, not decimal places.
// Going through the decimal formatter keeps results like 12000 exact.
func roundSigFigs(x float64, n int) float64 {
	if n < 1 || x == 0 {
		return x
	}
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'g', n, 64), 64)
	return v
}

// Coordinates builds a table with the sample ID column followed by one
// column per requested component, in request order. Repeated and
// out-of-order components are kept as requested. Row order is file
// order.
func (r *Result) Coordinates(components ...int) (*Table, error) {
	h := handle("Coordinates: %w")

	for _, c := range components {
		if e := r.checkComponent(c); e != nil {
			return nil, h(e)
		}
	}

	header := make([]string, 0, len(components)+1)
	header = append(header, r.idCol)
	for _, c := range components {
		header = append(header, fmt.Sprintf("PC%v", c))
	}

	rows := make([][]float64, len(r.ids))
	for i := range r.ids {
		row := make([]float64, 0, len(components))
		for _, c := range components {
			row = append(row, r.coords[i][c-1])
		}
		rows[i] = row
	}

	ids := make([]string, len(r.ids))
	copy(ids, r.ids)

	return &Table{Header: header, IDs: ids, Rows: rows}, nil
}
