package plinkpca

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jgbaldwinbrown/fasttsv"
	"github.com/montanaflynn/stats"
	"github.com/sajari/regression"
)

// SampleSheet is per-sample metadata from a headered TSV whose first
// column is the sample ID.
type SampleSheet struct {
	Cols []string
	Rows map[string][]string
}

func ReadSampleSheet(r io.Reader) (*SampleSheet, error) {
	h := handle("ReadSampleSheet: %w")

	sheet := &SampleSheet{Rows: map[string][]string{}}
	s := fasttsv.NewScanner(r)
	for s.Scan() {
		line := s.Line()
		if len(line) < 2 {
			return nil, h(fmt.Errorf("need at least a sample ID column and one metadata column; got %v columns", len(line)))
		}
		if sheet.Cols == nil {
			sheet.Cols = make([]string, len(line))
			copy(sheet.Cols, line)
			continue
		}
		if len(line) != len(sheet.Cols) {
			return nil, h(fmt.Errorf("row for %q has %v columns, header has %v", line[0], len(line), len(sheet.Cols)))
		}
		row := make([]string, len(line))
		copy(row, line)
		sheet.Rows[line[0]] = row
	}
	if sheet.Cols == nil {
		return nil, h(fmt.Errorf("empty sample sheet"))
	}
	return sheet, nil
}

func (s *SampleSheet) colIndex(name string) (int, error) {
	for i, c := range s.Cols {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column %q in sample sheet", name)
}

// Covariate returns the named numeric column for the given samples, in
// the given order. A sample missing from the sheet or a non-numeric
// value is an error.
func (s *SampleSheet) Covariate(name string, samples []string) ([]float64, error) {
	h := handle("Covariate: %w")

	ci, e := s.colIndex(name)
	if e != nil {
		return nil, h(e)
	}

	out := make([]float64, 0, len(samples))
	for _, id := range samples {
		row, ok := s.Rows[id]
		if !ok {
			return nil, h(fmt.Errorf("sample %q not in sample sheet", id))
		}
		v, e := strconv.ParseFloat(row[ci], 64)
		if e != nil {
			return nil, h(fmt.Errorf("sample %q: bad %v value %q", id, name, row[ci]))
		}
		out = append(out, v)
	}
	return out, nil
}

// CovarStats summarizes how strongly one principal component tracks a
// per-sample covariate, a standard check for batch effects.
type CovarStats struct {
	PC          int
	Covariate   string
	N           int
	Correlation float64
	R2          float64
	Formula     string
}

func CheckCovariate(res *Result, sheet *SampleSheet, pc int, covName string) (CovarStats, error) {
	h := handle("CheckCovariate: %w")
	var out CovarStats

	tab, e := res.Coordinates(pc)
	if e != nil {
		return out, h(e)
	}
	pcVals, e := tab.Column(fmt.Sprintf("PC%v", pc))
	if e != nil {
		return out, h(e)
	}

	cov, e := sheet.Covariate(covName, tab.IDs)
	if e != nil {
		return out, h(e)
	}

	corr, e := stats.Correlation(cov, pcVals)
	if e != nil {
		return out, h(e)
	}

	reg := new(regression.Regression)
	reg.SetObserved(fmt.Sprintf("PC%v", pc))
	reg.SetVar(0, covName)
	var ds regression.DataPoints
	for i, v := range pcVals {
		ds = append(ds, regression.DataPoint(v, []float64{cov[i]}))
	}
	reg.Train(ds...)
	if e := reg.Run(); e != nil {
		return out, h(e)
	}

	out.PC = pc
	out.Covariate = covName
	out.N = len(pcVals)
	out.Correlation = corr
	out.R2 = reg.R2
	out.Formula = reg.Formula
	return out, nil
}
