package admixture

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/EcoEvoGenomics/scripts/plinkpca"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/lscan/pkg"
	"github.com/montanaflynn/stats"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

var splitSpace = lscan.ByByte(' ')

func splitFields(buf []string, s string) []string {
	buf = lscan.SplitByFunc(buf[:0], s, splitSpace)
	out := buf[:0]
	for _, f := range buf {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// QMatrix holds per-sample ancestry fractions from one ADMIXTURE run:
// one row per sample in .fam order, one column per cluster. Read-only
// after LoadQ.
type QMatrix struct {
	ids   []string
	fracs [][]float64
}

// LoadQ reads an ADMIXTURE .Q file and the .fam file of the input bed
// set, which supplies the sample IDs in matching row order.
func LoadQ(qPath, famPath string) (*QMatrix, error) {
	h := handle("LoadQ: %w")

	ids, e := readFamIDs(famPath)
	if e != nil {
		return nil, h(e)
	}

	fracs, e := readQ(qPath)
	if e != nil {
		return nil, h(e)
	}

	if len(ids) != len(fracs) {
		return nil, h(plinkpca.FormatError{
			Path: qPath,
			Msg:  fmt.Sprintf("%v rows but %v samples in %v", len(fracs), len(ids), famPath),
		})
	}

	return &QMatrix{ids: ids, fracs: fracs}, nil
}

func readFamIDs(path string) ([]string, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, plinkpca.ReadError{Path: path, Err: e}
	}
	defer r.Close()

	var ids []string
	var buf []string
	s := bufio.NewScanner(r)
	lineno := 0
	for s.Scan() {
		lineno++
		buf = splitFields(buf, s.Text())
		if len(buf) == 0 {
			continue
		}
		if len(buf) < 2 {
			return nil, plinkpca.FormatError{Path: path, Line: lineno, Msg: "need family ID and sample ID columns"}
		}
		ids = append(ids, buf[1])
	}
	if e := s.Err(); e != nil {
		return nil, plinkpca.ReadError{Path: path, Err: e}
	}
	if len(ids) == 0 {
		return nil, plinkpca.ReadError{Path: path, Err: fmt.Errorf("no rows in file")}
	}
	return ids, nil
}

func readQ(path string) ([][]float64, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, plinkpca.ReadError{Path: path, Err: e}
	}
	defer r.Close()

	var fracs [][]float64
	var buf []string
	k := -1
	s := bufio.NewScanner(r)
	lineno := 0
	for s.Scan() {
		lineno++
		buf = splitFields(buf, s.Text())
		if len(buf) == 0 {
			continue
		}
		if k == -1 {
			k = len(buf)
		}
		if len(buf) != k {
			return nil, plinkpca.FormatError{Path: path, Line: lineno, Msg: fmt.Sprintf("%v columns != %v in first row", len(buf), k)}
		}

		row := make([]float64, 0, k)
		for _, tok := range buf {
			v, e := strconv.ParseFloat(tok, 64)
			if e != nil {
				return nil, plinkpca.FormatError{Path: path, Line: lineno, Msg: fmt.Sprintf("bad ancestry fraction %q", tok)}
			}
			row = append(row, v)
		}
		fracs = append(fracs, row)
	}
	if e := s.Err(); e != nil {
		return nil, plinkpca.ReadError{Path: path, Err: e}
	}
	if len(fracs) == 0 {
		return nil, plinkpca.ReadError{Path: path, Err: fmt.Errorf("no rows in file")}
	}
	return fracs, nil
}

func (q *QMatrix) K() int {
	if len(q.fracs) == 0 {
		return 0
	}
	return len(q.fracs[0])
}

func (q *QMatrix) SampleIDs() []string {
	out := make([]string, len(q.ids))
	copy(out, q.ids)
	return out
}

// ClusterMeans returns the mean ancestry fraction of each cluster
// across all samples.
func (q *QMatrix) ClusterMeans() ([]float64, error) {
	h := handle("ClusterMeans: %w")

	out := make([]float64, q.K())
	col := make([]float64, len(q.fracs))
	for j := range out {
		for i, row := range q.fracs {
			col[i] = row[j]
		}
		m, e := stats.Mean(col)
		if e != nil {
			return nil, h(e)
		}
		out[j] = m
	}
	return out, nil
}

// MajorCluster returns the 1-based cluster with the largest ancestry
// fraction for the named sample. Ties go to the lower cluster number.
func (q *QMatrix) MajorCluster(sample string) (int, error) {
	for i, id := range q.ids {
		if id != sample {
			continue
		}
		best := 0
		for j, v := range q.fracs[i] {
			if v > q.fracs[i][best] {
				best = j
			}
		}
		return best + 1, nil
	}
	return 0, fmt.Errorf("MajorCluster: no sample %q", sample)
}

// Table builds the ancestry table: sample ID column then Q1..QK.
func (q *QMatrix) Table(idCol string) *plinkpca.Table {
	if idCol == "" {
		idCol = "ID"
	}

	header := make([]string, 0, q.K()+1)
	header = append(header, idCol)
	for j := 1; j <= q.K(); j++ {
		header = append(header, fmt.Sprintf("Q%v", j))
	}

	ids := make([]string, len(q.ids))
	copy(ids, q.ids)

	rows := make([][]float64, len(q.fracs))
	for i, row := range q.fracs {
		rows[i] = make([]float64, len(row))
		copy(rows[i], row)
	}

	return &plinkpca.Table{Header: header, IDs: ids, Rows: rows}
}
