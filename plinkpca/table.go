package plinkpca

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is a sample ID column plus zero or more numeric columns. One
// row per sample, len(Rows[i]) == len(Header)-1.
type Table struct {
	Header []string
	IDs    []string
	Rows   [][]float64
}

// Write emits the table as headered tab-separated text.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, e := fmt.Fprintln(bw, strings.Join(t.Header, "\t")); e != nil {
		return e
	}
	for i, id := range t.IDs {
		bw.WriteString(id)
		for _, v := range t.Rows[i] {
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Column returns the values of the named numeric column, in row order.
func (t *Table) Column(name string) ([]float64, error) {
	for i, h := range t.Header[1:] {
		if h == name {
			out := make([]float64, len(t.Rows))
			for j, row := range t.Rows {
				out[j] = row[i]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("Column: no column %q", name)
}
