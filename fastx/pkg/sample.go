package fastx

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/jgbaldwinbrown/fastats/pkg"
)

// SampleFasta keeps each record with probability prop, using a seeded
// generator so runs are reproducible.
func SampleFasta(fa []fastats.FaEntry, prop float64, seed int64) []fastats.FaEntry {
	rd := rand.New(rand.NewSource(seed))
	var out []fastats.FaEntry
	for _, entry := range fa {
		if rd.Float64() < prop {
			out = append(out, entry)
		}
	}
	return out
}

// SampleFastq streams a FASTQ file, keeping each four-line record with
// probability prop. Truncated records are an error.
func SampleFastq(r io.Reader, w io.Writer, prop float64, seed int64) error {
	h := handle("SampleFastq: %w")

	rd := rand.New(rand.NewSource(seed))
	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e9)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	rec := make([]string, 0, 4)
	nrec := 0
	for s.Scan() {
		rec = append(rec, s.Text())
		if len(rec) < 4 {
			continue
		}
		nrec++
		if !strings.HasPrefix(rec[0], "@") {
			return h(fmt.Errorf("record %v: header %q does not start with @", nrec, rec[0]))
		}
		if !strings.HasPrefix(rec[2], "+") {
			return h(fmt.Errorf("record %v: separator %q does not start with +", nrec, rec[2]))
		}
		if rd.Float64() < prop {
			for _, line := range rec {
				fmt.Fprintln(bw, line)
			}
		}
		rec = rec[:0]
	}
	if e := s.Err(); e != nil {
		return h(e)
	}
	if len(rec) != 0 {
		return h(fmt.Errorf("truncated record of %v lines at end of input", len(rec)))
	}
	return bw.Flush()
}
