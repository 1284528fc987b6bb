package admixture

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/jgbaldwinbrown/csvh"
)

// One "CV error (K=N): F" line from an ADMIXTURE cross-validation log.
type CVError struct {
	K     int
	Error float64
}

var cvRe = regexp.MustCompile(`CV error \(K=(\d+)\): ([0-9.eE+-]+)`)

// ParseCVErrors scans ADMIXTURE log output for cross-validation error
// lines. Lines that do not match are skipped, matching the usual
// grep-based extraction.
func ParseCVErrors(r io.Reader) ([]CVError, error) {
	h := handle("ParseCVErrors: %w")

	var out []CVError
	s := bufio.NewScanner(r)
	for s.Scan() {
		m := cvRe.FindStringSubmatch(s.Text())
		if m == nil {
			continue
		}
		k, e := strconv.Atoi(m[1])
		if e != nil {
			return nil, h(e)
		}
		v, e := strconv.ParseFloat(m[2], 64)
		if e != nil {
			return nil, h(e)
		}
		out = append(out, CVError{K: k, Error: v})
	}
	if e := s.Err(); e != nil {
		return nil, h(e)
	}
	return out, nil
}

// ParseCVErrorPaths collects CV errors from several log files, one
// ADMIXTURE run per file.
func ParseCVErrorPaths(paths ...string) ([]CVError, error) {
	h := handle("ParseCVErrorPaths: %w")

	var out []CVError
	for _, path := range paths {
		r, e := csvh.OpenMaybeGz(path)
		if e != nil {
			return nil, h(e)
		}
		cvs, e := ParseCVErrors(r)
		r.Close()
		if e != nil {
			return nil, h(fmt.Errorf("%v: %w", path, e))
		}
		out = append(out, cvs...)
	}
	return out, nil
}

// BestK returns the K with the lowest cross-validation error.
func BestK(cvs []CVError) (int, error) {
	if len(cvs) == 0 {
		return 0, fmt.Errorf("BestK: no CV errors")
	}
	best := cvs[0]
	for _, cv := range cvs[1:] {
		if cv.Error < best.Error {
			best = cv
		}
	}
	return best.K, nil
}
