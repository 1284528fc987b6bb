package fastx

import (
	"fmt"
	"io"
	"iter"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Collect all the values from an iterator and break if there's an error
func CollectErr[T any](it iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for val, e := range it {
		if e != nil {
			return nil, e
		}
		out = append(out, val)
	}
	return out, nil
}

// CollectFasta reads all records from one possibly-gzipped FASTA file.
func CollectFasta(path string) ([]fastats.FaEntry, error) {
	h := handle("CollectFasta: %w")

	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, h(e)
	}
	defer r.Close()

	fa, e := CollectErr(fastats.ParseFasta(r))
	if e != nil {
		return nil, h(fmt.Errorf("%v: %w", path, e))
	}
	return fa, nil
}

type DedupKey int

const (
	ByHeader DedupKey = iota
	BySeq
)

// Dedup keeps the first record for each key, preserving input order.
func Dedup(fa []fastats.FaEntry, key DedupKey) []fastats.FaEntry {
	seen := map[string]struct{}{}
	var out []fastats.FaEntry
	for _, entry := range fa {
		k := entry.Header
		if key == BySeq {
			k = entry.Seq
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// DedupFile deduplicates one FASTA file into w.
func DedupFile(w io.Writer, path string, key DedupKey) error {
	h := handle("DedupFile: %w")

	fa, e := CollectFasta(path)
	if e != nil {
		return h(e)
	}
	if e := fastats.WriteFaEntries(w, Dedup(fa, key)...); e != nil {
		return h(e)
	}
	return nil
}

// Concat re-emits the records of each input FASTA in argument order,
// normalizing record framing along the way.
func Concat(w io.Writer, paths ...string) error {
	h := handle("Concat: %w")

	for _, path := range paths {
		fa, e := CollectFasta(path)
		if e != nil {
			return h(e)
		}
		if e := fastats.WriteFaEntries(w, fa...); e != nil {
			return h(fmt.Errorf("%v: %w", path, e))
		}
	}
	return nil
}
