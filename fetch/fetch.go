package fetch

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Copy streams src to dst, creating parent directories and syncing the
// result. The destination is written in place, not atomically renamed;
// callers that need atomicity copy to a temp name first.
func Copy(src, dst string) (err error) {
	h := handle("Copy: %w")

	r, e := os.Open(src)
	if e != nil {
		return h(e)
	}
	defer r.Close()

	if e := os.MkdirAll(filepath.Dir(dst), 0755); e != nil {
		return h(e)
	}

	w, e := os.Create(dst)
	if e != nil {
		return h(e)
	}
	defer func() {
		e := w.Close()
		if err == nil {
			err = e
		}
	}()

	if _, e := io.Copy(w, r); e != nil {
		return h(e)
	}
	if e := w.Sync(); e != nil {
		return h(e)
	}
	return nil
}

type Pair struct {
	Src string
	Dst string
}

// CopyAll copies a batch of files with up to workers copies in flight.
// The first failure cancels the rest of the batch.
func CopyAll(ctx context.Context, pairs []Pair, workers int) error {
	h := handle("CopyAll: %w")

	if workers < 1 {
		workers = 1
	}
	g, ctx2 := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			if e := ctx2.Err(); e != nil {
				return e
			}
			if e := Copy(pair.Src, pair.Dst); e != nil {
				return fmt.Errorf("%v -> %v: %w", pair.Src, pair.Dst, e)
			}
			return nil
		})
	}
	if e := g.Wait(); e != nil {
		return h(e)
	}
	return nil
}

// Sha256Of returns the hex digest of one file's contents.
func Sha256Of(path string) (string, error) {
	h := handle("Sha256Of: %w")

	r, e := os.Open(path)
	if e != nil {
		return "", h(e)
	}
	defer r.Close()

	sum := sha256.New()
	if _, e := io.Copy(sum, r); e != nil {
		return "", h(e)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// ReadChecksums parses `sha256sum` output: hex digest, whitespace,
// path, one entry per line.
func ReadChecksums(r io.Reader) (map[string]string, error) {
	h := handle("ReadChecksums: %w")

	out := map[string]string{}
	s := bufio.NewScanner(r)
	lineno := 0
	for s.Scan() {
		lineno++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, h(fmt.Errorf("line %v: %v fields, want 2", lineno, len(fields)))
		}
		out[fields[1]] = fields[0]
	}
	if e := s.Err(); e != nil {
		return nil, h(e)
	}
	return out, nil
}

// Verify checks dst against the digest recorded for name in sums.
func Verify(dst, name string, sums map[string]string) error {
	h := handle("Verify: %w")

	want, ok := sums[name]
	if !ok {
		return h(fmt.Errorf("no checksum recorded for %v", name))
	}
	got, e := Sha256Of(dst)
	if e != nil {
		return h(e)
	}
	if got != want {
		return h(fmt.Errorf("%v: checksum %v != recorded %v", dst, got, want))
	}
	return nil
}
