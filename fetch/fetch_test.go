package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if e := os.WriteFile(path, []byte(content), 0644); e != nil {
		t.Fatal(e)
	}
	return path
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "in.txt", "hello\n")
	dst := filepath.Join(dir, "sub", "out.txt")

	if e := Copy(src, dst); e != nil {
		t.Fatal(e)
	}

	buf, e := os.ReadFile(dst)
	if e != nil {
		t.Fatal(e)
	}
	if string(buf) != "hello\n" {
		t.Errorf("copied %q, want %q", buf, "hello\n")
	}
}

func TestCopyMissingSrc(t *testing.T) {
	dir := t.TempDir()
	if e := Copy(filepath.Join(dir, "nope"), filepath.Join(dir, "out")); e == nil {
		t.Error("missing source: expected error")
	}
}

func TestCopyAll(t *testing.T) {
	dir := t.TempDir()
	var pairs []Pair
	for _, name := range []string{"a", "b", "c"} {
		src := write(t, dir, name+".txt", name)
		pairs = append(pairs, Pair{Src: src, Dst: filepath.Join(dir, "out", name+".txt")})
	}

	if e := CopyAll(context.Background(), pairs, 2); e != nil {
		t.Fatal(e)
	}
	for _, pair := range pairs {
		if _, e := os.Stat(pair.Dst); e != nil {
			t.Errorf("missing %v: %v", pair.Dst, e)
		}
	}
}

func TestCopyAllFails(t *testing.T) {
	dir := t.TempDir()
	pairs := []Pair{{Src: filepath.Join(dir, "nope"), Dst: filepath.Join(dir, "out")}}
	if e := CopyAll(context.Background(), pairs, 2); e == nil {
		t.Error("missing source in batch: expected error")
	}
}

func TestChecksums(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "data.txt", "genotype data\n")

	sum, e := Sha256Of(src)
	if e != nil {
		t.Fatal(e)
	}
	if len(sum) != 64 {
		t.Fatalf("digest %q has length %v, want 64", sum, len(sum))
	}

	sums, e := ReadChecksums(strings.NewReader(sum + "  data.txt\n"))
	if e != nil {
		t.Fatal(e)
	}
	if e := Verify(src, "data.txt", sums); e != nil {
		t.Errorf("Verify: %v", e)
	}

	if e := Verify(src, "other.txt", sums); e == nil {
		t.Error("unknown name: expected error")
	}

	bad := write(t, dir, "bad.txt", "tampered\n")
	sums2, e := ReadChecksums(strings.NewReader(sum + "  bad.txt\n"))
	if e != nil {
		t.Fatal(e)
	}
	if e := Verify(bad, "bad.txt", sums2); e == nil {
		t.Error("mismatched digest: expected error")
	}
}

func TestReadChecksumsBadLine(t *testing.T) {
	if _, e := ReadChecksums(strings.NewReader("justonefield\n")); e == nil {
		t.Error("one-field line: expected error")
	}
}
