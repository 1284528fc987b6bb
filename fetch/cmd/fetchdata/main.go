package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/EcoEvoGenomics/scripts/fetch"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fasttsv"
)

type Flags struct {
	List    string
	Dst     string
	Sums    string
	Workers int
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.List, "l", "", "TSV of source paths, one per line (required).")
	flag.StringVar(&f.Dst, "d", ".", "Destination directory.")
	flag.StringVar(&f.Sums, "sums", "", "Optional sha256sum file to verify copies against.")
	flag.IntVar(&f.Workers, "j", 4, "Concurrent copies.")
	flag.Parse()

	if f.List == "" {
		panic(fmt.Errorf("missing -l argument"))
	}
	return
}

func ReadPairs(path, dstDir string) ([]fetch.Pair, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()

	var pairs []fetch.Pair
	s := fasttsv.NewScanner(r)
	for s.Scan() {
		line := s.Line()
		if len(line) == 0 || line[0] == "" {
			continue
		}
		src := line[0]
		pairs = append(pairs, fetch.Pair{Src: src, Dst: filepath.Join(dstDir, filepath.Base(src))})
	}
	return pairs, nil
}

func main() {
	f := GetFlags()

	pairs, e := ReadPairs(f.List, f.Dst)
	if e != nil {
		log.Fatal(e)
	}

	if e := fetch.CopyAll(context.Background(), pairs, f.Workers); e != nil {
		log.Fatal(e)
	}

	if f.Sums == "" {
		return
	}

	r, e := csvh.OpenMaybeGz(f.Sums)
	if e != nil {
		log.Fatal(e)
	}
	sums, e := fetch.ReadChecksums(r)
	r.Close()
	if e != nil {
		log.Fatal(e)
	}

	for _, pair := range pairs {
		if e := fetch.Verify(pair.Dst, filepath.Base(pair.Dst), sums); e != nil {
			log.Fatal(e)
		}
	}
}
