package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/EcoEvoGenomics/scripts/phylo"
)

type Flags struct {
	In         string
	Prefix     string
	Bootstraps int
	Threads    int
	SkipAlign  bool
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.In, "i", "", "Input FASTA of sequences to align (required).")
	flag.StringVar(&f.Prefix, "p", "tree", "Output prefix for alignment and tree files.")
	flag.IntVar(&f.Bootstraps, "B", 1000, "Ultrafast bootstrap replicates; 0 disables.")
	flag.IntVar(&f.Threads, "t", 1, "Threads for mafft and iqtree2.")
	flag.BoolVar(&f.SkipAlign, "aligned", false, "Input is already aligned; skip mafft.")
	flag.Parse()

	if f.In == "" {
		panic(fmt.Errorf("missing -i argument"))
	}
	return
}

func main() {
	f := GetFlags()

	aln := f.In
	if !f.SkipAlign {
		aln = f.Prefix + ".aln.fa"
		if e := phylo.MafftAlign(f.In, aln, f.Threads); e != nil {
			log.Fatal(e)
		}
	}

	if e := phylo.IQTree(aln, f.Prefix, f.Bootstraps, f.Threads); e != nil {
		log.Fatal(e)
	}
}
