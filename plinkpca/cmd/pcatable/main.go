package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/EcoEvoGenomics/scripts/plinkpca"
	"github.com/jgbaldwinbrown/csvh"
)

type Flags struct {
	Eigenval string
	Eigenvec string
	IDCol    string
	PCs      string
	SigFigs  int
	Fraction bool
	Variance bool
	Out      string
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.Eigenval, "val", "", "Path to plink .eigenval file (required).")
	flag.StringVar(&f.Eigenvec, "vec", "", "Path to plink .eigenvec file (required).")
	flag.StringVar(&f.IDCol, "id", "ID", "Name for the sample ID column.")
	flag.StringVar(&f.PCs, "pcs", "1,2", "Comma-separated 1-based components to output.")
	flag.IntVar(&f.SigFigs, "sigfigs", 3, "Significant figures for variance explained.")
	flag.BoolVar(&f.Fraction, "frac", false, "Report variance explained as a fraction, not a percentage.")
	flag.BoolVar(&f.Variance, "var", false, "Output a variance-explained table instead of coordinates.")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.Parse()

	if f.Eigenval == "" || f.Eigenvec == "" {
		panic(fmt.Errorf("missing -val or -vec argument"))
	}
	return
}

func ParsePCs(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		c, e := strconv.Atoi(strings.TrimSpace(tok))
		if e != nil {
			return nil, fmt.Errorf("ParsePCs: bad component %q", tok)
		}
		out = append(out, c)
	}
	return out, nil
}

func WriteVariance(w io.Writer, r *plinkpca.Result, pcs []int, sigFigs int, asPercent bool) error {
	vs, e := r.VarianceExplained(pcs, sigFigs, asPercent)
	if e != nil {
		return e
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "PC\tvariance_explained")
	for i, c := range pcs {
		fmt.Fprintf(bw, "PC%v\t%v\n", c, vs[i])
	}
	return bw.Flush()
}

func main() {
	f := GetFlags()

	pcs, e := ParsePCs(f.PCs)
	if e != nil {
		log.Fatal(e)
	}

	r, e := plinkpca.Load(f.Eigenval, f.Eigenvec, f.IDCol)
	if e != nil {
		log.Fatal(e)
	}

	var w io.Writer = os.Stdout
	if f.Out != "" {
		wc, e := csvh.CreateMaybeGz(f.Out)
		if e != nil {
			log.Fatal(e)
		}
		defer wc.Close()
		w = wc
	}

	if f.Variance {
		if e := WriteVariance(w, r, pcs, f.SigFigs, !f.Fraction); e != nil {
			log.Fatal(e)
		}
		return
	}

	tab, e := r.Coordinates(pcs...)
	if e != nil {
		log.Fatal(e)
	}
	if e := tab.Write(w); e != nil {
		log.Fatal(e)
	}
}
