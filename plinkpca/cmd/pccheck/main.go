package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/EcoEvoGenomics/scripts/plinkpca"
	"github.com/jgbaldwinbrown/csvh"
)

type Flags struct {
	Eigenval  string
	Eigenvec  string
	Sheet     string
	PC        int
	Covariate string
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.Eigenval, "val", "", "Path to plink .eigenval file (required).")
	flag.StringVar(&f.Eigenvec, "vec", "", "Path to plink .eigenvec file (required).")
	flag.StringVar(&f.Sheet, "sheet", "", "Headered TSV of per-sample metadata, sample ID first (required).")
	flag.IntVar(&f.PC, "pc", 1, "1-based principal component to check.")
	flag.StringVar(&f.Covariate, "cov", "", "Numeric metadata column to check against (required).")
	flag.Parse()

	if f.Eigenval == "" || f.Eigenvec == "" || f.Sheet == "" || f.Covariate == "" {
		panic(fmt.Errorf("missing required argument"))
	}
	return
}

func main() {
	f := GetFlags()

	res, e := plinkpca.Load(f.Eigenval, f.Eigenvec, "")
	if e != nil {
		log.Fatal(e)
	}

	r, e := csvh.OpenMaybeGz(f.Sheet)
	if e != nil {
		log.Fatal(e)
	}
	sheet, e := plinkpca.ReadSampleSheet(r)
	r.Close()
	if e != nil {
		log.Fatal(e)
	}

	cs, e := plinkpca.CheckCovariate(res, sheet, f.PC, f.Covariate)
	if e != nil {
		log.Fatal(e)
	}

	fmt.Fprintf(os.Stdout, "pc\tcovariate\tn\tcorrelation\tr2\tformula\n")
	fmt.Fprintf(os.Stdout, "PC%v\t%v\t%v\t%v\t%v\t%v\n", cs.PC, cs.Covariate, cs.N, cs.Correlation, cs.R2, cs.Formula)
}
