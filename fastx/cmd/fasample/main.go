package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EcoEvoGenomics/scripts/fastx/pkg"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
)

type Flags struct {
	In    string
	Out   string
	Prop  float64
	Seed  int64
	Fastq bool
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.In, "i", "", "Input FASTA/FASTQ path (required; .gz ok).")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.Float64Var(&f.Prop, "p", -1, "Proportion of records to keep (required).")
	flag.Int64Var(&f.Seed, "seed", 0, "Random seed.")
	flag.BoolVar(&f.Fastq, "fq", false, "Input is FASTQ, not FASTA.")
	flag.Parse()

	if f.In == "" || f.Prop < 0 || f.Prop > 1 {
		panic(fmt.Errorf("missing -i or bad -p argument"))
	}
	return
}

func main() {
	f := GetFlags()

	var w io.Writer = os.Stdout
	if f.Out != "" {
		wc, e := csvh.CreateMaybeGz(f.Out)
		if e != nil {
			log.Fatal(e)
		}
		defer wc.Close()
		w = wc
	}

	if f.Fastq {
		r, e := csvh.OpenMaybeGz(f.In)
		if e != nil {
			log.Fatal(e)
		}
		defer r.Close()
		if e := fastx.SampleFastq(r, w, f.Prop, f.Seed); e != nil {
			log.Fatal(e)
		}
		return
	}

	fa, e := fastx.CollectFasta(f.In)
	if e != nil {
		log.Fatal(e)
	}
	kept := fastx.SampleFasta(fa, f.Prop, f.Seed)
	if e := fastats.WriteFaEntries(w, kept...); e != nil {
		log.Fatal(e)
	}
}
