package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EcoEvoGenomics/scripts/fastx/pkg"
	"github.com/jgbaldwinbrown/csvh"
)

type Flags struct {
	In    string
	Out   string
	BySeq bool
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.In, "i", "", "Input FASTA path (required; .gz ok).")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.BoolVar(&f.BySeq, "s", false, "Deduplicate by sequence instead of header.")
	flag.Parse()

	if f.In == "" {
		panic(fmt.Errorf("missing -i argument"))
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

	key := fastx.ByHeader
	if f.BySeq {
		key = fastx.BySeq
	}
	if e := fastx.DedupFile(w, f.In, key); e != nil {
		log.Fatal(e)
	}
}
