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

func main() {
	out := flag.String("o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.Parse()

	if flag.NArg() == 0 {
		panic(fmt.Errorf("no input FASTA paths"))
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		wc, e := csvh.CreateMaybeGz(*out)
		if e != nil {
			log.Fatal(e)
		}
		defer wc.Close()
		w = wc
	}

	if e := fastx.Concat(w, flag.Args()...); e != nil {
		log.Fatal(e)
	}
}
