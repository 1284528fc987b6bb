package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EcoEvoGenomics/scripts/admixture"
	"github.com/jgbaldwinbrown/csvh"
)

type Flags struct {
	Q     string
	Fam   string
	IDCol string
	Out   string
	CV    bool
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.Q, "q", "", "Path to ADMIXTURE .Q file.")
	flag.StringVar(&f.Fam, "fam", "", "Path to the plink .fam file of the ADMIXTURE input.")
	flag.StringVar(&f.IDCol, "id", "ID", "Name for the sample ID column.")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.BoolVar(&f.CV, "cv", false, "Treat positional arguments as ADMIXTURE logs; report CV errors and best K.")
	flag.Parse()

	if !f.CV && (f.Q == "" || f.Fam == "") {
		panic(fmt.Errorf("missing -q or -fam argument"))
	}
	if f.CV && flag.NArg() == 0 {
		panic(fmt.Errorf("-cv needs at least one log path"))
	}
	return
}

func WriteCV(w io.Writer, cvs []admixture.CVError, best int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "K\tcv_error")
	for _, cv := range cvs {
		fmt.Fprintf(bw, "%v\t%v\n", cv.K, cv.Error)
	}
	fmt.Fprintf(bw, "# best K: %v\n", best)
	return bw.Flush()
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

	if f.CV {
		cvs, e := admixture.ParseCVErrorPaths(flag.Args()...)
		if e != nil {
			log.Fatal(e)
		}
		best, e := admixture.BestK(cvs)
		if e != nil {
			log.Fatal(e)
		}
		if e := WriteCV(w, cvs, best); e != nil {
			log.Fatal(e)
		}
		return
	}

	q, e := admixture.LoadQ(f.Q, f.Fam)
	if e != nil {
		log.Fatal(e)
	}
	if e := q.Table(f.IDCol).Write(w); e != nil {
		log.Fatal(e)
	}
}
