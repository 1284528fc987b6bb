package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/EcoEvoGenomics/scripts/varcall"
)

type Flags struct {
	Ref      string
	Bams     string
	Out      string
	Threads  int
	MinQual  int
	MinDepth int
	NoFilter bool
}

func GetFlags() (f Flags) {
	flag.StringVar(&f.Ref, "r", "", "Reference FASTA (required).")
	flag.StringVar(&f.Bams, "b", "", "Comma-separated BAM paths (required).")
	flag.StringVar(&f.Out, "o", "calls.vcf.gz", "Output VCF path.")
	flag.IntVar(&f.Threads, "t", 1, "Threads for bcftools.")
	flag.IntVar(&f.MinQual, "q", 30, "Minimum site quality kept by filtering.")
	flag.IntVar(&f.MinDepth, "d", 10, "Minimum site depth kept by filtering.")
	flag.BoolVar(&f.NoFilter, "nofilter", false, "Skip the quality/depth filter pass.")
	flag.Parse()

	if f.Ref == "" || f.Bams == "" {
		panic(fmt.Errorf("missing -r or -b argument"))
	}
	return
}

func main() {
	f := GetFlags()
	bams := strings.Split(f.Bams, ",")

	raw := f.Out
	if !f.NoFilter {
		raw = f.Out + ".raw.vcf.gz"
	}

	if e := varcall.CallVariants(f.Ref, bams, raw, f.Threads); e != nil {
		log.Fatal(e)
	}

	if !f.NoFilter {
		if e := varcall.FilterVariants(raw, f.Out, f.MinQual, f.MinDepth); e != nil {
			log.Fatal(e)
		}
	}

	if e := varcall.IndexVcf(f.Out); e != nil {
		log.Fatal(e)
	}
}
