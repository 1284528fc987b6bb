package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/EcoEvoGenomics/scripts/slurmcost"
	"github.com/jgbaldwinbrown/csvh"
)

type Flags struct {
	Script string
	Warn   float64
	Out    string
}

func GetFlags() (f Flags) {
	flag.Float64Var(&f.Warn, "warn", 10000, "Warn when total charged CPU-hours on any queue exceed this.")
	flag.StringVar(&f.Out, "o", "", "Output path (default stdout; .gz suffix compresses).")
	flag.Parse()

	if flag.NArg() < 1 {
		panic(fmt.Errorf("missing sbatch script argument"))
	}
	f.Script = flag.Arg(0)
	return
}

func WriteReport(w io.Writer, rep slurmcost.CostReport, warn float64) error {
	bw := bufio.NewWriter(w)

	res := rep.Resources
	fmt.Fprintf(bw, "walltime_hours\t%v\n", res.Hours)
	fmt.Fprintf(bw, "cpus_per_task\t%v\n", res.CPUs)
	fmt.Fprintf(bw, "mem_gb_per_task\t%v\n", res.MemoryGB)
	fmt.Fprintf(bw, "array_tasks\t%v\n", res.ArrayCount)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "queue\tcpu_hours\tmem_hours\tcharged\tprice_nok")
	for _, c := range rep.Costs {
		fmt.Fprintf(bw, "%v\t%.2f\t%.2f\t%.2f\t%.2f\n", c.Queue.Name, c.CPUHours, c.MemHours, c.Charged, c.PriceNOK)
	}
	fmt.Fprintln(bw)

	cheap := rep.Cheapest()
	fmt.Fprintf(bw, "recommended_queue\t%v\t%.2f\n", cheap.Queue.Name, cheap.Charged)
	if worst := rep.MostExpensive(); worst.Charged > warn {
		fmt.Fprintf(bw, "warning\tcharge on %v exceeds %.0f CPU-hours\n", worst.Queue.Name, warn)
	}
	return bw.Flush()
}

func main() {
	f := GetFlags()

	args, e := slurmcost.ParseHeaderFile(f.Script)
	if e != nil {
		log.Fatal(e)
	}
	res, e := slurmcost.ParseResources(args)
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

	if e := WriteReport(w, slurmcost.Cost(res), f.Warn); e != nil {
		log.Fatal(e)
	}
}
