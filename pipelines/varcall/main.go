package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	sp "github.com/scipipe/scipipe"
)

// Variant-calling workflow: call and filter variants from a set of
// BAMs, extract one consensus FASTA per sample for a target region,
// concatenate them, align with mafft, and build an iqtree2 tree.

var (
	ref      = flag.String("ref", "data/reference.fa", "Reference FASTA")
	bams     = flag.String("bams", "", "Comma-separated BAM paths (required)")
	samples  = flag.String("samples", "", "Comma-separated sample names matching the BAMs' read groups (required)")
	region   = flag.String("region", "", "Target region, e.g. chr1:1-10000 (required)")
	outDir   = flag.String("out", "results", "Output directory")
	threads  = flag.Int("threads", 4, "Threads per external tool")
	maxTasks = flag.Int("maxtasks", 4, "Max number of concurrent tasks")
)

func main() {
	flag.Parse()
	if *bams == "" || *samples == "" || *region == "" {
		log.Fatal("missing -bams, -samples, or -region argument")
	}
	st := strconv.Itoa(*threads)

	wf := sp.NewWorkflow("varcall", *maxTasks)

	// ------------------------------------------------
	// Call and filter variants
	// ------------------------------------------------

	call := wf.NewProc("call_variants",
		"varcall -r "+*ref+" -b "+*bams+" -t "+st+" -o {o:vcf}")
	call.SetPathStatic("vcf", *outDir+"/calls.vcf.gz")

	// ------------------------------------------------
	// Per-sample consensus for the target region
	// ------------------------------------------------

	consensusProcs := []*sp.Process{}
	for _, sample := range strings.Split(*samples, ",") {
		cons := wf.NewProc("consensus_"+sample,
			"samtools faidx "+*ref+" "+*region+
				" | bcftools consensus -s "+sample+" {i:vcf}"+
				` | sed "s/^>.*/>`+sample+`/" > {o:fa}`)
		cons.SetPathStatic("fa", *outDir+"/consensus_"+sample+".fa")
		cons.In("vcf").Connect(call.Out("vcf"))
		consensusProcs = append(consensusProcs, cons)
	}

	// ------------------------------------------------
	// Concatenate, align, build tree
	// ------------------------------------------------

	catCmd := "facat -o {o:fa}"
	for i := range consensusProcs {
		catCmd += " {i:fa" + strconv.Itoa(i) + "}"
	}
	cat := wf.NewProc("concat_consensus", catCmd)
	cat.SetPathStatic("fa", *outDir+"/consensus_all.fa")
	for i, cons := range consensusProcs {
		cat.In("fa"+strconv.Itoa(i)).Connect(cons.Out("fa"))
	}

	align := wf.NewProc("mafft_align",
		"mafft --auto --thread "+st+" {i:fa} > {o:aln}")
	align.SetPathStatic("aln", *outDir+"/consensus_all.aln.fa")
	align.In("fa").Connect(cat.Out("fa"))

	tree := wf.NewProc("iqtree",
		"iqtree2 -s {i:aln} --prefix "+*outDir+"/tree -T "+st+" -B 1000 && cp "+*outDir+"/tree.treefile {o:tree}")
	tree.SetPathStatic("tree", *outDir+"/tree.flag.treefile")
	tree.In("aln").Connect(align.Out("aln"))

	wf.Run()
}
