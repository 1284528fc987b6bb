package main

import (
	"flag"
	"fmt"
	"strconv"

	sp "github.com/scipipe/scipipe"
)

// Popgen workflow: filter a plink bed set, run PCA, sweep ADMIXTURE
// over a range of K, and tabulate the results with pcatable and
// admixtable.

var (
	bfile    = flag.String("bfile", "data/all_samples", "Prefix of the input plink .bed/.bim/.fam set")
	outDir   = flag.String("out", "results", "Output directory")
	pcs      = flag.Int("pcs", 10, "Number of principal components for plink --pca")
	maxK     = flag.Int("maxk", 5, "Highest ADMIXTURE K to try (sweep starts at 2)")
	maxTasks = flag.Int("maxtasks", 4, "Max number of concurrent tasks")
)

func main() {
	flag.Parse()

	wf := sp.NewWorkflow("popgen", *maxTasks)

	// ------------------------------------------------
	// Filter the marker set
	// ------------------------------------------------

	filtered := *outDir + "/filtered"
	filter := wf.NewProc("filter_markers",
		"plink --bfile "+*bfile+
			" --maf 0.05 --geno 0.1 --mind 0.1 --allow-extra-chr --make-bed"+
			" --out "+filtered+" && cp "+filtered+".bed {o:bed}")
	filter.SetPathStatic("bed", filtered+".flag.bed")

	// ------------------------------------------------
	// PCA
	// ------------------------------------------------

	pcaPrefix := *outDir + "/pca"
	pca := wf.NewProc("plink_pca",
		"plink --bfile "+filtered+
			" --pca "+strconv.Itoa(*pcs)+" --allow-extra-chr"+
			" --out "+pcaPrefix+" && cp "+pcaPrefix+".eigenvec {o:eigenvec} && cp "+pcaPrefix+".eigenval {o:eigenval} # {i:bed}")
	pca.SetPathStatic("eigenvec", pcaPrefix+".flag.eigenvec")
	pca.SetPathStatic("eigenval", pcaPrefix+".flag.eigenval")
	pca.In("bed").Connect(filter.Out("bed"))

	pcaTable := wf.NewProc("pca_table",
		"pcatable -val {i:eigenval} -vec {i:eigenvec} -pcs 1,2 -o {o:table}")
	pcaTable.SetPathStatic("table", *outDir+"/pca_coords.tsv")
	pcaTable.In("eigenval").Connect(pca.Out("eigenval"))
	pcaTable.In("eigenvec").Connect(pca.Out("eigenvec"))

	pcaVar := wf.NewProc("pca_variance",
		"pcatable -val {i:eigenval} -vec {i:eigenvec} -pcs 1,2,3,4 -var -o {o:table}")
	pcaVar.SetPathStatic("table", *outDir+"/pca_variance.tsv")
	pcaVar.In("eigenval").Connect(pca.Out("eigenval"))
	pcaVar.In("eigenvec").Connect(pca.Out("eigenvec"))

	// ------------------------------------------------
	// ADMIXTURE sweep over K
	// ------------------------------------------------

	admixProcs := map[int]*sp.Process{}
	for k := 2; k <= *maxK; k++ {
		sk := strconv.Itoa(k)
		admix := wf.NewProc("admixture_k"+sk,
			"admixture --cv "+filtered+".bed "+sk+" > {o:log} && mv filtered."+sk+".Q {o:q} # {i:bed}")
		admix.SetPathStatic("log", *outDir+"/admixture_k"+sk+".log")
		admix.SetPathStatic("q", *outDir+"/admixture_k"+sk+".Q")
		admix.In("bed").Connect(filter.Out("bed"))
		admixProcs[k] = admix
	}

	cvCmd := "admixtable -cv -o {o:table}"
	for k := 2; k <= *maxK; k++ {
		cvCmd += fmt.Sprintf(" {i:log%v}", k)
	}
	cvTable := wf.NewProc("cv_table", cvCmd)
	cvTable.SetPathStatic("table", *outDir+"/admixture_cv.tsv")
	for k := 2; k <= *maxK; k++ {
		cvTable.In(fmt.Sprintf("log%v", k)).Connect(admixProcs[k].Out("log"))
	}

	wf.Run()
}
