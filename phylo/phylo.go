package phylo

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
)

func MafftArgs(in string, threads int) []string {
	return []string{"mafft", "--auto", "--thread", fmt.Sprint(threads), in}
}

func IQTreeArgs(aln, prefix string, bootstraps, threads int) []string {
	args := []string{
		"iqtree2",
		"-s", aln,
		"--prefix", prefix,
		"-T", fmt.Sprint(threads),
	}
	if bootstraps > 0 {
		args = append(args, "-B", fmt.Sprint(bootstraps))
	}
	return args
}

// MafftAlign aligns a FASTA with mafft, capturing its stdout into out.
func MafftAlign(in, out string, threads int) (err error) {
	h := handle("MafftAlign: %w")

	w, e := os.Create(out)
	if e != nil {
		return h(e)
	}
	defer func() {
		e := w.Close()
		if err == nil {
			err = e
		}
	}()
	bw := bufio.NewWriter(w)
	defer func() {
		e := bw.Flush()
		if err == nil {
			err = e
		}
	}()

	args := MafftArgs(in, threads)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = bw
	cmd.Stderr = os.Stderr
	if e := cmd.Run(); e != nil {
		return h(e)
	}
	return nil
}

// IQTree builds a maximum likelihood tree from an alignment. Output
// files take the given prefix, per iqtree2's own conventions.
func IQTree(aln, prefix string, bootstraps, threads int) error {
	args := IQTreeArgs(aln, prefix, bootstraps, threads)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if e := cmd.Run(); e != nil {
		return fmt.Errorf("IQTree: %w", e)
	}
	return nil
}

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}
