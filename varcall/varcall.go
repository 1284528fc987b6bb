package varcall

import (
	"fmt"
	"os"
	"os/exec"
)

// Command lines are built separately from execution so the argv
// assembly can be tested without bcftools installed.

func MpileupArgs(ref string, threads int, bams ...string) []string {
	args := []string{
		"bcftools", "mpileup",
		"-f", ref,
		"--threads", fmt.Sprint(threads),
		"-Ou",
	}
	return append(args, bams...)
}

func CallArgs(out string, threads int) []string {
	return []string{
		"bcftools", "call",
		"-mv",
		"--threads", fmt.Sprint(threads),
		"-Oz",
		"-o", out,
	}
}

func ViewFilterArgs(in, out string, minQual, minDepth int) []string {
	return []string{
		"bcftools", "view",
		"-e", fmt.Sprintf("QUAL<%v || INFO/DP<%v", minQual, minDepth),
		"-Oz",
		"-o", out,
		in,
	}
}

func IndexArgs(vcf string) []string {
	return []string{"bcftools", "index", "-t", vcf}
}

func FaidxRegionArgs(ref, region string) []string {
	return []string{"samtools", "faidx", ref, region}
}

func ConsensusArgs(vcf, sample string) []string {
	args := []string{"bcftools", "consensus"}
	if sample != "" {
		args = append(args, "-s", sample)
	}
	return append(args, vcf)
}

func command(args []string) *exec.Cmd {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	return cmd
}

// CallVariants runs bcftools mpileup piped into bcftools call,
// producing a compressed VCF at out.
func CallVariants(ref string, bams []string, out string, threads int) error {
	h := handle("CallVariants: %w")

	mpileup := command(MpileupArgs(ref, threads, bams...))
	call := command(CallArgs(out, threads))

	pr, e := mpileup.StdoutPipe()
	if e != nil {
		return h(e)
	}
	call.Stdin = pr

	if e := mpileup.Start(); e != nil {
		return h(e)
	}
	if e := call.Start(); e != nil {
		return h(e)
	}
	if e := mpileup.Wait(); e != nil {
		return h(e)
	}
	if e := call.Wait(); e != nil {
		return h(e)
	}
	return nil
}

// FilterVariants drops records below the quality and depth cutoffs.
func FilterVariants(in, out string, minQual, minDepth int) error {
	if e := command(ViewFilterArgs(in, out, minQual, minDepth)).Run(); e != nil {
		return fmt.Errorf("FilterVariants: %w", e)
	}
	return nil
}

func IndexVcf(vcf string) error {
	if e := command(IndexArgs(vcf)).Run(); e != nil {
		return fmt.Errorf("IndexVcf: %w", e)
	}
	return nil
}

// Consensus runs samtools faidx for one region piped into bcftools
// consensus, writing the resulting FASTA to outPath. sample may be ""
// to apply all genotypes.
func Consensus(ref, vcf, region, sample, outPath string) (err error) {
	h := handle("Consensus: %w")

	w, e := os.Create(outPath)
	if e != nil {
		return h(e)
	}
	defer func() {
		e := w.Close()
		if err == nil {
			err = e
		}
	}()

	faidx := command(FaidxRegionArgs(ref, region))
	cons := command(ConsensusArgs(vcf, sample))
	cons.Stdout = w

	pr, e := faidx.StdoutPipe()
	if e != nil {
		return h(e)
	}
	cons.Stdin = pr

	if e := faidx.Start(); e != nil {
		return h(e)
	}
	if e := cons.Start(); e != nil {
		return h(e)
	}
	if e := faidx.Wait(); e != nil {
		return h(e)
	}
	if e := cons.Wait(); e != nil {
		return h(e)
	}
	return nil
}

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}
