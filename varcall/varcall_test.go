package varcall

import (
	"strings"
	"testing"
)

func TestMpileupArgs(t *testing.T) {
	got := strings.Join(MpileupArgs("ref.fa", 4, "a.bam", "b.bam"), " ")
	want := "bcftools mpileup -f ref.fa --threads 4 -Ou a.bam b.bam"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCallArgs(t *testing.T) {
	got := strings.Join(CallArgs("out.vcf.gz", 2), " ")
	want := "bcftools call -mv --threads 2 -Oz -o out.vcf.gz"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestViewFilterArgs(t *testing.T) {
	got := strings.Join(ViewFilterArgs("in.vcf.gz", "out.vcf.gz", 30, 10), " ")
	want := "bcftools view -e QUAL<30 || INFO/DP<10 -Oz -o out.vcf.gz in.vcf.gz"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConsensusArgs(t *testing.T) {
	got := strings.Join(ConsensusArgs("calls.vcf.gz", "S1"), " ")
	want := "bcftools consensus -s S1 calls.vcf.gz"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = strings.Join(ConsensusArgs("calls.vcf.gz", ""), " ")
	want = "bcftools consensus calls.vcf.gz"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFaidxRegionArgs(t *testing.T) {
	got := strings.Join(FaidxRegionArgs("ref.fa", "chr1:1-1000"), " ")
	want := "samtools faidx ref.fa chr1:1-1000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
