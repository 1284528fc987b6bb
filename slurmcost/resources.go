package slurmcost

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Resources is one job's normalized per-task resource request.
type Resources struct {
	Hours      float64
	CPUs       int
	MemoryGB   float64
	ArrayCount int
}

// ParseResources normalizes parsed #SBATCH options into per-task
// walltime hours, CPU count, GiB of memory, and array size. Time and
// memory must be specified; everything else has sbatch's defaults.
func ParseResources(args map[string]string) (Resources, error) {
	h := handle("ParseResources: %w")
	var res Resources

	ntasks, ok := parseInt(args["ntasks"])
	if !ok {
		tasksPerNode, tok := parseInt(args["ntasks-per-node"])
		nodes, nok := parseInt(args["nodes"])
		if tok && nok {
			ntasks = tasksPerNode * nodes
		} else {
			ntasks = 1
		}
	}
	cpusPerTask, ok := parseInt(args["cpus-per-task"])
	if !ok {
		cpusPerTask = 1
	}
	res.CPUs = ntasks * cpusPerTask

	hours, ok := parseTimeHours(args["time"])
	if !ok {
		return res, h(fmt.Errorf("time missing or unparsable: %q", args["time"]))
	}
	res.Hours = hours

	mem, ok := parseMemGB(args["mem"])
	if !ok {
		perCPU, pok := parseMemGB(args["mem-per-cpu"])
		if !pok {
			return res, h(fmt.Errorf("memory missing or unparsable: mem %q, mem-per-cpu %q", args["mem"], args["mem-per-cpu"]))
		}
		mem = perCPU * float64(res.CPUs)
	}
	res.MemoryGB = mem

	res.ArrayCount = ParseArrayCount(args["array"])
	return res, nil
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, e := strconv.Atoi(s)
	if e != nil {
		return 0, false
	}
	return v, true
}

var (
	timeDaysRe = regexp.MustCompile(`^(\d+)-(\d{1,2}):(\d{1,2}):(\d{1,2})$`)
	timeHMSRe  = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)
	timeMSRe   = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	timeMinRe  = regexp.MustCompile(`^\d+$`)
)

// parseTimeHours accepts sbatch walltimes: D-HH:MM:SS, HH:MM:SS,
// MM:SS, or bare minutes.
func parseTimeHours(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := timeDaysRe.FindStringSubmatch(s); m != nil {
		days, hours, minutes, seconds := atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])
		return float64(days)*24 + float64(hours) + float64(minutes)/60 + float64(seconds)/3600, true
	}
	if m := timeHMSRe.FindStringSubmatch(s); m != nil {
		hours, minutes, seconds := atoi(m[1]), atoi(m[2]), atoi(m[3])
		return float64(hours) + float64(minutes)/60 + float64(seconds)/3600, true
	}
	if m := timeMSRe.FindStringSubmatch(s); m != nil {
		minutes, seconds := atoi(m[1]), atoi(m[2])
		return float64(minutes)/60 + float64(seconds)/3600, true
	}
	if timeMinRe.MatchString(s) {
		return float64(atoi(s)) / 60, true
	}
	return 0, false
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

var memRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*([kmgt](?:i?b)?|)\s*$`)

// parseMemGB accepts short (K/M/G/T), long (KB..TB), and binary
// (KiB..TiB) suffixes, all read as powers of 1024; a bare number is
// MiB, sbatch's default unit. Result is GiB rounded to 4 decimals.
func parseMemGB(s string) (float64, bool) {
	m := memRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	amount, e := strconv.ParseFloat(m[1], 64)
	if e != nil {
		return 0, false
	}

	var pow int
	switch {
	case m[2] == "":
		pow = 2
	default:
		switch strings.ToLower(m[2])[0] {
		case 'k':
			pow = 1
		case 'm':
			pow = 2
		case 'g':
			pow = 3
		case 't':
			pow = 4
		}
	}

	gb := amount
	for ; pow < 3; pow++ {
		gb /= 1024
	}
	for ; pow > 3; pow-- {
		gb *= 1024
	}
	return round4(gb), true
}

func round4(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 4, 64), 64)
	return v
}

// ParseArrayCount returns the task count of an --array spec:
// comma-separated indices and start-end[:step] ranges, with %N
// throttling ignored since it limits concurrency, not count. An empty
// or unparsable spec counts as a single task, as the submitting user
// still gets one job.
func ParseArrayCount(spec string) int {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 1
	}

	total := 0
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part, _, _ = strings.Cut(part, "%")

		if !strings.Contains(part, "-") {
			if _, e := strconv.Atoi(part); e != nil {
				return 1
			}
			total++
			continue
		}

		rng, stepStr, hasStep := strings.Cut(part, ":")
		step := 1
		if hasStep {
			v, e := strconv.Atoi(stepStr)
			if e != nil {
				return 1
			}
			if v > 0 {
				step = v
			}
		}
		startStr, endStr, _ := strings.Cut(rng, "-")
		start, e := strconv.Atoi(startStr)
		if e != nil {
			return 1
		}
		end, e := strconv.Atoi(endStr)
		if e != nil {
			return 1
		}
		if end < start {
			total++
			continue
		}
		total += (end-start)/step + 1
	}
	if total < 1 {
		return 1
	}
	return total
}
