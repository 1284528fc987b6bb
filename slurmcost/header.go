package slurmcost

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Matches one "#SBATCH --key=value", "#SBATCH --key value", or short
// "-k value" header line.
var sbatchRe = regexp.MustCompile(`^\s*#SBATCH\s+(?:--([A-Za-z0-9_-]+)|-([A-Za-z]))(?:=(.+)|\s+(.+))$`)

// Short options and long-form synonyms normalize to one canonical
// name; unrecognized long options keep their own.
var argAliases = map[string]string{
	"c":              "cpus-per-task",
	"n":              "ntasks",
	"N":              "nodes",
	"t":              "time",
	"J":              "job-name",
	"o":              "output",
	"e":              "error",
	"A":              "account",
	"p":              "partition",
	"m":              "mail-type",
	"tasks-per-node": "ntasks-per-node",
}

// ParseHeader extracts the #SBATCH options of a Slurm batch script.
// The last occurrence of an option wins, matching sbatch itself.
func ParseHeader(r io.Reader) (map[string]string, error) {
	h := handle("ParseHeader: %w")

	args := map[string]string{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		m := sbatchRe.FindStringSubmatch(s.Text())
		if m == nil {
			continue
		}

		key := m[1]
		if key == "" {
			key = m[2]
		}
		if canon, ok := argAliases[key]; ok {
			key = canon
		}

		val := m[3]
		if val == "" {
			val = m[4]
		}
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		if strings.Contains(val, "#") {
			return nil, h(fmt.Errorf("illegal '#' in value for option %q: %v", key, val))
		}
		if len(val) >= 2 && val[0] == val[len(val)-1] && (val[0] == '\'' || val[0] == '"') {
			val = strings.TrimSpace(val[1 : len(val)-1])
		}

		args[key] = val
	}
	if e := s.Err(); e != nil {
		return nil, h(e)
	}
	return args, nil
}

// ParseHeaderFile runs ParseHeader on one script path.
func ParseHeaderFile(path string) (map[string]string, error) {
	h := handle("ParseHeaderFile: %w")

	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, h(e)
	}
	defer r.Close()

	args, e := ParseHeader(r)
	if e != nil {
		return nil, h(fmt.Errorf("%v: %w", path, e))
	}
	return args, nil
}
