package envbridge

import (
	"regexp"
	"strings"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// exportLinePattern matches one `export NAME="VALUE"` line.
//
// The value group is greedy, so a value may itself contain double quotes
// as long as the line ends with a closing quote. An empty value does not
// match.
var exportLinePattern = regexp.MustCompile(`^export\s+(\w+)="(.+)"$`)

// ParseExports extracts the assignments from a docker-env export script.
//
// Lines that are not export statements (comments, blank lines, `echo`,
// shell conditionals, `unset` lines) are skipped. Assignments are returned
// in input order and duplicates are kept, so applying them in order gives
// last-write-wins semantics.
func ParseExports(script string) []model.Assignment {
	var assignments []model.Assignment

	for _, line := range strings.Split(script, "\n") {
		if a, ok := ParseExportLine(line); ok {
			assignments = append(assignments, a)
		}
	}

	return assignments
}

// ParseExportLine parses a single line. It returns false when the line is
// not an export statement. A trailing carriage return is ignored so that
// CRLF output parses the same as LF output.
func ParseExportLine(line string) (model.Assignment, bool) {
	line = strings.TrimSuffix(line, "\r")

	m := exportLinePattern.FindStringSubmatch(line)
	if m == nil {
		return model.Assignment{}, false
	}

	return model.Assignment{Key: m[1], Value: m[2]}, true
}
