package preset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// directiveKeys maps engine directive names to option keys
// where the two differ.
var directiveKeys = map[string]string{
	"protein_file":       KeyProtein,
	"ligand_file":        KeyLigand,
	"bindingsite_center": KeyPocket,
	"bindingsite_radius": KeyRadius,
}

// KeyForDirective returns the option key a config file
// directive populates.
func KeyForDirective(directive string) string {
	if key, ok := directiveKeys[directive]; ok {
		return key
	}

	return directive
}

// ParseDirectives reads an engine configuration file back
// into a ParameterSet. Each line is "directive value[s]";
// blank lines and lines starting with '#' are skipped.
func ParseDirectives(in io.Reader) (ParameterSet, error) {
	const errCtx = "parsing directives"

	ps := make(ParameterSet)
	sc := bufio.NewScanner(in)
	lineNo := 0

	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf(
				"%s: line %d: directive %q has no value",
				errCtx, lineNo, fields[0],
			)
		}

		ps[KeyForDirective(fields[0])] = ParseValue(
			strings.Join(fields[1:], " "),
		)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ps, nil
}

// ParseAssignments turns KEY=VALUE pairs into a
// ParameterSet, inferring each value's kind.
func ParseAssignments(pairs []string) (ParameterSet, error) {
	const errCtx = "parsing assignments"

	ps := make(ParameterSet, len(pairs))

	for _, pa := range pairs {
		parts := strings.SplitN(pa, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf(
				"%s: assignment must be KEY=VALUE, got %s",
				errCtx, pa,
			)
		}

		ps[parts[0]] = ParseValue(parts[1])
	}

	return ps, nil
}
