package preset

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// LoadOverrides reads override files and merges them into
// a single ParameterSet. YAML and JSON files hold a flat
// mapping of option names to values; any other file is
// read as engine directives. Later files override earlier
// ones.
func LoadOverrides(paths ...string) (ParameterSet, error) {
	const errCtx = "loading overrides"

	ps := make(ParameterSet)

	for _, pa := range paths {
		content, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		var loaded ParameterSet

		switch strings.ToLower(filepath.Ext(pa)) {
		case ".yaml", ".yml", ".json":
			loaded, err = decodeMapping(content)
		default:
			loaded, err = ParseDirectives(bytes.NewReader(content))
		}

		if err != nil {
			return nil, fmt.Errorf(
				"%s: %s: %w", errCtx, pa, err,
			)
		}

		maps.Copy(ps, loaded)
	}

	return ps, nil
}

// decodeMapping decodes a YAML (or JSON) document holding
// option names and values.
func decodeMapping(content []byte) (ParameterSet, error) {
	const errCtx = "decoding mapping"

	var raw map[string]any

	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ps := make(ParameterSet, len(raw))

	for key, rv := range raw {
		val, err := FromAny(rv)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: key %s: %w", errCtx, key, err,
			)
		}

		ps[key] = val
	}

	return ps, nil
}
