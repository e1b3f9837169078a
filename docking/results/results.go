package results

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
)

// DefaultPattern matches the docked poses PLANTS writes in
// mol2 format.
const DefaultPattern = "*_entry_*.mol2"

// Collector finds result files below Dir.
type Collector struct {
	// Dir is searched for results. Empty means the current
	// directory. Glob characters in Dir are taken literally.
	Dir string
}

// FindByPattern returns the files in Dir whose names match
// pattern. The sequence globs again each time it is
// ranged over, so it can be restarted after the engine
// writes more files. An empty sequence means the run
// produced no solutions.
func (co Collector) FindByPattern(
	pattern string,
) (iter.Seq[string], error) {
	const errCtx = "finding results"

	// Glob only fails on malformed patterns; check once
	// here so the sequence itself cannot fail.
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf(
			"%s: pattern %q: %w", errCtx, pattern, err,
		)
	}

	root := co.Dir
	if root == "" {
		root = "."
	}

	return func(yield func(string) bool) {
		matches, _ := fs.Glob(os.DirFS(root), pattern) //nolint:errcheck // pattern validated above

		for _, ma := range matches {
			if !yield(filepath.Join(co.Dir, filepath.FromSlash(ma))) {
				return
			}
		}
	}, nil
}
