package ligand

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatMol2 is the Tripos mol2 structure format, the only
// one PLANTS screens.
const FormatMol2 = "mol2"

const mol2Record = "@<TRIPOS>MOLECULE"

var (
	// ErrNoLigands is returned when Merge gets an empty list.
	ErrNoLigands = errors.New("no ligands to merge")

	// ErrUnsupportedFormat is returned for target formats
	// other than mol2.
	ErrUnsupportedFormat = errors.New("unsupported ligand format")

	// ErrNotMol2 is returned for inputs without a molecule
	// record.
	ErrNotMol2 = errors.New("not a mol2 file")
)

// Mol2Merger concatenates mol2 files into one multi-molecule
// file written under Dir.
type Mol2Merger struct {
	// Dir receives the merged file. Empty means the current
	// directory.
	Dir string
}

// Merge writes every ligand into <Dir>/<baseName>.<format>
// and returns the path of the merged file.
func (mm Mol2Merger) Merge(
	ligands []string,
	baseName string,
	format string,
) (string, error) {
	const errCtx = "merging ligands"

	if !strings.EqualFold(format, FormatMol2) {
		return "", fmt.Errorf(
			"%s: %q: %w", errCtx, format, ErrUnsupportedFormat,
		)
	}

	if len(ligands) == 0 {
		return "", fmt.Errorf("%s: %w", errCtx, ErrNoLigands)
	}

	var buf bytes.Buffer

	for _, li := range ligands {
		content, err := os.ReadFile(li) //nolint:gosec // paths from caller
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		if !bytes.Contains(content, []byte(mol2Record)) {
			return "", fmt.Errorf(
				"%s: %s: %w", errCtx, li, ErrNotMol2,
			)
		}

		buf.Write(content)

		if !bytes.HasSuffix(content, []byte("\n")) {
			buf.WriteByte('\n')
		}
	}

	outPath := filepath.Join(mm.Dir, baseName+"."+FormatMol2)

	if err := os.WriteFile( //nolint:gosec // path from caller
		outPath, buf.Bytes(), 0o666,
	); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return outPath, nil
}
