package templating

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/rules_plants/preset"
)

// DefaultTemplate is the PLANTS configuration layout. One
// directive per line, name and values separated by spaces.
const DefaultTemplate = `### Scoring function and search settings ###
scoring_function {{scoring_function}}
search_speed         {{search_speed}}

### Input file specification
protein_file    {{proteinDock}}
ligand_file     {{ligand}}

### Output settings
output_dir {{output_dir}}
write_multi_mol2 {{write_multi_mol2}}
### Ligand settings
flip_amide_bonds     {{flip_amide_bonds}}
flip_planar_n            {{flip_planar_n}}

### Binding site definition
bindingsite_center {{pocket[0]}} {{pocket[1]}} {{pocket[2]}}
bindingsite_radius {{radius}}

### cluster algorithm
cluster_structures {{cluster_structures}}
cluster_rmsd             {{cluster_rmsd}}

### Writer
write_ranking_links {{write_ranking_links}}
write_protein_bindingsite {{write_protein_bindingsite}}
write_protein_conformations {{write_protein_conformations}}
write_merged_protein {{write_merged_protein}}
####
`

// Renderer turns a preset of its Store into configuration
// text.
type Renderer struct {
	StartTag string
	EndTag   string

	store *preset.Store
	text  string
}

// NewRenderer returns a renderer over store using
// DefaultTemplate.
func NewRenderer(store *preset.Store) *Renderer {
	return &Renderer{
		store: store,
		text:  DefaultTemplate,
	}
}

// Store returns the preset store the renderer reads from.
func (re *Renderer) Store() *preset.Store {
	return re.store
}

// SetText replaces the whole template. Placeholders are
// only checked when rendering.
func (re *Renderer) SetText(text string) {
	re.text = text
}

// Text returns the current raw template.
func (re *Renderer) Text() string {
	return re.text
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (re *Renderer) tags() (string, string) {
	startTag := re.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := re.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

// Render substitutes every placeholder with the value of
// the named preset. It fails with *preset.UnknownPresetError
// or *preset.MissingKeyError and never returns partial
// output.
func (re *Renderer) Render(presetName string) (string, error) {
	const errCtx = "rendering config"

	ps, err := re.store.Get(presetName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl, err := re.compile()
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := tpl.ExecuteFuncStringWithErr(
		func(wr io.Writer, tag string) (int, error) {
			ph, err := parsePlaceholder(tag)
			if err != nil {
				return 0, err
			}

			val, ok := ps[ph.key]
			if !ok {
				return 0, &preset.MissingKeyError{
					Preset: presetName,
					Key:    ph.key,
				}
			}

			if !ph.indexed {
				return io.WriteString(wr, val.String())
			}

			comp, err := val.Component(ph.index)
			if err != nil {
				return 0, fmt.Errorf("key %s: %w", ph.key, err)
			}

			return io.WriteString(wr, comp)
		},
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: preset %s: %w", errCtx, presetName, err,
		)
	}

	return out, nil
}

// Placeholders returns the option keys the template
// references, in order of first appearance.
func (re *Renderer) Placeholders() ([]string, error) {
	const errCtx = "listing placeholders"

	tpl, err := re.compile()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var keys []string

	seen := make(map[string]bool)

	_, err = tpl.ExecuteFuncStringWithErr(
		func(_ io.Writer, tag string) (int, error) {
			ph, err := parsePlaceholder(tag)
			if err != nil {
				return 0, err
			}

			if !seen[ph.key] {
				seen[ph.key] = true
				keys = append(keys, ph.key)
			}

			return 0, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return keys, nil
}

// Write renders the named preset to out.
func (re *Renderer) Write(presetName string, out io.Writer) error {
	const errCtx = "writing config"

	text, err := re.Render(presetName)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// WriteFile renders the named preset into the file at
// path. The file holds exactly the text Render returns.
func (re *Renderer) WriteFile(presetName string, path string) error {
	const errCtx = "writing config file"

	text, err := re.Render(presetName)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.WriteFile( //nolint:gosec // path from caller
		path, []byte(text), 0o666,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (re *Renderer) compile() (*fasttemplate.Template, error) {
	startTag, endTag := re.tags()

	tpl, err := fasttemplate.NewTemplate(re.text, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	return tpl, nil
}

// placeholder is a parsed tag: an option key and, for
// vector components, an index.
type placeholder struct {
	key     string
	index   int
	indexed bool
}

func parsePlaceholder(tag string) (placeholder, error) {
	tag = strings.TrimSpace(tag)

	open := strings.IndexByte(tag, '[')
	if open < 0 {
		if tag == "" {
			return placeholder{}, errors.New("empty placeholder")
		}

		return placeholder{key: tag}, nil
	}

	if open == 0 || !strings.HasSuffix(tag, "]") {
		return placeholder{}, fmt.Errorf(
			"malformed placeholder %q", tag,
		)
	}

	idx, err := strconv.Atoi(tag[open+1 : len(tag)-1])
	if err != nil {
		return placeholder{}, fmt.Errorf(
			"malformed index in placeholder %q: %w", tag, err,
		)
	}

	return placeholder{
		key:     tag[:open],
		index:   idx,
		indexed: true,
	}, nil
}
