package preset

import "fmt"

// UnknownPresetError reports a preset name outside
// default, fast, precise and custom.
type UnknownPresetError struct {
	Name string
}

func (er *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q", er.Name)
}

// MissingKeyError reports a template placeholder with no
// matching key in the resolved parameter set.
type MissingKeyError struct {
	Preset string
	Key    string
}

func (er *MissingKeyError) Error() string {
	return fmt.Sprintf(
		"preset %q has no key %q", er.Preset, er.Key,
	)
}
