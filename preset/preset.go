package preset

import (
	"maps"
	"slices"
)

// Preset names.
const (
	Default = "default"
	Fast    = "fast"
	Precise = "precise"
	Custom  = "custom"
)

// Option keys referenced by the default configuration
// template.
const (
	KeyScoringFunction           = "scoring_function"
	KeySearchSpeed               = "search_speed"
	KeyProtein                   = "proteinDock"
	KeyLigand                    = "ligand"
	KeyOutputDir                 = "output_dir"
	KeyWriteMultiMol2            = "write_multi_mol2"
	KeyFlipAmideBonds            = "flip_amide_bonds"
	KeyFlipPlanarN               = "flip_planar_n"
	KeyPocket                    = "pocket"
	KeyRadius                    = "radius"
	KeyClusterStructures         = "cluster_structures"
	KeyClusterRMSD               = "cluster_rmsd"
	KeyWriteRankingLinks         = "write_ranking_links"
	KeyWriteProteinBindingsite   = "write_protein_bindingsite"
	KeyWriteProteinConformations = "write_protein_conformations"
	KeyWriteMergedProtein        = "write_merged_protein"
)

// ParameterSet maps option names to values.
type ParameterSet map[string]Value

// Clone returns an independent copy of ps.
func (ps ParameterSet) Clone() ParameterSet {
	out := make(ParameterSet, len(ps))
	maps.Copy(out, ps)

	return out
}

// Keys returns the option names of ps in sorted order.
func (ps ParameterSet) Keys() []string {
	return slices.Sorted(maps.Keys(ps))
}

// Baseline returns the engine defaults every preset
// starts from.
func Baseline() ParameterSet {
	return ParameterSet{
		KeyScoringFunction:           String("chemplp"),
		KeySearchSpeed:               String("speed1"),
		KeyProtein:                   String("protein.mol2"),
		KeyLigand:                    String("ligand.mol2"),
		KeyOutputDir:                 String("."),
		KeyWriteMultiMol2:            Int(0),
		KeyFlipAmideBonds:            Int(1),
		KeyFlipPlanarN:               Int(1),
		KeyPocket:                    Vec3(0, 0, 0),
		KeyRadius:                    Int(12),
		KeyClusterStructures:         Int(50),
		KeyClusterRMSD:               Float(1.0),
		KeyWriteRankingLinks:         Int(0),
		KeyWriteProteinBindingsite:   Int(0),
		KeyWriteProteinConformations: Int(0),
		KeyWriteMergedProtein:        Int(0),
	}
}

// Store owns the named parameter sets. Only the custom set
// is mutable; it starts as a copy of default and never
// aliases it.
type Store struct {
	sets map[string]ParameterSet
}

// NewStore builds the fixed presets and a custom set
// seeded from default with overrides merged on top.
// overrides may be nil.
func NewStore(overrides ParameterSet) *Store {
	def := Baseline()

	fast := Baseline()
	fast[KeySearchSpeed] = String("speed4")
	fast[KeyFlipAmideBonds] = Int(0)

	precise := Baseline()
	precise[KeyFlipAmideBonds] = Int(0)
	precise[KeyClusterStructures] = Int(150)

	custom := def.Clone()
	maps.Copy(custom, overrides)

	return &Store{
		sets: map[string]ParameterSet{
			Default: def,
			Fast:    fast,
			Precise: precise,
			Custom:  custom,
		},
	}
}

// Names returns the preset names in canonical order.
func (*Store) Names() []string {
	return []string{Default, Fast, Precise, Custom}
}

// Get returns a copy of the named preset.
func (st *Store) Get(name string) (ParameterSet, error) {
	set, ok := st.sets[name]
	if !ok {
		return nil, &UnknownPresetError{Name: name}
	}

	return set.Clone(), nil
}

// ApplyPreset merges the named preset onto custom. Keys
// only present in custom are left alone.
func (st *Store) ApplyPreset(name string) error {
	src, ok := st.sets[name]
	if !ok {
		return &UnknownPresetError{Name: name}
	}

	maps.Copy(st.sets[Custom], src)

	return nil
}

// SetValue sets a single key in custom, adding it when
// absent.
func (st *Store) SetValue(key string, val Value) {
	st.sets[Custom][key] = val
}

// Merge copies every entry of ps onto custom.
func (st *Store) Merge(ps ParameterSet) {
	maps.Copy(st.sets[Custom], ps)
}
