// Package preset holds the named PLANTS parameter sets ("default", "fast",
// "precise" and the mutable "custom" set) together with the typed values
// they carry. Store owns the four sets and the override API; LoadOverrides,
// ParseDirectives and ParseAssignments turn files and command-line pairs
// into ParameterSets that can be merged onto "custom".
package preset
