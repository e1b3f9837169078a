// Package session orchestrates one PLANTS docking run: it merges the ligands,
// writes the rendered configuration, stages the protein, invokes the engine
// once and collects the result files. Everything environment-specific (the
// engine path and arguments, the work directory, the collaborators) is
// injected through Config.
package session
