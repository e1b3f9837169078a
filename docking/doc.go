// Package docking groups the collaborators that stage PLANTS input files,
// invoke the engine and collect its output. The engine itself does all the
// docking, scoring and clustering; these packages only move files around it.
package docking
