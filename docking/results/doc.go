// Package results discovers the files the docking engine writes after a run.
package results
