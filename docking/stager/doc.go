// Package stager copies input files next to the rendered engine
// configuration.
package stager
