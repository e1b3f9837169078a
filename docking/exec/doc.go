// Package exec runs the docking engine as an external process.
package exec
