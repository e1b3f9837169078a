// Package ligand merges ligand structure files into the single input file the
// docking engine reads.
package ligand
