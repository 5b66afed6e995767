// Package pipeline walks molecule files in order and hands every record
// to a visit callback.
//
// Two passes over the same inputs: CountMolecules sizes the run without
// parsing, ForEachMolecule parses and visits. Both stop at the first
// error, including context cancellation.
package pipeline
