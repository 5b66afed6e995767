// Package writers turns parsed molecules into serialized outputs.
//
// Design:
//   • Writers own all format knowledge (SMILES lines, SDF records).
//   • Formats are looked up in a registry keyed by file extension ("smi", "sdf").
//   • One goroutine per output keeps records in the order they were sent.
package writers
