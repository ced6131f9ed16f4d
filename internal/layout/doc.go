// Package layout maps qubit measurement patterns onto the 8x8 matrix.
//
// A Layout lists, for each qubit, the pixel indices that light up for it.
// Four layouts are provided:
//
//   - bowtie  five qubits in the bowtie arrangement of the 5-qubit devices
//   - tee     five qubits in a T arrangement
//   - hex     twelve qubits on a heavy-hex ring
//   - q16     sixteen qubits in two ladders
//
// The package also holds the static glyphs (logos, arrow, power-off banner)
// and the pixel masks used by the rainbow animation.
package layout
