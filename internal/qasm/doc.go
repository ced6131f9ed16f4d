// Package qasm locates the circuit file for a run and reads the register
// sizes the rest of the program needs. It does not interpret gates.
//
// Default circuits for 5, 12 and 16 qubits are embedded and used when no
// file of that name exists on disk.
package qasm
