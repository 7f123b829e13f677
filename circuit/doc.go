// Package circuit simulates a relay network at the level of individual
// coils and SPDT switches: a Builder wires up coils, switches and named
// nodes across one or more subcircuit closures sharing a flat namespace,
// and Finalize compiles the result into a Simulator that advances one
// relay-step at a time.
package circuit
