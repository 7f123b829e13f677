// Package integration exercises the circuit and gates packages together,
// the way a driver composing several subcircuits into one machine would.
package integration

import (
	"testing"

	"github.com/RyanLuu/z3mu/circuit"
	"github.com/RyanLuu/z3mu/gates"
)

// TestGateConstFeedsASecondGate builds a small two-stage machine: one
// GateConst subcircuit loads a constant onto an intermediate bus, and a
// second Gate subcircuit copies that bus onward once enabled, across a
// single shared CircuitBuilder namespace. Every relay in this design is a
// plain coil, not a latch, so S_5 and the enabling coils must stay driven
// on every step that depends on them.
func TestGateConstFeedsASecondGate(t *testing.T) {
	const k = int8(42)
	mid := circuit.B("Mid")
	out := circuit.B("Out")
	indices := []int8{0, 1, 2, 3, 4, 5, 6, 7}
	ga, gb := circuit.H("Ga"), circuit.H("Gb")
	s5 := circuit.HIdx("S", 5)

	cb := circuit.NewCircuitBuilder()
	cb.AddSubcircuit(gates.GateConst(k, ga, mid, indices))
	cb.AddSubcircuit(gates.Gate(mid, gb, out, indices))
	sim := cb.Finalize()

	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(mid); got != 0 {
		t.Fatalf("before Ga is energized, Mid = %d, want 0", got)
	}

	sim.Set(ga)
	sim.Set(gb)
	sim.Step()

	sim.Set(gb)
	sim.Set(s5)
	sim.Step()
	// GateConst wires coils only for the set bits of k (1, 3 and 5), so Mid's
	// highest index is 5 and InspectBus sign-extends from there: 42 reads as
	// -22 on Mid. Out has all eight indices and reads 42 below.
	const wantMid = int32(-22)
	if got := sim.InspectBus(mid); got != wantMid {
		t.Fatalf("after loading the constant, Mid = %d, want %d", got, wantMid)
	}

	sim.Set(gb)
	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(out); got != int32(k) {
		t.Errorf("after gating Mid onward, Out = %d, want %d", got, k)
	}
}
