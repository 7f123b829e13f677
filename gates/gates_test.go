package gates

import (
	"testing"

	"github.com/RyanLuu/z3mu/circuit"
)

var byteIndices = []int8{0, 1, 2, 3, 4, 5, 6, 7}

// TestGate mirrors the two-hop "gate" demonstration step for step: Ab feeds
// Aa through Gate(Ab, Ga, Aa, ...), and nothing reaches Aa until both Ga is
// energized and S_5 is driven on the step after.
func TestGate(t *testing.T) {
	ab := circuit.B("Ab")
	aa := circuit.B("Aa")
	ga := circuit.H("Ga")
	s5 := circuit.HIdx("S", 5)

	b := circuit.NewBuilder()
	Gate(ab, ga, aa, byteIndices)(b)
	for _, i := range byteIndices {
		abCoil := b.AddCoil(ab.Index(i), circuit.New())
		aaNode := b.Label(aa.Index(i))
		b.Trace(abCoil)
		b.Trace(aaNode)
	}
	sim := b.Finalize()

	sim.SetBus(ab, -123)
	sim.Step()
	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(aa); got != 0 {
		t.Fatalf("InspectBus(Aa) before Ga is energized = %d, want 0", got)
	}

	sim.Set(ga)
	sim.Step()
	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(aa); got != 0 {
		t.Fatalf("InspectBus(Aa) one step after enabling Ga = %d, want 0 (Ab was never redriven)", got)
	}

	sim.Set(ga)
	sim.SetBus(ab, -123)
	sim.Step()
	sim.Set(s5)
	if got := sim.InspectBus(ab); got != -123 {
		t.Fatalf("InspectBus(Ab) = %d, want -123", got)
	}
	sim.Step()
	if got := sim.InspectBus(aa); got != -123 {
		t.Errorf("InspectBus(Aa) = %d, want -123", got)
	}
}

// TestGateConstLoadsConstant mirrors the spec's "gate of a constant"
// scenario exactly: until the enabling coil has been energized for a step,
// the bus reads zero; one step after, driving S_5 again loads k onto it.
func TestGateConstLoadsConstant(t *testing.T) {
	const k = int8(-123)
	to := circuit.B("Aa")
	enable := circuit.H("Ga")
	s5 := circuit.HIdx("S", 5)

	b := circuit.NewBuilder()
	GateConst(k, enable, to, byteIndices)(b)
	sim := b.Finalize()

	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(to); got != 0 {
		t.Fatalf("InspectBus(Aa) before Ga is energized = %d, want 0", got)
	}

	sim.Set(enable)
	sim.Step()
	sim.Set(s5)
	sim.Step()
	if got := sim.InspectBus(to); got != int32(k) {
		t.Errorf("InspectBus(Aa) = %d, want %d", got, k)
	}
}
