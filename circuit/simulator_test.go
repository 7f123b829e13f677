package circuit

import "testing"

func TestBusSetInspectRoundTrip(t *testing.T) {
	bus := B("A")
	b := NewBuilder()
	for i := int8(0); i < 4; i++ {
		b.Label(bus.Index(i))
	}
	sim := b.Finalize()

	cases := []int32{5, -3, 0, -1}
	for _, k := range cases {
		sim.SetBus(bus, k)
		sim.Step()
		if got := sim.InspectBus(bus); got != k {
			t.Errorf("InspectBus after SetBus(%d) = %d, want %d", k, got, k)
		}
	}
}

func TestEmptyMachine(t *testing.T) {
	sim := NewBuilder().Finalize()
	sim.Step()
	if !sim.Inspect(Ground) {
		t.Errorf("Inspect(Ground) = false after Step on an empty machine, want true")
	}
}

// TestOneRelay wires a single coil/switch pair: the coil's terminal is
// shared with the publicly-settable handle S, and the switch's pole is tied
// directly to Ground so its NO/NC state reflects whether the coil was
// energized one step ago.
func TestOneRelay(t *testing.T) {
	b := NewBuilder()
	ground := b.Label(Ground)
	b.AddCoil(H("Aa"), Named(H("S")))
	_, no, nc := b.AddSwitch(H("aa"), Wire(ground), New(), New())
	b.Trace(no)
	b.Trace(nc)
	sim := b.Finalize()

	sim.Set(H("S"))
	sim.Step()
	if got := sim.Energized(no); got {
		t.Errorf("step 1: NO = true, want false (switch hasn't moved yet)")
	}
	if got := sim.Energized(nc); !got {
		t.Errorf("step 1: NC = false, want true (resting position)")
	}

	sim.Step() // S is no longer driven
	if got := sim.Energized(no); !got {
		t.Errorf("step 2: NO = false, want true (coil energized last step)")
	}
	if got := sim.Energized(nc); got {
		t.Errorf("step 2: NC = true, want false")
	}

	sim.Step()
	if got := sim.Energized(no); got {
		t.Errorf("step 3: NO = true, want false (coil de-energized, switch reverted)")
	}
	if got := sim.Energized(nc); !got {
		t.Errorf("step 3: NC = false, want true")
	}
}

// TestOscillatingRelay wires a coil that draws current through its own
// switch's NC contact: energizing the coil breaks its own feed, so the
// switch flips every step with period 2 and no external drive is ever
// needed after Finalize.
func TestOscillatingRelay(t *testing.T) {
	b := NewBuilder()
	ground := b.Label(Ground)
	_, no, nc := b.AddSwitch(H("aa"), Wire(ground), New(), New())
	b.AddCoil(H("Aa"), Wire(nc))
	b.Trace(no)
	b.Trace(nc)
	sim := b.Finalize()

	wantNC := []bool{true, false, true, false}
	for i, want := range wantNC {
		sim.Step()
		if got := sim.Energized(nc); got != want {
			t.Errorf("step %d: NC = %v, want %v", i+1, got, want)
		}
		if got := sim.Energized(no); got == want {
			t.Errorf("step %d: NO = %v, want %v (complement of NC)", i+1, got, !want)
		}
	}
}

// TestRingSequencer builds a 5-stage ring: stage i's coil, once energized,
// moves its switch so that Ground feeds stage (i+1)'s coil terminal next
// step. A single external kick on stage 0 is enough to keep the ring
// cycling forever with period 5.
func TestRingSequencer(t *testing.T) {
	const stages = 5
	b := NewBuilder()
	ground := b.Label(Ground)
	stageNode := func(i int) Handle { return HIdx("C", int8(i%stages)) }
	for i := 0; i < stages; i++ {
		name := HIdx("Aa", int8(i))
		term := b.Label(stageNode(i))
		b.AddCoil(name, Wire(term))
		actuator := ActuatorFor(name)
		nextTerm := b.Label(stageNode(i + 1))
		_, _, _ = b.AddSwitch(actuator, Wire(ground), Wire(nextTerm), New())
	}
	for i := 0; i < stages; i++ {
		b.Trace(b.Label(stageNode(i)))
	}
	sim := b.Finalize()

	sim.Set(stageNode(0))
	for step := 0; step < stages*2+1; step++ {
		sim.Step()
		active := step % stages
		for i := 0; i < stages; i++ {
			want := i == active
			if got := sim.Inspect(stageNode(i)); got != want {
				t.Errorf("step %d: stage %d reachable = %v, want %v", step+1, i, got, want)
			}
		}
	}
}

// TestChainedAlternatingRelays chains five alternating Aa/Bb-named relays,
// each feeding the next stage's coil through Ground once it moves. A single
// kick on the first stage walks down the chain one stage per step.
func TestChainedAlternatingRelays(t *testing.T) {
	const stages = 5
	b := NewBuilder()
	ground := b.Label(Ground)
	in := func(i int) Handle { return HIdx("IN", int8(i)) }

	Chain(b, []int{0, 1, 2, 3, 4}, func(bld *Builder, i int) *Builder {
		name := "Aa"
		if i%2 == 1 {
			name = "Bb"
		}
		h := HIdx(name, int8(i))
		term := bld.Label(in(i))
		bld.AddCoil(h, Wire(term))
		actuator := ActuatorFor(h)
		next := bld.Label(in(i + 1))
		bld.AddSwitch(actuator, Wire(ground), Wire(next), New())
		return bld
	})
	for i := 0; i <= stages; i++ {
		b.Trace(b.Label(in(i)))
	}
	sim := b.Finalize()

	sim.Set(in(0))
	for step := 0; step < stages; step++ {
		sim.Step()
		for i := 0; i <= stages; i++ {
			want := i == step
			if got := sim.Inspect(in(i)); got != want {
				t.Errorf("step %d: stage %d reachable = %v, want %v", step+1, i, got, want)
			}
		}
	}
}
