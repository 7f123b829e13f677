// Command z3mu is a headless driver for the circuit package: it assembles
// one of a handful of small named relay networks, steps it, and logs the
// traced handles' energization after every step. It is a demonstration
// harness, not the specific floating-point-adder schematic the relay
// computer this package is modeled on was built from.
package main

import (
	"flag"
	"strings"

	"github.com/golang/glog"

	"github.com/RyanLuu/z3mu/circuit"
	"github.com/RyanLuu/z3mu/gates"
	"github.com/RyanLuu/z3mu/internal/sound"
	"github.com/RyanLuu/z3mu/internal/viz"
)

var (
	scenarioFlag  = flag.String("scenario", "one-relay", "demo scenario: one-relay, oscillator, ring, gate-const, chain, empty")
	stepsFlag     = flag.Int("steps", 10, "number of relay-steps to run")
	visualizeFlag = flag.Bool("visualize", false, "open a window showing traced node energization")
	soundFlag     = flag.Bool("sound", false, "play a click on every step in which a traced handle toggles")
)

// demo bundles a scenario's builder closure with the handles worth reporting
// after each step and an optional per-step driver that asserts external
// sources before each step (either a single initial kick or a source
// re-asserted on every step).
type demo struct {
	build  func(*circuit.Builder)
	report []circuit.Handle
	drive  func(sim *circuit.Simulator, step int)
}

func oneRelayDemo() demo {
	s := circuit.H("S")
	no, nc := circuit.H("no-cell"), circuit.H("nc-cell")
	return demo{
		build: func(b *circuit.Builder) {
			ground := b.Label(circuit.Ground)
			b.AddCoil(circuit.H("Aa"), circuit.Named(s))
			_, noID, ncID := b.AddSwitch(circuit.H("aa"), circuit.Wire(ground), circuit.New(), circuit.New())
			b.Alias(no, noID)
			b.Alias(nc, ncID)
		},
		report: []circuit.Handle{s, no, nc},
		drive: func(sim *circuit.Simulator, step int) {
			if step == 0 {
				sim.Set(s)
			}
		},
	}
}

func oscillatorDemo() demo {
	no, nc := circuit.H("no-cell"), circuit.H("nc-cell")
	return demo{
		build: func(b *circuit.Builder) {
			ground := b.Label(circuit.Ground)
			_, noID, ncID := b.AddSwitch(circuit.H("aa"), circuit.Wire(ground), circuit.New(), circuit.New())
			b.AddCoil(circuit.H("Aa"), circuit.Wire(ncID))
			b.Alias(no, noID)
			b.Alias(nc, ncID)
		},
		report: []circuit.Handle{no, nc},
	}
}

func ringSequencerDemo() demo {
	const stages = 5
	stageNode := func(i int) circuit.Handle { return circuit.HIdx("C", int8(i%stages)) }
	handles := make([]circuit.Handle, stages)
	for i := range handles {
		handles[i] = stageNode(i)
	}
	return demo{
		build: func(b *circuit.Builder) {
			ground := b.Label(circuit.Ground)
			for i := 0; i < stages; i++ {
				name := circuit.HIdx("Aa", int8(i))
				term := b.Label(stageNode(i))
				b.AddCoil(name, circuit.Wire(term))
				actuator := circuit.ActuatorFor(name)
				next := b.Label(stageNode(i + 1))
				b.AddSwitch(actuator, circuit.Wire(ground), circuit.Wire(next), circuit.New())
			}
		},
		report: handles,
		drive: func(sim *circuit.Simulator, step int) {
			if step == 0 {
				sim.Set(stageNode(0))
			}
		},
	}
}

func chainDemo() demo {
	const stages = 5
	in := func(i int) circuit.Handle { return circuit.HIdx("IN", int8(i)) }
	handles := make([]circuit.Handle, stages+1)
	for i := range handles {
		handles[i] = in(i)
	}
	return demo{
		build: func(b *circuit.Builder) {
			ground := b.Label(circuit.Ground)
			circuit.Chain(b, []int{0, 1, 2, 3, 4}, func(bld *circuit.Builder, i int) *circuit.Builder {
				name := "Aa"
				if i%2 == 1 {
					name = "Bb"
				}
				h := circuit.HIdx(name, int8(i))
				term := bld.Label(in(i))
				bld.AddCoil(h, circuit.Wire(term))
				actuator := circuit.ActuatorFor(h)
				next := bld.Label(in(i + 1))
				bld.AddSwitch(actuator, circuit.Wire(ground), circuit.Wire(next), circuit.New())
				return bld
			})
		},
		report: handles,
		drive: func(sim *circuit.Simulator, step int) {
			if step == 0 {
				sim.Set(in(0))
			}
		},
	}
}

func gateConstDemo() demo {
	enable := circuit.H("Ga")
	s5 := circuit.HIdx("S", 5)
	to := circuit.B("To")
	indices := []int8{0, 1, 2, 3, 4, 5, 6, 7}
	handles := make([]circuit.Handle, len(indices))
	for i, idx := range indices {
		handles[i] = to.Index(idx)
	}
	return demo{
		build:  gates.GateConst(-123, enable, to, indices),
		report: handles,
		drive: func(sim *circuit.Simulator, step int) {
			sim.Set(enable)
			sim.Set(s5)
		},
	}
}

func emptyDemo() demo {
	return demo{
		build:  func(*circuit.Builder) {},
		report: []circuit.Handle{circuit.Ground},
	}
}

func main() {
	flag.Parse()
	defer glog.Flush()

	demos := map[string]func() demo{
		"one-relay":  oneRelayDemo,
		"oscillator": oscillatorDemo,
		"ring":       ringSequencerDemo,
		"chain":      chainDemo,
		"gate-const": gateConstDemo,
		"empty":      emptyDemo,
	}
	factory, ok := demos[*scenarioFlag]
	if !ok {
		known := make([]string, 0, len(demos))
		for name := range demos {
			known = append(known, name)
		}
		glog.Fatalf("z3mu: unknown scenario %q, want one of: %s", *scenarioFlag, strings.Join(known, ", "))
	}
	d := factory()

	cb := circuit.NewCircuitBuilder()
	cb.AddSubcircuit(d.build)
	cb.Builder().TraceAll(resolveAll(cb.Builder(), d.report))
	sim := cb.Finalize()

	var visualizer *viz.Window
	if *visualizeFlag {
		var err error
		visualizer, err = viz.Open(len(d.report))
		if err != nil {
			glog.Fatalf("z3mu: opening visualizer: %v", err)
		}
		defer visualizer.Close()
	}
	var clicker *sound.Clicker
	if *soundFlag {
		var err error
		clicker, err = sound.Open()
		if err != nil {
			glog.Fatalf("z3mu: opening sound output: %v", err)
		}
		defer clicker.Close()
	}

	prev := make([]bool, len(d.report))
	for step := 0; step < *stepsFlag; step++ {
		if d.drive != nil {
			d.drive(sim, step)
		}
		sim.Step()

		states := make([]bool, len(d.report))
		for i, h := range d.report {
			states[i] = sim.Inspect(h)
		}
		glog.Infof("step %d: %s", step+1, formatReport(d.report, states))

		if visualizer != nil {
			visualizer.Render(states)
		}
		if clicker != nil {
			for i := range states {
				if states[i] != prev[i] {
					clicker.Click()
					break
				}
			}
		}
		copy(prev, states)
	}
}

func resolveAll(b *circuit.Builder, handles []circuit.Handle) []circuit.NodeID {
	ids := make([]circuit.NodeID, len(handles))
	for i, h := range handles {
		ids[i] = b.Label(h)
	}
	return ids
}

func formatReport(handles []circuit.Handle, states []bool) string {
	var sb strings.Builder
	for i, h := range handles {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(h.String())
		sb.WriteString("=")
		if states[i] {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
	}
	return sb.String()
}
