// Package gates provides small, generic subcircuit-closure helpers for
// copying one bus to another through a single enabling relay, and for
// loading a compile-time constant onto a bus the same way. They are
// schematic-agnostic building blocks, not a specific machine.
package gates

import (
	"github.com/RyanLuu/z3mu/circuit"
)

// s5 is the schematic's universal "always-present" source line: every gate
// and gate_const routes its payload through it rather than through Ground
// directly, so a driver models S_5's availability independently of this
// package.
func s5(b *circuit.Builder) circuit.NodeID {
	return b.LabelText("S_5")
}

// Gate returns a subcircuit closure that, for every index in indices,
// copies from.Index(i) onto to.Index(i) while enable stays energized. The
// copy runs through two relay contacts in series: one actuated by from's own
// coil (so the line only carries S_5 while from is high) and one actuated by
// enable (so nothing reaches to unless the gate is open). Each contact moves
// one step after its coil is energized; the two delays overlap rather than
// add, so with enable energized on the same step as from, a bit driven on
// from appears on to at the next step (with S_5 driven then).
func Gate(from circuit.Bus, enable circuit.Handle, to circuit.Bus, indices []int8) func(*circuit.Builder) {
	return func(b *circuit.Builder) {
		b.AddCoil(enable, circuit.New())
		gateActuator := circuit.ActuatorFor(enable)
		for _, i := range indices {
			fromActuator := circuit.ActuatorFor(from.Index(i))
			_, fromNO, _ := b.AddSwitch(fromActuator, circuit.Wire(s5(b)), circuit.New(), circuit.New())
			coilNode := b.AddCoil(to.Index(i), circuit.New())
			b.AddSwitch(gateActuator, circuit.Wire(fromNO), circuit.Wire(coilNode), circuit.New())
		}
	}
}

// GateConst returns a subcircuit closure that, once enable is energized,
// loads the compile-time constant k onto to: for every index whose bit is
// set, a relay contact actuated by enable routes S_5 into that bit's coil.
// Bits that are clear get no switch and no coil at all, matching the
// schematic's habit of never wiring a contact that would never conduct.
func GateConst(k int8, enable circuit.Handle, to circuit.Bus, indices []int8) func(*circuit.Builder) {
	return func(b *circuit.Builder) {
		b.AddCoil(enable, circuit.New())
		actuator := circuit.ActuatorFor(enable)
		for _, i := range indices {
			if k&(1<<uint(i)) == 0 {
				continue
			}
			coilNode := b.AddCoil(to.Index(i), circuit.New())
			b.AddSwitch(actuator, circuit.Wire(s5(b)), circuit.Wire(coilNode), circuit.New())
		}
	}
}
