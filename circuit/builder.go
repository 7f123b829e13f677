package circuit

import (
	"github.com/golang/glog"
)

// Switch is a single-pole-double-throw relay contact: a pole terminal that
// connects to NO (normally-open) when its actuating coil is energized, or to
// NC (normally-closed) otherwise.
type Switch struct {
	Actuator   Handle
	Pole, NO, NC NodeID
}

type coilEntry struct {
	Name     Handle
	Terminal NodeID
}

// Builder accumulates coils and switches while resolving every terminal
// through a NodeSpec, then compiles the result into a Simulator.
type Builder struct {
	nodeCount int
	names     map[Handle]NodeID
	exposed   map[NodeID][]Handle
	switches  []Switch
	coils     []coilEntry
	traced    map[NodeID]bool
}

// NewBuilder creates an empty Builder. Ground (G) is pre-registered so it
// always has a NodeID, even in a builder that never mentions it explicitly.
func NewBuilder() *Builder {
	b := &Builder{
		names:   map[Handle]NodeID{},
		exposed: map[NodeID][]Handle{},
		traced:  map[NodeID]bool{},
	}
	b.label(Ground)
	return b
}

func (b *Builder) newNode() NodeID {
	id := NodeID(b.nodeCount)
	b.nodeCount++
	return id
}

func (b *Builder) label(h Handle) NodeID {
	if id, ok := b.names[h]; ok {
		return id
	}
	id := b.newNode()
	b.names[h] = id
	if isPublicByDefault(h) {
		b.expose(h, id)
	}
	return id
}

func (b *Builder) expose(h Handle, id NodeID) {
	for _, e := range b.exposed[id] {
		if e == h {
			return
		}
	}
	b.exposed[id] = append(b.exposed[id], h)
}

// Label gets or creates the node named by h, exposing it automatically if h
// is public-by-default (see Expose).
func (b *Builder) Label(h Handle) NodeID { return b.label(h) }

// LabelText is Label(MustParseHandle(s)).
func (b *Builder) LabelText(s string) NodeID { return b.Label(MustParseHandle(s)) }

// Node resolves a NodeSpec against this builder.
func (b *Builder) Node(spec NodeSpec) NodeID { return spec.resolve(b) }

// Expose marks h as a cross-subcircuit label for its node, regardless of
// whether h would be public-by-default.
func (b *Builder) Expose(h Handle) {
	id := b.label(h)
	b.expose(h, id)
}

// Alias binds h as an additional name for the already-resolved node id,
// without registering a coil there. Aliasing the same (h, id) pair twice is
// a no-op; aliasing h to a different id than it already names is a fatal
// caller error, matching AddCoil's uniqueness rule.
func (b *Builder) Alias(h Handle, id NodeID) {
	if existing, ok := b.names[h]; ok {
		if existing != id {
			glog.Fatalf("circuit: handle %s is already bound to node %d, cannot alias to %d", h, existing, id)
		}
		return
	}
	b.names[h] = id
	if isPublicByDefault(h) {
		b.expose(h, id)
	}
}

// AddCoil registers a coil named name with its positive terminal resolved
// from terminal (or a fresh node if terminal is nil). Re-adding the same name
// against the same resolved node is a no-op; re-adding it against a
// different node is a fatal caller error, matching the uniqueness invariant
// on primary Handle bindings.
func (b *Builder) AddCoil(name Handle, terminal NodeSpec) NodeID {
	if terminal == nil {
		terminal = New()
	}
	id := terminal.resolve(b)
	if existing, ok := b.names[name]; ok {
		if existing != id {
			glog.Fatalf("circuit: coil %s is already bound to node %d, cannot rebind to %d", name, existing, id)
		}
	} else {
		b.names[name] = id
		if isPublicByDefault(name) {
			b.expose(name, id)
		}
	}
	for _, c := range b.coils {
		if c.Name == name && c.Terminal == id {
			return id
		}
	}
	b.coils = append(b.coils, coilEntry{Name: name, Terminal: id})
	return id
}

// AddSwitch registers a switch actuated by the coil family named actuator,
// with its three terminals resolved from the given specs.
func (b *Builder) AddSwitch(actuator Handle, pole, no, nc NodeSpec) (NodeID, NodeID, NodeID) {
	p := pole.resolve(b)
	n := no.resolve(b)
	c := nc.resolve(b)
	b.switches = append(b.switches, Switch{Actuator: actuator, Pole: p, NO: n, NC: c})
	return p, n, c
}

// Trace marks id as a node of interest for state read-back.
func (b *Builder) Trace(id NodeID) { b.traced[id] = true }

// TraceAll marks every id in ids, per Trace.
func (b *Builder) TraceAll(ids []NodeID) {
	for _, id := range ids {
		b.Trace(id)
	}
}

// Chain folds fn over seq starting from init. It carries no semantic weight
// beyond ordinary left-fold composition; it exists so schematic-assembly code
// can build repetitive structures (shift registers, ring chains) without
// hand-unrolled loops.
func Chain[T any, I any](init T, seq []I, fn func(T, I) T) T {
	acc := init
	for _, it := range seq {
		acc = fn(acc, it)
	}
	return acc
}

// Finalize compiles the accumulated coils and switches into an immutable
// Simulator. The Builder must not be used afterward.
func (b *Builder) Finalize() *Simulator {
	actuatorIndex := map[Handle][]int{}
	for i, sw := range b.switches {
		actuatorIndex[sw.Actuator] = append(actuatorIndex[sw.Actuator], i)
	}

	coils := make([]compiledCoil, 0, len(b.coils))
	for _, c := range b.coils {
		key := coilToSwitchName(c.Name)
		ids := actuatorIndex[key]
		if len(ids) == 0 {
			glog.Warningf("circuit: coil %s drives no switches (orphan)", c.Name)
		}
		coils = append(coils, compiledCoil{Name: c.Name, Terminal: c.Terminal, Switches: ids})
	}

	names := make(map[Handle]NodeID, len(b.names))
	for h, id := range b.names {
		names[h] = id
	}
	exposed := make(map[NodeID][]Handle, len(b.exposed))
	for id, hs := range b.exposed {
		exposed[id] = append([]Handle(nil), hs...)
	}
	tracedNodes := make([]NodeID, 0, len(b.traced))
	for id := range b.traced {
		tracedNodes = append(tracedNodes, id)
	}

	positions := make([]bool, len(b.switches))
	sim := &Simulator{
		n:               b.nodeCount,
		switches:        append([]Switch(nil), b.switches...),
		coils:           coils,
		switchPositions: positions,
		names:           names,
		exposed:         exposed,
		tracedNodes:     tracedNodes,
		ground:          names[Ground],
		lastReachable:   make([]bool, b.nodeCount),
	}
	sim.connections = buildConnections(sim.n, sim.switches, sim.switchPositions)
	return sim
}

// CircuitBuilder composes a machine out of subcircuit closures sharing a
// single flat Builder and Handle namespace (see the package doc comment).
type CircuitBuilder struct {
	b *Builder
}

// NewCircuitBuilder creates a CircuitBuilder with a fresh underlying Builder.
func NewCircuitBuilder() *CircuitBuilder {
	return &CircuitBuilder{b: NewBuilder()}
}

// AddSubcircuit runs fn against the shared Builder and returns the
// CircuitBuilder for chaining.
func (cb *CircuitBuilder) AddSubcircuit(fn func(*Builder)) *CircuitBuilder {
	fn(cb.b)
	return cb
}

// Builder exposes the underlying flat Builder, for subcircuit closures that
// need to call methods not covered by AddSubcircuit's signature.
func (cb *CircuitBuilder) Builder() *Builder { return cb.b }

// Finalize compiles every subcircuit added so far into a single Simulator.
func (cb *CircuitBuilder) Finalize() *Simulator { return cb.b.Finalize() }
