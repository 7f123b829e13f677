package circuit

import (
	"github.com/golang/glog"
)

type compiledCoil struct {
	Name     Handle
	Terminal NodeID
	Switches []int
}

// Simulator holds a finalized relay graph plus the mutable state that
// advances one relay-step at a time: switch positions, the node adjacency
// they currently imply, the set of externally driven sources for the next
// step, and the last-observed energization of every node.
type Simulator struct {
	n               int
	switches        []Switch
	coils           []compiledCoil
	switchPositions []bool
	connections     [][]NodeID
	sources         []NodeID
	lastReachable   []bool
	names           map[Handle]NodeID
	exposed         map[NodeID][]Handle
	tracedNodes     []NodeID
	ground          NodeID
}

// buildConnections rebuilds the undirected node adjacency implied solely by
// the current switch positions: each switch contributes one edge, pole-NO if
// active, pole-NC otherwise.
func buildConnections(n int, switches []Switch, positions []bool) [][]NodeID {
	adj := make([][]NodeID, n)
	addEdge := func(a, b NodeID) {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for i, sw := range switches {
		if positions[i] {
			addEdge(sw.Pole, sw.NO)
		} else {
			addEdge(sw.Pole, sw.NC)
		}
	}
	return adj
}

// Set appends the node named by h to the sources driven on the next Step. An
// unknown handle is a warning, not a fatal error: sub-circuits are routinely
// tested in isolation from the sheets that would otherwise drive them.
func (s *Simulator) Set(h Handle) {
	id, ok := s.names[h]
	if !ok {
		glog.Warningf("circuit: Set: unknown handle %s", h)
		return
	}
	s.sources = append(s.sources, id)
}

// SetBus drives every Handle in bus whose bit is set in k. Handles with a
// negative index are skipped; sign-magnitude buses with negative indices are
// not assigned meaning by this implementation (see InspectBus).
func (s *Simulator) SetBus(bus Bus, k int32) {
	for h, id := range s.names {
		if !h.HasIndex || h.Index < 0 {
			continue
		}
		if h.Name != bus.Name || h.HasSup != bus.HasSup || h.Sup != bus.Sup {
			continue
		}
		if k&(int32(1)<<uint(h.Index)) != 0 {
			s.sources = append(s.sources, id)
		}
	}
}

// Step advances the simulator by one relay-step: a propagation phase floods
// voltage from the driven sources and Ground through the current
// connections, recording which coils are energized and which switches they
// therefore drive next; a commit phase replaces the switch positions with
// that result and rebuilds the connections from scratch. The one-step delay
// between a coil energizing and its switches moving is what makes
// oscillators and sequencers work.
func (s *Simulator) Step() {
	reachable := make([]bool, s.n)
	visited := make(map[NodeID]bool, len(s.sources)+1)
	queue := make([]NodeID, 0, len(s.sources)+1)
	seed := func(id NodeID) {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}
	for _, id := range s.sources {
		seed(id)
	}
	seed(s.ground)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		reachable[cur] = true
		for _, nb := range s.connections[cur] {
			seed(nb)
		}
	}

	next := make([]bool, len(s.switchPositions))
	for _, c := range s.coils {
		if reachable[c.Terminal] {
			for _, swID := range c.Switches {
				next[swID] = true
			}
		}
	}

	s.lastReachable = reachable
	s.switchPositions = next
	s.connections = buildConnections(s.n, s.switches, s.switchPositions)
	s.sources = nil
}

// Energized reports the last-observed energization of a bare NodeID, for
// callers (tests, a visualizer) that already hold one from AddSwitch or
// AddCoil and don't need it to carry a Handle.
func (s *Simulator) Energized(id NodeID) bool { return s.lastReachable[id] }

// Inspect reports the last-observed energization of the node named by h. An
// unknown handle is a caller bug and is fatal.
func (s *Simulator) Inspect(h Handle) bool {
	id, ok := s.names[h]
	if !ok {
		glog.Fatalf("circuit: Inspect: unknown handle %s", h)
	}
	return s.lastReachable[id]
}

// InspectBus assembles an integer from the last-observed state of every
// Handle in bus, then sign-extends the result using the largest matching
// index. At least one Handle must match bus or this is a caller bug and is
// fatal. A bus whose matching indices do not include 0 produces a result per
// the literal formula below; no special-cased behavior is defined for that
// case.
func (s *Simulator) InspectBus(bus Bus) int32 {
	var raw int32
	maxIndex := int8(-1)
	found := false
	for h, id := range s.names {
		if !h.HasIndex || h.Index < 0 {
			continue
		}
		if h.Name != bus.Name || h.HasSup != bus.HasSup || h.Sup != bus.Sup {
			continue
		}
		found = true
		if h.Index > maxIndex {
			maxIndex = h.Index
		}
		if s.lastReachable[id] {
			raw |= int32(1) << uint(h.Index)
		}
	}
	if !found {
		glog.Fatalf("circuit: InspectBus: no handle matches bus %s", bus)
	}
	shift := uint(31 - maxIndex)
	return (raw << shift) >> shift
}

// Exposed reports the public Handles bound to id, in the order they were
// exposed.
func (s *Simulator) Exposed(id NodeID) []Handle { return s.exposed[id] }

// TracedNodes returns the nodes marked with Builder.Trace/TraceAll, for
// drivers that want to iterate points of interest (e.g. a visualizer or a
// logging loop) without re-deriving the handle namespace themselves.
func (s *Simulator) TracedNodes() []NodeID { return append([]NodeID(nil), s.tracedNodes...) }
