package circuit

// NodeID is a dense, opaque integer identity for an electrical node, issued
// by a Builder starting at 0.
type NodeID int

// NodeSpec tells the Builder how to resolve a component terminal to a
// NodeID. There are exactly three variants: Wire, Named and New.
type NodeSpec interface {
	resolve(b *Builder) NodeID
}

type wireSpec struct{ id NodeID }

func (w wireSpec) resolve(b *Builder) NodeID { return w.id }

// Wire connects a terminal to the already-existing node id.
func Wire(id NodeID) NodeSpec { return wireSpec{id} }

type namedSpec struct{ h Handle }

func (n namedSpec) resolve(b *Builder) NodeID { return b.label(n.h) }

// Named connects a terminal to the node bound to h, creating it if h has not
// been seen before.
func Named(h Handle) NodeSpec { return namedSpec{h} }

// NamedText is Named(MustParseHandle(s)).
func NamedText(s string) NodeSpec { return namedSpec{MustParseHandle(s)} }

type newSpec struct{}

func (newSpec) resolve(b *Builder) NodeID { return b.newNode() }

// New allocates a fresh node bound to no name.
func New() NodeSpec { return newSpec{} }
