package circuit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Handle names a single terminal in the schematic: a base name plus an
// optional bus index and an optional plate number (sup). Handle is a plain
// comparable struct so it can be used directly as a map key; two Handles are
// equal iff all three fields match.
type Handle struct {
	Name     string
	Index    int8
	HasIndex bool
	Sup      uint8
	HasSup   bool
}

// Ground is the reserved rail every coil's opposite terminal implicitly
// connects to. It is always public.
var Ground = Handle{Name: "G"}

// H builds a bare Handle with no index or sup, e.g. H("Ga").
func H(name string) Handle {
	return Handle{Name: name}
}

// HIdx builds a Handle with an index and no sup, e.g. HIdx("A", 3).
func HIdx(name string, index int8) Handle {
	return Handle{Name: name, Index: index, HasIndex: true}
}

// HIdxSup builds a Handle with both an index and a sup.
func HIdxSup(name string, index int8, sup uint8) Handle {
	return Handle{Name: name, Index: index, HasIndex: true, Sup: sup, HasSup: true}
}

// ParseHandle parses the text form name[_index][^sup]. The name itself must
// not contain '_' or '^'.
func ParseHandle(s string) (Handle, error) {
	rest := s
	var supPart string
	hasSup := false
	if i := strings.IndexByte(rest, '^'); i >= 0 {
		supPart = rest[i+1:]
		rest = rest[:i]
		hasSup = true
	}
	name := rest
	var indexPart string
	hasIndex := false
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		name = rest[:i]
		indexPart = rest[i+1:]
		hasIndex = true
	}
	if name == "" {
		return Handle{}, fmt.Errorf("circuit: empty handle name in %q", s)
	}
	if strings.ContainsAny(name, "_^") {
		return Handle{}, fmt.Errorf("circuit: handle name %q contains a reserved character", name)
	}
	h := Handle{Name: name}
	if hasIndex {
		n, err := strconv.ParseInt(indexPart, 10, 8)
		if err != nil {
			return Handle{}, fmt.Errorf("circuit: bad index in handle %q: %w", s, err)
		}
		h.Index = int8(n)
		h.HasIndex = true
	}
	if hasSup {
		n, err := strconv.ParseUint(supPart, 10, 8)
		if err != nil {
			return Handle{}, fmt.Errorf("circuit: bad sup in handle %q: %w", s, err)
		}
		h.Sup = uint8(n)
		h.HasSup = true
	}
	return h, nil
}

// MustParseHandle parses s and aborts the program on malformed input. Use it
// for handle literals the caller controls (schematic construction code), not
// for text coming from outside the program.
func MustParseHandle(s string) Handle {
	h, err := ParseHandle(s)
	if err != nil {
		glog.Fatalf("circuit: %v", err)
	}
	return h
}

// String renders the text form name[_index][^sup].
func (h Handle) String() string {
	var b strings.Builder
	b.WriteString(h.Name)
	if h.HasIndex {
		fmt.Fprintf(&b, "_%d", h.Index)
	}
	if h.HasSup {
		fmt.Fprintf(&b, "^%d", h.Sup)
	}
	return b.String()
}

// isPublicByDefault reports whether h is automatically exposed across
// subcircuits: an all-uppercase-ASCII-or-underscore name with no index and no
// sup. Ground (G) always qualifies.
func isPublicByDefault(h Handle) bool {
	if h.HasIndex || h.HasSup || h.Name == "" {
		return false
	}
	for _, r := range h.Name {
		if r == '_' {
			continue
		}
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ActuatorFor is the exported form of coilToSwitchName: it reports the
// switch-actuator Handle that a coil named h drives. Library code outside
// this package (such as the gates package) needs this to wire switches that
// will be actuated by a coil it is about to add.
func ActuatorFor(h Handle) Handle { return coilToSwitchName(h) }

// coilToSwitchName maps a coil's Handle to the actuator Handle of the
// switches it drives: the name is lowercased and the sup is stripped, the
// index is preserved as-is.
func coilToSwitchName(h Handle) Handle {
	return Handle{Name: strings.ToLower(h.Name), Index: h.Index, HasIndex: h.HasIndex}
}

// Bus is a Handle template without an index: Index selects a concrete
// Handle from it.
type Bus struct {
	Name   string
	Sup    uint8
	HasSup bool
}

// B builds a bare Bus with no sup.
func B(name string) Bus {
	return Bus{Name: name}
}

// BSup builds a Bus carrying a sup.
func BSup(name string, sup uint8) Bus {
	return Bus{Name: name, Sup: sup, HasSup: true}
}

// Index yields the concrete Handle for bit position i of the bus.
func (b Bus) Index(i int8) Handle {
	return Handle{Name: b.Name, Index: i, HasIndex: true, Sup: b.Sup, HasSup: b.HasSup}
}

func (b Bus) String() string {
	var s strings.Builder
	s.WriteString(b.Name)
	if b.HasSup {
		fmt.Fprintf(&s, "^%d", b.Sup)
	}
	return s.String()
}
