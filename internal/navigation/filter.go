package navigation

import "strings"

// Tri is a three-valued filter flag. The zero value does not filter.
type Tri int

const (
	Any Tri = iota
	Yes
	No
)

func TriOf(b bool) Tri {
	if b {
		return Yes
	}
	return No
}

// ParseTri reads yes/true and no/false case-insensitively; anything else is Any.
func ParseTri(raw string) Tri {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true":
		return Yes
	case "no", "false":
		return No
	default:
		return Any
	}
}

func (t Tri) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "any"
	}
}

// accepts reports whether a candidate with property v passes the flag.
func (t Tri) accepts(v bool) bool {
	switch t {
	case Yes:
		return v
	case No:
		return !v
	default:
		return true
	}
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "next", "forward":
		return Forward, true
	case "previous", "prev", "backward":
		return Backward, true
	default:
		return Forward, false
	}
}

// Filter is a conjunction of per-user constraints on a candidate galaxy.
// Nil pointers and Any flags do not constrain.
type Filter struct {
	Skipped      Tri
	Classified   Tri
	WithRedshift Tri

	LSBClass      *int
	Morphology    *int
	ValidRedshift *bool
}

func (f Filter) needsClassification() bool {
	return f.Classified != Any || f.LSBClass != nil || f.Morphology != nil || f.ValidRedshift != nil
}

func (t Tri) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tri) UnmarshalText(b []byte) error {
	*t = ParseTri(string(b))
	return nil
}
