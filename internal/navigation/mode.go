package navigation

// Mode is the classify-page filter a user browses with.
type Mode struct {
	WithRedshift  Tri `json:"with_redshift"`
	Classified    Tri `json:"classified"`
	Skipped       Tri `json:"skipped"`
	ValidRedshift Tri `json:"valid_redshift"`
}

// DefaultMode shows unclassified, unskipped galaxies.
func DefaultMode() Mode {
	return Mode{Classified: No, Skipped: No}
}

// Filter is the engine filter for picking the galaxy to show.
func (m Mode) Filter() Filter {
	f := Filter{
		Skipped:      m.Skipped,
		Classified:   m.Classified,
		WithRedshift: m.WithRedshift,
	}
	if m.ValidRedshift != Any {
		v := m.ValidRedshift == Yes
		f.ValidRedshift = &v
	}
	return f
}

// NeighborFilter is Filter without the classified constraint, used for the
// previous/next links around the current galaxy.
func (m Mode) NeighborFilter() Filter {
	f := m.Filter()
	f.Classified = Any
	return f
}
