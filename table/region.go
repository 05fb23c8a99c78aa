package table

// Region is a table's byte range [From, To) in the host document together
// with its parsed Model. To is From plus the length of the model's text.
type Region struct {
	From  int
	To    int
	Model *Model
}

// Contains reports whether off lies inside the region, counting both ends.
func (r *Region) Contains(off int) bool {
	return r != nil && r.From <= off && off <= r.To
}

// overlaps reports whether r and [from, to] share at least one offset.
func (r *Region) overlaps(from, to int) bool {
	return r.From <= to && from <= r.To
}

func (r *Region) shift(delta int) {
	r.From += delta
	r.To += delta
}

// resync moves To to the end of the model's current text.
func (r *Region) resync() {
	r.To = r.From + len(r.Model.String())
}

// Find returns the region containing off, or nil.
func Find(regions []*Region, off int) *Region {
	for _, r := range regions {
		if r.Contains(off) {
			return r
		}
	}
	return nil
}
