package accum

// Fill is one recorded histogram fill.
type Fill struct {
	Name   string
	Value  float64
	Weight float64
}

// Recorder is a Filler that keeps the fills it receives, in order, so they
// can be replayed into a Bank later. Workers analyzing events concurrently
// fill a Recorder each; the owner of the Bank replays them.
type Recorder struct {
	Fills []Fill
}

// Fill records a fill.
func (r *Recorder) Fill(name string, value, weight float64) {
	r.Fills = append(r.Fills, Fill{Name: name, Value: value, Weight: weight})
}

// Replay applies the recorded fills to f in the order they were recorded.
func (r *Recorder) Replay(f Filler) {
	for _, fill := range r.Fills {
		f.Fill(fill.Name, fill.Value, fill.Weight)
	}
}

// Reset drops the recorded fills, keeping the allocated storage.
func (r *Recorder) Reset() { r.Fills = r.Fills[:0] }

// Named returns the fills recorded for name.
func (r *Recorder) Named(name string) []Fill {
	var out []Fill
	for _, fill := range r.Fills {
		if fill.Name == name {
			out = append(out, fill)
		}
	}
	return out
}
