package event

// Event is one simulated collision: the final-state particles in input order.
type Event struct {
	Number    int
	Weight    float64
	Particles []Particle
}

// Hadrons returns the non-lepton particles with pt strictly above minPt.
func (ev Event) Hadrons(minPt float64) []Particle {
	return ev.view(Hadron, minPt)
}

// Leptons returns the lepton particles with pt strictly above minPt.
func (ev Event) Leptons(minPt float64) []Particle {
	return ev.view(Lepton, minPt)
}

func (ev Event) view(kind Kind, minPt float64) []Particle {
	var out []Particle
	for _, p := range ev.Particles {
		if p.Kind() != kind || !(p.Pt() > minPt) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterByPt returns the particles with pt strictly greater than minPt,
// keeping their relative order. The input slice is not modified.
func FilterByPt(ps []Particle, minPt float64) []Particle {
	var out []Particle
	for _, p := range ps {
		if p.Pt() > minPt {
			out = append(out, p)
		}
	}
	return out
}
