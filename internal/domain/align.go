package domain

import "sort"

// AlignedPoint is a tenor with usable values on both sides.
type AlignedPoint struct {
	Tenor Tenor   `json:"tenor"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
}

// AlignedCurve pairs two jurisdictions on their common tenors in catalog order.
type AlignedCurve struct {
	A      Jurisdiction   `json:"a"`
	B      Jurisdiction   `json:"b"`
	Points []AlignedPoint `json:"points"`
}

// Labels returns the tenor labels of the aligned points.
func (c AlignedCurve) Labels() []string {
	out := make([]string, len(c.Points))
	for i, p := range c.Points {
		out[i] = string(p.Tenor)
	}
	return out
}

// Align keeps the tenors, in catalog order, where both curves have a usable value.
func Align(tenors []Tenor, a, b Curve) (AlignedCurve, error) {
	aligned := AlignedCurve{A: a.Jurisdiction, B: b.Jurisdiction}
	for _, t := range inCatalogOrder(tenors) {
		ya, yb := a.Yield(t), b.Yield(t)
		if !ya.Usable() || !yb.Usable() {
			continue
		}
		va, _ := ya.Value()
		vb, _ := yb.Value()
		aligned.Points = append(aligned.Points, AlignedPoint{Tenor: t, A: va, B: vb})
	}
	if len(aligned.Points) == 0 {
		return aligned, ErrNoOverlap
	}
	return aligned, nil
}

// Coverage splits tenors into those usable on both sides and those missing on at least one.
func Coverage(tenors []Tenor, a, b Curve) (have, missing []Tenor) {
	have = []Tenor{}
	missing = []Tenor{}
	for _, t := range inCatalogOrder(tenors) {
		if a.Yield(t).Usable() && b.Yield(t).Usable() {
			have = append(have, t)
			continue
		}
		missing = append(missing, t)
	}
	return have, missing
}

// inCatalogOrder drops unknown tenors and sorts the rest by catalog position.
func inCatalogOrder(tenors []Tenor) []Tenor {
	out := make([]Tenor, 0, len(tenors))
	for _, t := range tenors {
		if t.Index() >= 0 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}
