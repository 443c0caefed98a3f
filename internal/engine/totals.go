package engine

// Totals aggregates emissions per scope label plus a grand total.
// Total always equals the sum of the scope sums over the same line set.
// Derive it with Summarize; never mutate it in place.
type Totals struct {
	// ByScope maps each scope label seen in the line set to its sum.
	ByScope map[string]float64 `json:"by_scope"`

	// Total is the sum of all scope sums.
	Total float64 `json:"total"`
}

// Scope returns the accumulated emissions for a scope label, 0 when the
// scope has no lines.
func (t Totals) Scope(label string) float64 {
	return t.ByScope[label]
}

// Summarize reduces lines to per-scope sums and a grand total. An empty line
// set yields exactly zero everywhere; it never fails and never divides.
func Summarize(lines []Line) Totals {
	totals := Totals{ByScope: make(map[string]float64)}
	for _, line := range lines {
		totals.ByScope[line.Scope] += line.EmissionsKgCO2e
		totals.Total += line.EmissionsKgCO2e
	}
	return totals
}

// Intensity returns emissions per unit of revenue. By definition it is 0
// when revenue is zero or unknown; it never divides by zero.
func Intensity(totalKgCO2e, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return totalKgCO2e / revenue
}
