// Package correction applies batch-level multiple-comparison procedures.
// Both procedures are pure functions over the complete p-value set; partial
// or streaming correction is unsupported because the BH step-up is
// rank-dependent on the whole batch.
package correction

import "sort"

// BenjaminiHochberg converts a batch of raw p-values into BH-FDR q-values,
// returned in the input order. The step-up scan runs from the largest rank
// down, clamping at 1 and enforcing monotonicity, so q-values attached to
// original indices do not depend on input order.
func BenjaminiHochberg(pValues []float64) []float64 {
	m := len(pValues)
	if m == 0 {
		return nil
	}

	type ranked struct {
		p     float64
		index int
	}
	order := make([]ranked, m)
	for i, p := range pValues {
		order[i] = ranked{p: p, index: i}
	}
	sort.Slice(order, func(a, b int) bool { return order[a].p < order[b].p })

	qValues := make([]float64, m)
	running := 1.0
	for rank := m; rank >= 1; rank-- {
		q := order[rank-1].p * float64(m) / float64(rank)
		if q > 1 {
			q = 1
		}
		if q < running {
			running = q
		}
		qValues[order[rank-1].index] = running
	}
	return qValues
}

// Bonferroni adjusts one p-value for m comparisons.
func Bonferroni(p float64, m int) float64 {
	adjusted := p * float64(m)
	if adjusted > 1 {
		return 1
	}
	return adjusted
}
