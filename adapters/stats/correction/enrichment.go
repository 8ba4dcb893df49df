package correction

import (
	"math"
	"sort"

	"par2/domain/analysis"
	"par2/domain/core"
	"par2/internal/specfunc"
)

// Enrich computes hypergeometric over-representation of significant genes
// within each named gene set, given a fixed significance partition of the
// tested universe. Records come back sorted by p-value with BH q-values
// already attached; the partition is never re-derived here.
func Enrich(sets map[core.PathwayKey][]core.GeneKey, significant map[core.GeneKey]bool, totalTested int) []analysis.PathwayEnrichmentRecord {
	totalSignificant := 0
	for _, sig := range significant {
		if sig {
			totalSignificant++
		}
	}

	records := make([]analysis.PathwayEnrichmentRecord, 0, len(sets))
	for pathway, genes := range sets {
		inSet := len(genes)
		if inSet == 0 {
			continue
		}
		sigInSet := 0
		for _, g := range genes {
			if significant[g] {
				sigInSet++
			}
		}

		rec := analysis.PathwayEnrichmentRecord{
			Pathway:          pathway,
			GenesInSet:       inSet,
			SignificantInSet: sigInSet,
			TotalTested:      totalTested,
			TotalSignificant: totalSignificant,
			PValue:           hypergeomUpperTail(sigInSet, inSet, totalSignificant, totalTested),
		}
		expected := float64(totalSignificant) * float64(inSet) / float64(totalTested)
		if expected > 0 {
			rec.FoldEnrichment = float64(sigInSet) / expected
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(a, b int) bool {
		if records[a].PValue != records[b].PValue {
			return records[a].PValue < records[b].PValue
		}
		return records[a].Pathway < records[b].Pathway
	})

	pValues := make([]float64, len(records))
	for i, r := range records {
		pValues[i] = r.PValue
	}
	for i, q := range BenjaminiHochberg(pValues) {
		records[i].QValue = q
	}
	return records
}

// hypergeomUpperTail is P(X >= k) for X hypergeometric with inSet draws
// from a universe of total genes containing totalSig successes. Summed
// exactly in log space.
func hypergeomUpperTail(k, inSet, totalSig, total int) float64 {
	if total <= 0 || k <= 0 {
		return 1
	}
	upper := inSet
	if totalSig < upper {
		upper = totalSig
	}
	p := 0.0
	denom := logChoose(total, inSet)
	for x := k; x <= upper; x++ {
		logP := logChoose(totalSig, x) + logChoose(total-totalSig, inSet-x) - denom
		p += math.Exp(logP)
	}
	if p > 1 {
		p = 1
	}
	return p
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	if k == 0 || k == n {
		return 0
	}
	return specfunc.LogGamma(float64(n+1)) - specfunc.LogGamma(float64(k+1)) - specfunc.LogGamma(float64(n-k+1))
}
