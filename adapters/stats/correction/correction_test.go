package correction

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"par2/domain/core"
)

func TestBenjaminiHochberg_KnownValues(t *testing.T) {
	p := []float64{0.01, 0.02, 0.03, 0.04, 0.9}
	q := BenjaminiHochberg(p)
	require.Len(t, q, 5)

	// Step-up: ranks 1-4 all collapse to 0.04*5/4 = 0.05, rank 5 stays 0.9.
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.05, q[i], 1e-12, "index %d", i)
	}
	assert.InDelta(t, 0.9, q[4], 1e-12)
}

func TestBenjaminiHochberg_OrderInvariant(t *testing.T) {
	p := []float64{0.2, 0.001, 0.8, 0.04, 0.5, 0.01, 0.99, 0.03}
	qOriginal := BenjaminiHochberg(p)

	// Shuffle, correct, scatter back: q per original p must not change.
	rng := rand.New(rand.NewSource(1))
	idx := rng.Perm(len(p))
	shuffled := make([]float64, len(p))
	for to, from := range idx {
		shuffled[to] = p[from]
	}
	qShuffled := BenjaminiHochberg(shuffled)
	for to, from := range idx {
		assert.InDelta(t, qOriginal[from], qShuffled[to], 1e-12)
	}
}

func TestBenjaminiHochberg_MonotoneInPValueRank(t *testing.T) {
	p := []float64{0.4, 0.01, 0.3, 0.02, 0.9, 0.07}
	q := BenjaminiHochberg(p)

	type pair struct{ p, q float64 }
	pairs := make([]pair, len(p))
	for i := range p {
		pairs[i] = pair{p[i], q[i]}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].p < pairs[b].p })
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i].q, pairs[i-1].q,
			"q must be non-decreasing in p rank")
	}
}

func TestBenjaminiHochberg_QAtLeastP(t *testing.T) {
	p := []float64{0.001, 0.2, 0.04, 0.6, 0.03}
	q := BenjaminiHochberg(p)
	for i := range p {
		assert.GreaterOrEqual(t, q[i], p[i])
		assert.LessOrEqual(t, q[i], 1.0)
	}
}

func TestBenjaminiHochberg_Empty(t *testing.T) {
	assert.Nil(t, BenjaminiHochberg(nil))
}

func TestBonferroni(t *testing.T) {
	assert.InDelta(t, 0.05, Bonferroni(0.01, 5), 1e-12)
	assert.Equal(t, 1.0, Bonferroni(0.3, 10))
}

func TestEnrich_OverRepresentedPathway(t *testing.T) {
	// 100 genes tested, 10 significant; pathway A holds 8 of them in a set
	// of 10 - heavily over-represented. Pathway B holds none.
	significant := map[core.GeneKey]bool{}
	sets := map[core.PathwayKey][]core.GeneKey{
		"pathA": nil,
		"pathB": nil,
	}
	for i := 0; i < 100; i++ {
		g := core.GeneKey(fmt.Sprintf("g%03d", i))
		significant[g] = i < 10
		if i < 8 || (i >= 10 && i < 12) {
			sets["pathA"] = append(sets["pathA"], g)
		}
		if i >= 50 && i < 60 {
			sets["pathB"] = append(sets["pathB"], g)
		}
	}

	records := Enrich(sets, significant, 100)
	require.Len(t, records, 2)

	// Sorted by p-value: the enriched pathway comes first.
	assert.Equal(t, core.PathwayKey("pathA"), records[0].Pathway)
	assert.Less(t, records[0].PValue, 1e-6)
	assert.Greater(t, records[0].FoldEnrichment, 5.0)
	assert.Equal(t, 8, records[0].SignificantInSet)

	assert.Equal(t, core.PathwayKey("pathB"), records[1].Pathway)
	assert.Equal(t, 0, records[1].SignificantInSet)
	assert.Equal(t, 1.0, records[1].PValue)

	// q-values attached and valid.
	for _, r := range records {
		assert.GreaterOrEqual(t, r.QValue, r.PValue)
		assert.LessOrEqual(t, r.QValue, 1.0)
	}
}

func TestEnrich_EmptyInputs(t *testing.T) {
	assert.Empty(t, Enrich(nil, nil, 0))
}
