// Package engine orchestrates the full per-batch pipeline: per-gene AR(2)
// persistence analysis fanned out across workers, the circadian coupling
// test against the dataset's clock reference, batch-wide multiple-testing
// correction, and the audit manifest. The engine itself holds no mutable
// state between runs beyond a compute-once diagnostics cache.
package engine

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"par2/adapters/stats/ar2"
	"par2/adapters/stats/correction"
	"par2/adapters/stats/coupling"
	"par2/adapters/stats/diagnostics"
	"par2/adapters/stats/stationarity"
	"par2/domain/analysis"
	"par2/domain/core"
	"par2/domain/series"
	"par2/internal/errors"
	"par2/ports"
)

// Config carries the per-run knobs. Zero values fall back to defaults in
// Normalize; Seed has no default because reproducibility requires the
// caller to choose one.
type Config struct {
	Alpha          float64
	Permutations   int
	BootstrapDraws int
	Seed           int64
	Workers        int
	// ClampModuli restricts eigenvalue moduli to [ClampLo, ClampHi] in
	// aggregate reporting (discovery rates, group comparisons). The
	// per-gene records always keep the raw solver output.
	ClampModuli bool
	ClampLo     float64
	ClampHi     float64
}

// DefaultConfig is the production parameter set.
func DefaultConfig(seed int64) Config {
	return Config{
		Alpha:          0.05,
		Permutations:   10000,
		BootstrapDraws: 5000,
		Seed:           seed,
		Workers:        4,
		ClampModuli:    true,
		ClampLo:        0.10,
		ClampHi:        0.99,
	}
}

// Normalize fills unset fields with defaults and validates the rest.
func (c Config) Normalize() (Config, error) {
	if c.Alpha == 0 {
		c.Alpha = 0.05
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return c, errors.ConfigInvalid("alpha must be in [0, 1]")
	}
	if c.Permutations <= 0 {
		c.Permutations = 10000
	}
	if c.BootstrapDraws <= 0 {
		c.BootstrapDraws = 5000
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.ClampModuli && (c.ClampLo >= c.ClampHi || c.ClampLo < 0) {
		return c, errors.ConfigInvalid("clamp band must satisfy 0 <= lo < hi")
	}
	return c, nil
}

// Engine runs batch analyses against a series provider and stores results.
type Engine struct {
	provider ports.SeriesProvider
	store    ports.RunStore
	cfg      Config

	// Compute-once diagnostics cache keyed by dataset|gene. Entries are
	// written at most once per batch lifetime (LoadOrStore semantics), so
	// parallel gene workers need no further locking.
	diagCache sync.Map
}

// New builds an engine. The store may be nil when the caller only wants the
// returned BatchResult and no persistence.
func New(provider ports.SeriesProvider, store ports.RunStore, cfg Config) (*Engine, error) {
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errors.InvalidInput("series provider is required")
	}
	return &Engine{provider: provider, store: store, cfg: normalized}, nil
}

// geneOutcome is the per-worker result before batch-level correction.
type geneOutcome struct {
	gene     core.GeneKey
	result   analysis.GeneResult
	coupling *analysis.CouplingResult
	skip     analysis.WarningCode
	skipped  bool
}

// RunBatch analyzes every gene in the dataset, corrects the coupling
// p-values across the batch, and stores the result under a fresh run ID.
// Skipped genes are never silent: each carries a warning code counted in
// the manifest, because dropping one silently would shift every other
// gene's q-value.
func (e *Engine) RunBatch(ctx context.Context, datasetID core.DatasetID) (*analysis.BatchResult, error) {
	started := time.Now()

	genes, err := e.provider.Genes(ctx, datasetID)
	if err != nil {
		return nil, errors.Wrap(err, "listing genes")
	}
	if len(genes) == 0 {
		return nil, core.ErrEmptyBatch
	}

	clock, err := e.provider.ClockReference(ctx, datasetID)
	if err != nil {
		return nil, errors.Wrap(err, "loading clock reference")
	}

	outcomes := make([]geneOutcome, len(genes))
	sem := semaphore.NewWeighted(int64(e.cfg.Workers))
	var wg sync.WaitGroup
	for i, gene := range genes {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "acquiring worker slot")
		}
		wg.Add(1)
		go func(i int, gene core.GeneKey) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = e.analyzeGene(ctx, datasetID, gene, clock)
		}(i, gene)
	}
	wg.Wait()

	result := e.assemble(datasetID, outcomes, started)
	if e.store != nil {
		if err := e.store.SaveRun(ctx, *result); err != nil {
			return nil, errors.Wrap(err, "storing run")
		}
	}
	return result, nil
}

// analyzeGene runs the full single-gene pipeline: fit, eigenvalue,
// stationarity, diagnostics, coupling.
func (e *Engine) analyzeGene(ctx context.Context, datasetID core.DatasetID, gene core.GeneKey, clock series.TimeSeries) geneOutcome {
	out := geneOutcome{gene: gene}

	ts, err := e.provider.Series(ctx, datasetID, gene)
	if err != nil {
		out.skipped = true
		out.skip = analysis.WarningSeriesUnavailable
		return out
	}
	values := ts.Values
	n := len(values)

	switch {
	case !ts.Finite():
		out.skipped = true
		out.skip = analysis.WarningNonFinite
		return out
	case n < ar2.MinObservations:
		out.skipped = true
		out.skip = analysis.WarningShortSeries
		return out
	case ts.NearConstant():
		out.skipped = true
		out.skip = analysis.WarningZeroVariance
		return out
	}

	fit := ar2.Fit(values)
	eigen := ar2.SolveAt(fit.Phi1(), fit.Phi2(), ts.SamplingInterval())
	verdict := stationarity.Verdict(values)
	diag := e.cachedDiagnostics(datasetID, gene, values, fit, eigen)

	var warnings []analysis.WarningCode
	if fit.Degenerate {
		warnings = append(warnings, analysis.WarningSingularDesign)
	}
	if math.Abs(eigen.Modulus-1) < 0.05 {
		warnings = append(warnings, analysis.WarningBoundary)
	}

	out.result = analysis.GeneResult{
		Gene:         gene,
		Fit:          fit,
		Eigen:        eigen,
		Stationarity: verdict,
		Diagnostics:  diag,
		Warnings:     warnings,
	}

	// Every gene absent from the coupling batch carries an explicit skip
	// code in the manifest; a missing code would silently shift every other
	// gene's q-value.
	if len(clock.Values) != n {
		out.skip = analysis.WarningClockMismatch
		return out
	}
	out.coupling = coupling.Test(gene, ts.Timepoints, values, clock.Values)
	if out.coupling == nil {
		if n < coupling.MinRawObservations || n-2 < coupling.MinLagObservations {
			out.skip = analysis.WarningShortLagged
		} else {
			// Cleared both observation floors: the test collapsed on a
			// degenerate design, not on length.
			out.skip = analysis.WarningSingularDesign
		}
	}
	return out
}

// cachedDiagnostics memoizes the diagnostic battery per (dataset, gene).
func (e *Engine) cachedDiagnostics(datasetID core.DatasetID, gene core.GeneKey, values []float64, fit analysis.RegressionFit, eigen analysis.EigenSolution) analysis.ConfidenceDiagnostics {
	key := datasetID.String() + "|" + gene.String()
	if cached, ok := e.diagCache.Load(key); ok {
		return cached.(analysis.ConfidenceDiagnostics)
	}
	diag := diagnostics.Assess(values, fit, eigen)
	actual, _ := e.diagCache.LoadOrStore(key, diag)
	return actual.(analysis.ConfidenceDiagnostics)
}

// assemble folds the per-gene outcomes into a corrected, manifest-carrying
// batch result.
func (e *Engine) assemble(datasetID core.DatasetID, outcomes []geneOutcome, started time.Time) *analysis.BatchResult {
	geneResults := make([]analysis.GeneResult, 0, len(outcomes))
	couplings := make([]analysis.CouplingResult, 0, len(outcomes))
	skipCounts := make(map[analysis.WarningCode]int)
	skipped := 0

	for _, out := range outcomes {
		if out.skipped {
			skipped++
			skipCounts[out.skip]++
			continue
		}
		if out.skip != "" {
			skipCounts[out.skip]++
		}
		geneResults = append(geneResults, out.result)
		if out.coupling != nil {
			couplings = append(couplings, *out.coupling)
		}
	}

	// Batch-wide correction over the complete p-value set.
	m := len(couplings)
	pValues := make([]float64, m)
	for i, c := range couplings {
		pValues[i] = c.PValue
	}
	qValues := correction.BenjaminiHochberg(pValues)
	significant := 0
	for i := range couplings {
		couplings[i].BonferroniP = correction.Bonferroni(couplings[i].PValue, m)
		couplings[i].QValue = qValues[i]
		couplings[i].SignificantP = couplings[i].PValue < e.cfg.Alpha
		couplings[i].SignificantQ = qValues[i] < e.cfg.Alpha
		if couplings[i].SignificantQ {
			significant++
		}
	}
	sort.Slice(couplings, func(a, b int) bool { return couplings[a].Gene < couplings[b].Gene })

	discovery := analysis.DiscoveryRate{Significant: significant, Total: m}
	if m > 0 {
		discovery.Rate = 100 * float64(significant) / float64(m)
	}

	return &analysis.BatchResult{
		Manifest: analysis.BatchManifest{
			RunID:        core.RunID(core.NewID()),
			DatasetID:    datasetID,
			Seed:         e.cfg.Seed,
			Alpha:        e.cfg.Alpha,
			GenesTested:  len(geneResults),
			GenesSkipped: skipped,
			SkipCounts:   skipCounts,
			RuntimeMs:    time.Since(started).Milliseconds(),
			CreatedAt:    core.Now(),
		},
		Genes:     geneResults,
		Coupling:  couplings,
		Discovery: discovery,
	}
}

// EnrichBatch attaches pathway enrichment records to a completed batch,
// using the batch's q-value significance partition as the gene universe.
func (e *Engine) EnrichBatch(result *analysis.BatchResult, sets map[core.PathwayKey][]core.GeneKey) {
	if result == nil || len(result.Coupling) == 0 || len(sets) == 0 {
		return
	}
	significant := make(map[core.GeneKey]bool, len(result.Coupling))
	for _, c := range result.Coupling {
		significant[c.Gene] = c.SignificantQ
	}
	result.Enrichment = correction.Enrich(sets, significant, len(result.Coupling))
}
