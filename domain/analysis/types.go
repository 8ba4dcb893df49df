package analysis

import (
	"fmt"
	"math"

	"par2/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// RegressionFit holds one least-squares fit: a coefficient vector, one
// residual per fitted observation, and a standard-error vector. Created fresh
// per fit call and never mutated afterwards.
// INVARIANT: for an AR(2) design, len(Residuals) == NObs - 2 (two observations
// lost to lag construction).
type RegressionFit struct {
	Coefficients []float64 `json:"coefficients"`
	Residuals    []float64 `json:"residuals"`
	StdErrors    []float64 `json:"std_errors"`
	RSS          float64   `json:"rss"`
	NObs         int       `json:"n_obs"`
	Degenerate   bool      `json:"degenerate"` // zero/Inf placeholder result
}

// Phi1 returns the first AR lag coefficient of an AR fit (intercept first).
func (f RegressionFit) Phi1() float64 {
	if len(f.Coefficients) < 2 {
		return 0
	}
	return f.Coefficients[1]
}

// Phi2 returns the second AR lag coefficient of an AR fit.
func (f RegressionFit) Phi2() float64 {
	if len(f.Coefficients) < 3 {
		return 0
	}
	return f.Coefficients[2]
}

// EigenSolution describes the dominant root of the AR(2) characteristic
// polynomial lambda^2 - phi1*lambda - phi2 = 0.
// INVARIANT: Modulus >= 0. The solver never clamps; clamping into a reporting
// band is a caller policy (see engine.Config.ClampModuli).
type EigenSolution struct {
	Modulus       float64 `json:"modulus"`
	Real          float64 `json:"real"`
	Imag          float64 `json:"imag"`
	ImpliedPeriod float64 `json:"implied_period,omitempty"` // complex case only
}

// Oscillatory reports whether the roots are a complex-conjugate pair.
func (e EigenSolution) Oscillatory() bool {
	return e.Imag != 0
}

// ADFResult holds an Augmented Dickey-Fuller test outcome. The null
// hypothesis is a unit root; rejecting it indicates stationarity.
type ADFResult struct {
	Statistic       float64 `json:"statistic"`
	Critical10      float64 `json:"critical_10"`
	Critical5       float64 `json:"critical_5"`
	Critical1       float64 `json:"critical_1"`
	RejectsUnitRoot bool    `json:"rejects_unit_root"` // at the 5% level
}

// KPSSResult holds a KPSS test outcome. The null hypothesis is stationarity;
// failing to reject it indicates stationarity.
type KPSSResult struct {
	Statistic  float64 `json:"statistic"`
	Critical10 float64 `json:"critical_10"`
	Critical5  float64 `json:"critical_5"`
	Critical1  float64 `json:"critical_1"`
	Stationary bool    `json:"stationary"` // at the 5% level
}

// VerdictOutcome is the ternary combination of the two stationarity tests.
type VerdictOutcome string

const (
	VerdictStationary    VerdictOutcome = "stationary"
	VerdictNonStationary VerdictOutcome = "non_stationary"
	VerdictInconclusive  VerdictOutcome = "inconclusive"
)

// StationarityVerdict pairs the two tests with opposite nulls into a dual
// verdict. Immutable, computed once per series.
type StationarityVerdict struct {
	ADF     ADFResult      `json:"adf"`
	KPSS    KPSSResult     `json:"kpss"`
	Outcome VerdictOutcome `json:"outcome"`
}

// ============================================================================
// DIAGNOSTICS
// ============================================================================

// DiagnosticCheck is one named boolean-triggered model diagnostic.
type DiagnosticCheck struct {
	Name      string  `json:"name"`
	Triggered bool    `json:"triggered"`
	Statistic float64 `json:"statistic,omitempty"`
	Detail    string  `json:"detail,omitempty"`
}

// ConfidenceLevel buckets the aggregate diagnostic score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// ConfidenceDiagnostics aggregates the ordered diagnostic checks for one
// (dataset, gene) fit into a 0-1 score and a categorical level. Computed once
// per composite key and cached for the lifetime of a batch run.
type ConfidenceDiagnostics struct {
	Checks []DiagnosticCheck `json:"checks"`
	Score  float64           `json:"score"` // 0-1, more triggered flags -> lower
	Level  ConfidenceLevel   `json:"level"`
}

// TriggeredCount returns how many checks fired.
func (d ConfidenceDiagnostics) TriggeredCount() int {
	n := 0
	for _, c := range d.Checks {
		if c.Triggered {
			n++
		}
	}
	return n
}

// ============================================================================
// COUPLING & CORRECTION
// ============================================================================

// CouplingResult records one nested-model circadian coupling test for a
// gene-pair. QValue is filled in only after batch correction.
// INVARIANT: q-values assigned over a batch are monotonically non-increasing
// as p-value rank increases, and each q >= p*m/rank clamped to 1.
type CouplingResult struct {
	Gene          core.GeneKey `json:"gene"`
	FStatistic    float64      `json:"f_statistic"`
	PValue        float64      `json:"p_value"`
	BonferroniP   float64      `json:"bonferroni_p"`
	QValue        float64      `json:"q_value"`
	CohensF2      float64      `json:"cohens_f2"`
	R2Full        float64      `json:"r2_full"`
	R2Reduced     float64      `json:"r2_reduced"`
	BestPeriod    float64      `json:"best_period"`
	NObs          int          `json:"n_obs"`
	SignificantP  bool         `json:"significant_p"` // raw p below alpha
	SignificantQ  bool         `json:"significant_q"` // BH q below alpha
}

// PathwayEnrichmentRecord reports hypergeometric over-representation of
// significant genes inside one named gene set. Derived from a fixed
// significance partition of the gene universe; immutable per batch run.
type PathwayEnrichmentRecord struct {
	Pathway          core.PathwayKey `json:"pathway"`
	GenesInSet       int             `json:"genes_in_set"`
	SignificantInSet int             `json:"significant_in_set"`
	TotalTested      int             `json:"total_tested"`
	TotalSignificant int             `json:"total_significant"`
	FoldEnrichment   float64         `json:"fold_enrichment"`
	PValue           float64         `json:"p_value"`
	QValue           float64         `json:"q_value"`
}

// ============================================================================
// WARNING CODES
// ============================================================================

// WarningCode represents structured skip/quality reasons. Batch correction
// never silently drops a gene; any exclusion carries one of these codes in
// the run manifest.
type WarningCode string

const (
	WarningShortSeries       WarningCode = "SHORT_SERIES"       // too few raw points
	WarningShortLagged       WarningCode = "SHORT_LAGGED"       // too few post-lag observations
	WarningZeroVariance      WarningCode = "ZERO_VARIANCE"      // near-constant series
	WarningSingularDesign    WarningCode = "SINGULAR_DESIGN"    // collinear regressors
	WarningNonFinite         WarningCode = "NON_FINITE"         // NaN/Inf in input values
	WarningBoundary          WarningCode = "BOUNDARY"           // eigenvalue near unit root
	WarningClockMismatch     WarningCode = "CLOCK_MISMATCH"     // gene/clock grids differ
	WarningSeriesUnavailable WarningCode = "SERIES_UNAVAILABLE" // provider lookup failed
)

// ============================================================================
// BATCH RESULTS
// ============================================================================

// GeneResult bundles the per-gene persistence analysis.
type GeneResult struct {
	Gene         core.GeneKey          `json:"gene"`
	Fit          RegressionFit         `json:"fit"`
	Eigen        EigenSolution         `json:"eigen"`
	Stationarity StationarityVerdict   `json:"stationarity"`
	Diagnostics  ConfidenceDiagnostics `json:"diagnostics"`
	Warnings     []WarningCode         `json:"warnings,omitempty"`
}

// DiscoveryRate summarizes the significance partition of one batch.
type DiscoveryRate struct {
	Significant int     `json:"significant"`
	Total       int     `json:"total"`
	Rate        float64 `json:"rate"` // percent
}

// BatchManifest captures the complete audit trail of a batch run.
type BatchManifest struct {
	RunID        core.RunID          `json:"run_id"`
	DatasetID    core.DatasetID      `json:"dataset_id"`
	Seed         int64               `json:"seed"`
	Alpha        float64             `json:"alpha"`
	GenesTested  int                 `json:"genes_tested"`
	GenesSkipped int                 `json:"genes_skipped"`
	SkipCounts   map[WarningCode]int `json:"skip_counts"`
	RuntimeMs    int64               `json:"runtime_ms"`
	CreatedAt    core.Timestamp      `json:"created_at"`
}

// BatchResult is the immutable output of one batch run, stored under an
// opaque run identifier by whatever RunStore the caller supplies.
type BatchResult struct {
	Manifest   BatchManifest             `json:"manifest"`
	Genes      []GeneResult              `json:"genes"`
	Coupling   []CouplingResult          `json:"coupling"`
	Discovery  DiscoveryRate             `json:"discovery"`
	Enrichment []PathwayEnrichmentRecord `json:"enrichment,omitempty"`
}

// ValidateCouplingResult checks the invariants a coupling record must hold
// before it enters a batch. Used by the engine and by tests.
func ValidateCouplingResult(r CouplingResult) error {
	if r.PValue < 0 || r.PValue > 1 || math.IsNaN(r.PValue) {
		return fmt.Errorf("p-value must be in [0, 1], got %v", r.PValue)
	}
	if r.NObs <= 0 {
		return fmt.Errorf("n_obs must be > 0, got %d", r.NObs)
	}
	if r.Gene == "" {
		return fmt.Errorf("gene key must be set")
	}
	return nil
}
