package ports

import (
	"context"

	"par2/domain/analysis"
	"par2/domain/core"
)

// RunStore persists completed batch results under their opaque run
// identifier. The engine writes each run exactly once; re-inserting an
// existing run ID is an error so published results stay immutable.
type RunStore interface {
	SaveRun(ctx context.Context, result analysis.BatchResult) error
	GetRun(ctx context.Context, runID core.RunID) (*analysis.BatchResult, error)
	ListRuns(ctx context.Context, datasetID core.DatasetID) ([]analysis.BatchManifest, error)
	DeleteRun(ctx context.Context, runID core.RunID) error
}
