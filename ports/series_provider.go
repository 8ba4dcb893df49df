package ports

import (
	"context"

	"par2/domain/core"
	"par2/domain/series"
)

// SeriesProvider supplies already-parsed expression series for one dataset.
// File-format sniffing, delimiter detection, and gene-symbol resolution all
// live behind this boundary; the engine only ever sees numeric series on a
// comparable expression scale.
type SeriesProvider interface {
	Genes(ctx context.Context, datasetID core.DatasetID) ([]core.GeneKey, error)
	Series(ctx context.Context, datasetID core.DatasetID, gene core.GeneKey) (series.TimeSeries, error)
	// ClockReference returns the clock-marker series the coupling test
	// estimates its phase signal from.
	ClockReference(ctx context.Context, datasetID core.DatasetID) (series.TimeSeries, error)
}
