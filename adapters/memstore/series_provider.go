package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"par2/domain/core"
	"par2/domain/series"
	"par2/ports"
)

// SeriesProvider is a map-backed ports.SeriesProvider. The CLI loads
// synthetic datasets into it; tests load fixtures.
type SeriesProvider struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*dataset
}

type dataset struct {
	genes    map[core.GeneKey]series.TimeSeries
	clock    series.TimeSeries
	hasClock bool
}

var _ ports.SeriesProvider = (*SeriesProvider)(nil)

// NewSeriesProvider creates an empty provider.
func NewSeriesProvider() *SeriesProvider {
	return &SeriesProvider{datasets: make(map[core.DatasetID]*dataset)}
}

// AddSeries registers one gene's series under a dataset.
func (p *SeriesProvider) AddSeries(datasetID core.DatasetID, gene core.GeneKey, ts series.TimeSeries) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ds, ok := p.datasets[datasetID]
	if !ok {
		ds = &dataset{genes: make(map[core.GeneKey]series.TimeSeries)}
		p.datasets[datasetID] = ds
	}
	ds.genes[gene] = ts
}

// SetClockReference registers the dataset's clock-marker series.
func (p *SeriesProvider) SetClockReference(datasetID core.DatasetID, ts series.TimeSeries) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ds, ok := p.datasets[datasetID]
	if !ok {
		ds = &dataset{genes: make(map[core.GeneKey]series.TimeSeries)}
		p.datasets[datasetID] = ds
	}
	ds.clock = ts
	ds.hasClock = true
}

// Genes lists the dataset's gene keys in deterministic sorted order.
func (p *SeriesProvider) Genes(_ context.Context, datasetID core.DatasetID) ([]core.GeneKey, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ds, ok := p.datasets[datasetID]
	if !ok {
		return nil, fmt.Errorf("memstore: dataset %s: %w", datasetID, core.ErrNotFound)
	}
	genes := make([]core.GeneKey, 0, len(ds.genes))
	for g := range ds.genes {
		genes = append(genes, g)
	}
	sort.Slice(genes, func(a, b int) bool { return genes[a] < genes[b] })
	return genes, nil
}

// Series returns one gene's series.
func (p *SeriesProvider) Series(_ context.Context, datasetID core.DatasetID, gene core.GeneKey) (series.TimeSeries, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ds, ok := p.datasets[datasetID]
	if !ok {
		return series.TimeSeries{}, fmt.Errorf("memstore: dataset %s: %w", datasetID, core.ErrNotFound)
	}
	ts, ok := ds.genes[gene]
	if !ok {
		return series.TimeSeries{}, fmt.Errorf("memstore: %s/%s: %w", datasetID, gene, core.ErrGeneNotFound)
	}
	return ts, nil
}

// ClockReference returns the dataset's clock-marker series.
func (p *SeriesProvider) ClockReference(_ context.Context, datasetID core.DatasetID) (series.TimeSeries, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ds, ok := p.datasets[datasetID]
	if !ok {
		return series.TimeSeries{}, fmt.Errorf("memstore: dataset %s: %w", datasetID, core.ErrNotFound)
	}
	if !ds.hasClock {
		return series.TimeSeries{}, fmt.Errorf("memstore: dataset %s clock reference: %w", datasetID, core.ErrSeriesMissing)
	}
	return ds.clock, nil
}
