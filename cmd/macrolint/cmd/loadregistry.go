package cmd

import (
	"fmt"
	"os"

	"github.com/embedlang/macrolang/registry"
)

// loadRegistry builds a *registry.Manager from cfg's configured JSON
// batch sources, logging per-item failures through the package logger
// the way registry.Manager itself does for malformed records.
func loadRegistry(cfg Config) (*registry.Manager, error) {
	mgr := registry.NewManager(registry.WithLogger(logger))
	for _, src := range cfg.Sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", src.Path, err)
		}
		stats, err := mgr.IngestBatch(registry.BatchFunctions, src.Extension, data)
		if err != nil {
			return nil, fmt.Errorf("ingesting source %s: %w", src.Path, err)
		}
		mgr.AddSource(registry.BatchFunctions, src.Extension)
		if stats.Failed > 0 {
			logger.WithField("source", src.Path).Warnf("%d of %d records failed to ingest", stats.Failed, stats.Attempted)
		}
	}
	return mgr, nil
}
