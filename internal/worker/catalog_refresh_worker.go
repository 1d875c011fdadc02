package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
)

// idleSweepInterval is how often idle memberships are dropped when catalog
// refresh is disabled.
const idleSweepInterval = 10 * time.Minute

// CatalogRefreshWorker keeps catalog snapshots warm and drops the
// memberships of shoppers gone idle.
type CatalogRefreshWorker struct {
	catalogService *service.CatalogService
	store          *store.Store
	interval       time.Duration
	refresh        bool
	idleTTL        time.Duration
}

// NewCatalogRefreshWorker constructs a CatalogRefreshWorker. A zero
// refreshInterval disables catalog refresh; a zero idleTTL disables pruning.
func NewCatalogRefreshWorker(catalogService *service.CatalogService, st *store.Store, refreshInterval, idleTTL time.Duration) *CatalogRefreshWorker {
	w := &CatalogRefreshWorker{
		catalogService: catalogService,
		store:          st,
		interval:       refreshInterval,
		refresh:        refreshInterval > 0,
		idleTTL:        idleTTL,
	}
	if !w.refresh {
		w.interval = idleSweepInterval
	}
	return w
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *CatalogRefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Bool("refresh", w.refresh).Msg("Starting catalog refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog refresh worker stopped")
			return
		}
	}
}

func (w *CatalogRefreshWorker) run(ctx context.Context) {
	if w.refresh {
		w.refreshSources(ctx)
	}
	if w.idleTTL > 0 {
		if n := w.store.Prune(w.idleTTL); n > 0 {
			log.Info().Int("removed", n).Msg("Dropped idle memberships")
		}
	}
}

func (w *CatalogRefreshWorker) refreshSources(ctx context.Context) {
	start := time.Now()
	failed := 0
	for _, src := range w.catalogService.Sources() {
		if ctx.Err() != nil {
			return
		}
		snap, err := w.catalogService.Refresh(ctx, src.Name)
		if err != nil {
			failed++
			log.Error().Err(err).Str("source", src.Name).Msg("Failed to refresh catalog source")
			continue
		}
		log.Debug().Str("source", src.Name).Int("products", len(snap.Products)).Msg("Catalog source refreshed")
	}
	log.Info().
		Int("sources", len(w.catalogService.Sources())).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("Catalog refresh completed")
}
