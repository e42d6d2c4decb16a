// Package service hosts the application services sitting between the bot
// transport and storage. Lookup-style services never fail their caller:
// storage errors are logged and degrade to an empty result.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hackmir/partsbot/core/logger"
	"github.com/hackmir/partsbot/internal/domain"
)

// lookupTimeout bounds every storage call issued on behalf of a user update.
const lookupTimeout = 5 * time.Second

// ScrapyardStore is the storage surface the directory service consumes.
type ScrapyardStore interface {
	List(ctx context.Context) ([]domain.Scrapyard, error)
	Search(ctx context.Context, query string) ([]domain.Scrapyard, error)
}

// Directory serves scrapyard listings for display.
type Directory struct {
	store ScrapyardStore
}

// NewDirectory builds the directory service.
func NewDirectory(store ScrapyardStore) *Directory {
	return &Directory{store: store}
}

// Lookup returns matching scrapyards, or the whole directory when the query is
// empty. The result may be empty; it is never an error.
func (d *Directory) Lookup(ctx context.Context, query string) []domain.Scrapyard {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	start := time.Now()
	var (
		yards []domain.Scrapyard
		err   error
	)
	if query == "" {
		yards, err = d.store.List(ctx)
	} else {
		yards, err = d.store.Search(ctx, query)
	}
	if err != nil {
		logger.Warn(ctx, "service.directory", "lookup",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil
	}
	logger.Debug(ctx, "service.directory", "lookup",
		slog.String("status", "ok"),
		slog.Int("count", len(yards)),
		slog.Duration("duration", logger.Took(start)),
	)
	return yards
}
