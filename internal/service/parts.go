package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hackmir/partsbot/core/logger"
	"github.com/hackmir/partsbot/internal/domain"
)

// PartStore is the storage surface the catalog service consumes.
type PartStore interface {
	SearchByName(ctx context.Context, name string) ([]domain.Part, error)
}

// Parts serves catalog searches.
type Parts struct {
	store PartStore
}

// NewParts builds the catalog service.
func NewParts(store PartStore) *Parts {
	return &Parts{store: store}
}

// Search returns catalog entries matching the name. Storage errors degrade to
// an empty result.
func (p *Parts) Search(ctx context.Context, name string) []domain.Part {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	start := time.Now()
	parts, err := p.store.SearchByName(ctx, name)
	if err != nil {
		logger.Warn(ctx, "service.parts", "search",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil
	}
	logger.Debug(ctx, "service.parts", "search",
		slog.String("status", "ok"),
		slog.Int("count", len(parts)),
		slog.Duration("duration", logger.Took(start)),
	)
	return parts
}
