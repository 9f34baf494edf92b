package service

import (
	"context"

	"github.com/fleetdepot/depot/internal/domain"
)

// Publisher delivers committed stock events. Implementations log their own
// delivery failures.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.StockEvent)
}

// StockCache holds part stock snapshots keyed by part id.
type StockCache interface {
	Get(ctx context.Context, partID uint) (domain.PartStock, bool)
	Set(ctx context.Context, stock domain.PartStock)
	Invalidate(ctx context.Context, partIDs ...uint)
}

type notifier struct {
	pub   Publisher
	cache StockCache
}

// committed drops cached stock for every touched part, then publishes.
func (n notifier) committed(ctx context.Context, events []domain.StockEvent) {
	if len(events) == 0 {
		return
	}

	seen := make(map[uint]struct{}, len(events))
	parts := make([]uint, 0, len(events))
	for _, e := range events {
		if e.PartID == 0 {
			continue
		}
		if _, ok := seen[e.PartID]; !ok {
			seen[e.PartID] = struct{}{}
			parts = append(parts, e.PartID)
		}
	}
	if len(parts) > 0 {
		n.cache.Invalidate(ctx, parts...)
	}

	n.pub.Publish(ctx, events...)
}
