package events

import (
	"context"

	"github.com/fleetdepot/depot/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, events ...domain.StockEvent)
}

// Multi hands every batch to each publisher in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, events ...domain.StockEvent) {
	for _, p := range m {
		p.Publish(ctx, events...)
	}
}
