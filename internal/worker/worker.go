package worker

import (
	"context"
	"log"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
)

// StockCacheWorker keeps the Redis stock cache in step with the
// database by consuming stock and order events. The cache is advisory;
// catalog reads fall back to Postgres.
type StockCacheWorker struct {
	consumer *broker.Consumer
	handler  *broker.EventHandler
	store    *store.Store
	redis    *redisclient.Client
}

// NewStockCacheWorker creates a new stock cache worker
func NewStockCacheWorker(consumer *broker.Consumer, st *store.Store, redis *redisclient.Client) *StockCacheWorker {
	w := &StockCacheWorker{
		consumer: consumer,
		store:    st,
		redis:    redis,
	}

	handler := broker.NewEventHandler()
	handler.OnStockChanged(w.handleStockChanged)
	handler.OnOrderCreated(w.handleOrderCreated)
	w.handler = handler

	return w
}

// SyncStockCache primes the cache from the database at startup
func (w *StockCacheWorker) SyncStockCache(ctx context.Context) error {
	products, err := w.store.GetProducts(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		if err := w.redis.SetStock(ctx, p.ID, p.Stock); err != nil {
			log.Printf("Failed to cache stock for product %s: %v", p.ID, err)
		}
	}

	log.Printf("Stock cache primed: %d products", len(products))
	return nil
}

// Start starts the worker
func (w *StockCacheWorker) Start(ctx context.Context) error {
	log.Println("Starting stock cache worker...")
	return w.consumer.StartConsuming(ctx, w.handler.HandleMessage)
}

// Stop stops the worker
func (w *StockCacheWorker) Stop() error {
	log.Println("Stopping stock cache worker...")
	return w.consumer.Close()
}

func (w *StockCacheWorker) handleStockChanged(ctx context.Context, event *models.StockChangedEvent) error {
	return w.redis.SetStock(ctx, event.ProductID, event.Stock)
}

// handleOrderCreated re-reads the affected products so the cache never
// drifts on a missed StockChanged event.
func (w *StockCacheWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	if event.OrderType != models.OrderTypeNormal || len(event.Lines) == 0 {
		return nil
	}

	ids := make([]string, len(event.Lines))
	for i, line := range event.Lines {
		ids[i] = line.ProductID
	}

	products, err := w.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range products {
		if err := w.redis.SetStock(ctx, p.ID, p.Stock); err != nil {
			log.Printf("Failed to cache stock for product %s: %v", p.ID, err)
		}
	}
	return nil
}
