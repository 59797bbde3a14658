package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// CartService keeps per-session carts in Redis. The cart itself is the
// pure reducer in the cart package; this layer only loads, mutates and
// stores it.
type CartService struct {
	store *store.Store
	redis *redisclient.Client
	ttl   time.Duration
}

// NewCartService creates a new cart service
func NewCartService(st *store.Store, redis *redisclient.Client, ttl time.Duration) *CartService {
	return &CartService{
		store: st,
		redis: redis,
		ttl:   ttl,
	}
}

// Get loads a session's cart, or an empty one if the session has none
func (s *CartService) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.redis.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return cart.New(), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart for session %s: %w", sessionID, err)
	}
	return &c, nil
}

// Add puts quantity of a product into the session's cart. The product
// is fetched fresh so the line snapshot carries the stock count at the
// time of the call, with the cached count overlaid when one is live.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, quantity int) (*cart.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.Add")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	overlayCachedStock(ctx, s.redis, product)

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.AddItem(cart.SnapshotOf(*product), quantity)
	util.CartOperationsTotal.WithLabelValues("add").Inc()

	return c, s.save(ctx, sessionID, c)
}

// Update replaces the quantity of a cart line; zero or below removes it
func (s *CartService) Update(ctx context.Context, sessionID, productID string, quantity int) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)
	util.CartOperationsTotal.WithLabelValues("update").Inc()

	return c, s.save(ctx, sessionID, c)
}

// Remove deletes a cart line
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)
	util.CartOperationsTotal.WithLabelValues("remove").Inc()

	return c, s.save(ctx, sessionID, c)
}

// Clear drops the session's cart entirely
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	util.CartOperationsTotal.WithLabelValues("clear").Inc()
	return s.redis.DeleteCart(ctx, sessionID)
}

func (s *CartService) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart for session %s: %w", sessionID, err)
	}
	return s.redis.SaveCart(ctx, sessionID, data, s.ttl)
}
