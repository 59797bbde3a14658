package models

import "time"

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
	EventTypeStockChanged       = "product.stock_changed"
)

// BaseEvent contains common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent is published after an order is persisted
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    string      `json:"order_id"`
	OrderType  string      `json:"order_type"`
	TotalPrice float64     `json:"total_price"`
	Lines      []OrderLine `json:"lines,omitempty"`
}

// OrderStatusChangedEvent is published after an admin status update
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// StockChangedEvent is published whenever a product's stock moves
type StockChangedEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}
