package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Product represents a product in the storefront catalog.
// Stock is never negative; a product with stock 0 stays listed but
// cannot be carted.
type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	Category    string    `db:"category" json:"category"`
	Stock       int       `db:"stock" json:"stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Order represents a persisted customer request: either a checkout of
// the shopping cart or an out-of-catalog supply request.
type Order struct {
	ID           string     `db:"id" json:"id"`
	CustomerName string     `db:"customer_name" json:"customer_name"`
	Phone        string     `db:"phone" json:"phone"`
	Address      *string    `db:"address" json:"address"`
	Items        OrderItems `db:"items" json:"items"`
	Status       string     `db:"status" json:"status"`
	Type         string     `db:"type" json:"type"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// OrderLine is a point-in-time product snapshot inside a store order.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// StoreOrderItems is the items payload of a normal_order.
type StoreOrderItems struct {
	Products   []OrderLine `json:"products"`
	TotalPrice float64     `json:"totalPrice"`
}

// CustomRequestItems is the items payload of a custom_request.
type CustomRequestItems struct {
	Category      string `json:"category"`
	ProductDetail string `json:"productDetail"`
	BudgetRange   string `json:"budgetRange,omitempty"`
}

// OrderItems is a tagged union over the two payload variants. Exactly
// one of Store or Custom is set.
type OrderItems struct {
	Store  *StoreOrderItems
	Custom *CustomRequestItems
}

// NewStoreItems wraps a store payload into the union.
func NewStoreItems(items StoreOrderItems) OrderItems {
	return OrderItems{Store: &items}
}

// NewCustomItems wraps a custom-request payload into the union.
func NewCustomItems(items CustomRequestItems) OrderItems {
	return OrderItems{Custom: &items}
}

// MarshalJSON emits the wire shape of whichever variant is set.
func (oi OrderItems) MarshalJSON() ([]byte, error) {
	switch {
	case oi.Store != nil:
		return json.Marshal(oi.Store)
	case oi.Custom != nil:
		return json.Marshal(oi.Custom)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON discriminates on the presence of a "products" array.
// DecodeOrderItems is preferred when the order type is at hand; this
// sniff covers payloads read without one.
func (oi *OrderItems) UnmarshalJSON(data []byte) error {
	var peek struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(data, &peek); err != nil {
		return err
	}
	if len(peek.Products) > 0 && string(peek.Products) != "null" {
		var store StoreOrderItems
		if err := json.Unmarshal(data, &store); err != nil {
			return err
		}
		*oi = OrderItems{Store: &store}
		return nil
	}
	var custom CustomRequestItems
	if err := json.Unmarshal(data, &custom); err != nil {
		return err
	}
	*oi = OrderItems{Custom: &custom}
	return nil
}

// DecodeOrderItems decodes a raw items payload using the order type as
// the union tag.
func DecodeOrderItems(orderType string, raw []byte) (OrderItems, error) {
	switch orderType {
	case OrderTypeNormal:
		var store StoreOrderItems
		if err := json.Unmarshal(raw, &store); err != nil {
			return OrderItems{}, fmt.Errorf("decode store items: %w", err)
		}
		return OrderItems{Store: &store}, nil
	case OrderTypeCustomRequest:
		var custom CustomRequestItems
		if err := json.Unmarshal(raw, &custom); err != nil {
			return OrderItems{}, fmt.Errorf("decode custom request items: %w", err)
		}
		return OrderItems{Custom: &custom}, nil
	default:
		return OrderItems{}, fmt.Errorf("unknown order type: %q", orderType)
	}
}

// Value implements driver.Valuer so the union is stored as JSONB.
func (oi OrderItems) Value() (driver.Value, error) {
	b, err := json.Marshal(oi)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner for JSONB columns.
func (oi *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return oi.UnmarshalJSON(v)
	case string:
		return oi.UnmarshalJSON([]byte(v))
	case nil:
		*oi = OrderItems{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", src)
	}
}

// Order statuses
const (
	OrderStatusPendingApproval = "pending_approval"
	OrderStatusApprovedWaiting = "approved_waiting"
	OrderStatusDelivered       = "delivered"
	OrderStatusRejected        = "rejected"
)

// Order types
const (
	OrderTypeNormal        = "normal_order"
	OrderTypeCustomRequest = "custom_request"
)

// ValidOrderStatus reports whether s is one of the four order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPendingApproval, OrderStatusApprovedWaiting,
		OrderStatusDelivered, OrderStatusRejected:
		return true
	}
	return false
}

// statusTransitions is the allowed order-status transition table.
// delivered and rejected are terminal.
var statusTransitions = map[string][]string{
	OrderStatusPendingApproval: {OrderStatusApprovedWaiting, OrderStatusRejected},
	OrderStatusApprovedWaiting: {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TeamCategory groups team members on the roster pages.
type TeamCategory struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ImageURL  *string   `db:"image_url" json:"image_url"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TeamMember is a roster entry; CategoryID is nil for uncategorized
// members.
type TeamMember struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	ImageURL   *string   `db:"image_url" json:"image_url"`
	Bio        *string   `db:"bio" json:"bio"`
	SortOrder  int       `db:"sort_order" json:"sort_order"`
	CategoryID *string   `db:"category_id" json:"category_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
