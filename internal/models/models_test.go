package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrderItemsByType(t *testing.T) {
	storeJSON := []byte(`{"products":[{"productId":"1","name":"Guitar","price":2499,"quantity":1}],"totalPrice":2499}`)

	items, err := DecodeOrderItems(OrderTypeNormal, storeJSON)
	require.NoError(t, err)
	require.NotNil(t, items.Store)
	assert.Nil(t, items.Custom)
	require.Len(t, items.Store.Products, 1)
	assert.Equal(t, "1", items.Store.Products[0].ProductID)
	assert.InDelta(t, 2499, items.Store.TotalPrice, 1e-9)

	customJSON := []byte(`{"category":"Keyboard","productDetail":"88-key stage piano","budgetRange":"10000-15000"}`)

	items, err = DecodeOrderItems(OrderTypeCustomRequest, customJSON)
	require.NoError(t, err)
	require.NotNil(t, items.Custom)
	assert.Nil(t, items.Store)
	assert.Equal(t, "Keyboard", items.Custom.Category)
	assert.Equal(t, "10000-15000", items.Custom.BudgetRange)

	_, err = DecodeOrderItems("weird_type", storeJSON)
	assert.Error(t, err)
}

func TestOrderItemsScanDiscriminatesOnProductsKey(t *testing.T) {
	var items OrderItems
	require.NoError(t, items.Scan([]byte(`{"products":[],"totalPrice":0}`)))
	assert.NotNil(t, items.Store)

	var custom OrderItems
	require.NoError(t, custom.Scan([]byte(`{"category":"Guitar","productDetail":"Left-handed"}`)))
	require.NotNil(t, custom.Custom)
	assert.Equal(t, "Guitar", custom.Custom.Category)
}

func TestOrderItemsMarshalWireShape(t *testing.T) {
	items := NewStoreItems(StoreOrderItems{
		Products: []OrderLine{
			{ProductID: "1", Name: "Guitar", Price: 2499, Quantity: 1},
		},
		TotalPrice: 2499,
	})

	data, err := json.Marshal(items)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "products")
	assert.Contains(t, raw, "totalPrice")

	var lines []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["products"], &lines))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "productId")
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "price")
	assert.Contains(t, lines[0], "quantity")
}

func TestOrderItemsValueScanRoundTrip(t *testing.T) {
	original := NewCustomItems(CustomRequestItems{
		Category:      "Microphone",
		ProductDetail: "Tube condenser",
	})

	value, err := original.Value()
	require.NoError(t, err)

	var decoded OrderItems
	require.NoError(t, decoded.Scan(value))
	require.NotNil(t, decoded.Custom)
	assert.Equal(t, "Microphone", decoded.Custom.Category)
	assert.Empty(t, decoded.Custom.BudgetRange)
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPendingApproval))
	assert.True(t, ValidOrderStatus(OrderStatusApprovedWaiting))
	assert.True(t, ValidOrderStatus(OrderStatusDelivered))
	assert.True(t, ValidOrderStatus(OrderStatusRejected))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPendingApproval, OrderStatusApprovedWaiting))
	assert.True(t, CanTransition(OrderStatusPendingApproval, OrderStatusRejected))
	assert.True(t, CanTransition(OrderStatusApprovedWaiting, OrderStatusDelivered))

	// skipping approval is not allowed
	assert.False(t, CanTransition(OrderStatusPendingApproval, OrderStatusDelivered))

	// terminal states stay terminal
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusPendingApproval))
	assert.False(t, CanTransition(OrderStatusRejected, OrderStatusApprovedWaiting))
	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusDelivered))

	// no self transitions
	assert.False(t, CanTransition(OrderStatusPendingApproval, OrderStatusPendingApproval))
}
