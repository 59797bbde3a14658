package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guitar() ProductSnapshot {
	return ProductSnapshot{ID: "1", Name: "Classical Guitar", Price: 2499, Category: "Guitar", Stock: 5}
}

func mic() ProductSnapshot {
	return ProductSnapshot{ID: "4", Name: "Condenser Mic", Price: 1899, Category: "Microphone", Stock: 3}
}

func TestAddItemMergesByProductID(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 1)
	c.AddItem(guitar(), 2)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, 3, c.TotalItems())
}

func TestAddItemClampsToStock(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 2)
	c.AddItem(guitar(), 10)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestRepeatedAddNeverExceedsStock(t *testing.T) {
	c := New()
	for i := 0; i < 20; i++ {
		c.AddItem(guitar(), 1)
	}

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestAddItemZeroStockIsNoop(t *testing.T) {
	c := New()
	sold := guitar()
	sold.Stock = 0

	c.AddItem(sold, 1)
	assert.Empty(t, c.Lines)

	c.AddItem(guitar(), 1)
	c.AddItem(sold, 3)
	assert.Equal(t, 1, c.TotalItems())
}

func TestAddItemAtCeilingIsNoop(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 5)
	c.AddItem(guitar(), 1)

	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 1)
	c.AddItem(mic(), 1)

	c.RemoveItem("1")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "4", c.Lines[0].Product.ID)

	// removing an absent product is not an error
	c.RemoveItem("missing")
	assert.Len(t, c.Lines, 1)
}

func TestUpdateQuantityClamps(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 1)

	c.UpdateQuantity("1", 99)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	c.UpdateQuantity("1", 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 2)
	c.UpdateQuantity("1", 0)
	assert.Empty(t, c.Lines)

	c.AddItem(guitar(), 2)
	c.UpdateQuantity("1", -3)
	assert.Empty(t, c.Lines)
}

func TestTotalsRecomputed(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 2)
	c.AddItem(mic(), 1)

	assert.Equal(t, 3, c.TotalItems())
	assert.InDelta(t, 2*2499+1899, c.TotalPrice(), 1e-9)

	c.UpdateQuantity("4", 3)
	assert.Equal(t, 5, c.TotalItems())
	assert.InDelta(t, 2*2499+3*1899, c.TotalPrice(), 1e-9)

	c.RemoveItem("1")
	assert.Equal(t, 3, c.TotalItems())
	assert.InDelta(t, 3*1899, c.TotalPrice(), 1e-9)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 2)
	c.AddItem(mic(), 1)

	c.Clear()
	assert.Empty(t, c.Lines)
	assert.Equal(t, 0, c.TotalItems())
	assert.Zero(t, c.TotalPrice())
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New()
	c.AddItem(guitar(), 2)
	c.AddItem(mic(), 1)

	items := c.Snapshot()
	require.Len(t, items.Products, 2)

	assert.Equal(t, "1", items.Products[0].ProductID)
	assert.Equal(t, "Classical Guitar", items.Products[0].Name)
	assert.InDelta(t, 2499, items.Products[0].Price, 1e-9)
	assert.Equal(t, 2, items.Products[0].Quantity)

	assert.Equal(t, "4", items.Products[1].ProductID)
	assert.Equal(t, 1, items.Products[1].Quantity)

	assert.InDelta(t, c.TotalPrice(), items.TotalPrice, 1e-9)
}
