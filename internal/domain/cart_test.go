package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) Product {
	return Product{ID: id, Name: id, Price: decimal.RequireFromString(price), Active: true}
}

func TestCart_AddItemIncrementsExistingEntry(t *testing.T) {
	pizza := product("margherita", "12.99")
	soda := product("soda", "2.99")

	c := NewCart()
	c.AddItem(pizza)
	c.AddItem(soda)
	c.AddItem(pizza)
	c.AddItem(pizza)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "margherita", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "soda", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_UnitPriceFixedAtFirstAdd(t *testing.T) {
	p := product("pepperoni", "10.00")
	c := NewCart()
	c.AddItem(p)

	p.Price = decimal.RequireFromString("15.00")
	c.AddItem(p)

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "20.00", c.Total().StringFixed(2))
}

func TestCart_InactiveProductIsStillAdded(t *testing.T) {
	p := product("retired", "4.50")
	p.Active = false

	c := NewCart()
	c.AddItem(p)

	assert.Equal(t, 1, c.Len())
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", "1.00"))
	c.AddItem(product("b", "2.00"))
	c.AddItem(product("c", "3.00"))

	require.NoError(t, c.SetQuantity("b", 5))
	assert.Equal(t, 5, c.Items()[1].Quantity)

	require.NoError(t, c.SetQuantity("a", 0))
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ProductID)
	assert.Equal(t, "c", items[1].ProductID)

	// the index must follow the shifted entries
	require.NoError(t, c.SetQuantity("c", 2))
	assert.Equal(t, 2, c.Items()[1].Quantity)
	c.AddItem(product("a", "1.00"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Items()[2].Quantity)
}

func TestCart_SetQuantityRejectsNegative(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", "1.00"))

	err := c.SetQuantity("a", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCart_SetQuantityUnknownProduct(t *testing.T) {
	c := NewCart()
	assert.ErrorIs(t, c.SetQuantity("ghost", 2), ErrItemNotInCart)
	assert.NoError(t, c.SetQuantity("ghost", 0))
	assert.True(t, c.IsEmpty())
}

func TestCart_TotalIsOrderIndependent(t *testing.T) {
	products := []Product{
		product("margherita", "12.99"),
		product("soda", "2.99"),
		product("garlic-bread", "4.35"),
	}
	adds := []int{0, 1, 0, 2, 2, 2, 1}

	forward := NewCart()
	for _, i := range adds {
		forward.AddItem(products[i])
	}
	backward := NewCart()
	for j := len(adds) - 1; j >= 0; j-- {
		backward.AddItem(products[adds[j]])
	}

	want := decimal.Zero
	for _, it := range forward.Items() {
		want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, forward.Total().Equal(want))
	assert.True(t, forward.Total().Equal(backward.Total()))
}

func TestCart_TotalScenario(t *testing.T) {
	c := NewCart()
	c.AddItem(product("margherita", "12.99"))
	c.AddItem(product("margherita", "12.99"))
	c.AddItem(product("soda", "2.99"))

	assert.Equal(t, "28.97", c.Total().StringFixed(2))
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := NewCart()
	c.AddItem(product("a", "1.00"))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}
