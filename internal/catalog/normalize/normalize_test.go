package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

func TestItemAliasResolution(t *testing.T) {
	cases := []struct {
		name string
		raw  Raw
		want domain.Item
	}{
		{
			name: "remote-cased fields",
			raw:  Raw{"id": "7", "Item": "Burger", "Price": 5.5, "imageUrl": "http://img/7", "Description": "beef"},
			want: domain.Item{ID: "7", Name: "Burger", Price: 5.5, ImageURL: "http://img/7", Description: "beef"},
		},
		{
			name: "lowercase fallbacks",
			raw:  Raw{"id": "8", "name": "Tea", "price": 1.25, "image": "http://img/8", "description": "hot"},
			want: domain.Item{ID: "8", Name: "Tea", Price: 1.25, ImageURL: "http://img/8", Description: "hot"},
		},
		{
			name: "snake case image",
			raw:  Raw{"id": "9", "name": "Soup", "image_url": "http://img/9"},
			want: domain.Item{ID: "9", Name: "Soup", ImageURL: "http://img/9"},
		},
		{
			name: "primary alias wins over secondary",
			raw:  Raw{"id": "10", "Item": "Pizza", "name": "ignored", "Price": 9.0, "price": 1.0},
			want: domain.Item{ID: "10", Name: "Pizza", Price: 9.0},
		},
		{
			name: "defaults for missing fields",
			raw:  Raw{"id": "11"},
			want: domain.Item{ID: "11", Name: "Unnamed Item"},
		},
		{
			name: "numeric id stringified without fraction",
			raw:  Raw{"id": float64(1), "Item": "Burger", "Price": "5.50"},
			want: domain.Item{ID: "1", Name: "Burger", Price: 5.5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Item(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestItemDropsRecordsWithoutID(t *testing.T) {
	for _, raw := range []Raw{
		{"Item": "NoId", "Price": 3.0},
		{"id": nil, "Item": "NilId"},
		{"id": "", "Item": "EmptyId"},
		{"id": true, "Item": "BoolId"},
	} {
		_, ok := Item(raw)
		assert.False(t, ok, "raw %v should be dropped", raw)
	}
}

func TestItemNonNumericPriceIsNaN(t *testing.T) {
	got, ok := Item(Raw{"id": "1", "Item": "Mystery", "Price": "free"})
	require.True(t, ok)
	assert.True(t, math.IsNaN(got.Price))

	got, ok = Item(Raw{"id": "2", "price": []any{}})
	require.True(t, ok)
	assert.True(t, math.IsNaN(got.Price))
}

func TestItemIdempotent(t *testing.T) {
	first, ok := Item(Raw{"id": "42", "Item": "Noodles", "Price": "12.00", "imageUrl": "http://img/42", "description": "wok"})
	require.True(t, ok)

	again, ok := Item(Raw{
		"id":          first.ID,
		"name":        first.Name,
		"price":       first.Price,
		"imageUrl":    first.ImageURL,
		"description": first.Description,
	})
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestItemsPreservesOrderAndCountsDropped(t *testing.T) {
	raws := []Raw{
		{"id": float64(1), "Item": "Burger", "Price": "5.50"},
		{"Item": "NoId"},
		{"id": "3", "name": "Tea", "price": 2.0},
	}

	items, dropped := Items(raws)

	require.Len(t, items, len(raws)-dropped)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []domain.Item{
		{ID: "1", Name: "Burger", Price: 5.5},
		{ID: "3", Name: "Tea", Price: 2.0},
	}, items)
}
