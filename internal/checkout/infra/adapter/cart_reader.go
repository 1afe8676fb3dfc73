package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/foodstore/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/foodstore/internal/checkout/app"
)

type CartStoreReader struct {
	store *cartapp.Store
}

func NewCartStoreReader(store *cartapp.Store) *CartStoreReader {
	return &CartStoreReader{store: store}
}

func (r *CartStoreReader) Lines(ctx context.Context) ([]checkoutapp.CartLine, error) {
	_ = ctx

	lines := r.store.Lines()
	out := make([]checkoutapp.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, checkoutapp.CartLine{
			ItemID:   line.ID,
			Name:     line.Name,
			Quantity: line.Quantity,
		})
	}
	return out, nil
}
