package adapter

import (
	"context"

	"github.com/dwikikusuma/foodstore/internal/catalog/infra/cache"
	checkoutapp "github.com/dwikikusuma/foodstore/internal/checkout/app"
)

type CatalogCacheReader struct {
	repo *cache.Repo
}

func NewCatalogCacheReader(repo *cache.Repo) *CatalogCacheReader {
	return &CatalogCacheReader{repo: repo}
}

func (r *CatalogCacheReader) GetItem(ctx context.Context, itemID string) (checkoutapp.Item, error) {
	item, err := r.repo.Get(ctx, itemID)
	if err != nil {
		return checkoutapp.Item{}, err
	}

	return checkoutapp.Item{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
	}, nil
}
