package app

import (
	"context"

	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

// Repo is the remote catalog as the app layer sees it: normalized items
// in, normalized items out. Implementations return *CatalogError for
// any transport or remote failure and perform no retries.
type Repo interface {
	FetchAll(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Item, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Item, error)
	Delete(ctx context.Context, id string) error
}
