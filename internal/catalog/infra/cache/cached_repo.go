// Package cache wraps the catalog repo with a read-through cache: the
// last successful fetch is remembered so a failed refresh can fall back
// to the last-known list, and single items are served by id without a
// refetch.
package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dwikikusuma/foodstore/internal/catalog/app"
	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

type Repo struct {
	inner app.Repo
	byID  *lru.Cache[string, domain.Item]

	mu       sync.RWMutex
	lastList []domain.Item
	hasList  bool
}

func New(inner app.Repo, size int) (*Repo, error) {
	if size <= 0 {
		size = 256
	}
	byID, err := lru.New[string, domain.Item](size)
	if err != nil {
		return nil, err
	}
	return &Repo{inner: inner, byID: byID}, nil
}

// FetchAll refreshes from the remote. On failure it returns the
// last-known list together with the error, so the caller can keep
// showing the stale catalog while surfacing a notice. Before any
// successful fetch the fallback list is empty.
func (r *Repo) FetchAll(ctx context.Context) ([]domain.Item, error) {
	items, err := r.inner.FetchAll(ctx)
	if err != nil {
		r.mu.RLock()
		fallback := append([]domain.Item(nil), r.lastList...)
		r.mu.RUnlock()
		return fallback, err
	}

	r.mu.Lock()
	r.lastList = append([]domain.Item(nil), items...)
	r.hasList = true
	r.mu.Unlock()

	for _, item := range items {
		r.byID.Add(item.ID, item)
	}
	return items, nil
}

// Get serves an item by id from the cache, refreshing once on a miss.
func (r *Repo) Get(ctx context.Context, id string) (domain.Item, error) {
	if item, ok := r.byID.Get(id); ok {
		return item, nil
	}

	if _, err := r.FetchAll(ctx); err != nil {
		return domain.Item{}, err
	}

	if item, ok := r.byID.Get(id); ok {
		return item, nil
	}
	return domain.Item{}, app.ErrNotFound
}

func (r *Repo) Create(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	item, err := r.inner.Create(ctx, draft)
	if err != nil {
		return domain.Item{}, err
	}
	r.byID.Add(item.ID, item)
	r.withList(func(list []domain.Item) []domain.Item {
		return append(list, item)
	})
	return item, nil
}

func (r *Repo) Update(ctx context.Context, id string, patch domain.Patch) (domain.Item, error) {
	item, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		return domain.Item{}, err
	}
	r.byID.Add(item.ID, item)
	r.withList(func(list []domain.Item) []domain.Item {
		for i := range list {
			if list[i].ID == item.ID {
				list[i] = item
			}
		}
		return list
	})
	return item, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.byID.Remove(id)
	r.withList(func(list []domain.Item) []domain.Item {
		out := list[:0]
		for _, item := range list {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out
	})
	return nil
}

func (r *Repo) withList(fn func([]domain.Item) []domain.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasList {
		return
	}
	r.lastList = fn(r.lastList)
}
