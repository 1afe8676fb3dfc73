package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/foodstore/internal/checkout/domain"
)

type CartReader interface {
	Lines(ctx context.Context) ([]CartLine, error)
}

type CartLine struct {
	ItemID   string
	Name     string
	Quantity int
}

type CatalogReader interface {
	GetItem(ctx context.Context, itemID string) (Item, error)
}

type Item struct {
	ID    string
	Name  string
	Price float64
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

// Quote reprices every cart line against the current catalog with
// bounded concurrency. A line whose item has no usable price fails the
// quote rather than producing a poisoned total.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	cartLines, err := s.Cart.Lines(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(cartLines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(cartLines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range cartLines {
		g.Go(func() error {
			cl := cartLines[idx]
			if cl.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", cl.Quantity)
			}

			item, err := s.Catalog.GetItem(ctx, cl.ItemID)
			if err != nil {
				return fmt.Errorf("failed to get item %s: %w", cl.ItemID, err)
			}
			if math.IsNaN(item.Price) {
				return fmt.Errorf("item %s has no usable price", cl.ItemID)
			}

			lines[idx] = domain.QuoteLine{
				ItemID:    item.ID,
				Name:      item.Name,
				Quantity:  cl.Quantity,
				UnitPrice: item.Price,
				LineTotal: item.Price * float64(cl.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Quote{Lines: lines}
	for _, line := range lines {
		quote.TotalItems += line.Quantity
		quote.TotalPrice += line.LineTotal
	}

	return quote, nil
}
