package app

import (
	"context"

	"github.com/dwikikusuma/foodstore/internal/cart/domain"
)

// Persistence is the durable slot the cart snapshot is written through
// to. Load tolerates missing or malformed data by returning an empty
// sequence; Save overwrites the whole snapshot.
type Persistence interface {
	Load(ctx context.Context) ([]domain.Line, error)
	Save(ctx context.Context, lines []domain.Line) error
}
