// Package file persists the cart snapshot as one JSON file on local
// disk, the storefront's equivalent of the device key-value slot. There
// is no versioning or migration: unreadable data loads as an empty cart.
package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dwikikusuma/foodstore/internal/cart/domain"
)

type Store struct {
	path string
	log  *slog.Logger
}

func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{path: path, log: log}
}

// Load reads the persisted cart. A missing file, unreadable file, or
// malformed payload all load as an empty cart; the error return stays
// nil because local persistence is a durability nicety, not a
// correctness requirement.
func (s *Store) Load(ctx context.Context) ([]domain.Line, error) {
	_ = ctx

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cart file unreadable, starting empty", slog.String("path", s.path), slog.Any("err", err))
		}
		return nil, nil
	}

	var lines []domain.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn("cart file malformed, starting empty", slog.String("path", s.path), slog.Any("err", err))
		return nil, nil
	}

	// Drop any line a previous run managed to persist at an invalid
	// quantity, so the invariant holds from hydration onward.
	valid := lines[:0]
	for _, line := range lines {
		if line.ID != "" && line.Quantity >= 1 {
			valid = append(valid, line)
		}
	}
	return valid, nil
}

// Save rewrites the whole snapshot. A temp-file rename keeps a crash
// mid-write from corrupting the previous snapshot.
func (s *Store) Save(ctx context.Context, lines []domain.Line) error {
	_ = ctx

	if lines == nil {
		lines = []domain.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
