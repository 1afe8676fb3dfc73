package app

import (
	"context"
	"math"
	"strings"

	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) FetchAll(ctx context.Context) ([]domain.Item, error) {
	return s.repo.FetchAll(ctx)
}

// Create validates the draft the way the entry form does, then hands it
// to the remote catalog. Validation failures stop the operation before
// any network call.
func (s *Service) Create(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.ImageURL = strings.TrimSpace(draft.ImageURL)
	draft.Description = strings.TrimSpace(draft.Description)

	if err := validateDraft(draft); err != nil {
		return domain.Item{}, err
	}

	return s.repo.Create(ctx, draft)
}

// Update sends only the fields present in the patch. The id must
// resolve to an addressable remote record; overlapping updates on the
// same id are last-write-wins at the remote.
func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (domain.Item, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Item{}, &ValidationError{Field: "id", Reason: "required"}
	}
	if err := validatePatch(patch); err != nil {
		return domain.Item{}, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}
	return s.repo.Delete(ctx, id)
}

func validateDraft(d domain.Draft) error {
	if d.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if math.IsNaN(d.Price) || d.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be a positive number"}
	}
	if d.ImageURL == "" {
		return &ValidationError{Field: "imageUrl", Reason: "required"}
	}
	if d.Description == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	return nil
}

func validatePatch(p domain.Patch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if p.Price != nil && (math.IsNaN(*p.Price) || *p.Price <= 0) {
		return &ValidationError{Field: "price", Reason: "must be a positive number"}
	}
	return nil
}
