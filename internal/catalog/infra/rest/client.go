// Package rest implements the catalog repo against the remote food
// catalog's four HTTP endpoints. Responses are passed through the
// normalizer before they leave this package, so callers only ever see
// canonical items.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/dwikikusuma/foodstore/internal/catalog/app"
	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
	"github.com/dwikikusuma/foodstore/internal/catalog/normalize"
)

// Endpoints holds the four remote addresses, supplied via configuration.
type Endpoints struct {
	FetchAll string
	Create   string
	Update   string
	Delete   string
}

type Client struct {
	http      *http.Client
	endpoints Endpoints
	log       *slog.Logger
}

func NewClient(httpClient *http.Client, endpoints Endpoints, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{http: httpClient, endpoints: endpoints, log: log}
}

// createPayload is the remote schema for create/update requests.
type createPayload struct {
	Item        string  `json:"Item"`
	Price       float64 `json:"Price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

func (c *Client) FetchAll(ctx context.Context) ([]domain.Item, error) {
	var raws []normalize.Raw
	if err := c.do(ctx, "fetch", http.MethodGet, c.endpoints.FetchAll, nil, &raws); err != nil {
		return nil, err
	}

	items, dropped := normalize.Items(raws)
	if dropped > 0 {
		c.log.Warn("catalog records skipped, no id", slog.Int("dropped", dropped))
	}
	return items, nil
}

func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	payload := createPayload{
		Item:        draft.Name,
		Price:       draft.Price,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
	}

	var raw normalize.Raw
	if err := c.do(ctx, "create", http.MethodPost, c.endpoints.Create, payload, &raw); err != nil {
		return domain.Item{}, err
	}

	item, ok := normalize.Item(raw)
	if !ok {
		// The remote accepted the item but returned no usable id. A
		// synthesized id keeps the item addressable in this session,
		// but it cannot be correlated with the remote record for a
		// later update or delete.
		item = domain.Item{
			ID:          uuid.NewString(),
			Name:        draft.Name,
			Price:       draft.Price,
			ImageURL:    draft.ImageURL,
			Description: draft.Description,
		}
		c.log.Warn("remote returned no id on create, synthesized placeholder",
			slog.String("id", item.ID), slog.String("name", item.Name))
		return item, nil
	}

	return mergeOverDraft(item, raw, draft), nil
}

func (c *Client) Update(ctx context.Context, id string, patch domain.Patch) (domain.Item, error) {
	addr, err := withID(c.endpoints.Update, id)
	if err != nil {
		return domain.Item{}, &app.CatalogError{Op: "update", Err: err}
	}

	payload := map[string]any{}
	if patch.Name != nil {
		payload["Item"] = *patch.Name
	}
	if patch.Price != nil {
		payload["Price"] = *patch.Price
	}
	if patch.Description != nil {
		payload["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		payload["imageUrl"] = *patch.ImageURL
	}

	var raw normalize.Raw
	if err := c.do(ctx, "update", http.MethodPost, addr, payload, &raw); err != nil {
		return domain.Item{}, err
	}

	return mergeOverPatch(id, raw, patch), nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	addr, err := withID(c.endpoints.Delete, id)
	if err != nil {
		return &app.CatalogError{Op: "delete", Err: err}
	}
	return c.do(ctx, "delete", http.MethodPost, addr, nil, nil)
}

// do runs one request against the remote catalog. Any transport error,
// non-2xx status, or undecodable body comes back as *app.CatalogError.
// No retries: retry policy belongs to the caller.
func (c *Client) do(ctx context.Context, op, method, addr string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &app.CatalogError{Op: op, Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr, body)
	if err != nil {
		return &app.CatalogError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &app.CatalogError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &app.CatalogError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("remote catalog returned %s", resp.Status),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &app.CatalogError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return nil
}

func withID(addr, id string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// mergeOverDraft fills fields the remote left out of a create response
// with the caller's original values. A missing or empty string echo
// counts as absent; a price only has to be present, 0 included.
func mergeOverDraft(item domain.Item, raw normalize.Raw, draft domain.Draft) domain.Item {
	if !hasText(raw, "Item", "name") {
		item.Name = draft.Name
	}
	if !hasField(raw, "Price", "price") {
		item.Price = draft.Price
	}
	if !hasText(raw, "imageUrl", "image", "image_url") {
		item.ImageURL = draft.ImageURL
	}
	if !hasText(raw, "description", "Description") {
		item.Description = draft.Description
	}
	return item
}

// mergeOverPatch builds the updated item from the remote echo, falling
// back to the caller's patched values when the remote omits a field.
// The original id survives a response that carries none.
func mergeOverPatch(id string, raw normalize.Raw, patch domain.Patch) domain.Item {
	item, ok := normalize.Item(raw)
	if !ok {
		item = domain.Item{ID: id}
	}

	if !hasText(raw, "Item", "name") && patch.Name != nil {
		item.Name = *patch.Name
	}
	if !hasField(raw, "Price", "price") && patch.Price != nil {
		item.Price = *patch.Price
	}
	if !hasText(raw, "imageUrl", "image", "image_url") && patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if !hasText(raw, "description", "Description") && patch.Description != nil {
		item.Description = *patch.Description
	}
	return item
}

func hasField(raw normalize.Raw, keys ...string) bool {
	for _, k := range keys {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}

func hasText(raw normalize.Raw, keys ...string) bool {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return true
		}
	}
	return false
}
