package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/foodstore/internal/catalog/app"
	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), Endpoints{
		FetchAll: srv.URL + "/menu",
		Create:   srv.URL + "/add",
		Update:   srv.URL + "/update",
		Delete:   srv.URL + "/delete",
	}, nil)
	return c, srv
}

func TestFetchAllNormalizesAndFilters(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "Item": "Burger", "Price": "5.50"},
			{"Item": "NoId"},
			{"id": "2", "name": "Tea", "price": 2, "image": "http://img/2"},
		})
	}))

	items, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Item{
		{ID: "1", Name: "Burger", Price: 5.5},
		{ID: "2", Name: "Tea", Price: 2, ImageURL: "http://img/2"},
	}, items)
}

func TestFetchAllRemoteFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := c.FetchAll(context.Background())

	var cerr *app.CatalogError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "fetch", cerr.Op)
	assert.Equal(t, http.StatusBadGateway, cerr.Status)
}

func TestFetchAllMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := c.FetchAll(context.Background())

	var cerr *app.CatalogError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "fetch", cerr.Op)
}

func TestCreateMapsRemoteSchema(t *testing.T) {
	var got map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "Item": "Burger", "Price": 5.5})
	}))

	item, err := c.Create(context.Background(), domain.Draft{
		Name: "Burger", Price: 5.5, ImageURL: "http://img/9", Description: "beef",
	})
	require.NoError(t, err)

	assert.Equal(t, "Burger", got["Item"])
	assert.Equal(t, 5.5, got["Price"])
	assert.Equal(t, "beef", got["description"])
	assert.Equal(t, "http://img/9", got["imageUrl"])

	// Remote echoed no image/description: caller's values win.
	assert.Equal(t, domain.Item{
		ID: "9", Name: "Burger", Price: 5.5, ImageURL: "http://img/9", Description: "beef",
	}, item)
}

func TestCreateSynthesizesIDWhenRemoteReturnsNone(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"Item": "Burger"})
	}))

	item, err := c.Create(context.Background(), domain.Draft{Name: "Burger", Price: 5.5})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Burger", item.Name)
	assert.Equal(t, 5.5, item.Price)
}

func TestUpdateSendsOnlyPatchedFields(t *testing.T) {
	var got map[string]any
	var gotID string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "3", "Item": "Renamed"})
	}))

	name := "Renamed"
	price := 7.0
	item, err := c.Update(context.Background(), "3", domain.Patch{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, "3", gotID)
	assert.Equal(t, map[string]any{"Item": "Renamed", "Price": 7.0}, got)

	// Response omitted the price: the patched value is the fallback.
	assert.Equal(t, "Renamed", item.Name)
	assert.Equal(t, 7.0, item.Price)
	assert.Equal(t, "3", item.ID)
}

func TestUpdateKeepsIDWhenResponseOmitsIt(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"Item": "Renamed"})
	}))

	name := "Renamed"
	item, err := c.Update(context.Background(), "42", domain.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "42", item.ID)
	assert.Equal(t, "Renamed", item.Name)
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotID string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			gotID = r.URL.Query().Get("id")
			w.WriteHeader(http.StatusOK)
		}))

		require.NoError(t, c.Delete(context.Background(), "5"))
		assert.Equal(t, "5", gotID)
	})

	t.Run("remote failure is typed", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))

		err := c.Delete(context.Background(), "5")
		var cerr *app.CatalogError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "delete", cerr.Op)
		assert.Equal(t, http.StatusNotFound, cerr.Status)
	})
}
