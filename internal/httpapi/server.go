// Package httpapi is the storefront's presentation surface: a JSON API
// whose endpoints call exactly the catalog, cart, and checkout
// operations the core exposes. It holds no state of its own.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	cartapp "github.com/dwikikusuma/foodstore/internal/cart/app"
	cartdomain "github.com/dwikikusuma/foodstore/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/foodstore/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/foodstore/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/foodstore/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/foodstore/internal/checkout/domain"
)

type Server struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Store
	checkout *checkoutapp.Service
	log      *slog.Logger
}

func New(catalog *catalogapp.Service, cart *cartapp.Store, checkout *checkoutapp.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{catalog: catalog, cart: cart, checkout: checkout, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/menu", s.listMenu)
	mux.HandleFunc("POST /api/menu", s.createItem)
	mux.HandleFunc("POST /api/menu/update", s.updateItem)
	mux.HandleFunc("POST /api/menu/delete", s.deleteItem)

	mux.HandleFunc("GET /api/cart", s.getCart)
	mux.HandleFunc("POST /api/cart/items", s.addToCart)
	mux.HandleFunc("POST /api/cart/items/{id}/increase", s.increaseQuantity)
	mux.HandleFunc("POST /api/cart/items/{id}/decrease", s.decreaseQuantity)
	mux.HandleFunc("POST /api/cart/items/{id}/remove", s.removeFromCart)
	mux.HandleFunc("POST /api/cart/clear", s.clearCart)
	mux.HandleFunc("GET /api/cart/quote", s.quote)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return mux
}

type menuResponse struct {
	Items  []catalogdomain.Item `json:"items"`
	Notice string               `json:"notice,omitempty"`
}

// listMenu returns the catalog. When the refresh fails the last-known
// list is served with a notice instead of an error page, so the list
// view keeps working offline.
func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.FetchAll(r.Context())
	resp := menuResponse{Items: items}
	if items == nil {
		resp.Items = []catalogdomain.Item{}
	}
	if err != nil {
		s.log.Warn("menu fetch failed, serving last-known list", slog.Any("err", err))
		resp.Notice = "Failed to load food items"
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type itemPayload struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, &catalogapp.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	draft := catalogdomain.Draft{
		Name:        payload.Name,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	}
	if payload.Price != nil {
		draft.Price = *payload.Price
	}

	item, err := s.catalog.Create(r.Context(), draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

type patchPayload struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var payload patchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, &catalogapp.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	item, err := s.catalog.Update(r.Context(), r.URL.Query().Get("id"), catalogdomain.Patch{
		Name:        payload.Name,
		Price:       payload.Price,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), r.URL.Query().Get("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartResponse struct {
	Lines      []cartdomain.Line `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
	PriceValid bool              `json:"priceValid"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w)
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var item catalogdomain.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		s.writeError(w, &catalogapp.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if item.ID == "" {
		s.writeError(w, &catalogapp.ValidationError{Field: "id", Reason: "required"})
		return
	}

	s.cart.Add(item)
	s.writeCart(w)
}

func (s *Server) increaseQuantity(w http.ResponseWriter, r *http.Request) {
	s.cart.IncreaseQuantity(r.PathValue("id"))
	s.writeCart(w)
}

func (s *Server) decreaseQuantity(w http.ResponseWriter, r *http.Request) {
	s.cart.DecreaseQuantity(r.PathValue("id"))
	s.writeCart(w)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s.cart.Remove(r.PathValue("id"))
	s.writeCart(w)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.cart.Clear()
	s.writeCart(w)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.checkout.Quote(r.Context())
	if errors.Is(err, checkoutapp.ErrEmptyCart) {
		s.writeJSON(w, http.StatusOK, checkoutdomain.Quote{Lines: []checkoutdomain.QuoteLine{}})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, quote)
}

func (s *Server) writeCart(w http.ResponseWriter) {
	totals := s.cart.Totals()
	resp := cartResponse{
		Lines:      s.cart.Lines(),
		TotalItems: totals.Items,
		PriceValid: s.cart.HasValidPrices(),
	}
	if resp.Lines == nil {
		resp.Lines = []cartdomain.Line{}
	}
	// A NaN money total is not representable in JSON; report 0 with
	// priceValid=false instead.
	if resp.PriceValid {
		resp.TotalPrice = totals.Price
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code, msg := statusFromError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.Any("err", err))
	}
	s.writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", slog.Any("err", err))
	}
}
