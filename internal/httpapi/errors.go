package httpapi

import (
	"errors"
	"net/http"

	catalogapp "github.com/dwikikusuma/foodstore/internal/catalog/app"
)

// statusFromError maps core errors onto the HTTP surface. Remote
// catalog failures keep their operation and, when known, the remote
// status code in the message so the client can show both.
func statusFromError(err error) (int, string, string) {
	var verr *catalogapp.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "INVALID_ARGUMENT", verr.Error()
	}

	if errors.Is(err, catalogapp.ErrNotFound) {
		return http.StatusNotFound, "NOT_FOUND", "item not found"
	}

	var cerr *catalogapp.CatalogError
	if errors.As(err, &cerr) {
		return http.StatusBadGateway, "CATALOG_UNAVAILABLE", cerr.Error()
	}

	return http.StatusInternalServerError, "INTERNAL", "internal error"
}
