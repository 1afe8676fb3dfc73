// Package normalize reconciles the loosely typed records the remote
// catalog returns into the canonical domain.Item shape. The remote is
// inconsistent about field names (Item vs name, Price vs price, three
// spellings of the image field), so each attribute is resolved through a
// declared alias table instead of ad hoc conditionals.
package normalize

import (
	"math"
	"strconv"

	"github.com/dwikikusuma/foodstore/internal/catalog/domain"
)

// Raw is one record as decoded from the remote catalog payload.
type Raw = map[string]any

// Alias tables, in resolution order. First present key wins.
var (
	nameAliases        = []string{"Item", "name"}
	priceAliases       = []string{"Price", "price"}
	imageAliases       = []string{"imageUrl", "image", "image_url"}
	descriptionAliases = []string{"description", "Description"}
)

const defaultName = "Unnamed Item"

// Item normalizes a single raw record. The second return is false when
// the record carries no identifier: such a record cannot be addressed
// for edit/delete or merged into a cart, so it is dropped.
//
// The function is pure; a record that is already in canonical shape
// normalizes to an equal item.
func Item(raw Raw) (domain.Item, bool) {
	id, ok := identifier(raw)
	if !ok {
		return domain.Item{}, false
	}

	return domain.Item{
		ID:          id,
		Name:        stringField(raw, nameAliases, defaultName),
		Price:       priceField(raw),
		ImageURL:    stringField(raw, imageAliases, ""),
		Description: stringField(raw, descriptionAliases, ""),
	}, true
}

// Items normalizes a whole payload, preserving remote order and
// dropping records without identifiers. Returns the normalized items
// and the number of records dropped.
func Items(raws []Raw) ([]domain.Item, int) {
	items := make([]domain.Item, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		item, ok := Item(raw)
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped
}

// identifier resolves the remote id, which may arrive as a string or a
// number. Numbers stringify without a trailing fraction so id 1 and
// id "1" address the same item.
func identifier(raw Raw) (string, bool) {
	v, ok := raw["id"]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}

func stringField(raw Raw, aliases []string, def string) string {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			if s, isStr := v.(string); isStr && s != "" {
				return s
			}
		}
	}
	return def
}

// priceField coerces whichever price alias is present to a float64.
// A present but non-numeric value yields NaN; consumers computing
// totals must guard against it. An absent price defaults to 0.
func priceField(raw Raw) float64 {
	for _, key := range priceAliases {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch p := v.(type) {
		case float64:
			return p
		case int:
			return float64(p)
		case int64:
			return float64(p)
		case string:
			f, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return math.NaN()
			}
			return f
		default:
			return math.NaN()
		}
	}
	return 0
}
