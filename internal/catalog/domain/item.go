package domain

// Item is the canonical shape of a catalog entry after normalization.
// Instances are treated as values: an update replaces the whole item
// rather than mutating it in place.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
}

// Patch carries the subset of item fields an update wants to change.
// Nil fields are left untouched on the remote record.
type Patch struct {
	Name        *string
	Price       *float64
	ImageURL    *string
	Description *string
}

// Draft is the caller-provided shape for a create: everything but the
// identifier, which the remote catalog assigns.
type Draft struct {
	Name        string
	Price       float64
	ImageURL    string
	Description string
}
