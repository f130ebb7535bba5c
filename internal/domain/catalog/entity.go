// internal/domain/catalog/entity.go
package catalog

// Item represents a single catalog product. Items are immutable after load.
type Item struct {
	ID          int      `json:"id"`
	Code        string   `json:"code"` // Human-readable SKU, e.g. POP001
	Name        string   `json:"name"`
	Price       int64    `json:"price"` // Rupees, whole units
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Available   bool     `json:"available"`
}

// Category represents an ordered group of catalog items
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CodePrefix  string `json:"code_prefix"`
	Items       []Item `json:"items"`
}
