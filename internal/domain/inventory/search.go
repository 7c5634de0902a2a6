package inventory

import "strings"

// SearchResult is the outcome of a term lookup. Zero matches is a valid result.
type SearchResult struct {
	Term  string `json:"term"`
	Items []Item `json:"items"`
	Count int    `json:"count"`
}

func (r SearchResult) Empty() bool { return r.Count == 0 }

// Matches reports whether term is a case-insensitive substring of the item's
// name or category. An empty term matches everything.
func (i Item) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return strings.Contains(strings.ToLower(i.Name), term) ||
		strings.Contains(strings.ToLower(i.Category), term)
}

// Search filters items without reordering them.
func Search(items []Item, term string) SearchResult {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Matches(term) {
			out = append(out, item)
		}
	}
	return SearchResult{Term: strings.TrimSpace(term), Items: out, Count: len(out)}
}

// Stats aggregates the whole inventory.
type Stats struct {
	Items         int     `json:"items"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
}

func Summarize(items []Item) Stats {
	s := Stats{Items: len(items)}
	for _, item := range items {
		s.TotalQuantity += item.Quantity
		s.TotalValue += item.Value()
	}
	return s
}
