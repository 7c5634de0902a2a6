package inventory

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("inventory: item not found")
	ErrConflict        = errors.New("inventory: item already exists")
	ErrNameRequired    = errors.New("inventory: name is required")
	ErrInvalidPrice    = errors.New("inventory: price must be zero or greater")
	ErrInvalidQuantity = errors.New("inventory: quantity must be zero or greater")
)

// Item is a stock line as stored under the "inventory" record.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Category *string  `json:"category,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Quantity == nil && p.Category == nil
}

func NewItem(id, name string, price float64, quantity int, category string, now time.Time) (*Item, error) {
	item := &Item{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Price:     price,
		Quantity:  quantity,
		Category:  strings.TrimSpace(category),
		CreatedAt: now.UTC(),
	}
	if err := item.validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Apply merges the patch into a copy of the item and validates the result.
func (i Item) Apply(p Patch) (*Item, error) {
	if p.Name != nil {
		i.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Category != nil {
		i.Category = strings.TrimSpace(*p.Category)
	}
	if err := i.validate(); err != nil {
		return nil, err
	}
	return &i, nil
}

// Value is price times quantity.
func (i Item) Value() float64 {
	return i.Price * float64(i.Quantity)
}

func (i Item) validate() error {
	if i.Name == "" {
		return ErrNameRequired
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	if i.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
