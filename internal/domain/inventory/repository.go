package inventory

import "context"

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Insert(ctx context.Context, item *Item) error
	// Update loads the item, passes a copy to mutate and stores the result as
	// one serialised step. A missing id yields ErrNotFound.
	Update(ctx context.Context, id string, mutate func(Item) (*Item, error)) (*Item, error)
	// Delete reports whether an item was removed; a missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
