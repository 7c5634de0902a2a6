package kvrepo

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
)

// InventoryRepository stores the item list under the "inventory" record in
// insertion order. Writes are read-modify-write and serialised by mu.
type InventoryRepository struct {
	mu    sync.RWMutex
	store storage.KeyValueStore
}

func NewInventoryRepository(store storage.KeyValueStore) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func (r *InventoryRepository) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return load[domain.Item](ctx, r.store, storage.KeyInventory)
}

func (r *InventoryRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(items, id); i >= 0 {
		item := items[i]
		return &item, nil
	}
	return nil, domain.ErrNotFound
}

func (r *InventoryRepository) Insert(ctx context.Context, item *domain.Item) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("inventory repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := load[domain.Item](ctx, r.store, storage.KeyInventory)
	if err != nil {
		return err
	}
	if indexOf(items, item.ID) >= 0 {
		return domain.ErrConflict
	}
	return save(ctx, r.store, storage.KeyInventory, append(items, *item))
}

func (r *InventoryRepository) Update(ctx context.Context, id string, mutate func(domain.Item) (*domain.Item, error)) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := load[domain.Item](ctx, r.store, storage.KeyInventory)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	updated, err := mutate(items[i])
	if err != nil {
		return nil, err
	}
	updated.ID = id
	items[i] = *updated
	if err := save(ctx, r.store, storage.KeyInventory, items); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := load[domain.Item](ctx, r.store, storage.KeyInventory)
	if err != nil {
		return false, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return false, nil
	}
	items = append(items[:i], items[i+1:]...)
	if err := save(ctx, r.store, storage.KeyInventory, items); err != nil {
		return false, err
	}
	return true, nil
}

func indexOf(items []domain.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
