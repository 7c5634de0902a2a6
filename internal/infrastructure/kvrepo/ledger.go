package kvrepo

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
)

// LedgerRepository stores transactions newest first under the "transactions" record.
type LedgerRepository struct {
	mu    sync.RWMutex
	store storage.KeyValueStore
}

func NewLedgerRepository(store storage.KeyValueStore) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) Prepend(ctx context.Context, tx *domain.Transaction) error {
	if tx == nil || tx.ID == "" {
		return fmt.Errorf("ledger repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	txs, err := load[domain.Transaction](ctx, r.store, storage.KeyTransactions)
	if err != nil {
		return err
	}
	txs = append([]domain.Transaction{*tx}, txs...)
	return save(ctx, r.store, storage.KeyTransactions, txs)
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return load[domain.Transaction](ctx, r.store, storage.KeyTransactions)
}
