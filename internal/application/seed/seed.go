// Package seed fills an empty store with the demo catalogue and two ledger lines.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
)

type sampleItem struct {
	name     string
	price    float64
	quantity int
	category string
}

var sampleItems = []sampleItem{
	{"Laptop", 45000, 5, "electronics"},
	{"Smartphone", 25000, 10, "electronics"},
	{"T-Shirt", 500, 50, "clothing"},
	{"Book", 300, 25, "books"},
	{"Headphones", 2000, 15, "electronics"},
}

type sampleTransaction struct {
	description string
	amount      float64
	kind        domledger.Kind
	age         time.Duration
}

const day = 24 * time.Hour

// Oldest first, so prepending leaves the newest on top.
var sampleTransactions = []sampleTransaction{
	{"Customer refund", 2500, domledger.KindRefund, 2 * day},
	{"Payment to supplier", 50000, domledger.KindPayment, day},
}

type Seeder struct {
	Inventory dominv.Repository
	Ledger    domledger.Repository
	IDs       application.IDGenerator
	Logger    observability.Logger
}

// Run seeds each record only when it is empty, so it is safe on every start.
// It writes through the repositories and publishes nothing.
func (s Seeder) Run(ctx context.Context, now time.Time) error {
	logger := s.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	items, err := s.Inventory.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list inventory: %w", err)
	}
	if len(items) == 0 {
		for _, sample := range sampleItems {
			item, err := dominv.NewItem(s.IDs.NewID(), sample.name, sample.price, sample.quantity, sample.category, now)
			if err != nil {
				return fmt.Errorf("seed: %s: %w", sample.name, err)
			}
			if err := s.Inventory.Insert(ctx, item); err != nil {
				return fmt.Errorf("seed: insert %s: %w", sample.name, err)
			}
		}
		logger.Info("seeded_inventory", observability.F("items", len(sampleItems)))
	}

	txs, err := s.Ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list transactions: %w", err)
	}
	if len(txs) == 0 {
		for _, sample := range sampleTransactions {
			tx, err := domledger.New(s.IDs.NewID(), sample.description, sample.amount, sample.kind, domledger.StatusCompleted, now.Add(-sample.age))
			if err != nil {
				return fmt.Errorf("seed: %s: %w", sample.description, err)
			}
			if err := s.Ledger.Prepend(ctx, tx); err != nil {
				return fmt.Errorf("seed: record %s: %w", sample.description, err)
			}
		}
		logger.Info("seeded_transactions", observability.F("transactions", len(sampleTransactions)))
	}
	return nil
}
