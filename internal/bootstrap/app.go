// Package bootstrap builds the application context: one instance of every
// service, sharing one store, one event publisher and one speaker.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	appinv "github.com/Zhima-Mochi/streetsmart/internal/application/inventory"
	appledger "github.com/Zhima-Mochi/streetsmart/internal/application/ledger"
	apppay "github.com/Zhima-Mochi/streetsmart/internal/application/payment"
	"github.com/Zhima-Mochi/streetsmart/internal/application/seed"
	apptheme "github.com/Zhima-Mochi/streetsmart/internal/application/theme"
	appvoice "github.com/Zhima-Mochi/streetsmart/internal/application/voice"
	"github.com/Zhima-Mochi/streetsmart/internal/config"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/id"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/kvrepo"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/kvstore"
	speechinfra "github.com/Zhima-Mochi/streetsmart/internal/infrastructure/speech"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"
)

// Deps are the collaborators that differ between production and tests.
// Nil fields get production defaults.
type Deps struct {
	Tel       observability.Observability
	Publisher domoutbox.Publisher
	Speaker   speech.Output
	Clock     apppay.Clock
	Random    apppay.RandomSource
	IDs       application.IDGenerator
}

type App struct {
	Inventory *appinv.Service
	Ledger    *appledger.Service
	Payments  *apppay.Simulator
	Assistant *appvoice.Assistant
	Voice     *appvoice.Session
	Theme     *apptheme.Service

	store kvstore.Store
}

func New(ctx context.Context, cfg config.Config, deps Deps) (*App, error) {
	if deps.Tel == nil {
		deps.Tel = observability.Nop()
	}
	logger := deps.Tel.Logger()
	if deps.Speaker == nil {
		deps.Speaker = speechinfra.NewLogSpeaker(logger)
	}
	if deps.Clock == nil {
		deps.Clock = apppay.RealClock()
	}
	if deps.IDs == nil {
		deps.IDs = id.NewGenerator()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := kvstore.Open(ctx, kvstore.Options{
		Driver:         cfg.StoreDriver,
		SQLitePath:     cfg.SQLitePath,
		RedisAddr:      cfg.RedisAddr,
		RedisKeyPrefix: cfg.RedisKeyPrefix,
		MySQLDSN:       cfg.MySQLDSN,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	inventoryRepo := kvrepo.NewInventoryRepository(store)
	ledgerRepo := kvrepo.NewLedgerRepository(store)

	if cfg.SeedSampleData {
		seeder := seed.Seeder{Inventory: inventoryRepo, Ledger: ledgerRepo, IDs: deps.IDs, Logger: logger}
		if err := seeder.Run(ctx, deps.Clock.Now()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	inventory := appinv.NewService(inventoryRepo, deps.IDs, deps.Clock, deps.Publisher, deps.Speaker, deps.Tel)
	ledger := appledger.NewService(ledgerRepo, deps.IDs, deps.Clock, loc, deps.Publisher, deps.Tel)
	payments := apppay.NewSimulator(apppay.Config{
		ProcessingDelay: cfg.PaymentProcessingDelay,
		ResetDelay:      cfg.PaymentResetDelay,
		SuccessRate:     cfg.PaymentSuccessRate,
	}, deps.Clock, deps.Random, ledger, deps.Publisher, deps.Speaker, deps.Tel)
	assistant := appvoice.NewAssistant(inventory, cfg.Locale, deps.Tel)

	return &App{
		Inventory: inventory,
		Ledger:    ledger,
		Payments:  payments,
		Assistant: assistant,
		Voice:     appvoice.NewSession(assistant, speechinfra.Capability(cfg.VoiceEnabled), logger),
		Theme:     apptheme.NewService(kvrepo.NewThemeRepository(store)),
		store:     store,
	}, nil
}

// Close stops the payment reset timer and closes the store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.Payments.Close()
	return a.store.Close()
}
