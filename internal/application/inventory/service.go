package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/streetsmart/internal/application"
	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
	"github.com/Zhima-Mochi/streetsmart/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const inventoryService = "inventory-service"

// AddCommand is the add-item form.
type AddCommand struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
}

type Service struct {
	repo      dominv.Repository
	ids       application.IDGenerator
	clock     application.Clock
	publisher domoutbox.Publisher
	speaker   speech.Output
	in        application.Instruments
}

func NewService(
	repo dominv.Repository,
	ids application.IDGenerator,
	clock application.Clock,
	publisher domoutbox.Publisher,
	speaker speech.Output,
	tel observability.Observability,
) *Service {
	if clock == nil {
		clock = application.SystemClock()
	}
	if speaker == nil {
		speaker = speech.Silent()
	}
	return &Service{
		repo:      repo,
		ids:       ids,
		clock:     clock,
		publisher: publisher,
		speaker:   speaker,
		in:        application.NewInstruments(tel, inventoryService),
	}
}

func (s *Service) Add(ctx context.Context, cmd AddCommand) (_ *dominv.Item, err error) {
	ctx, run := s.in.Start(ctx, "inventory.add", "AddItem",
		attribute.String("item.name", cmd.Name),
	)
	defer func() { run.End(err) }()

	now := s.clock.Now()
	item, err := dominv.NewItem(s.ids.NewID(), cmd.Name, cmd.Price, cmd.Quantity, cmd.Category, now)
	if err != nil {
		run.Fail("INVALID_ITEM")
		return nil, err
	}
	run.With(observability.F("item_id", item.ID))

	if err = s.repo.Insert(ctx, item); err != nil {
		run.Fail("PERSIST_FAILED")
		return nil, fmt.Errorf("inventory: insert: %w", err)
	}

	_ = application.Publish(ctx, s.publisher, run.Logger(), dominv.NewChangedEvent(dominv.ActionAdded, item.ID, now))
	s.speak(ctx, run, fmt.Sprintf("Added %s to inventory", item.Name))
	return item, nil
}

// Update merges patch into the item. An unknown id is not an error: it
// returns nil, false.
func (s *Service) Update(ctx context.Context, id string, patch dominv.Patch) (_ *dominv.Item, _ bool, err error) {
	ctx, run := s.in.Start(ctx, "inventory.update", "UpdateItem",
		attribute.String("item.id", id),
	)
	defer func() { run.End(err) }()

	updated, err := s.repo.Update(ctx, id, func(current dominv.Item) (*dominv.Item, error) {
		return current.Apply(patch)
	})
	switch {
	case errors.Is(err, dominv.ErrNotFound):
		run.Status("NOT_FOUND")
		return nil, false, nil
	case errors.Is(err, dominv.ErrNameRequired),
		errors.Is(err, dominv.ErrInvalidPrice),
		errors.Is(err, dominv.ErrInvalidQuantity):
		run.Fail("INVALID_ITEM")
		return nil, false, err
	case err != nil:
		run.Fail("PERSIST_FAILED")
		return nil, false, fmt.Errorf("inventory: update: %w", err)
	}

	_ = application.Publish(ctx, s.publisher, run.Logger(), dominv.NewChangedEvent(dominv.ActionUpdated, id, s.clock.Now()))
	s.speak(ctx, run, fmt.Sprintf("Updated %s", updated.Name))
	return updated, true, nil
}

// Delete removes the item. An unknown id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) (_ bool, err error) {
	ctx, run := s.in.Start(ctx, "inventory.delete", "DeleteItem",
		attribute.String("item.id", id),
	)
	defer func() { run.End(err) }()

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		run.Fail("PERSIST_FAILED")
		return false, fmt.Errorf("inventory: delete: %w", err)
	}
	if !removed {
		run.Status("NOT_FOUND")
		return false, nil
	}

	_ = application.Publish(ctx, s.publisher, run.Logger(), dominv.NewChangedEvent(dominv.ActionDeleted, id, s.clock.Now()))
	s.speak(ctx, run, "Item deleted from inventory")
	return true, nil
}

func (s *Service) List(ctx context.Context) ([]dominv.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*dominv.Item, error) {
	return s.repo.Get(ctx, id)
}

// Search matches term against item names and categories. No match is a
// normal result with Count zero.
func (s *Service) Search(ctx context.Context, term string) (_ dominv.SearchResult, err error) {
	ctx, run := s.in.Start(ctx, "inventory.search", "SearchItems",
		attribute.String("search.term", term),
	)
	defer func() { run.End(err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		run.Fail("LOAD_FAILED")
		return dominv.SearchResult{}, fmt.Errorf("inventory: list: %w", err)
	}
	result := dominv.Search(items, term)
	if result.Empty() {
		run.Status("NO_MATCH")
	}
	run.With(observability.F("matches", result.Count))
	return result, nil
}

func (s *Service) Stats(ctx context.Context) (dominv.Stats, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return dominv.Stats{}, fmt.Errorf("inventory: list: %w", err)
	}
	return dominv.Summarize(items), nil
}

func (s *Service) speak(ctx context.Context, run *application.Run, text string) {
	if err := s.speaker.Speak(ctx, text); err != nil {
		run.Logger().Warn("speak_failed", observability.F("error", err.Error()))
	}
}
