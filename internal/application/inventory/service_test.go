package inventory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	domoutbox "github.com/Zhima-Mochi/streetsmart/internal/domain/outbox"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/kvrepo"
	"github.com/Zhima-Mochi/streetsmart/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("item-%d", g.n)
}

type recorder struct {
	mu     sync.Mutex
	events []domoutbox.Event
	spoken []string
}

func (r *recorder) Publish(_ context.Context, e domoutbox.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Speak(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
	return nil
}

func newTestService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	svc := NewService(
		kvrepo.NewInventoryRepository(memory.NewStore()),
		&seqIDs{},
		fixedClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		rec,
		rec,
		nil,
	)
	return svc, rec
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	for _, cmd := range []AddCommand{
		{Name: "Laptop", Price: 45000, Quantity: 5, Category: "Electronics"},
		{Name: "T-Shirt", Price: 500, Quantity: 50, Category: "Clothing"},
		{Name: "Headphones", Price: 2000, Quantity: 15, Category: "Electronics"},
	} {
		_, err := svc.Add(ctx, cmd)
		require.NoError(t, err)
	}
}

func TestService_AddAssignsIDAndSignals(t *testing.T) {
	svc, rec := newTestService(t)

	item, err := svc.Add(context.Background(), AddCommand{Name: " Pen ", Price: 10, Quantity: 3, Category: "stationery"})
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "Pen", item.Name)

	require.Len(t, rec.events, 1)
	evt, ok := rec.events[0].(dominv.ChangedEvent)
	require.True(t, ok)
	assert.Equal(t, dominv.ActionAdded, evt.Action)
	assert.Equal(t, []string{"Added Pen to inventory"}, rec.spoken)
}

func TestService_AddRejectsInvalidItem(t *testing.T) {
	svc, rec := newTestService(t)

	_, err := svc.Add(context.Background(), AddCommand{Name: "Pen", Price: -1})
	assert.ErrorIs(t, err, dominv.ErrInvalidPrice)

	_, err = svc.Add(context.Background(), AddCommand{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, dominv.ErrNameRequired)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, rec.events)
}

func TestService_UpdateMergesPresentFields(t *testing.T) {
	svc, _ := newTestService(t)
	seed(t, svc)
	qty := 7

	updated, found, err := svc.Update(context.Background(), "item-1", dominv.Patch{Quantity: &qty})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, 45000.0, updated.Price)
}

func TestService_UnknownIDIsNoOp(t *testing.T) {
	svc, rec := newTestService(t)
	seed(t, svc)
	before, _ := svc.List(context.Background())
	events := len(rec.events)
	name := "Ghost"

	_, found, err := svc.Update(context.Background(), "missing", dominv.Patch{Name: &name})
	require.NoError(t, err)
	assert.False(t, found)

	removed, err := svc.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	after, _ := svc.List(context.Background())
	assert.Equal(t, before, after)
	assert.Len(t, rec.events, events)
}

func TestService_Delete(t *testing.T) {
	svc, rec := newTestService(t)
	seed(t, svc)

	removed, err := svc.Delete(context.Background(), "item-2")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "Item deleted from inventory", rec.spoken[len(rec.spoken)-1])

	items, _ := svc.List(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, "Laptop", items[0].Name)
	assert.Equal(t, "Headphones", items[1].Name)
}

func TestService_SearchMatchesNameOrCategory(t *testing.T) {
	svc, _ := newTestService(t)
	seed(t, svc)

	result, err := svc.Search(context.Background(), "ELECTRONICS")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "Laptop", result.Items[0].Name)
	assert.Equal(t, "Headphones", result.Items[1].Name)

	result, err = svc.Search(context.Background(), "shirt")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	result, err = svc.Search(context.Background(), "xyz")
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Items)
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService(t)
	seed(t, svc)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Items)
	assert.Equal(t, 70, stats.TotalQuantity)
	assert.Equal(t, 45000.0*5+500*50+2000*15, stats.TotalValue)
}

type slowStore struct {
	*memory.Store
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(s.delay)
	return s.Store.Get(ctx, key)
}

func TestService_ConcurrentPatchesKeepBothFields(t *testing.T) {
	svc := NewService(
		kvrepo.NewInventoryRepository(slowStore{Store: memory.NewStore(), delay: 30 * time.Millisecond}),
		&seqIDs{},
		fixedClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		nil, nil, nil,
	)
	ctx := context.Background()
	item, err := svc.Add(ctx, AddCommand{Name: "Pen", Price: 10, Quantity: 3, Category: "Stationery"})
	require.NoError(t, err)

	name, qty := "Marker", 99
	var wg sync.WaitGroup
	for _, patch := range []dominv.Patch{{Name: &name}, {Quantity: &qty}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, found, err := svc.Update(ctx, item.ID, patch)
			assert.NoError(t, err)
			assert.True(t, found)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marker", got.Name)
	assert.Equal(t, 99, got.Quantity)
}
