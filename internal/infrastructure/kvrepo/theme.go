package kvrepo

import (
	"context"
	"strings"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"
	domain "github.com/Zhima-Mochi/streetsmart/internal/domain/theme"
)

// ThemeRepository stores the preference as the bare theme name.
type ThemeRepository struct {
	store storage.KeyValueStore
}

func NewThemeRepository(store storage.KeyValueStore) *ThemeRepository {
	return &ThemeRepository{store: store}
}

// Get reports false when the record is missing or holds an unknown value.
func (r *ThemeRepository) Get(ctx context.Context) (domain.Theme, bool, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	t, err := domain.Parse(strings.Trim(string(raw), `"`))
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

func (r *ThemeRepository) Set(ctx context.Context, t domain.Theme) error {
	return r.store.Set(ctx, storage.KeyTheme, []byte(t))
}
