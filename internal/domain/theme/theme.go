package theme

import (
	"context"
	"errors"
	"strings"
)

var ErrUnknown = errors.New("theme: unknown theme")

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", ErrUnknown
	}
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Repository stores the scalar preference. Get reports false when unset.
type Repository interface {
	Get(ctx context.Context) (Theme, bool, error)
	Set(ctx context.Context, t Theme) error
}
