package theme

import (
	"context"
	"fmt"

	domtheme "github.com/Zhima-Mochi/streetsmart/internal/domain/theme"
)

// Service reads and writes the light/dark preference. Unset means light.
type Service struct {
	repo domtheme.Repository
}

func NewService(repo domtheme.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (domtheme.Theme, error) {
	t, ok, err := s.repo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("theme: get: %w", err)
	}
	if !ok {
		return domtheme.Light, nil
	}
	return t, nil
}

func (s *Service) Set(ctx context.Context, t domtheme.Theme) error {
	if _, err := domtheme.Parse(string(t)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, t); err != nil {
		return fmt.Errorf("theme: set: %w", err)
	}
	return nil
}

func (s *Service) Toggle(ctx context.Context) (domtheme.Theme, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
