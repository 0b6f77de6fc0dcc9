package service

import (
	"context"
	"errors"
	"time"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/theme"
)

// PreferencesService reads and saves per-analyst UI preferences, falling
// back to defaults for users who never saved any.
type PreferencesService struct {
	repo ports.PreferencesRepository
}

func NewPreferencesService(repo ports.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

func (s *PreferencesService) Get(ctx context.Context, username string) (*domain.Preferences, error) {
	prefs, err := s.repo.Find(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return domain.DefaultPreferences(username), nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *PreferencesService) Save(ctx context.Context, prefs *domain.Preferences) (*domain.Preferences, error) {
	if prefs.Username == "" {
		return nil, domain.ErrNoSession
	}
	if !theme.KnownPalette(prefs.Palette) {
		prefs.Palette = "dark"
	}
	if prefs.DefaultPage == "" {
		prefs.DefaultPage = "/"
	}
	prefs.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
