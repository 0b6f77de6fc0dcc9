package ports

import (
	"context"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// PreferencesRepository persists per-analyst UI preferences.
type PreferencesRepository interface {
	Find(ctx context.Context, username string) (*domain.Preferences, error)
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}
