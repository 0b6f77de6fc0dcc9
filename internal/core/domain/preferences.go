package domain

import "time"

// Preferences are per-analyst UI settings owned by the gateway, not the
// backend: which theme palette to style pages with, where to land after
// login, and sidebar layout.
type Preferences struct {
	Username         string    `json:"username"`
	Palette          string    `json:"palette"`
	DefaultPage      string    `json:"default_page"`
	SidebarCollapsed bool      `json:"sidebar_collapsed"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultPreferences returns the settings applied to users who have never
// saved any.
func DefaultPreferences(username string) *Preferences {
	return &Preferences{
		Username:    username,
		Palette:     "dark",
		DefaultPage: "/",
	}
}
