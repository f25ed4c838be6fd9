package driving

import "github.com/custodia-labs/edicat/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for the named key and persists it.
	Set(key, value string) error

	// Reset restores every setting to its default.
	Reset() error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys returns the recognised settings keys in display order.
	Keys() []string
}
