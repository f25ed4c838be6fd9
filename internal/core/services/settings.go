package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
	"github.com/custodia-labs/edicat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

var settingsKeys = []string{
	domain.SettingLineNumbers,
	domain.SettingPeekSize,
	domain.SettingEncoding,
	domain.SettingStrict,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	decoders    driven.DecoderFactory
}

// NewSettingsService creates a new settings service.
// decoders is used to validate encoding names and may be nil.
func NewSettingsService(configStore driven.ConfigStore, decoders driven.DecoderFactory) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		decoders:    decoders,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Output: domain.OutputSettings{
			LineNumbers: s.getBool(domain.SettingLineNumbers, defaults.Output.LineNumbers),
		},
		Input: domain.InputSettings{
			PeekSize: s.getInt(domain.SettingPeekSize, defaults.Input.PeekSize),
			Encoding: s.getString(domain.SettingEncoding, defaults.Input.Encoding),
			Strict:   s.getBool(domain.SettingStrict, defaults.Input.Strict),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(domain.SettingLineNumbers, settings.Output.LineNumbers); err != nil {
		return fmt.Errorf("save line numbers: %w", err)
	}
	if err := s.configStore.Set(domain.SettingPeekSize, settings.Input.PeekSize); err != nil {
		return fmt.Errorf("save peek size: %w", err)
	}
	if err := s.configStore.Set(domain.SettingEncoding, settings.Input.Encoding); err != nil {
		return fmt.Errorf("save encoding: %w", err)
	}
	if err := s.configStore.Set(domain.SettingStrict, settings.Input.Strict); err != nil {
		return fmt.Errorf("save strict: %w", err)
	}

	return nil
}

// Set parses value for the named key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case domain.SettingLineNumbers, domain.SettingStrict:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.configStore.Set(key, b)

	case domain.SettingPeekSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		if n < domain.MinPeekSize {
			return fmt.Errorf("%w: %s must be at least %d", domain.ErrInvalidInput, key, domain.MinPeekSize)
		}
		return s.configStore.Set(key, n)

	case domain.SettingEncoding:
		if err := s.validateEncoding(value); err != nil {
			return err
		}
		return s.configStore.Set(key, value)

	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}
}

// Reset restores every setting to its default.
func (s *SettingsService) Reset() error {
	for _, key := range settingsKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Input.PeekSize < domain.MinPeekSize {
		return fmt.Errorf("%w: %s must be at least %d, got %d",
			domain.ErrInvalidInput, domain.SettingPeekSize, domain.MinPeekSize, settings.Input.PeekSize)
	}

	return s.validateEncoding(settings.Input.Encoding)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns the recognised settings keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

func (s *SettingsService) validateEncoding(name string) error {
	if s.decoders == nil {
		if name != domain.DefaultEncoding {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedEncoding, name)
		}
		return nil
	}
	_, err := s.decoders.Decoder(name)
	return err
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
