package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edicat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/edicat/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(domain.SettingLineNumbers, true)
	_ = store.Set(domain.SettingPeekSize, int64(1024))
	_ = store.Set(domain.SettingEncoding, "iso-8859-1")
	_ = store.Set(domain.SettingStrict, true)

	service := NewSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.True(t, settings.Output.LineNumbers)
	assert.Equal(t, 1024, settings.Input.PeekSize)
	assert.Equal(t, "iso-8859-1", settings.Input.Encoding)
	assert.True(t, settings.Input.Strict)
}

func TestSettingsService_Get_StoredFalseOverridesDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(domain.SettingLineNumbers, false)

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.False(t, settings.Output.LineNumbers)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	settings.Output.LineNumbers = true
	settings.Input.PeekSize = 2048

	err := service.Save(&settings)

	require.NoError(t, err)
	assert.True(t, store.GetBool(domain.SettingLineNumbers))
	assert.Equal(t, 2048, store.GetInt(domain.SettingPeekSize))
	assert.Equal(t, domain.DefaultEncoding, store.GetString(domain.SettingEncoding))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *loaded)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, &mockDecoders{})

	require.NoError(t, service.Set(domain.SettingLineNumbers, "true"))
	require.NoError(t, service.Set(domain.SettingStrict, " 1 "))
	require.NoError(t, service.Set(domain.SettingPeekSize, "4096"))
	require.NoError(t, service.Set(domain.SettingEncoding, "upper"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.True(t, settings.Output.LineNumbers)
	assert.True(t, settings.Input.Strict)
	assert.Equal(t, 4096, settings.Input.PeekSize)
	assert.Equal(t, "upper", settings.Input.Encoding)
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"bad bool", domain.SettingLineNumbers, "maybe", domain.ErrInvalidInput},
		{"bad int", domain.SettingPeekSize, "lots", domain.ErrInvalidInput},
		{"peek below minimum", domain.SettingPeekSize, "100", domain.ErrInvalidInput},
		{"unknown encoding", domain.SettingEncoding, "klingon", domain.ErrUnsupportedEncoding},
		{"unknown key", "output.colour", "true", domain.ErrUnknownSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, &mockDecoders{})

			err := service.Set(tt.key, tt.value)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			_, exists := store.Get(tt.key)
			assert.False(t, exists, "rejected value must not be stored")
		})
	}
}

func TestSettingsService_Set_EncodingWithoutDecoders(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.NoError(t, service.Set(domain.SettingEncoding, domain.DefaultEncoding))
	assert.ErrorIs(t, service.Set(domain.SettingEncoding, "latin1"), domain.ErrUnsupportedEncoding)
}

func TestSettingsService_Reset(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	require.NoError(t, service.Set(domain.SettingLineNumbers, "true"))
	require.NoError(t, service.Set(domain.SettingPeekSize, "1000"))

	require.NoError(t, service.Reset())

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Empty(t, store.Snapshot())
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, &mockDecoders{})

	assert.NoError(t, service.Validate())

	// Values written behind the service's back, e.g. by hand-editing the file.
	_ = store.Set(domain.SettingPeekSize, 10)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)

	_ = store.Set(domain.SettingPeekSize, 600)
	_ = store.Set(domain.SettingEncoding, "klingon")
	assert.ErrorIs(t, service.Validate(), domain.ErrUnsupportedEncoding)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	keys := service.Keys()
	assert.Equal(t, []string{
		domain.SettingLineNumbers,
		domain.SettingPeekSize,
		domain.SettingEncoding,
		domain.SettingStrict,
	}, keys)

	keys[0] = "mutated"
	assert.Equal(t, domain.SettingLineNumbers, service.Keys()[0])
}
