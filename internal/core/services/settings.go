package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keyServerAddr     = "server.addr"
	keyRateLimit      = "server.rate_limit"
	keyMaxUploadMB    = "server.max_upload_mb"
	keyWatchDir       = "watch.dir"
	keyExportDir      = "export.dir"
)

// Environment overrides.
const (
	EnvStorageBackend = "DASHREPORT_STORAGE_BACKEND"
	EnvPort           = "PORT"
)

var settingKeys = []string{
	keyStorageBackend,
	keyStorageDataDir,
	keyServerAddr,
	keyRateLimit,
	keyMaxUploadMB,
	keyWatchDir,
	keyExportDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.getString(keyStorageDataDir, defaults.Storage.DataDir),
		},
		Server: domain.ServerSettings{
			Addr:        s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:   s.getInt(keyRateLimit, defaults.Server.RateLimit),
			MaxUploadMB: s.getInt(keyMaxUploadMB, defaults.Server.MaxUploadMB),
		},
		Watch: domain.WatchSettings{
			Dir: s.getString(keyWatchDir, defaults.Watch.Dir),
		},
		Export: domain.ExportSettings{
			Dir: s.getString(keyExportDir, defaults.Export.Dir),
		},
	}

	if v := s.getenv(EnvStorageBackend); v != "" {
		backend := domain.StorageBackend(strings.ToLower(v))
		if !backend.IsValid() {
			return nil, fmt.Errorf("%s=%q: %w", EnvStorageBackend, v, domain.ErrInvalidInput)
		}
		settings.Storage.Backend = backend
	}
	if port := s.getenv(EnvPort); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return nil, fmt.Errorf("%s=%q: %w", EnvPort, port, domain.ErrInvalidInput)
		}
		settings.Server.Addr = ":" + port
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyServerAddr, settings.Server.Addr},
		{keyRateLimit, settings.Server.RateLimit},
		{keyMaxUploadMB, settings.Server.MaxUploadMB},
		{keyWatchDir, settings.Watch.Dir},
		{keyExportDir, settings.Export.Dir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyStorageBackend:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("invalid storage backend %q: %w", value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)
	case keyRateLimit, keyMaxUploadMB:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || (key == keyMaxUploadMB && n == 0) {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, n)
	case keyServerAddr:
		if value == "" {
			return fmt.Errorf("server.addr cannot be empty: %w", domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, value)
	case keyStorageDataDir, keyWatchDir, keyExportDir:
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
