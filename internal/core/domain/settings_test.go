package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StorageBackend
		expected bool
	}{
		{name: "memory is valid", backend: StorageMemory, expected: true},
		{name: "sqlite is valid", backend: StorageSQLite, expected: true},
		{name: "empty string is invalid", backend: StorageBackend(""), expected: false},
		{name: "unknown backend is invalid", backend: StorageBackend("mongo"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StorageSQLite, s.Storage.Backend)
	assert.Equal(t, ":8000", s.Server.Addr)
	assert.Equal(t, 20, s.Server.RateLimit)
	assert.Equal(t, 32, s.Server.MaxUploadMB)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{name: "unknown backend", mutate: func(s *AppSettings) { s.Storage.Backend = "redis" }},
		{name: "empty addr", mutate: func(s *AppSettings) { s.Server.Addr = "" }},
		{name: "negative rate limit", mutate: func(s *AppSettings) { s.Server.RateLimit = -1 }},
		{name: "zero upload cap", mutate: func(s *AppSettings) { s.Server.MaxUploadMB = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}
