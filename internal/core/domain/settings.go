package domain

// StorageBackend selects where parsed reports are kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps reports for the life of the process.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite keeps reports in a SQLite database file.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// AppSettings holds application configuration.
type AppSettings struct {
	Storage StorageSettings
	Server  ServerSettings
	Watch   WatchSettings
	Export  ExportSettings
}

// StorageSettings configures report persistence.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir holds the SQLite database. Empty means the config directory.
	DataDir string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string

	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit int

	// MaxUploadMB caps request bodies.
	MaxUploadMB int
}

// WatchSettings configures the directory watcher.
type WatchSettings struct {
	Dir string
}

// ExportSettings configures spreadsheet export.
type ExportSettings struct {
	Dir string
}

// DefaultAppSettings returns the default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Server: ServerSettings{
			Addr:        ":8000",
			RateLimit:   20,
			MaxUploadMB: 32,
		},
		Export: ExportSettings{
			Dir: ".",
		},
	}
}

// Validate checks settings for values that cannot work.
func (s AppSettings) Validate() error {
	if !s.Storage.Backend.IsValid() {
		return ErrInvalidInput
	}
	if s.Server.Addr == "" || s.Server.RateLimit < 0 || s.Server.MaxUploadMB <= 0 {
		return ErrInvalidInput
	}
	return nil
}
