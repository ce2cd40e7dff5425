package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type" validate:"required"` // mysql, postgres, sqlite, duckdb

	// Database name, or a file path for file-based databases (SQLite, DuckDB)
	Database string `koanf:"database"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"gte=0,lte=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Migrate creates the loan table before loading when it does not exist.
	Migrate bool `koanf:"migrate"`
}

// ToAdapterConfig converts the target into adapter connection settings.
func (t *TargetConfig) ToAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
}
