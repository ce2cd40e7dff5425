// Package config provides configuration management for the loanlens CLI.
//
// Values are layered, lowest precedence first: built-in defaults,
// loanlens.yaml, LOANLENS_* environment variables, then explicitly set flags.
package config

import (
	intconfig "github.com/leapstack-labs/loanlens/internal/config"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	Input        string        `koanf:"input" validate:"required"`
	ReportPath   string        `koanf:"report_path" validate:"required"`
	ChartPath    string        `koanf:"chart_path" validate:"required"`
	ChartDPI     int           `koanf:"chart_dpi" validate:"gte=1,lte=1200"`
	WorkbookPath string        `koanf:"workbook_path"`
	SummaryPath  string        `koanf:"summary_path"`
	StatePath    string        `koanf:"state_path"`
	Verbose      bool          `koanf:"verbose"`
	Target       *TargetConfig `koanf:"target" validate:"required"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultInput      = intconfig.DefaultInput
	DefaultReportPath = intconfig.DefaultReportPath
	DefaultChartPath  = intconfig.DefaultChartPath
	DefaultChartDPI   = intconfig.DefaultChartDPI
	DefaultStateFile  = intconfig.DefaultStateFile
)

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"loanlens.yaml", "loanlens.yml"}

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "LOANLENS_"
