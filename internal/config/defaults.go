// Package config holds the defaults and target rules shared by the loanlens
// configuration loader and the pipelines.
package config

import (
	"strings"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Default values for the pipeline paths.
const (
	DefaultInput      = "loan_data_set.csv"
	DefaultReportPath = "analysis_report.txt"
	DefaultChartPath  = "loan_analysis_visualizations.png"
	DefaultChartDPI   = 300
	DefaultStateFile  = ".loanlens/state.db"
)

// Default connection settings of the loader target.
const (
	DefaultTargetType     = "mysql"
	DefaultTargetHost     = "localhost"
	DefaultTargetDatabase = "loan_analysis_db"
	DefaultTargetUser     = "root"
)

// DefaultPortForType returns the well-known port of a network target, or 0
// for file-based targets.
func DefaultPortForType(dbType string) int {
	switch strings.ToLower(dbType) {
	case "mysql":
		return 3306
	case "postgres":
		return 5432
	default:
		return 0
	}
}

// ApplyTargetDefaults normalizes the target type and fills in the port.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}

	t.Type = strings.ToLower(strings.TrimSpace(t.Type))

	if t.Port == 0 {
		t.Port = DefaultPortForType(t.Type)
	}
}
