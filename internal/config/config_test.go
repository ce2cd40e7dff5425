package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/loanlens/pkg/adapter"
	_ "github.com/leapstack-labs/loanlens/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/loanlens/pkg/adapters/sqlite"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

func TestApplyTargetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		target   core.TargetConfig
		wantType string
		wantPort int
	}{
		{name: "mysql", target: core.TargetConfig{Type: "mysql"}, wantType: "mysql", wantPort: 3306},
		{name: "postgres uppercase", target: core.TargetConfig{Type: " Postgres "}, wantType: "postgres", wantPort: 5432},
		{name: "explicit port kept", target: core.TargetConfig{Type: "mysql", Port: 3307}, wantType: "mysql", wantPort: 3307},
		{name: "file target", target: core.TargetConfig{Type: "sqlite"}, wantType: "sqlite", wantPort: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			ApplyTargetDefaults(&target)
			assert.Equal(t, tt.wantType, target.Type)
			assert.Equal(t, tt.wantPort, target.Port)
		})
	}

	ApplyTargetDefaults(nil)
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    *core.TargetConfig
		errSubstr string
	}{
		{name: "nil", target: nil, errSubstr: "target type is required"},
		{name: "empty type", target: &core.TargetConfig{}, errSubstr: "target type is required"},
		{name: "mysql", target: &core.TargetConfig{Type: "mysql"}},
		{name: "sqlite mixed case", target: &core.TargetConfig{Type: "SQLite"}},
		{name: "oracle", target: &core.TargetConfig{Type: "oracle"}, errSubstr: "unknown adapter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidateTarget_ListsAvailable(t *testing.T) {
	err := ValidateTarget(&core.TargetConfig{Type: "snowflake"})

	var unknown *adapter.UnknownAdapterError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown.Available, "mysql")
	assert.Contains(t, unknown.Available, "sqlite")
	assert.Contains(t, err.Error(), "loanlens.yaml")
}
