package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanApplication_Status(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		valid    bool
		approved bool
		rejected bool
	}{
		{name: "approved", status: "Y", valid: true, approved: true},
		{name: "rejected", status: "N", valid: true, rejected: true},
		{name: "missing", valid: false},
		{name: "unexpected value", status: "maybe", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := LoanApplication{}
			app.LoanStatus.String = tt.status
			app.LoanStatus.Valid = tt.valid

			assert.Equal(t, tt.approved, app.IsApproved())
			assert.Equal(t, tt.rejected, app.IsRejected())
		})
	}
}

func TestTargetConfig_ToAdapterConfig(t *testing.T) {
	target := &TargetConfig{
		Type:     "postgres",
		Database: "loans",
		Host:     "db.internal",
		Port:     5432,
		User:     "loader",
		Password: "secret",
		Options:  map[string]string{"sslmode": "require"},
	}

	cfg := target.ToAdapterConfig()

	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "loans", cfg.Database)
	assert.Equal(t, "loans", cfg.Path)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "loader", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "require", cfg.Options["sslmode"])
}

func TestColumns_MatchesCSVHeader(t *testing.T) {
	assert.Len(t, Columns, 13)
	assert.Equal(t, ColLoanID, Columns[0])
	assert.Equal(t, ColLoanStatus, Columns[len(Columns)-1])
}
