package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/loanlens/pkg/adapter"
	"github.com/leapstack-labs/loanlens/pkg/core"
)

// ValidateTarget checks that the target names a registered adapter.
// The adapter registry is the single source of truth for available types.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	return nil
}
