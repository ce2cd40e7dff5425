// Package adapter provides the database adapter contract and the shared
// database/sql implementation used to replace the loan table.
//
// Concrete adapters live in pkg/adapters/ subdirectories and register
// themselves by name from their init functions.
package adapter

import "github.com/leapstack-labs/loanlens/pkg/core"

type (
	// Adapter is an alias for core.Adapter.
	Adapter = core.Adapter

	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig
)
