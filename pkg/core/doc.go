// Package core defines the shared language of loanlens.
//
// This package contains:
//   - Domain entities (LoanApplication, Run)
//   - Service interfaces (Adapter, Store)
//   - Configuration types (TargetConfig, AdapterConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
