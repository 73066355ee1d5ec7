// Package core defines the shared language of the leapvars system.
//
// This package contains:
//   - The variable record exchanged by every adapter (Variable)
//   - Override value bags (Values) and key paths (KeyPath)
//   - The resolution mode applied when a variable has no value (Mode)
//   - The host-side capabilities the engine depends on
//     (Model, ModelResolver, Interpretable, InterpretableTemplate)
//   - Typed errors shared by adapters, the resolver and the manager
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
