// Package model provides ready-made implementations of core.Model and a
// registry that resolves model identifiers to singleton instances.
package model
