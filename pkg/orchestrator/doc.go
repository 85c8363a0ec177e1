// Package orchestrator wires the definition → model builder → renderer
// pipeline behind a single Generate call, resolving themes along the way.
package orchestrator
