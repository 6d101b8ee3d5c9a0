// Package registry holds the in-memory component catalog: the pack registry,
// page sections, and the dependency map. It resolves the files and external
// packages a set of components needs, builds dependency trees for display,
// and checks the dependency map for dangling keys and cycles.
package registry
