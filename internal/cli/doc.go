// Package cli defines the Cobra command tree for the uipacks CLI. Each file
// in this package registers one top-level command (map, search, bundle, etc.)
// with the root command. Commands load the catalog, delegate to the
// registry, mapper and bundle packages, and only handle flag parsing, I/O
// formatting and user interaction.
package cli
