// Package bundle assembles a standalone package from catalog components.
//
// Build resolves the requested component keys through a dependency
// resolver, copies every resolved file from a source tree into an output
// directory and writes a package.json and README.md describing the result.
package bundle
