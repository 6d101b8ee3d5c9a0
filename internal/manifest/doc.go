// Package manifest handles parsing and validation of catalog documents: pack
// manifests (YAML, JSON or TOML), the sections file and the dependency map.
// Validation runs against the JSON Schemas embedded from schema/.
package manifest
