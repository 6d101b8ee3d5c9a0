// Package config manages user-level settings stored at ~/.uipacks/config.yaml.
// It loads, reads and writes keys such as the catalog directory, the default
// bundle output directory and the component source root. Environment
// variables with the UIPACKS_ prefix override the file.
package config
