// Package file provides a TOML file-backed implementation of the
// driven.ConfigStore port. Configuration lives in ~/.ragview/config.toml
// by default.
package file
