// Package config loads and merges snapdiff configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SNAPDIFF_GIT_BIN, SNAPDIFF_COMMIT_LIMIT, SNAPDIFF_FORMAT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/snapdiff/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
