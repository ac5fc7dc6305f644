// Package config loads and validates the vitrine configuration file.
//
// Configuration lives at ~/.config/vitrine/config.toml by default, with a
// project-local vitrine.toml honored when present. All path fields are
// expanded (~ and relative paths) during load, and Validate rejects
// configurations the publish pipeline cannot operate with.
package config
