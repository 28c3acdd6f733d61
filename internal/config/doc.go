// Package config handles configuration loading for weekplan.
//
// # Overview
//
// Configuration is loaded from a YAML file (or TOML, when the file name ends in
// .toml) with environment variable expansion. Every field has a default, so
// `weekplan serve` runs without any config file at all.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from WEEKPLAN_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/weekplan/config.yaml
//  3. ~/.config/weekplan/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	server:
//	  http_addr: "0.0.0.0:${PORT}"
//
// When server.http_addr is unset, PORT (default 3000) is used on localhost.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "localhost:3000"
//	  read_header_timeout: "10s"
//	  shutdown_timeout: "5s"
//
//	store:
//	  driver: "memory"   # memory, sqlite
//	  path: ":memory:"   # sqlite only
//	  seed: true         # start with the default week
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//
//	webui:
//	  enabled: true
//
// The same keys work in TOML:
//
//	[store]
//	driver = "sqlite"
package config
