// Package config loads, normalizes, and validates classcheck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLASSCHECK_LOG_LEVEL. The Config type centralizes every knob the batch
// runner and CLI need: prefix removal lists, header keywords used to discover
// roster and submission columns, the activity range, and export settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
