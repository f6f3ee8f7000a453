// Package config loads, saves and validates the YAML countdown definition
// consumed by the zero-hour binary: the target (an absolute instant, a timer
// duration, or a wall-clock calendar moment plus timezone), the refresh
// cadence, the announcement locale and the display stage list.
//
// Target configuration fails fast on developer misconfiguration; the
// timezone string is user-editable input and is intentionally passed through
// unvalidated, because the core degrades unloadable identifiers to UTC.
package config
