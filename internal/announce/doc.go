// Package announce formats the human-readable countdown messages consumed by
// accessibility output: the per-tick remaining-time phrase and the discrete
// completion phrase. Messages are localized with go-i18n from embedded JSON
// locale files, falling back to English.
//
// The package only formats. When an announcement is actually emitted, and how
// often, is decided by the caller.
package announce
