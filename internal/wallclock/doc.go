// Package wallclock converts abstract calendar times into concrete instants
// for a named IANA timezone. All functions are stateless.
//
// Timezone identifiers commonly arrive from untrusted, user-editable input,
// so every function fails open: an identifier that cannot be loaded degrades
// to UTC instead of surfacing an error.
package wallclock
