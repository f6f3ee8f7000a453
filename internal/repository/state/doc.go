// Package state implements persistence for the celebration state.
//
// The FileRepository stores and loads a Snapshot as YAML on disk and exposes
// a Repository interface that the runner service depends on. Persistence is
// optional; without it the celebrated set only lives as long as the process.
package state
