// Package store persists sessions and the append-only observation log.
//
// Two backends implement the same Store interface: a remote Postgres database
// and a local JSON file store that works with zero setup. The factory selects
// one from configuration at startup; nothing above this package branches on
// the concrete backend.
package store
