// Package journal implements the append-only deployment log.
//
// The FileRepository appends one human-readable line per successful run
// (timestamp, commit, services touched, run ID) and exposes a Repository
// interface that the deployer service depends on.
package journal
