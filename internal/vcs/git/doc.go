// Package git wraps the git CLI operations the deployer needs: resolving
// the current revision, fetching remote refs, force-synchronizing the
// working tree to the remote mainline tip, and listing changed or tracked
// files.
package git
