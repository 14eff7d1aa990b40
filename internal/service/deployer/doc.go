// Package deployer orchestrates a deployment run over three external
// collaborators: git (fetch and force-sync the source tree), pip (reinstall
// dependencies when the manifest changed) and systemctl (restart and verify
// the selected services).
//
// The pipeline is strictly sequential and fails fast: a restart or health
// check failure aborts the run before the journal entry is appended or the
// commit marker is updated, so a retried run recomputes the same change set.
package deployer
