package deploy

// ChangeSet describes what changed between the previously deployed commit
// and the freshly fetched one.
type ChangeSet struct {
	// PreviousCommit is the last deployed commit, empty on the first deploy.
	PreviousCommit string
	// Commit is the freshly fetched mainline tip.
	Commit string
	// Files lists the paths differing between the two commits. On the first
	// deploy it holds every tracked file instead.
	Files []string
	// InitialDeploy is set when no commit marker existed before this run.
	InitialDeploy bool
}

// Contains reports whether the change set includes the exact path.
// Matching is whole-path equality: "src/requirements.txt" does not match
// a manifest at "requirements.txt".
func (c *ChangeSet) Contains(path string) bool {
	for _, file := range c.Files {
		if file == path {
			return true
		}
	}

	return false
}

// NeedsInstall reports whether the dependency manifest must be reinstalled.
// The first deploy always installs; afterwards only an exact manifest path
// match in the changed files triggers one.
func (c *ChangeSet) NeedsInstall(manifest string) bool {
	if c.InitialDeploy {
		return true
	}

	return c.Contains(manifest)
}
