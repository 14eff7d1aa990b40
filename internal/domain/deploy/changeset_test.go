package deploy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestChangeSet_Contains checks exact-path matching semantics.
func TestChangeSet_Contains(t *testing.T) {
	t.Parallel()

	cs := &ChangeSet{
		Files: []string{"src/requirements.txt", "app.py"},
	}

	require.True(t, cs.Contains("app.py"))
	require.False(t, cs.Contains("requirements.txt"))
	require.False(t, cs.Contains("app"))
}

// TestChangeSet_NeedsInstall covers manifest-triggered and first-deploy installs.
func TestChangeSet_NeedsInstall(t *testing.T) {
	t.Parallel()

	// Manifest changed exactly.
	cs := &ChangeSet{
		Files: []string{"requirements.txt"},
	}
	require.True(t, cs.NeedsInstall("requirements.txt"))

	// Prefix match must not trigger.
	cs = &ChangeSet{
		Files: []string{"src/requirements.txt"},
	}
	require.False(t, cs.NeedsInstall("requirements.txt"))

	// First deploy always installs.
	cs = &ChangeSet{
		InitialDeploy: true,
	}
	require.True(t, cs.NeedsInstall("requirements.txt"))
}
