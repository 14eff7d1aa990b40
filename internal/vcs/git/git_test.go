package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeRunner records invocations and replies with canned output per command line.
type fakeRunner struct {
	// calls records each command line as a single string.
	calls []string
	// output is the canned reply keyed by the joined command line.
	output map[string]string
	// err is returned for every call when set.
	err error
}

// Run records the call and returns the canned output for it.
func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)

	return []byte(f.output[line]), f.err
}

// TestClient_Head verifies rev-parse invocation and output trimming.
func TestClient_Head(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		output: map[string]string{
			"git rev-parse HEAD": "def456\n",
		},
	}
	client := NewClient(runner, "origin", "main")

	head, err := client.Head(context.Background())
	require.NoError(t, err)
	require.Equal(t, "def456", head)
	require.Equal(t, []string{"git rev-parse HEAD"}, runner.calls)
}

// TestClient_ForceSyncToRemoteTip verifies the destructive reset targets the remote tip.
func TestClient_ForceSyncToRemoteTip(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{output: map[string]string{}}
	client := NewClient(runner, "origin", "production")

	require.NoError(t, client.ForceSyncToRemoteTip(context.Background()))
	require.Equal(t, []string{"git reset --hard origin/production"}, runner.calls)
}

// TestClient_ChangedFiles verifies diff parsing into a clean path list.
func TestClient_ChangedFiles(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		output: map[string]string{
			"git diff --name-only abc123 def456": "app.py\nrequirements.txt\n\n",
		},
	}
	client := NewClient(runner, "origin", "main")

	files, err := client.ChangedFiles(context.Background(), "abc123", "def456")
	require.NoError(t, err)
	require.Equal(t, []string{"app.py", "requirements.txt"}, files)
}

// TestClient_TrackedFiles verifies ls-files parsing.
func TestClient_TrackedFiles(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		output: map[string]string{
			"git ls-files": "app.py\nvoicer/bot.py\nrequirements.txt\n",
		},
	}
	client := NewClient(runner, "origin", "main")

	files, err := client.TrackedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"app.py", "voicer/bot.py", "requirements.txt"}, files)
}

// TestClient_ErrorsCarryOutput ensures collaborator diagnostics surface in errors.
func TestClient_ErrorsCarryOutput(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		output: map[string]string{
			"git fetch --all": "fatal: unable to access remote\n",
		},
		err: errBoom,
	}
	client := NewClient(runner, "origin", "main")

	err := client.Fetch(context.Background())
	require.ErrorIs(t, err, errBoom)
	require.Contains(t, err.Error(), "unable to access remote")
}
