package pip

import (
	"context"
	"fmt"
	"strings"

	"github.com/voicerhq/voicer-deploy/internal/cmdrunner"
)

// Installer drives the pip CLI to install platform dependencies.
type Installer struct {
	// executable is the pip binary, usually inside the platform virtualenv.
	executable string
	// run executes pip subprocesses.
	run cmdrunner.Runner
}

// NewInstaller creates an installer using the provided pip executable.
func NewInstaller(runner cmdrunner.Runner, executable string) *Installer {
	return &Installer{
		executable: executable,
		run:        runner,
	}
}

// UpgradeFromManifest installs or upgrades every dependency declared in the
// manifest file. The call blocks until pip finishes.
func (i *Installer) UpgradeFromManifest(ctx context.Context, manifest string) error {
	output, err := i.run.Run(ctx, i.executable, "install", "--upgrade", "-r", manifest)
	if err != nil {
		return fmt.Errorf("pip install -r %s: %s: %w", manifest, strings.TrimSpace(string(output)), err)
	}

	return nil
}
