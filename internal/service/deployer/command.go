package deployer

import (
	"context"
	"fmt"
	"time"

	"github.com/voicerhq/voicer-deploy/internal/cmdrunner"
	"github.com/voicerhq/voicer-deploy/internal/config"
	domain "github.com/voicerhq/voicer-deploy/internal/domain/deploy"
	"github.com/voicerhq/voicer-deploy/internal/installer/pip"
	"github.com/voicerhq/voicer-deploy/internal/logger"
	"github.com/voicerhq/voicer-deploy/internal/repository/journal"
	"github.com/voicerhq/voicer-deploy/internal/repository/marker"
	"github.com/voicerhq/voicer-deploy/internal/servicemgr/systemd"
	"github.com/voicerhq/voicer-deploy/internal/vcs/git"
)

// Options are inputs accepted by the deployer entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// Services are the positional service names; empty selects the full
	// canonical list.
	Services []string
}

// Run executes one deployment and is the public entry point for the CLI.
// It returns the run report so callers can summarize the outcome.
func (o *Options) Run(ctx context.Context) (*domain.Report, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "voicer-deploy")

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if cfg.GuardMarker != "" {
		release, guardErr := acquireGuard(ctx, cfg.GuardMarker)
		if guardErr != nil {
			return nil, guardErr
		}

		defer release()
	}

	selection := domain.Select(o.Services, cfg.Services)

	logger.InfoKV(ctx, "Starting deployment",
		"install_root", cfg.InstallRoot, "services", domain.Names(selection))

	repoRunner := cmdrunner.NewExecRunner(cfg.InstallRoot)
	hostRunner := cmdrunner.NewExecRunner("")

	r := &runner{
		cfg:       cfg,
		vcs:       git.NewClient(repoRunner, cfg.Remote, cfg.Branch),
		installer: pip.NewInstaller(repoRunner, cfg.Pip),
		units:     systemd.NewManager(hostRunner),
		markers:   marker.NewFileRepository(cfg.MarkerFile),
		journal:   journal.NewFileRepository(cfg.JournalFile),
		now:       time.Now,
		pause:     sleepWithContext,
	}

	report, err := r.run(ctx, selection)
	if err != nil {
		logger.ErrorKV(ctx, "Deployment failed", "error", err)

		return nil, err
	}

	if report.ShortCircuit {
		logger.InfoKV(ctx, "Deployment is a no-op, commit already deployed", "commit", report.Commit)
	} else {
		logger.InfoKV(ctx, "Deployment completed",
			"commit", report.Commit, "services", report.Services, "install_ran", report.InstallRan)
	}

	return report, nil
}

// sleepWithContext pauses for the duration unless the context ends first.
func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
