package deployer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voicerhq/voicer-deploy/internal/config"
	domain "github.com/voicerhq/voicer-deploy/internal/domain/deploy"
	"github.com/voicerhq/voicer-deploy/internal/logger"
	"github.com/voicerhq/voicer-deploy/internal/repository/journal"
	"github.com/voicerhq/voicer-deploy/internal/repository/marker"
)

var (
	errRestartFailed    = errors.New("service restart failed")
	errServiceNotActive = errors.New("service is not active after restart")
)

// VersionControl is the version-control collaborator contract.
type VersionControl interface {
	Head(ctx context.Context) (string, error)
	Fetch(ctx context.Context) error
	ForceSyncToRemoteTip(ctx context.Context) error
	ChangedFiles(ctx context.Context, from, to string) ([]string, error)
	TrackedFiles(ctx context.Context) ([]string, error)
}

// Installer is the package-manager collaborator contract.
type Installer interface {
	UpgradeFromManifest(ctx context.Context, manifest string) error
}

// ServiceManager is the service-manager collaborator contract.
type ServiceManager interface {
	ReloadUnits(ctx context.Context) error
	Restart(ctx context.Context, unit string) error
	IsActive(ctx context.Context, unit string) (bool, error)
	Status(ctx context.Context, unit string) (string, error)
}

// runner holds the collaborators and state for a single deployment run.
// It is intentionally unexported, call Run(ctx, Options) from callers.
type runner struct {
	// cfg holds the deployment settings.
	cfg *config.Config
	// vcs is the git collaborator bound to the install root.
	vcs VersionControl
	// installer is the pip collaborator.
	installer Installer
	// units is the systemctl collaborator.
	units ServiceManager
	// markers persists the last deployed commit.
	markers marker.Repository
	// journal is the append-only deployment journal.
	journal journal.Repository
	// now is the clock, replaceable in tests.
	now func() time.Time
	// pause rate-limits restarts, replaceable in tests.
	pause func(ctx context.Context, d time.Duration)
}

// run executes the deployment pipeline for the resolved selection:
// PULL -> {SHORT_CIRCUIT | (DEPS -> RESTART -> VERIFY)} -> RECORD.
func (r *runner) run(ctx context.Context, selection []domain.Service) (*domain.Report, error) {
	report := &domain.Report{
		RunID:     uuid.New(),
		Services:  domain.Names(selection),
		StartedAt: r.now(),
	}

	ctx = logger.WithKV(ctx, "run_id", report.RunID.String())

	changes, err := r.pull(ctx)
	if err != nil {
		return nil, err
	}

	report.PreviousCommit = changes.PreviousCommit
	report.Commit = changes.Commit

	if changes.PreviousCommit == changes.Commit && !changes.InitialDeploy {
		logger.InfoKV(ctx, "No new commit found, nothing to deploy", "commit", changes.Commit)

		report.ShortCircuit = true

		if err = r.record(ctx, report); err != nil {
			return nil, err
		}

		return report, nil
	}

	if err = r.installDependencies(ctx, changes, report); err != nil {
		return nil, err
	}

	if err = r.restartServices(ctx, selection); err != nil {
		return nil, err
	}

	if err = r.verifyServices(ctx, selection); err != nil {
		return nil, err
	}

	if err = r.record(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// pull fetches remote state, force-synchronizes the working tree to the
// mainline tip and derives the change set against the previous marker.
func (r *runner) pull(ctx context.Context) (*domain.ChangeSet, error) {
	previous, err := r.markers.Load(ctx)

	hasPrevious := true

	switch {
	case err == nil:
	case errors.Is(err, marker.ErrNotFound):
		hasPrevious = false

		logger.Info(ctx, "No commit marker found, treating this as the first deploy")
	default:
		return nil, fmt.Errorf("load commit marker: %w", err)
	}

	logger.InfoKV(ctx, "Fetching remote refs", "remote", r.cfg.Remote, "branch", r.cfg.Branch)

	if err = r.vcs.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("fetch remote refs: %w", err)
	}

	// Destructive on purpose: local divergence is discarded so every deploy
	// reproduces the remote tip exactly.
	if err = r.vcs.ForceSyncToRemoteTip(ctx); err != nil {
		return nil, fmt.Errorf("force-synchronize working tree: %w", err)
	}

	head, err := r.vcs.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve deployed commit: %w", err)
	}

	changes := &domain.ChangeSet{
		PreviousCommit: previous,
		Commit:         head,
		InitialDeploy:  !hasPrevious,
	}

	switch {
	case !hasPrevious:
		if changes.Files, err = r.vcs.TrackedFiles(ctx); err != nil {
			return nil, fmt.Errorf("list tracked files: %w", err)
		}
	case previous != head:
		if changes.Files, err = r.vcs.ChangedFiles(ctx, previous, head); err != nil {
			return nil, fmt.Errorf("list changed files: %w", err)
		}
	}

	logger.InfoKV(ctx, "Working tree synchronized",
		"previous_commit", previous, "commit", head, "changed_files", len(changes.Files))

	return changes, nil
}

// installDependencies reinstalls the dependency manifest when it changed.
// Skipping is a pure cost optimization; a false "unchanged" answer would be
// a correctness bug, so matching is exact (ChangeSet.Contains).
func (r *runner) installDependencies(ctx context.Context, changes *domain.ChangeSet, report *domain.Report) error {
	if !changes.NeedsInstall(r.cfg.Manifest) {
		logger.InfoKV(ctx, "Dependency manifest unchanged, skipping install", "manifest", r.cfg.Manifest)
		return nil
	}

	logger.InfoKV(ctx, "Installing dependencies", "manifest", r.cfg.Manifest)

	if err := r.installer.UpgradeFromManifest(ctx, r.cfg.Manifest); err != nil {
		return fmt.Errorf("install dependencies: %w", err)
	}

	report.InstallRan = true

	return nil
}

// restartServices restarts each selected service in order, failing fast on
// the first error. Unknown names are warned about and still attempted.
func (r *runner) restartServices(ctx context.Context, selection []domain.Service) error {
	if len(selection) == 0 {
		return nil
	}

	if err := r.units.ReloadUnits(ctx); err != nil {
		return fmt.Errorf("reload unit definitions: %w", err)
	}

	for _, svc := range selection {
		if svc.Status == domain.UnknownWarned {
			logger.WarnKV(ctx, "Service is not in the canonical list, restarting anyway", "service", svc.Name)
		}

		logger.InfoKV(ctx, "Restarting service", "service", svc.Name)

		if err := r.units.Restart(ctx, svc.Name); err != nil {
			r.logStatusDetail(ctx, svc.Name)

			return fmt.Errorf("%w: %s: %s", errRestartFailed, svc.Name, err)
		}

		// Rate-limit restarts so the service manager and dependent health
		// checks are not overwhelmed.
		r.pause(ctx, r.cfg.RestartPause)
	}

	return nil
}

// verifyServices confirms every selected service reports active. Catches
// units that restart cleanly and then crash right away.
func (r *runner) verifyServices(ctx context.Context, selection []domain.Service) error {
	for _, svc := range selection {
		active, err := r.units.IsActive(ctx, svc.Name)
		if err != nil {
			return fmt.Errorf("query service state: %s: %w", svc.Name, err)
		}

		if !active {
			r.logStatusDetail(ctx, svc.Name)

			return fmt.Errorf("%w: %s", errServiceNotActive, svc.Name)
		}

		logger.InfoKV(ctx, "Service is active", "service", svc.Name)
	}

	return nil
}

// record appends the journal entry and then overwrites the commit marker.
// The marker is written last: it must only ever point at journaled runs.
func (r *runner) record(ctx context.Context, report *domain.Report) error {
	report.FinishedAt = r.now()

	entry := &domain.Record{
		RunID:     report.RunID,
		Timestamp: report.FinishedAt,
		Commit:    report.Commit,
		Services:  report.Services,
	}

	if err := r.journal.Append(ctx, entry); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}

	if err := r.markers.Save(ctx, report.Commit); err != nil {
		return fmt.Errorf("save commit marker: %w", err)
	}

	logger.InfoKV(ctx, "Deployment recorded", "commit", report.Commit, "services", report.Services)

	return nil
}

// logStatusDetail surfaces the unit's status output for diagnosis before the
// run aborts.
func (r *runner) logStatusDetail(ctx context.Context, unit string) {
	detail, err := r.units.Status(ctx, unit)
	if err != nil {
		logger.WarnKV(ctx, "Unable to fetch service status detail", "service", unit, "error", err)
		return
	}

	logger.ErrorKV(ctx, "Service status detail", "service", unit, "status", detail)
}
