package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds deployment settings shared by the deploy binary.
type Config struct {
	// InstallRoot is the working copy of the platform source tree.
	InstallRoot string `yaml:"install_root"`
	// Remote is the git remote holding the mainline branch.
	Remote string `yaml:"remote"`
	// Branch is the mainline branch the working tree is force-synchronized to.
	Branch string `yaml:"branch"`
	// Manifest is the dependency manifest path relative to the install root.
	Manifest string `yaml:"manifest"`
	// Pip is the pip executable used to install dependencies.
	Pip string `yaml:"pip"`
	// Services is the canonical ordered list of managed systemd units.
	Services []string `yaml:"services"`
	// MarkerFile stores the last successfully deployed commit.
	MarkerFile string `yaml:"marker_file"`
	// JournalFile is the append-only deployment journal.
	JournalFile string `yaml:"journal_file"`
	// RestartPause is the pause after each successful service restart.
	RestartPause time.Duration `yaml:"restart_pause"`
	// GuardMarker enables the concurrent-run guard when set to a path.
	// Empty leaves concurrent invocations unguarded.
	GuardMarker string `yaml:"guard_marker"`
}

const (
	// DefaultConfigFilename is the default filename for deployment settings.
	DefaultConfigFilename = "voicer-deploy-settings.yaml"

	// DefaultRemote is the git remote used when none is configured.
	DefaultRemote = "origin"

	// DefaultBranch is the mainline branch used when none is configured.
	DefaultBranch = "main"

	// DefaultManifest is the dependency manifest path relative to the install root.
	DefaultManifest = "requirements.txt"

	// DefaultPip is the pip executable inside the platform virtualenv.
	DefaultPip = "/opt/voicer/venv/bin/pip"

	// DefaultMarkerFilename stores the last deployed commit.
	DefaultMarkerFilename = "/var/lib/voicer/last-deploy-commit"

	// DefaultJournalFilename is the append-only deployment journal.
	DefaultJournalFilename = "/var/log/voicer/deploy.log"

	// DefaultRestartPause is the pause after each successful restart.
	DefaultRestartPause = 2 * time.Second

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
)

// DefaultServices is the canonical service list used when none is configured.
//
//nolint:gochecknoglobals // Canonical reference list, read-only.
var DefaultServices = []string{"voicer-main", "voicer-worker", "voicer-bot"}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInstallRootRequired is returned when the install root is missing.
	errInstallRootRequired = errors.New("install root must be provided")
	// errNegativeRestartPause is returned when the restart pause is negative.
	errNegativeRestartPause = errors.New("restart pause must not be negative")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.InstallRoot == "" {
		return errInstallRootRequired
	}

	if cfg.RestartPause < 0 {
		return errNegativeRestartPause
	}

	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}

	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}

	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}

	if cfg.Pip == "" {
		cfg.Pip = DefaultPip
	}

	if len(cfg.Services) == 0 {
		cfg.Services = append([]string(nil), DefaultServices...)
	}

	if cfg.MarkerFile == "" {
		cfg.MarkerFile = DefaultMarkerFilename
	}

	if cfg.JournalFile == "" {
		cfg.JournalFile = DefaultJournalFilename
	}

	if cfg.RestartPause == 0 {
		cfg.RestartPause = DefaultRestartPause
	}

	return nil
}
