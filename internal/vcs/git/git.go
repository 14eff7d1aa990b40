package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/voicerhq/voicer-deploy/internal/cmdrunner"
)

// Client drives the git CLI against a single working copy.
type Client struct {
	// remote is the git remote holding the mainline branch.
	remote string
	// branch is the mainline branch name.
	branch string
	// run executes git subprocesses.
	run cmdrunner.Runner
}

// NewClient creates a git client for the working copy the runner points at.
func NewClient(runner cmdrunner.Runner, remote, branch string) *Client {
	return &Client{
		remote: remote,
		branch: branch,
		run:    runner,
	}
}

// Head resolves the current commit identifier of the working copy.
func (c *Client) Head(ctx context.Context) (string, error) {
	output, err := c.run.Run(ctx, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %s: %w", strings.TrimSpace(string(output)), err)
	}

	return strings.TrimSpace(string(output)), nil
}

// Fetch downloads all refs from every configured remote.
func (c *Client) Fetch(ctx context.Context) error {
	output, err := c.run.Run(ctx, "git", "fetch", "--all")
	if err != nil {
		return fmt.Errorf("git fetch: %s: %w", strings.TrimSpace(string(output)), err)
	}

	return nil
}

// ForceSyncToRemoteTip hard-resets the working tree to the remote mainline
// tip. Destructive: any local divergence is discarded so deploys are
// reproducible.
func (c *Client) ForceSyncToRemoteTip(ctx context.Context) error {
	target := c.remote + "/" + c.branch

	output, err := c.run.Run(ctx, "git", "reset", "--hard", target)
	if err != nil {
		return fmt.Errorf("git reset --hard %s: %s: %w", target, strings.TrimSpace(string(output)), err)
	}

	return nil
}

// ChangedFiles lists the paths differing between two commits.
func (c *Client) ChangedFiles(ctx context.Context, from, to string) ([]string, error) {
	output, err := c.run.Run(ctx, "git", "diff", "--name-only", from, to)
	if err != nil {
		return nil, fmt.Errorf("git diff %s %s: %s: %w", from, to, strings.TrimSpace(string(output)), err)
	}

	return splitLines(string(output)), nil
}

// TrackedFiles lists every file tracked in the working copy.
func (c *Client) TrackedFiles(ctx context.Context) ([]string, error) {
	output, err := c.run.Run(ctx, "git", "ls-files")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %s: %w", strings.TrimSpace(string(output)), err)
	}

	return splitLines(string(output)), nil
}

// splitLines turns command output into a slice of non-empty lines.
func splitLines(output string) []string {
	var lines []string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
