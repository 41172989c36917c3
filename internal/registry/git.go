package registry

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Clone clones url into dir if dir does not already contain a git
// working area, grounded on the same exec.Command/CombinedOutput
// pattern used by the pack's git helper for repository operations.
func Clone(url, dir string) error {
	if IsRepo(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	cmd := exec.Command("git", "clone", url, dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone %s: %s", url, strings.TrimSpace(string(out)))
	}
	return nil
}

// Fetch runs `git fetch` in dir.
func Fetch(dir string) error {
	cmd := exec.Command("git", "fetch", "--all")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git fetch in %s: %s", dir, strings.TrimSpace(string(out)))
	}
	return nil
}

// Update fetches and fast-forwards dir's current branch (`yakka update`).
func Update(dir string) error {
	if err := Fetch(dir); err != nil {
		return err
	}
	cmd := exec.Command("git", "pull", "--ff-only")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git pull in %s: %s", dir, strings.TrimSpace(string(out)))
	}
	return nil
}

// IsRepo reports whether dir is inside a git working area.
func IsRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// CurrentCommit returns dir's checked-out commit hash.
func CurrentCommit(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse in %s: %w", dir, err)
	}
	return strings.TrimSpace(string(out)), nil
}
