package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/registry"
)

// newGitCmd builds `yakka git <component> <git-args>...`, a thin
// passthrough to git against the component's cloned repo with its
// worktree pointed at the project's local components directory.
// Flag parsing is disabled so git's own flags reach git unmodified.
func newGitCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "git <component> [git-args...]",
		Short:              "Run git against a component's cloned repo",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGit(cmd, args[0], args[1:])
		},
	}
	return cmd
}

func runGit(cmd *cobra.Command, component string, gitArgs []string) error {
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	gitDir := registry.RepoDir(home, component) + "/.git"
	workTree := "components/" + component

	fullArgs := append([]string{
		"--git-dir=" + gitDir,
		"--work-tree=" + workTree,
	}, gitArgs...)

	git := exec.Command("git", fullArgs...)
	git.Stdout = cmd.OutOrStdout()
	git.Stderr = os.Stderr
	git.Stdin = os.Stdin

	if err := git.Run(); err != nil {
		return fmt.Errorf("git %v: %w", fullArgs, err)
	}
	return nil
}
