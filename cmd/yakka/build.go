package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/embedded-awesome/yakka/internal/cliargs"
	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/cmdutil"
	"github.com/embedded-awesome/yakka/internal/config"
	oerrors "github.com/embedded-awesome/yakka/internal/errors"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/project"
	"github.com/embedded-awesome/yakka/internal/registry"
)

// runBuild is the root command's default action (§6): classify every
// positional argument into components/features/commands, resolve the
// project, match blueprints against the target database, and run the
// requested build commands.
func runBuild(args []string, global *cmdtypes.GlobalConfig, flags *cmdutil.BuildFlags) error {
	tokens := cliargs.Parse(args)
	components, features, commands := cliargs.Split(tokens)
	features = append(features, flags.With...)

	projectDir, err := os.Getwd()
	if err != nil {
		return err
	}

	yakkaConfig := global.YakkaConfig
	projectName := flags.ProjectName
	if projectName == "" {
		projectName = yakkaConfig.ProjectName
	}
	if err := config.ValidateProjectName(projectName); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitConfigError, Err: err}
	}

	outputDir := filepath.Join(yakkaConfig.OutputDir, projectName)
	home, err := yakkaHome()
	if err != nil {
		return err
	}

	registries, _, err := loadRegistries()
	if err != nil {
		return err
	}
	if flags.Fetch {
		if err := fetchAllRegistries(home); err != nil {
			return err
		}
	}

	dataFragments, err := collectDataFragments(projectDir, projectName, flags)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitConfigError, Err: err}
	}

	run := config.RunOptions{
		Refresh:     flags.Refresh,
		NoEval:      flags.NoEval,
		IgnoreEval:  flags.IgnoreEval,
		NoOutput:    flags.NoOutput,
		Fetch:       flags.Fetch,
		ProjectName: projectName,
		With:        features,
		Data:        flags.Data,
		NoSLCC:      flags.NoSLCC,
		NoYakka:     flags.NoYakka,
	}

	var previousData map[string]any
	if !flags.Refresh {
		previousData, err = project.LoadPreviousSummaryData(outputDir)
		if err != nil {
			return &oerrors.ExitError{Code: oerrors.ExitConfigError, Err: err}
		}
	}

	report, buildErr := project.Build(context.Background(), project.Request{
		Components:    components,
		Features:      features,
		Commands:      commands,
		ProjectDir:    projectDir,
		YakkaHome:     home,
		OutputDir:     outputDir,
		Registries:    registries,
		Run:           run,
		DataFragments: dataFragments,
		PreviousData:  previousData,
	})

	if buildErr != nil {
		cmdutil.PrintResolverError("build failed", buildErr)
		return &oerrors.ExitError{Code: oerrors.CodeOf(buildErr), Err: buildErr, Printed: true}
	}

	if report == nil {
		return nil
	}

	printReport(projectName, report)
	return nil
}

func printReport(projectName string, report *project.Report) {
	matches := make([]cmdutil.BlueprintMatch, 0, len(report.BlueprintMatches))
	for _, m := range report.BlueprintMatches {
		matches = append(matches, cmdutil.BlueprintMatch{Target: m.Target, Ref: m.Ref})
	}
	cmdutil.PrintBlueprintMatches(projectName, matches, report.Unmatched)

	if len(report.TaskOutcomes) == 0 {
		return
	}

	outcomes := make([]cmdutil.TaskOutcome, 0, len(report.TaskOutcomes))
	var failures []cmdutil.TaskOutcome
	for _, o := range report.TaskOutcomes {
		outcome := cmdutil.TaskOutcome{Target: o.Target, Status: o.Status, Message: o.Message}
		outcomes = append(outcomes, outcome)
		if o.Status == "failed" {
			failures = append(failures, outcome)
		}
	}
	cmdutil.PrintTaskOutcomes(outcomes)
	cmdutil.PrintTaskFailures(failures)
}

// collectDataFragments assembles the -d/--data overrides and, unless
// --no-yakka suppresses it, the project's own `<project>.yakka` file
// (§6), in the order later fragments override earlier ones.
func collectDataFragments(projectDir, projectName string, flags *cmdutil.BuildFlags) ([]map[string]any, error) {
	var fragments []map[string]any

	if !flags.NoYakka {
		overridePath := filepath.Join(projectDir, projectName+".yakka")
		overrides, err := config.LoadProjectOverrides(overridePath)
		if err != nil {
			return nil, err
		}
		if len(overrides) > 0 {
			fragments = append(fragments, overrides)
		}
	}

	for _, raw := range flags.Data {
		fragment, err := config.ParseDataFragment(raw)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

// fetchAllRegistries updates every already-cloned component repo under
// home/repos before resolving (-f/--fetch), mirroring the original
// fetch action's "refresh what we already have" half; cloning repos for
// components not yet seen happens lazily through RegistryLoader.Load as
// the resolver encounters them.
func fetchAllRegistries(home string) error {
	reposDir := filepath.Join(home, "repos")
	entries, err := os.ReadDir(reposDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(reposDir, entry.Name())
		output.Info("updating component repo", "component", entry.Name())
		err := output.WithSpinner(context.Background(), "Updating "+entry.Name(), func() error {
			return registry.Update(dir)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
