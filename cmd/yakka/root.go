package main

import (
	"github.com/spf13/cobra"

	"github.com/embedded-awesome/yakka/internal/cmdtypes"
	"github.com/embedded-awesome/yakka/internal/cmdutil"
	"github.com/embedded-awesome/yakka/internal/config"
	"github.com/embedded-awesome/yakka/internal/output"
	"github.com/embedded-awesome/yakka/internal/version"
)

var (
	flagConfig    string
	flagRegistry  string
	flagVerbose   bool
	flagLogFormat string
)

// newRootCmd builds the yakka root command. Unlike a typical cobra CLI
// with an explicit subcommand per action, yakka's default action (no
// action name given, or a name that isn't one of the built-ins) is a
// build: every other positional argument is classified by
// internal/cliargs as a component, feature or build command (§6).
func newRootCmd() *cobra.Command {
	global := &cmdtypes.GlobalConfig{}

	root := &cobra.Command{
		Use:   "yakka [component...] [+feature...] [command!...]",
		Short: "Component-oriented build orchestrator",
		Long: `yakka resolves a set of components and features into a project,
matches blueprints against the resulting target set, and runs the build
commands requested on the command line.

Bare tokens are component ids, +name requests an SLC feature, and
name! runs a build command against the resolved target set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initGlobal(cmd, global)
		},
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the global config file (env: YAKKA_CONFIG)")
	root.PersistentFlags().StringVar(&flagRegistry, "registry", "", "default registry to consult (env: YAKKA_REGISTRY)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "increase output verbosity")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log output format: text|json")

	buildFlags := &cmdutil.BuildFlags{}
	buildFlags.AddTo(root)
	root.Args = cobra.ArbitraryArgs
	root.RunE = func(_ *cobra.Command, args []string) error {
		return runBuild(args, global, buildFlags)
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRegisterCmd(global))
	root.AddCommand(newListCmd(global))
	root.AddCommand(newUpdateCmd(global))
	root.AddCommand(newRemoveCmd(global))
	root.AddCommand(newGitCmd(global))
	root.AddCommand(newFetchCmd(global))
	root.AddCommand(newServeCmd(global))

	return root
}

// initGlobal resolves the flag/env/config precedence chain once and
// stores the result on global for every action constructor to read.
func initGlobal(_ *cobra.Command, global *cmdtypes.GlobalConfig) error {
	output.SetupLogging(output.LogConfig{Verbose: flagVerbose, JSON: flagLogFormat == "json"})

	yakkaConfig, err := config.LoadYakkaConfig(config.LoaderOptions{
		RegistryFlag: flagRegistry,
		ConfigFlag:   flagConfig,
	}, config.RunOptions{})
	if err != nil {
		return err
	}
	if err := config.NewValidator().Validate(yakkaConfig); err != nil {
		return err
	}

	global.YakkaConfig = yakkaConfig
	global.ConfigPath = flagConfig
	global.Registry = yakkaConfig.Registry
	global.RegistryFlag = flagRegistry
	global.Verbose = flagVerbose

	output.Debug("yakka started", "version", version.Get().Version, "registry", global.Registry)
	return nil
}
