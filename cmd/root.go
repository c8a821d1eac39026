package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/astrocli/astro/core"
	"github.com/astrocli/astro/core/config"
	"github.com/astrocli/astro/core/engine"
	"github.com/astrocli/astro/core/logger"
)

var (
	cfgPath     string
	scriptsPath string
	debug       bool
)

// loadConfig reads config.yaml (if present) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("scripts_path") {
		configuration.ScriptsPath = scriptsPath
	}
	if debug {
		configuration.Debug = true
	}

	return configuration, configuration.Validate()
}

// newSession builds the engine session plus its event logger.
func newSession(configuration *config.Configuration) (*engine.Session, error) {
	appLog, err := configuration.OpenAppLog()
	if err != nil {
		return nil, err
	}

	sessionLog := logger.NewJSONLinesLogRecorder(appLog).NewSession()
	return engine.NewSession(configuration, sessionLog)
}

// rootCmd starts the interactive shell when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "astro",
	Short: "Interactive shell for composing image-processing pipelines",
	Long: `Astro is an interactive shell that composes built-in commands, user
scripts, and introspection commands into pipelines with sequential ('|') and
parallel (',') operators and explicit grouping ('()').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		session, err := newSession(configuration)
		if err != nil {
			return err
		}
		defer session.Close()

		shell, err := core.NewShell(configuration, session)
		if err != nil {
			return err
		}
		defer shell.Close()

		return shell.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config directory")
	rootCmd.PersistentFlags().StringVar(&scriptsPath, "scripts_path", "./scripts", "directory containing user scripts")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print the parsed functor tree before evaluating")
}
