package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/astrocli/astro/core/config"
)

// initCmd writes a default configuration into the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shell configuration in the current directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fs := afero.NewOsFs()
		configuration := config.Default()

		if err := config.Write(fs, cfgPath, configuration); err != nil {
			return err
		}
		if err := fs.MkdirAll(configuration.ScriptsPath, 0755); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and created %s\n",
			config.ConfigurationName, configuration.ScriptsPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
