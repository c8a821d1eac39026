package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrocli/astro/core/parse"
)

// execCmd evaluates one pipeline without starting the prompt. Useful for
// scripting the shell itself.
var execCmd = &cobra.Command{
	Use:   "exec \"<pipeline>\"",
	Short: "Evaluate a single pipeline and exit.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		line := args[0]

		configuration, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		session, err := newSession(configuration)
		if err != nil {
			return err
		}
		defer session.Close()

		node, err := session.Parse(line)
		if err != nil {
			return err
		}
		if configuration.Debug {
			fmt.Fprintln(cmd.ErrOrStderr(), parse.Visualize(node))
		}

		result, err := session.RunTree(cmd.Context(), line, node)
		if err != nil {
			return err
		}

		rendered, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(rendered))

		if !result.IsSuccess {
			return errors.New(result.ErrorMessage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
