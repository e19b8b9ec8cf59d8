package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

var outputModes = []string{"", "auto", "tui", "linear"}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the project and rewrite path aliases",
		Long: "Cleans the output directory, runs the compiler and the alias resolver once,\n" +
			"and with --watch keeps both running while mirroring source deletions.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			project, _ := cmd.Flags().GetString("project")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			if strings.HasPrefix(project, "-") {
				return zerr.With(zerr.Wrap(domain.ErrUsage, "flag needs an argument: 'p' in -p"), "value", project)
			}

			if ci {
				outputMode = "linear"
			}
			if !slices.Contains(outputModes, outputMode) {
				return zerr.With(zerr.Wrap(domain.ErrUsage,
					fmt.Sprintf("unknown output mode %q", outputMode)), "allowed", "auto, tui, linear")
			}

			return c.app.Build(cmd.Context(), domain.RunArgs{
				Watch:      watch,
				Project:    project,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Keep the compiler and alias resolver running and mirror deletions")
	cmd.Flags().StringP("project", "p", "", "Path to tsconfig.json or its directory (default: discovered from cwd)")
	cmd.Flags().StringP("output-mode", "o", "", "Output mode: auto, tui, or linear (default from tsbuild.yaml)")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}
