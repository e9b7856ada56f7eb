package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osresearch/p5.projection/internal/calibration"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fresh identity calibration file",
	Long: `Create a calibration file mapping the drawing surface onto itself,
the starting point before dragging corners into place.

Examples:
  projection init
  projection init --calibration cal/left.yaml --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfg.CalibrationFile); err == nil && !force {
			return fmt.Errorf("calibration file already exists: %s (use --force to overwrite)", cfg.CalibrationFile)
		}

		cal := calibration.Default(cfg.Surface.Width, cfg.Surface.Height)
		if err := cal.Save(cfg.CalibrationFile); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.CalibrationFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing calibration file")
}
