package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// mapCmd represents the map command.
var mapCmd = &cobra.Command{
	Use:   "map X Y",
	Short: "Map a point through the calibration",
	Long: `Map a drawing-surface point onto the screen quad, or with --inverse a
screen point back onto the drawing surface.

Examples:
  projection map 960 540
  projection map -700 -400 --inverse`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid x coordinate %q: %w", args[0], err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid y coordinate %q: %w", args[1], err)
		}

		cal, err := loadCalibration(GetConfig())
		if err != nil {
			return err
		}
		mapper, err := cal.Mapper()
		if err != nil {
			return fmt.Errorf("solving calibration: %w", err)
		}

		inverse, _ := cmd.Flags().GetBool("inverse")
		var u, v float64
		if inverse {
			u, v = mapper.MapInverse(x, y)
		} else {
			u, v = mapper.MapForward(x, y)
		}

		if u < -1e8 && v < -1e8 {
			return errors.New("point maps to infinity for this calibration")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.6f %.6f\n", u, v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().BoolP("inverse", "i", false, "map from screen to drawing surface")
}
