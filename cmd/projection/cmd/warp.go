package cmd

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/osresearch/p5.projection/internal/common"
	"github.com/osresearch/p5.projection/internal/warp"
)

// warpCmd represents the warp command.
var warpCmd = &cobra.Command{
	Use:   "warp INPUT",
	Short: "Warp an image through the calibration",
	Long: `Render a drawing-surface image skewed onto its screen quad, or with
--unproject straighten the screen quad back into a rectangle.

Supported formats: JPEG, PNG, BMP, TIFF, GIF

Examples:
  projection warp canvas.png --out frame.png
  projection warp photo.jpg --unproject --out straight.png`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		img, err := imaging.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input image: %w", err)
		}

		cal, err := loadCalibration(cfg)
		if err != nil {
			return err
		}
		mapper, err := cal.Mapper()
		if err != nil {
			return fmt.Errorf("solving calibration: %w", err)
		}

		frameW, _ := cmd.Flags().GetInt("frame-width")
		frameH, _ := cmd.Flags().GetInt("frame-height")
		if frameW <= 0 {
			frameW = cfg.Warp.FrameWidth
		}
		if frameH <= 0 {
			frameH = cfg.Warp.FrameHeight
		}

		unproject, _ := cmd.Flags().GetBool("unproject")
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = "warped.png"
		}

		timer := common.NewNamedTimer("warp")
		var dst *image.NRGBA
		if unproject {
			dst = warp.Unproject(img, mapper, cal.Width, cal.Height)
		} else {
			dst = warp.Project(img, mapper, frameW, frameH)
		}
		slog.Debug("Warp finished", "duration", timer.Stop(), "unproject", unproject)
		if dst == nil {
			return fmt.Errorf("warp produced no output")
		}
		if err := imaging.Save(dst, outPath); err != nil {
			return fmt.Errorf("saving output image: %w", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warpCmd)
	warpCmd.Flags().StringP("out", "o", "warped.png", "output PNG path")
	warpCmd.Flags().Bool("unproject", false, "straighten the screen quad instead of projecting onto it")
	warpCmd.Flags().Int("frame-width", 0, "output frame width (defaults to warp.frame_width)")
	warpCmd.Flags().Int("frame-height", 0, "output frame height (defaults to warp.frame_height)")
}
