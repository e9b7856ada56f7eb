package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/osresearch/p5.projection/internal/calibration"
	"github.com/osresearch/p5.projection/internal/config"
	"github.com/osresearch/p5.projection/internal/projection"
)

const (
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
	outputFormatText = "text"
)

// solveResult is the serializable output of a solve.
type solveResult struct {
	Calibration calibration.Calibration `json:"calibration" yaml:"calibration"`
	Forward     [9]float64              `json:"forward" yaml:"forward"`
	Inverse     [9]float64              `json:"inverse" yaml:"inverse"`
	Render      [16]float64             `json:"render" yaml:"render"`
}

// solveCmd represents the solve command.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the homography for a calibration file",
	Long: `Load a four-corner calibration and solve both projection directions,
printing the forward matrix, the independently solved inverse matrix and
the column-major 4x4 render matrix.

Examples:
  projection solve
  projection solve --calibration cal/left.yaml --format json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case outputFormatText, outputFormatJSON, outputFormatYAML:
		default:
			return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", format)
		}

		cal, err := loadCalibration(cfg)
		if err != nil {
			return err
		}

		mapper, err := cal.Mapper()
		if err != nil {
			return fmt.Errorf("solving calibration: %w", err)
		}

		result := solveResult{
			Calibration: cal,
			Forward:     mapper.Forward(),
			Inverse:     mapper.Inverse(),
			Render:      mapper.RenderMatrix(),
		}

		out := cmd.OutOrStdout()
		switch format {
		case outputFormatJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		case outputFormatYAML:
			return yaml.NewEncoder(out).Encode(result)
		default:
			printMatrices(cmd, mapper)
			return nil
		}
	},
}

func printMatrices(cmd *cobra.Command, mapper *projection.Mapper) {
	out := cmd.OutOrStdout()

	f := mapper.Forward()
	_, _ = fmt.Fprintln(out, "forward (canvas -> screen):")
	for r := 0; r < 3; r++ {
		_, _ = fmt.Fprintf(out, "  [%12.6f %12.6f %12.6f]\n", f[3*r], f[3*r+1], f[3*r+2])
	}

	i := mapper.Inverse()
	_, _ = fmt.Fprintln(out, "inverse (screen -> canvas):")
	for r := 0; r < 3; r++ {
		_, _ = fmt.Fprintf(out, "  [%12.6f %12.6f %12.6f]\n", i[3*r], i[3*r+1], i[3*r+2])
	}

	render := mapper.RenderMatrix()
	_, _ = fmt.Fprintln(out, "render (column-major 4x4):")
	for r := 0; r < 4; r++ {
		_, _ = fmt.Fprintf(out, "  [%12.6f %12.6f %12.6f %12.6f]\n",
			render[r], render[r+4], render[r+8], render[r+12])
	}
}

// loadCalibration reads the configured calibration file.
func loadCalibration(cfg *config.Config) (calibration.Calibration, error) {
	return calibration.Load(cfg.CalibrationFile)
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
}
