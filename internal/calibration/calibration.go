// Package calibration persists the four-corner correspondence between a
// drawing surface and the projected screen quad, the piece of state an
// operator tunes once per projector placement and reloads on startup.
package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osresearch/p5.projection/internal/geometry"
	"github.com/osresearch/p5.projection/internal/projection"
)

// ErrInvalid is returned for calibrations that are malformed before any
// numerics run: non-positive surface size or quads failing shape checks.
// Numerical degeneracy is reported separately by the solver.
var ErrInvalid = errors.New("calibration: invalid")

// Calibration holds the persisted correspondence set: the corners of the
// drawing surface (canvas) and where each lands on the screen. Corner
// order pairs canvas[i] with screen[i].
type Calibration struct {
	Width  int           `json:"width" yaml:"width"`
	Height int           `json:"height" yaml:"height"`
	Canvas geometry.Quad `json:"canvas" yaml:"canvas"`
	Screen geometry.Quad `json:"screen" yaml:"screen"`
}

// Default returns a calibration mapping a w x h canvas onto itself, the
// starting state before any corner has been dragged.
func Default(w, h int) Calibration {
	return Calibration{
		Width:  w,
		Height: h,
		Canvas: geometry.RectQuad(float64(w), float64(h)),
		Screen: geometry.RectQuad(float64(w), float64(h)),
	}
}

// Validate performs shape checks only; a valid calibration can still be
// numerically degenerate, which the first solve reports.
func (c Calibration) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if err := c.Canvas.Validate(); err != nil {
		return fmt.Errorf("%w: canvas quad: %s", ErrInvalid, err)
	}
	if err := c.Screen.Validate(); err != nil {
		return fmt.Errorf("%w: screen quad: %s", ErrInvalid, err)
	}
	return nil
}

// Mapper solves both projection directions for the calibration.
func (c Calibration) Mapper() (*projection.Mapper, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return projection.New(c.Canvas, c.Screen)
}

// Load reads a calibration from a YAML or JSON file, chosen by extension.
func Load(path string) (Calibration, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: caller-supplied calibration path
	if err != nil {
		return Calibration{}, fmt.Errorf("reading calibration: %w", err)
	}

	var c Calibration
	switch ext(path) {
	case ".json":
		err = json.Unmarshal(data, &c)
	default:
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return Calibration{}, fmt.Errorf("parsing calibration %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Calibration{}, err
	}
	return c, nil
}

// Save writes the calibration to a YAML or JSON file, chosen by
// extension, creating parent directories as needed.
func (c Calibration) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encoding calibration: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating calibration directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing calibration: %w", err)
	}
	return nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
