package support

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/cucumber/godog"

	"github.com/osresearch/p5.projection/internal/calibration"
	"github.com/osresearch/p5.projection/internal/geometry"
	"github.com/osresearch/p5.projection/internal/testutil"
)

// RegisterCalibrationSteps registers the step definitions for the
// calibration workflow features.
func (testCtx *TestContext) RegisterCalibrationSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a calibration file "([^"]*)" with the projector screen quad$`, testCtx.aProjectorCalibrationFile)
	sc.Step(`^a degenerate calibration file "([^"]*)"$`, testCtx.aDegenerateCalibrationFile)
	sc.Step(`^no file "([^"]*)" exists$`, testCtx.noFileExists)
	sc.Step(`^a (\d+)x(\d+) checkerboard image "([^"]*)"$`, testCtx.aCheckerboardImage)
	sc.Step(`^I run "projection ([^"]*)"$`, testCtx.iRunProjection)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)
	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should hold a valid calibration$`, testCtx.theFileShouldHoldValidCalibration)
}

func (testCtx *TestContext) aProjectorCalibrationFile(name string) error {
	cal := calibration.Default(1920, 1080)
	cal.Screen = testutil.ProjectorQuad()
	return cal.Save(testCtx.TempPath(name))
}

func (testCtx *TestContext) aDegenerateCalibrationFile(name string) error {
	// Assembled by hand because Save rejects collinear corners
	content := `width: 100
height: 100
canvas:
  - {x: 0, y: 0}
  - {x: 0, y: 100}
  - {x: 100, y: 0}
  - {x: 100, y: 100}
screen:
  - {x: 0, y: 0}
  - {x: 10, y: 0}
  - {x: 20, y: 0}
  - {x: 5, y: 5}
`
	return os.WriteFile(testCtx.TempPath(name), []byte(content), 0o600)
}

func (testCtx *TestContext) noFileExists(name string) error {
	err := os.Remove(testCtx.TempPath(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (testCtx *TestContext) aCheckerboardImage(width, height int, name string) error {
	img := testutil.Checkerboard(width, height, 8)
	file, err := os.Create(testCtx.TempPath(name))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	return png.Encode(file, img)
}

// iRunProjection runs the CLI with the given argument string. Any
// argument starting with "@" is resolved against the scenario temp
// directory so features can reference files created by earlier steps.
func (testCtx *TestContext) iRunProjection(argLine string) error {
	args := strings.Fields(argLine)
	for i, arg := range args {
		if strings.HasPrefix(arg, "@") {
			args[i] = testCtx.TempPath(strings.TrimPrefix(arg, "@"))
		}
	}
	testCtx.RunCommand(args...)
	return nil
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("expected success, got error: %v (output: %s)",
			testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastError == nil {
		return fmt.Errorf("expected failure, command succeeded with output: %s", testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastOutput, expected) {
		return fmt.Errorf("output %q does not contain %q", testCtx.LastOutput, expected)
	}
	return nil
}

func (testCtx *TestContext) theErrorShouldMention(expected string) error {
	if testCtx.LastError == nil {
		return fmt.Errorf("expected an error mentioning %q, command succeeded", expected)
	}
	if !strings.Contains(testCtx.LastError.Error(), expected) {
		return fmt.Errorf("error %q does not mention %q", testCtx.LastError.Error(), expected)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldExist(name string) error {
	if _, err := os.Stat(testCtx.TempPath(name)); err != nil {
		return fmt.Errorf("expected file %s: %w", name, err)
	}
	return nil
}

func (testCtx *TestContext) theFileShouldHoldValidCalibration(name string) error {
	cal, err := calibration.Load(testCtx.TempPath(name))
	if err != nil {
		return err
	}
	if cal.Canvas == (geometry.Quad{}) {
		return fmt.Errorf("calibration in %s has an empty canvas quad", name)
	}
	return nil
}
