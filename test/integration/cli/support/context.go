// Package support holds the shared state and step definitions for the
// CLI feature tests.
package support

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/osresearch/p5.projection/cmd/projection/cmd"
)

// TestContext holds the state for integration tests. Commands run
// in-process through the root cobra command, so each scenario resets
// viper before executing anything.
type TestContext struct {
	// Command execution state
	LastCommand  string
	LastOutput   string
	LastError    error
	LastDuration time.Duration

	// Test environment
	TempDir string

	// Test artifacts
	CreatedFiles []string
}

// NewTestContext creates a new test context with a fresh temp directory.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "projection-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &TestContext{
		TempDir:      tempDir,
		CreatedFiles: []string{},
	}, nil
}

// Cleanup removes all temporary files and directories created during tests.
func (testCtx *TestContext) Cleanup() error {
	var errors []error

	for _, file := range testCtx.CreatedFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			errors = append(errors, fmt.Errorf("failed to remove file %s: %w", file, err))
		}
	}

	if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
		errors = append(errors, fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("cleanup errors: %v", errors)
	}
	return nil
}

// TrackFile adds a file to be cleaned up after the scenario.
func (testCtx *TestContext) TrackFile(filename string) {
	testCtx.CreatedFiles = append(testCtx.CreatedFiles, filename)
}

// TempPath returns a path inside the scenario temp directory.
func (testCtx *TestContext) TempPath(name string) string {
	return filepath.Join(testCtx.TempDir, name)
}

// RunCommand executes the CLI in-process with the given arguments and
// records output and error state for later assertions.
func (testCtx *TestContext) RunCommand(args ...string) {
	root := cmd.GetRootCommand()

	// Viper retains values between executions; a reset also drops the
	// flag bindings made at init, so they are re-bound here.
	viper.Reset()
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("calibration_file", root.PersistentFlags().Lookup("calibration"))

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	start := time.Now()
	err := root.Execute()
	testCtx.LastDuration = time.Since(start)

	testCtx.LastCommand = fmt.Sprintf("projection %v", args)
	testCtx.LastOutput = buf.String()
	testCtx.LastError = err
}
