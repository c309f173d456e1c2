package script

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Ensure Opener implements the interface.
var _ driven.FolderOpener = (*Opener)(nil)

const (
	osDarwin  = "darwin"
	osWindows = "windows"
)

// Opener opens folders with the platform file browser.
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewOpener creates an opener for the current platform.
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Open opens path. It must be an existing directory.
func (o *Opener) Open(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("open folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("open folder: %s is not a directory", path)
	}

	name, args := o.command(path)
	logger.Info("Opening folder: %s", path)
	if err := o.run(name, args...); err != nil {
		// explorer.exe exits non-zero even when it opened the window.
		var exitErr *exec.ExitError
		if o.goos == osWindows && errors.As(err, &exitErr) {
			return nil
		}
		logger.Warn("Could not open folder: %v", err)
		return fmt.Errorf("open folder %s: %w", path, err)
	}
	logger.Info("Opened folder: %s", path)
	return nil
}

func (o *Opener) command(path string) (string, []string) {
	switch o.goos {
	case osDarwin:
		return "open", []string{path}
	case osWindows:
		return "explorer", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
