package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pileus-cli/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.ScriptStore = (*Writer)(nil)

// ScriptFileName is the name of the saved script inside its folder.
const ScriptFileName = "setup.sh"

// Writer saves scripts below a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a writer rooted at baseDir. Empty means the working directory.
func NewWriter(baseDir string) *Writer {
	if baseDir == "" {
		baseDir = "."
	}
	return &Writer{baseDir: baseDir}
}

// Save writes script to <baseDir>/<folder>/setup.sh, replacing any previous file.
func (w *Writer) Save(folder, script string) (string, error) {
	if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return "", fmt.Errorf("script folder %q: %w", folder, domain.ErrInvalidInput)
	}

	dir := filepath.Join(w.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create script folder: %w", err)
	}

	path := filepath.Join(dir, ScriptFileName)
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o755))
	if err != nil {
		return "", fmt.Errorf("create pending script file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug("cleanup pending script file: %v", err)
		}
	}()

	if _, err := pending.WriteString(script); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return "", fmt.Errorf("atomically replace script: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, nil
}
