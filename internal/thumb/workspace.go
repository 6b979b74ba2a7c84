package thumb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"getthumb/internal/logging"
)

// Workspace is the directory holding one run's intermediate images.
type Workspace struct {
	Dir string
	// Ephemeral workspaces are removed by Close.
	Ephemeral bool
}

// OpenWorkspace creates the workspace for a video. With keep set it is the
// persistent directory {outputDir}/{stem}; otherwise a fresh temporary
// directory under tempRoot (os.TempDir when empty).
func OpenWorkspace(outputDir, stem string, keep bool, tempRoot string) (*Workspace, error) {
	if keep {
		dir := filepath.Join(outputDir, stem)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create workspace %s: %w", dir, err)
		}
		logging.Debug("Using persistent workspace: %s", dir)
		return &Workspace{Dir: dir}, nil
	}

	dir, err := os.MkdirTemp(tempRoot, "getthumb-")
	if err != nil {
		return nil, fmt.Errorf("create temporary workspace: %w", err)
	}
	logging.Debug("Using temporary workspace: %s", dir)
	return &Workspace{Dir: dir, Ephemeral: true}, nil
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Rel returns path relative to the workspace when it lies directly inside
// it, and path unchanged otherwise.
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return path
	}
	return rel
}

// Close removes an ephemeral workspace and everything in it. It is safe to
// call more than once. Persistent workspaces are left untouched.
func (w *Workspace) Close() error {
	if !w.Ephemeral {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("remove workspace %s: %w", w.Dir, err)
	}
	logging.Debug("Removed temporary workspace: %s", w.Dir)
	return nil
}
