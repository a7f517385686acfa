// Package scratch provides per-request scratch directories that are removed when
// the request finishes.
package scratch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Workspace is a uniquely named directory under a shared scratch root.
// Callers defer Close immediately after New so cleanup runs on every exit path.
type Workspace struct {
	id     string
	dir    string
	logger zerolog.Logger
}

// New creates the scratch root if needed and a fresh workspace inside it.
func New(root string, logger zerolog.Logger) (*Workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch root: %w", err)
	}

	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return &Workspace{
		id:     id,
		dir:    dir,
		logger: logger.With().Str("workspace", id).Logger(),
	}, nil
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string {
	return w.id
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

// Save copies r into a file called name inside the workspace and returns its path.
func (w *Workspace) Save(name string, r io.Reader) (string, error) {
	path := w.Path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	return path, nil
}

// Close deletes every file in the workspace and then the workspace itself.
// Failures are logged and returned joined; callers on the request path ignore them.
func (w *Workspace) Close() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		w.logger.Error().Err(err).Msg("Error listing temporary files")
		return err
	}

	var errs []error
	for _, entry := range entries {
		path := filepath.Join(w.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			w.logger.Error().Err(err).Str("path", path).Msg("Error removing temporary file")
			errs = append(errs, err)
		}
	}
	if err := os.Remove(w.dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.logger.Error().Err(err).Str("path", w.dir).Msg("Error removing workspace")
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	w.logger.Info().Int("files", len(entries)).Msg("Temporary files deleted successfully")
	return nil
}
