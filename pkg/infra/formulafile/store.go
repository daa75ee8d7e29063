package formulafile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/m-mizutani/formulasync/pkg/domain/interfaces"
	"github.com/m-mizutani/formulasync/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// BackupSuffix is appended to the formula path for the pre-edit copy
const BackupSuffix = ".bak"

type config struct {
	output io.Writer
	diff   bool
}

// Option is a functional option for Store configuration
type Option func(*config)

// WithOutput sets where previews are written
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithDiff makes Preview print a unified diff instead of the full content
func WithDiff(diff bool) Option {
	return func(c *config) {
		c.diff = diff
	}
}

type store struct {
	output io.Writer
	diff   bool
}

// New creates a FormulaStore backed by the local file system
func New(opts ...Option) interfaces.FormulaStore {
	cfg := &config{
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &store{
		output: cfg.output,
		diff:   cfg.diff,
	}
}

func (s *store) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", goerr.Wrap(err, "formula file not found",
				goerr.V("path", path), goerr.T(model.ErrTagFormulaNotFound))
		}
		return "", goerr.Wrap(err, "failed to stat formula file", goerr.V("path", path))
	}
	if info.IsDir() {
		return "", goerr.New("formula path is a directory",
			goerr.V("path", path), goerr.T(model.ErrTagFormulaNotFound))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read formula file", goerr.V("path", path))
	}
	return string(data), nil
}

// Commit copies the current file to path+".bak" and then overwrites path.
// The write is not atomic.
func (s *store) Commit(path, content string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to stat formula file", goerr.V("path", path))
	}
	mode := info.Mode().Perm()

	original, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read formula file", goerr.V("path", path))
	}

	backupPath := path + BackupSuffix
	if err := os.WriteFile(backupPath, original, mode); err != nil {
		return "", goerr.Wrap(err, "failed to write backup file", goerr.V("path", backupPath))
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return backupPath, goerr.Wrap(err, "failed to write formula file",
			goerr.V("path", path), goerr.V("backup", backupPath))
	}

	return backupPath, nil
}

func (s *store) Preview(path, original, updated string) error {
	if !s.diff {
		if _, err := io.WriteString(s.output, updated); err != nil {
			return goerr.Wrap(err, "failed to write preview")
		}
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(path), original, updated)
	if len(edits) == 0 {
		if _, err := fmt.Fprintf(s.output, "no changes to %s\n", path); err != nil {
			return goerr.Wrap(err, "failed to write preview")
		}
		return nil
	}

	unified := gotextdiff.ToUnified(path, path+" (updated)", original, edits)
	if _, err := fmt.Fprint(s.output, unified); err != nil {
		return goerr.Wrap(err, "failed to write preview")
	}
	return nil
}
