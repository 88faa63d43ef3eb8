// Package xrdbfile is the filesystem-loading collaborator for the resource
// database core: it resolves #include directives relative to the including
// file, optionally pipes files through a preprocessor, and atomically writes
// databases back to disk. The xrm package never touches the filesystem
// directly; this package is where that I/O happens.
package xrdbfile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/aretext/xrdb/xrm"
)

// ErrIncludeCycle is returned when a chain of #include directives revisits
// a file it has already loaded.
var ErrIncludeCycle = errors.New("include cycle detected")

// LoadOptions controls how Load reads each file before parsing it.
type LoadOptions struct {
	// Preprocess runs each file's contents through an external command
	// (e.g. "cpp") before parsing, such as xrdb's C-preprocessor support.
	// A nil Preprocess runs no preprocessor.
	Preprocess func(path, text string) (string, error)
}

// Load reads path, resolving any #include directives relative to path's
// directory, and returns the merged database in file order (later entries
// for the same specifier win, matching the core's last-write-wins Put).
func Load(path string, opts LoadOptions) (*xrm.Database, error) {
	db := xrm.New()
	seen := make(map[string]bool)
	if err := loadInto(db, path, opts, seen); err != nil {
		return nil, err
	}
	return db, nil
}

func loadInto(db *xrm.Database, path string, opts LoadOptions, seen map[string]bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "filepath.Abs %q", path)
	}

	if seen[absPath] {
		return errors.Wrapf(ErrIncludeCycle, "%q", absPath)
	}
	seen[absPath] = true
	defer delete(seen, absPath)

	text, err := readFile(absPath, opts)
	if err != nil {
		return err
	}

	var includeErr error
	db.Load(text, func(includePath string) {
		if includeErr != nil {
			return
		}
		resolved := resolveInclude(absPath, includePath)
		includeErr = loadInto(db, resolved, opts, seen)
	})

	return includeErr
}

func readFile(absPath string, opts LoadOptions) (string, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", errors.Wrapf(err, "os.ReadFile %q", absPath)
	}
	text := string(data)

	if opts.Preprocess != nil {
		text, err = opts.Preprocess(absPath, text)
		if err != nil {
			return "", errors.Wrapf(err, "preprocess %q", absPath)
		}
	}

	return text, nil
}

// resolveInclude resolves an #include path relative to the directory of
// the including file, the same way the X resource manager's cpp-based
// includes behave.
func resolveInclude(includingFile, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(filepath.Dir(includingFile), includePath)
}

// DefaultChainPaths returns the conventional xrdb lookup chain for a user's
// resource file: $XENVIRONMENT if set, then ~/.Xresources-<hostname>, then
// ~/.Xresources, then ~/.Xdefaults, then /etc/X11/Xresources. Only paths that
// exist and are not directories are returned, in priority order.
func DefaultChainPaths(homeDir string) []string {
	var candidates []string
	if envPath := os.Getenv("XENVIRONMENT"); envPath != "" {
		candidates = append(candidates, envPath)
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		candidates = append(candidates, filepath.Join(homeDir, ".Xresources-"+hostname))
	}
	candidates = append(candidates,
		filepath.Join(homeDir, ".Xresources"),
		filepath.Join(homeDir, ".Xdefaults"),
		"/etc/X11/Xresources",
	)

	var existing []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			existing = append(existing, c)
		}
	}
	return existing
}
