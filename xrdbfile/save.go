package xrdbfile

import (
	"io"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/aretext/xrdb/xrm"
)

// Save writes db's serialized form to path, using renameio to write to a
// temporary file in the same directory and rename it into place so a crash
// mid-write can never leave a truncated resource file behind.
func Save(path string, db *xrm.Database) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "renameio.NewPendingFile %q", path)
	}
	defer pf.Cleanup()

	if _, err := io.Copy(pf, strings.NewReader(db.String())); err != nil {
		return errors.Wrapf(err, "io.Copy")
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "renameio.CloseAtomicallyReplace")
	}

	return nil
}
