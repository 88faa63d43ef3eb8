package app

import (
	"log"

	"github.com/pkg/errors"

	"github.com/aretext/xrdb/x11res"
	"github.com/aretext/xrdb/xrdbfile"
	"github.com/aretext/xrdb/xrdblock"
	"github.com/aretext/xrdb/xrm"
)

// Query connects to the configured display, fetches RESOURCE_MANAGER (or
// SCREEN_RESOURCES, if opts.ScreenResources is set), and looks up name/class
// against it.
func Query(opts Options, name, class string) (string, bool, error) {
	db, conn, err := fetchServerDatabase(opts)
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	return db.LookupString(name, class)
}

// Merge loads path (resolving #includes and running the configured
// preprocessor), merges it onto the server's current database according to
// opts.Override, and writes the combined database back to RESOURCE_MANAGER
// (or SCREEN_RESOURCES, if opts.ScreenResources is set).
func Merge(opts Options, path string) error {
	preprocess, err := xrdbfile.NewPreprocessor(opts.CppCmd)
	if err != nil {
		return errors.Wrapf(err, "NewPreprocessor")
	}

	incoming, err := xrdbfile.Load(path, xrdbfile.LoadOptions{Preprocess: preprocess})
	if err != nil {
		return errors.Wrapf(err, "xrdbfile.Load %q", path)
	}

	db, conn, err := fetchServerDatabase(opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	incoming.Combine(db, opts.Override)

	if opts.ScreenResources {
		log.Printf("Writing merged database (%d entries) to SCREEN_RESOURCES\n", db.Len())
		return conn.ChangeScreenProperty(db.String())
	}
	log.Printf("Writing merged database (%d entries) to RESOURCE_MANAGER\n", db.Len())
	return conn.ChangeProperty(db.String())
}

// Dump reads the server's current RESOURCE_MANAGER database (or
// SCREEN_RESOURCES, if opts.ScreenResources is set) and writes it to path,
// guarded by an advisory lock if opts.LockPath is set.
func Dump(opts Options, path string) error {
	if opts.LockPath != "" {
		lock, err := xrdblock.Acquire(opts.LockPath)
		if err != nil {
			return errors.Wrapf(err, "xrdblock.Acquire %q", opts.LockPath)
		}
		defer lock.Release()
	}

	db, conn, err := fetchServerDatabase(opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	return xrdbfile.Save(path, db)
}

// Remove deletes the RESOURCE_MANAGER (or, with opts.ScreenResources,
// SCREEN_RESOURCES) property from the server entirely.
func Remove(opts Options) error {
	conn, err := x11res.Dial(opts.Display)
	if err != nil {
		return errors.Wrapf(err, "x11res.Dial %q", opts.Display)
	}
	defer conn.Close()

	if opts.ScreenResources {
		return conn.DeleteScreenProperty()
	}
	return conn.DeleteProperty()
}

// fetchServerDatabase dials the display and parses whatever is currently
// stored in RESOURCE_MANAGER, or SCREEN_RESOURCES if opts.ScreenResources is
// set (an empty database if the property is unset). Malformed lines are
// swallowed per the legacy xrdb bulk-load contract.
func fetchServerDatabase(opts Options) (*xrm.Database, *x11res.Conn, error) {
	conn, err := x11res.Dial(opts.Display)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "x11res.Dial %q", opts.Display)
	}

	propertyName := "RESOURCE_MANAGER"
	getProperty := conn.GetProperty
	if opts.ScreenResources {
		propertyName = "SCREEN_RESOURCES"
		getProperty = conn.GetScreenProperty
	}

	text, ok, err := getProperty()
	if err != nil {
		conn.Close()
		return nil, nil, errors.Wrapf(err, "Conn.GetProperty")
	}
	if !ok {
		log.Printf("%s not set, starting from an empty database\n", propertyName)
		return xrm.New(), conn, nil
	}

	return xrm.FromText(text, nil), conn, nil
}
