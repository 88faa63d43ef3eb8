package app

import (
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigPath returns the path to the options file.
func ConfigPath() (string, error) {
	path := filepath.Join("xrdb", "options.yaml")
	return xdg.ConfigFile(path)
}

// LoadOptions loads Options from the config file if present, overlaying
// them onto base. A missing config file is not an error: base is returned
// unchanged.
func LoadOptions(base Options) (Options, error) {
	path, err := ConfigPath()
	if err != nil {
		return base, errors.Wrapf(err, "ConfigPath")
	}

	log.Printf("Loading options from %q\n", path)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("No options file at %q, using defaults\n", path)
		return base, nil
	} else if err != nil {
		return base, errors.Wrapf(err, "os.ReadFile %q", path)
	}

	var fileOpts Options
	if err := yaml.Unmarshal(data, &fileOpts); err != nil {
		return base, errors.Wrapf(err, "yaml.Unmarshal %q", path)
	}

	return base.Apply(fileOpts), nil
}
