package app

import "os"

// Options is the merged configuration for a single xrdb invocation:
// populated from command-line flags, then overridden by the options file
// resolved by ConfigPath.
type Options struct {
	// Display is the X display to connect to (e.g. ":0"). Empty means use
	// the DISPLAY environment variable.
	Display string

	// CppCmd is the preprocessor command line run over resource files
	// before parsing, e.g. "cpp -P". Empty disables preprocessing.
	CppCmd string

	// Symbols are -D NAME[=VALUE] definitions that the options file can
	// set. Apply carries them over, but they are not passed to CppCmd:
	// Merge builds its preprocessor from CppCmd alone.
	Symbols []string

	// Override controls merge semantics: true means an incoming resource
	// with the same specifier as an existing one replaces it (xrdb's
	// "-merge"/"-load" combine mode); false keeps the existing value.
	Override bool

	// LockPath is the advisory lock file that Dump holds while writing its
	// output file, against concurrent xrdb invocations. Empty disables
	// locking.
	LockPath string

	// ScreenResources, when true, targets the SCREEN_RESOURCES property of
	// the selected screen's root window instead of RESOURCE_MANAGER on the
	// first screen, the way xrdb's "-screen" flag layers screen-specific
	// resources on top of the display-wide database.
	ScreenResources bool
}

// DefaultOptions returns the built-in defaults, overridden only by
// environment variables the way legacy xrdb honors DISPLAY.
func DefaultOptions() Options {
	return Options{
		Display:  os.Getenv("DISPLAY"),
		CppCmd:   "cpp -P",
		Override: true,
	}
}

// Apply overlays other onto o, the way config.RuleSet entries override
// earlier ones: the string and slice fields are taken from other only when
// non-empty, while the boolean fields Override and ScreenResources are
// always taken from other.
func (o Options) Apply(other Options) Options {
	merged := o
	if other.Display != "" {
		merged.Display = other.Display
	}
	if other.CppCmd != "" {
		merged.CppCmd = other.CppCmd
	}
	if len(other.Symbols) > 0 {
		merged.Symbols = other.Symbols
	}
	merged.Override = other.Override
	if other.LockPath != "" {
		merged.LockPath = other.LockPath
	}
	merged.ScreenResources = other.ScreenResources
	return merged
}
