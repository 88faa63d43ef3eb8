package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aretext/xrdb/app"
)

var (
	display  = flag.String("display", "", "X display to connect to (defaults to $DISPLAY)")
	query    = flag.String("query", "", "\"name[ class]\" to look up and print")
	merge    = flag.String("merge", "", "merge resource file into the server's database")
	load     = flag.String("load", "", "load resource file into the server's database, replacing duplicates")
	dump     = flag.String("dump", "", "write the server's current database to a file")
	remove   = flag.Bool("remove", false, "remove the RESOURCE_MANAGER property from the server")
	nocpp    = flag.Bool("nocpp", false, "do not preprocess resource files")
	cppCmd   = flag.String("cpp", "cpp -P", "preprocessor command line")
	lockPath = flag.String("lock", "", "advisory lock file path for -dump")
	logpath  = flag.String("log", "", "log to file")
	screen   = flag.Bool("screen", false, "operate on SCREEN_RESOURCES for the selected screen instead of RESOURCE_MANAGER")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	opts, err := resolveOptions()
	if err != nil {
		exitWithError(err)
	}

	if err := run(opts); err != nil {
		exitWithError(err)
	}
}

func resolveOptions() (app.Options, error) {
	base := app.DefaultOptions()
	if *display != "" {
		base.Display = *display
	}
	if *nocpp {
		base.CppCmd = ""
	} else if *cppCmd != "" {
		base.CppCmd = *cppCmd
	}
	base.LockPath = *lockPath
	base.ScreenResources = *screen

	return app.LoadOptions(base)
}

func run(opts app.Options) error {
	switch {
	case *query != "":
		name, class := splitQueryArg(*query)
		value, ok, err := app.Query(opts, name, class)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no resource matched %q", *query)
		}
		fmt.Println(value)
		return nil

	case *merge != "":
		opts.Override = false
		return app.Merge(opts, *merge)

	case *load != "":
		opts.Override = true
		return app.Merge(opts, *load)

	case *dump != "":
		return app.Dump(opts, *dump)

	case *remove:
		return app.Remove(opts)

	default:
		flag.Usage()
		os.Exit(1)
		return nil
	}
}

// splitQueryArg splits a "name class" query argument at its first space
// into its dotted name and class parts; a query with no class uses an empty
// class string.
func splitQueryArg(arg string) (name, class string) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == ' ' {
			return arg[:i], arg[i+1:]
		}
	}
	return arg, ""
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...]\n", os.Args[0])
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
