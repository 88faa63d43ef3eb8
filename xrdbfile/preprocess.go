package xrdbfile

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// NewPreprocessor builds a LoadOptions.Preprocess function that pipes file
// contents through an external command line (e.g. "cpp -P"), the way xrdb
// traditionally runs the C preprocessor over resource files before parsing
// them. An empty cmdLine disables preprocessing.
func NewPreprocessor(cmdLine string) (func(path, text string) (string, error), error) {
	if cmdLine == "" {
		return nil, nil
	}

	parts, err := shlex.Split(cmdLine)
	if err != nil {
		return nil, errors.Wrapf(err, "shlex.Split %q", cmdLine)
	}
	if len(parts) == 0 {
		return nil, errors.Errorf("empty preprocessor command")
	}

	return func(path, text string) (string, error) {
		return runPreprocessor(parts, path, text)
	}, nil
}

func runPreprocessor(parts []string, path, text string) (string, error) {
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Env = append(os.Environ(), "FILENAME="+path)
	cmd.Stdin = bytes.NewReader([]byte(text))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "Cmd.Run: %s", stderr.String())
	}

	return stdout.String(), nil
}
