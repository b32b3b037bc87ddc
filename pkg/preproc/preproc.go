// Package preproc runs the system C preprocessor (cc -E) ahead of the
// parser. The parser itself only understands the line markers the
// preprocessor leaves behind.
package preproc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoPreprocessor is returned when none of the candidate commands is on
// PATH
var ErrNoPreprocessor = errors.New("no C preprocessor found")

// Candidates are tried in order when Options.Command is empty
var Candidates = []string{"cc", "gcc", "clang"}

// Options configures the preprocessing step
type Options struct {
	Command      string   // preprocessor binary; empty means the first of Candidates found
	IncludePaths []string // -I directories
	Defines      []string // -D macros, NAME or NAME=VALUE
	Undefines    []string // -U macros
}

// Args returns the preprocessor arguments for filename
func (o *Options) Args(filename string) []string {
	args := []string{"-E"}
	if o != nil {
		for _, path := range o.IncludePaths {
			args = append(args, "-I"+path)
		}
		for _, d := range o.Defines {
			args = append(args, "-D"+d)
		}
		for _, u := range o.Undefines {
			args = append(args, "-U"+u)
		}
	}
	return append(args, filename)
}

// Preprocess runs the preprocessor on filename and returns its output
func Preprocess(filename string, opts *Options) (string, error) {
	command, err := findPreprocessor(opts)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(command, opts.Args(filename)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("preprocessing %s: %w", filename, err)
		}
		return "", fmt.Errorf("preprocessing %s: %w\n%s", filename, err, msg)
	}
	return stdout.String(), nil
}

// NeedsPreprocessing reports whether filename should go through the
// preprocessor. .i and .p files are already preprocessed.
func NeedsPreprocessing(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != ".i" && ext != ".p"
}

func findPreprocessor(opts *Options) (string, error) {
	if opts != nil && opts.Command != "" {
		path, err := exec.LookPath(opts.Command)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoPreprocessor, err)
		}
		return path, nil
	}
	for _, name := range Candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w (tried: %s)", ErrNoPreprocessor, strings.Join(Candidates, ", "))
}
