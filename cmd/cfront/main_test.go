package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raymyers/cfront/pkg/config"
	"gotest.tools/v3/golden"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	expectedFlags := []string{
		"dparse", "dtokens", "verbose", "config", "env-file", "scope-cache",
		"pedantic-errors", "no-warnings", "ferror-limit", "color", "fsyntax-only",
		"include", "define", "undefine", "preprocess", "external-cpp",
	}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}
	for _, short := range []string{"w", "I", "D", "U", "E"} {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("expected flag -%s to exist", short)
		}
	}
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single-dash dparse",
			input:    []string{"-dparse", "test.c"},
			expected: []string{"--dparse", "test.c"},
		},
		{
			name:     "double-dash dparse unchanged",
			input:    []string{"--dparse", "test.c"},
			expected: []string{"--dparse", "test.c"},
		},
		{
			name:     "clang spellings",
			input:    []string{"-fsyntax-only", "-pedantic-errors", "-dtokens", "test.c"},
			expected: []string{"--fsyntax-only", "--pedantic-errors", "--dtokens", "test.c"},
		},
		{
			name:     "error limit with value",
			input:    []string{"-ferror-limit=3", "test.c"},
			expected: []string{"--ferror-limit=3", "test.c"},
		},
		{
			name:     "no flags",
			input:    []string{"test.c"},
			expected: []string{"test.c"},
		},
		{
			name:     "short flags unchanged",
			input:    []string{"-w", "-I", "inc", "-DX=1", "test.c"},
			expected: []string{"-w", "-I", "inc", "-DX=1", "test.c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeFlags(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d args, got %d", len(tt.expected), len(result))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("arg %d: expected %q, got %q", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

func TestParsedOutputFilename(t *testing.T) {
	tests := map[string]string{
		"test.c":        "test.parsed.c",
		"dir/prog.c":    "dir/prog.parsed.c",
		"already.i":     "already.i.parsed.c",
		"noext":         "noext.parsed.c",
		"/abs/path/x.c": "/abs/path/x.parsed.c",
	}
	for in, want := range tests {
		if got := parsedOutputFilename(in); got != want {
			t.Errorf("parsedOutputFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNoArgsShowsHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "cfront [file]") {
		t.Errorf("expected usage on stdout, got %q", out.String())
	}
}

func TestMissingFile(t *testing.T) {
	clearEnv(t)
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.c")})
	err := cmd.Execute()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if !strings.Contains(errOut.String(), "cfront: error reading") {
		t.Errorf("unexpected stderr %q", errOut.String())
	}
}

func copyTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDParseGolden(t *testing.T) {
	clearEnv(t)
	testFile := copyTestdata(t, "count.c")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(normalizeFlags([]string{"-dparse", testFile}))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error for -dparse, got %v\nstderr:\n%s", err, errOut.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostics, got:\n%s", errOut.String())
	}
	golden.Assert(t, out.String(), "count.parsed.golden")

	written, err := os.ReadFile(parsedOutputFilename(testFile))
	if err != nil {
		t.Fatalf("expected .parsed.c file: %v", err)
	}
	if string(written) != out.String() {
		t.Errorf(".parsed.c differs from stdout\nfile:\n%s\nstdout:\n%s", written, out.String())
	}
}

func TestDParseSkippedOnErrors(t *testing.T) {
	clearEnv(t)
	testFile := filepath.Join(t.TempDir(), "bad.c")
	if err := os.WriteFile(testFile, []byte("int f(void) { return 0 }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--dparse", testFile})
	err := cmd.Execute()
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("expected ErrDiagnostics, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no dump, got %q", out.String())
	}
	if _, err := os.Stat(parsedOutputFilename(testFile)); !os.IsNotExist(err) {
		t.Errorf("expected no .parsed.c file, stat err %v", err)
	}
	if !strings.Contains(errOut.String(), "expected ';' after return statement") {
		t.Errorf("unexpected stderr:\n%s", errOut.String())
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "cfront.yaml")
	content := "scope_cache_size: 4\nerror_limit: 9\ncolor: always\ninclude_paths: [from-file]\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvScopeCache, "2")
	t.Setenv(config.EnvErrorLimit, "5")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	args := []string{"--config", cfgFile, "--ferror-limit", "1", "-I", "from-flag"}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ErrorLimit != 1 {
		t.Errorf("flag should win: error limit %d", cfg.ErrorLimit)
	}
	if cfg.ScopeCacheSize != 2 {
		t.Errorf("env should beat file: scope cache %d", cfg.ScopeCacheSize)
	}
	if cfg.Color != config.ColorAlways {
		t.Errorf("file should beat default: color %q", cfg.Color)
	}
	if cfg.PedanticErrors {
		t.Error("default should survive when nothing sets it")
	}
	if got := strings.Join(cfg.IncludePaths, ","); got != "from-file,from-flag" {
		t.Errorf("include paths %q", got)
	}
}

func TestScopeCacheFlag(t *testing.T) {
	clearEnv(t)
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	if err := cmd.ParseFlags([]string{"--scope_cache=0"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScopeCacheSize != 0 {
		t.Errorf("expected cache disabled, got %d", cfg.ScopeCacheSize)
	}
}

func requireCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("skipping: cc not on PATH")
	}
}

func TestPreprocessOnly(t *testing.T) {
	requireCC(t)
	clearEnv(t)
	testFile := filepath.Join(t.TempDir(), "pp.c")
	if err := os.WriteFile(testFile, []byte("#define N 7\nint x = N;\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"-E", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error %v\n%s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "int x = 7;") {
		t.Errorf("expected expanded macro, got:\n%s", out.String())
	}
}

func TestExternalCPPKeepsSourcePositions(t *testing.T) {
	requireCC(t)
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "defs.h"), []byte("typedef int myint;\n"), 0644); err != nil {
		t.Fatal(err)
	}
	testFile := filepath.Join(dir, "main.c")
	src := "#include \"defs.h\"\n#ifdef EXTRA\nmyint extra;\n#endif\nmyint v;;\n"
	if err := os.WriteFile(testFile, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--external-cpp", "-DEXTRA", "--dparse", testFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error %v\n%s", err, errOut.String())
	}
	if !strings.Contains(errOut.String(), "main.c:5:9: warning: extra ';' outside of a function") {
		t.Errorf("expected diagnostic at the original line, got:\n%s", errOut.String())
	}
	for _, want := range []string{"typedef int myint;", "myint extra;", "myint v;"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, out.String())
		}
	}
}
