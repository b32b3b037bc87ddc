package preproc

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func haveCC(t *testing.T) {
	t.Helper()
	if _, err := findPreprocessor(nil); err != nil {
		t.Skipf("skipping: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestArgs(t *testing.T) {
	opts := &Options{
		IncludePaths: []string{"inc", "/opt/include"},
		Defines:      []string{"DEBUG", "N=3"},
		Undefines:    []string{"NDEBUG"},
	}
	assert.Equal(t,
		[]string{"-E", "-Iinc", "-I/opt/include", "-DDEBUG", "-DN=3", "-UNDEBUG", "x.c"},
		opts.Args("x.c"))

	var none *Options
	assert.Equal(t, []string{"-E", "x.c"}, none.Args("x.c"))
}

func TestNeedsPreprocessing(t *testing.T) {
	tests := map[string]bool{
		"a.c":     true,
		"a.h":     true,
		"a.i":     false,
		"dir/b.I": false,
		"b.p":     false,
		"noext":   true,
	}
	for name, want := range tests {
		assert.Equal(t, want, NeedsPreprocessing(name), name)
	}
}

func TestMissingCommand(t *testing.T) {
	_, err := Preprocess("x.c", &Options{Command: "cfront-no-such-preprocessor"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPreprocessor)
}

func TestPreprocessDefines(t *testing.T) {
	haveCC(t)

	path := filepath.Join(t.TempDir(), "t.c")
	writeFile(t, path, "#define N 42\n#ifdef EXTRA\nint extra;\n#endif\nint x = N;\n")
	out, err := Preprocess(path, &Options{Defines: []string{"EXTRA"}})
	require.NoError(t, err)
	assert.Contains(t, out, "int x = 42;")
	assert.Contains(t, out, "int extra;")
	assert.NotContains(t, out, "#define")
}

func TestPreprocessIncludePath(t *testing.T) {
	haveCC(t)

	dir := t.TempDir()
	inc := filepath.Join(dir, "inc")
	writeFile(t, filepath.Join(inc, "defs.h"), "typedef int myint;\n")
	main := filepath.Join(dir, "main.c")
	writeFile(t, main, "#include <defs.h>\nmyint v;\n")

	_, err := Preprocess(main, nil)
	require.Error(t, err, "header is only reachable through -I")

	out, err := Preprocess(main, &Options{IncludePaths: []string{inc}})
	require.NoError(t, err)
	assert.Contains(t, out, "typedef int myint;")
	assert.True(t, strings.Contains(out, "# 1 \"") || strings.Contains(out, "#line 1"), "line markers kept")
}

func TestPreprocessFailureCarriesStderr(t *testing.T) {
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("skipping: cc not on PATH")
	}
	path := filepath.Join(t.TempDir(), "bad.c")
	writeFile(t, path, "#error boom\n")
	_, err := Preprocess(path, &Options{Command: "cc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
