package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/config"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/parser"
	"github.com/raymyers/cfront/pkg/preproc"
	"github.com/raymyers/cfront/pkg/sema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

// Debug flags for dumping intermediate results
var (
	dParse  bool
	dTokens bool
	verbose bool
)

// Settings flags. These override the config file and environment only
// when given explicitly.
var (
	configPath     string
	envFile        string
	scopeCache     int
	pedanticErrors bool
	noWarnings     bool
	errorLimit     int
	colorMode      string
	syntaxOnly     bool // the default behaviour; accepted for clang compatibility
)

// Preprocessor options
var (
	includePaths   []string
	defineFlags    []string
	undefineFlags  []string
	preprocessOnly bool // -E flag
	useExternalPP  bool
)

// ErrDiagnostics is returned when the input produced error diagnostics
var ErrDiagnostics = errors.New("errors generated")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// singleDashFlags are accepted with one dash, CompCert and clang style
var singleDashFlags = []string{"dparse", "dtokens", "pedantic-errors", "fsyntax-only"}

// normalizeFlags converts single-dash long flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range singleDashFlags {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
		if strings.HasPrefix(arg, "-ferror-limit=") {
			result[i] = "-" + arg
		}
	}
	return result
}

// dashedNames lets --pedantic_errors mean --pedantic-errors
func dashedNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfront [file]",
		Short: "cfront parses C translation units and reports diagnostics",
		Long: `cfront is a C front end. It parses one translation unit with a
recursive descent parser, recovers from syntax errors the way clang
does and reports every diagnostic it finds.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				fmt.Fprintf(errOut, "cfront: %v\n", err)
				return err
			}

			// Handle -E: preprocess only
			if preprocessOnly {
				return doPreprocessOnly(filename, cfg, out, errOut)
			}
			return doParse(filename, cfg, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.Flags()
	flags.SetNormalizeFunc(dashedNames)

	flags.BoolVar(&dParse, "dparse", false, "Dump the parsed translation unit")
	flags.BoolVar(&dTokens, "dtokens", false, "Dump the token stream")
	flags.BoolVar(&verbose, "verbose", false, "Trace parser phases to stderr")

	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&envFile, "env-file", "", "Env file with CFRONT_* settings")
	flags.IntVar(&scopeCache, "scope-cache", 0, "Number of exited scopes kept for reuse (0 disables)")
	flags.BoolVar(&pedanticErrors, "pedantic-errors", false, "Treat extensions as errors")
	flags.BoolVarP(&noWarnings, "no-warnings", "w", false, "Suppress warnings and extensions")
	flags.IntVar(&errorLimit, "ferror-limit", 0, "Stop reporting after this many errors (0 is unlimited)")
	flags.StringVar(&colorMode, "color", config.ColorAuto, "Color diagnostics: auto, always or never")
	flags.BoolVar(&syntaxOnly, "fsyntax-only", false, "Only check syntax (always the case)")

	flags.StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to include search path")
	flags.StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	flags.StringArrayVarP(&undefineFlags, "undefine", "U", nil, "Undefine macro")
	flags.BoolVarP(&preprocessOnly, "preprocess", "E", false, "Preprocess only, output to stdout")
	flags.BoolVar(&useExternalPP, "external-cpp", false, "Run the system C preprocessor before parsing")

	return rootCmd
}

// resolveConfig layers defaults, the config file, the environment and
// finally the flags that were set on the command line.
func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return nil, err
		}
	}

	lookup, err := config.Environ(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if flags.Changed("scope-cache") {
		cfg.ScopeCacheSize = scopeCache
	}
	if flags.Changed("pedantic-errors") {
		cfg.PedanticErrors = pedanticErrors
	}
	if flags.Changed("no-warnings") {
		cfg.NoWarnings = noWarnings
	}
	if flags.Changed("ferror-limit") {
		cfg.ErrorLimit = errorLimit
	}
	if flags.Changed("color") {
		cfg.Color = strings.ToLower(colorMode)
	}
	cfg.IncludePaths = append(cfg.IncludePaths, includePaths...)
	cfg.Defines = append(cfg.Defines, defineFlags...)
	return cfg, cfg.Validate()
}

func preprocessorOptions(cfg *config.Config) *preproc.Options {
	return &preproc.Options{
		IncludePaths: cfg.IncludePaths,
		Defines:      cfg.Defines,
		Undefines:    undefineFlags,
	}
}

// useColor decides whether diagnostics written to w get ANSI colors
func useColor(cfg *config.Config, w io.Writer) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readSource returns the raw file text and the text to lex. They differ
// only when the external preprocessor runs.
func readSource(filename string, cfg *config.Config, errOut io.Writer) (raw, text string, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "cfront: error reading %s: %v\n", filename, err)
		return "", "", err
	}
	raw = string(data)
	if !useExternalPP || !preproc.NeedsPreprocessing(filename) {
		return raw, raw, nil
	}
	text, err = preproc.Preprocess(filename, preprocessorOptions(cfg))
	if err != nil {
		fmt.Fprintf(errOut, "cfront: preprocessing error: %v\n", err)
		return "", "", err
	}
	return raw, text, nil
}

// doPreprocessOnly preprocesses and outputs to stdout (-E flag)
func doPreprocessOnly(filename string, cfg *config.Config, out, errOut io.Writer) error {
	content, err := preproc.Preprocess(filename, preprocessorOptions(cfg))
	if err != nil {
		fmt.Fprintf(errOut, "cfront: preprocessing error: %v\n", err)
		return err
	}
	fmt.Fprint(out, content)
	return nil
}

// doParse parses the file, renders its diagnostics and runs the
// requested dumps.
func doParse(filename string, cfg *config.Config, out, errOut io.Writer) error {
	raw, text, err := readSource(filename, cfg, errOut)
	if err != nil {
		return err
	}

	if dTokens {
		dumpTokens(lexer.NewFile(filename, text), out)
	}

	diags := diag.NewList(cfg.DiagOptions())
	builder := sema.NewBuilder(diags)
	p := parser.New(lexer.NewFile(filename, text), builder, diags,
		&parser.Options{ScopeCacheSize: cfg.ScopeCacheSize})

	if verbose {
		_, err = parseTraced(p, errOut)
	} else {
		_, err = p.ParseTranslationUnit()
	}

	renderer := diag.NewRenderer(errOut, useColor(cfg, errOut))
	renderer.AddSource(filename, raw)
	renderer.RenderAll(diags)

	if err != nil {
		fmt.Fprintf(errOut, "cfront: %v\n", err)
		return err
	}
	if diags.HasErrors() {
		return ErrDiagnostics
	}

	if dParse {
		return writeParsed(filename, builder.Program(), out, errOut)
	}
	return nil
}

// parseTraced is ParseTranslationUnit with a line on errOut per step
func parseTraced(p *parser.Parser, errOut io.Writer) (decls []sema.Decl, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*parser.InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	fmt.Fprintln(errOut, "cfront: initialize")
	p.Initialize()
	for {
		pos := p.Current().Pos
		d, done := p.ParseTopLevelDecl()
		if done {
			break
		}
		if d == nil {
			fmt.Fprintf(errOut, "cfront: %s: no declaration\n", pos)
			continue
		}
		decls = append(decls, d)
		if e, ok := d.(*sema.Entity); ok {
			fmt.Fprintf(errOut, "cfront: %s: declared %s\n", pos, e.Name)
		} else {
			fmt.Fprintf(errOut, "cfront: %s: declared\n", pos)
		}
	}
	fmt.Fprintf(errOut, "cfront: finalize (%d declarations)\n", len(decls))
	p.Finalize()
	return decls, nil
}

func dumpTokens(src *lexer.Lexer, out io.Writer) {
	for {
		tok := src.Next()
		if tok.Literal == "" {
			fmt.Fprintf(out, "%s\t%s\n", tok.Pos, tok.Type)
		} else {
			fmt.Fprintf(out, "%s\t%s\t%q\n", tok.Pos, tok.Type, tok.Literal)
		}
		if tok.Type == lexer.TokenEOF {
			return
		}
	}
}

// writeParsed writes the program to a .parsed.c file next to the input
// and to out.
func writeParsed(filename string, prog *cabs.Program, out, errOut io.Writer) error {
	outputFilename := parsedOutputFilename(filename)
	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "cfront: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	cabs.NewPrinter(outFile).PrintProgram(prog)
	cabs.NewPrinter(out).PrintProgram(prog)
	return nil
}

// parsedOutputFilename maps input.c to input.parsed.c
func parsedOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.c"
	}
	return filename + ".parsed.c"
}
