// Package diag defines the diagnostics reported while parsing: a closed
// catalog of diagnostic IDs, the Sink contract the parser reports to, and
// a collecting Sink that applies the severity policy.
package diag

import (
	"fmt"
	"strings"

	"github.com/raymyers/cfront/pkg/lexer"
)

// Level is the severity of a diagnostic
type Level int

const (
	Ignored Level = iota
	Note
	Warning
	Extension // a warning unless extensions are promoted to errors
	Error
)

func (l Level) String() string {
	switch l {
	case Ignored:
		return "ignored"
	case Note:
		return "note"
	case Warning, Extension:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// ID identifies a diagnostic in the catalog
type ID int

const (
	ErrParseError ID = iota
	ExtEmptySourceFile
	ExtTopLevelSemi
	ExtDuplicateDeclSpec
	ExtUnsupportedDirective
	ErrExpected
	ErrExpectedRParen
	ErrExpectedRBrace
	ErrExpectedRSquare
	NoteMatching
	ErrExpectedSemiAfter
	ErrExpectedSemiDeclaration
	ErrExpectedFnBody
	ErrExpectedAfterDeclarator
	ErrExpectedStringLiteral
	ErrExpectedLParenAfter
	ErrExpectedIdentOrLParen
	ErrExpectedIdent
	ErrExpectedExpression
	ErrExpectedStatement
	ErrExpectedWhile
	ErrInvalidDeclSpecCombination
	ErrRedefinition
	ErrConflictingTypes
	NotePreviousDefinition
	NotePreviousDeclaration
	ErrKNRParamNotInList
)

type entry struct {
	name   string
	level  Level
	format string
}

// catalog maps IDs to their default level and message. Messages use
// fmt verbs; arguments are always strings.
var catalog = map[ID]entry{
	ErrParseError:                 {"err_parse_error", Error, "parse error"},
	ExtEmptySourceFile:            {"ext_empty_source_file", Extension, "ISO C requires a translation unit to contain at least one declaration"},
	ExtTopLevelSemi:               {"ext_top_level_semi", Extension, "extra ';' outside of a function"},
	ExtDuplicateDeclSpec:          {"ext_duplicate_declspec", Extension, "duplicate '%s' declaration specifier"},
	ExtUnsupportedDirective:       {"ext_unsupported_directive", Extension, "%s ignored"},
	ErrExpected:                   {"err_expected", Error, "expected '%s'"},
	ErrExpectedRParen:             {"err_expected_rparen", Error, "expected ')'"},
	ErrExpectedRBrace:             {"err_expected_rbrace", Error, "expected '}'"},
	ErrExpectedRSquare:            {"err_expected_rsquare", Error, "expected ']'"},
	NoteMatching:                  {"err_matching", Note, "to match this '%s'"},
	ErrExpectedSemiAfter:          {"err_expected_semi_after", Error, "expected ';' after %s"},
	ErrExpectedSemiDeclaration:    {"err_expected_semi_declaration", Error, "expected ';' at end of declaration"},
	ErrExpectedFnBody:             {"err_expected_fn_body", Error, "expected function body after function declarator"},
	ErrExpectedAfterDeclarator:    {"err_expected_after_declarator", Error, "expected '=', ',', ';', 'asm', or '__attribute__' after declarator"},
	ErrExpectedStringLiteral:      {"err_expected_string_literal", Error, "expected string literal"},
	ErrExpectedLParenAfter:        {"err_expected_lparen_after", Error, "expected '(' after '%s'"},
	ErrExpectedIdentOrLParen:      {"err_expected_ident_lparen", Error, "expected identifier or '('"},
	ErrExpectedIdent:              {"err_expected_ident", Error, "expected identifier"},
	ErrExpectedExpression:         {"err_expected_expression", Error, "expected expression"},
	ErrExpectedStatement:          {"err_expected_statement", Error, "expected statement"},
	ErrExpectedWhile:              {"err_expected_while", Error, "expected 'while' in do/while loop"},
	ErrInvalidDeclSpecCombination: {"err_invalid_decl_spec_combination", Error, "cannot combine with previous '%s' declaration specifier"},
	ErrRedefinition:               {"err_redefinition", Error, "redefinition of '%s'"},
	ErrConflictingTypes:           {"err_conflicting_types", Error, "conflicting types for '%s'"},
	NotePreviousDefinition:        {"note_previous_definition", Note, "previous definition is here"},
	NotePreviousDeclaration:       {"note_previous_declaration", Note, "previous declaration is here"},
	ErrKNRParamNotInList:          {"err_knr_param_not_in_list", Error, "parameter named '%s' is missing from the identifier list"},
}

// Name returns the catalog name of the diagnostic, e.g. "ext_top_level_semi"
func (id ID) Name() string {
	if e, ok := catalog[id]; ok {
		return e.name
	}
	return fmt.Sprintf("diag(%d)", int(id))
}

func (id ID) String() string {
	return id.Name()
}

// DefaultLevel returns the level an ID has before any policy is applied
func (id ID) DefaultLevel() Level {
	if e, ok := catalog[id]; ok {
		return e.level
	}
	return Error
}

// Format renders the message for id with the given arguments
func Format(id ID, args ...string) string {
	e, ok := catalog[id]
	if !ok {
		return fmt.Sprintf("unknown diagnostic %d", int(id))
	}
	n := strings.Count(e.format, "%s")
	vals := make([]any, n)
	for i := range vals {
		if i < len(args) {
			vals[i] = args[i]
		} else {
			vals[i] = "?"
		}
	}
	return fmt.Sprintf(e.format, vals...)
}

// Diagnostic is a single reported message
type Diagnostic struct {
	Pos   lexer.Pos
	ID    ID
	Level Level
	Args  []string
}

// Message returns the formatted message text
func (d Diagnostic) Message() string {
	return Format(d.ID, d.Args...)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Level, d.Message())
}

// Sink receives diagnostics. Reporting never alters the caller's control flow.
type Sink interface {
	Report(pos lexer.Pos, id ID, args ...string)
}

// Options controls how a List maps default levels to recorded levels
type Options struct {
	PedanticErrors bool // extensions become errors
	NoWarnings     bool // drop warnings and extensions
	ErrorLimit     int  // stop recording after this many errors; 0 means no limit
}

// List is a Sink that records diagnostics in report order
type List struct {
	opts     Options
	diags    []Diagnostic
	errors   int
	warnings int
	dropped  int
	lastKept bool
}

// NewList creates an empty List. A nil opts selects the defaults.
func NewList(opts *Options) *List {
	l := &List{}
	if opts != nil {
		l.opts = *opts
	}
	return l
}

// Report records a diagnostic after applying the level policy. Notes
// attach to the preceding diagnostic and are dropped with it.
func (l *List) Report(pos lexer.Pos, id ID, args ...string) {
	level := l.levelFor(id)
	switch level {
	case Ignored:
		l.lastKept = false
		return
	case Note:
		if !l.lastKept {
			return
		}
	case Error:
		if l.opts.ErrorLimit > 0 && l.errors >= l.opts.ErrorLimit {
			l.dropped++
			l.lastKept = false
			return
		}
		l.errors++
	default:
		l.warnings++
	}
	l.lastKept = true
	l.diags = append(l.diags, Diagnostic{Pos: pos, ID: id, Level: level, Args: args})
}

func (l *List) levelFor(id ID) Level {
	level := id.DefaultLevel()
	if level == Extension && l.opts.PedanticErrors {
		return Error
	}
	if (level == Extension || level == Warning) && l.opts.NoWarnings {
		return Ignored
	}
	return level
}

// Diagnostics returns the recorded diagnostics in report order
func (l *List) Diagnostics() []Diagnostic {
	return l.diags
}

// Len returns the number of recorded diagnostics, notes included
func (l *List) Len() int {
	return len(l.diags)
}

// ErrorCount returns the number of recorded errors
func (l *List) ErrorCount() int {
	return l.errors
}

// WarningCount returns the number of recorded warnings and extensions
func (l *List) WarningCount() int {
	return l.warnings
}

// Dropped returns the number of errors discarded because of ErrorLimit
func (l *List) Dropped() int {
	return l.dropped
}

// HasErrors reports whether any error was recorded
func (l *List) HasErrors() bool {
	return l.errors > 0
}

// IDs returns the recorded diagnostic IDs in order. Handy in tests.
func (l *List) IDs() []ID {
	ids := make([]ID, len(l.diags))
	for i, d := range l.diags {
		ids[i] = d.ID
	}
	return ids
}
