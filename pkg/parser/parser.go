// Package parser implements a recursive descent parser for C. It drives a
// token source through one translation unit, reports diagnostics to a
// diag.Sink and hands completed declarations to a sema.Actions.
package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/scope"
	"github.com/raymyers/cfront/pkg/sema"
)

// ErrInternal is wrapped by every InternalError
var ErrInternal = errors.New("internal parser error")

var (
	errState       = errors.New("called in the wrong state")
	errNotFunction = errors.New("declarator is not a function declarator")
)

// InternalError reports a defect in the parser or its caller, never a
// problem with the input. It is raised with panic and turned into an
// error by ParseTranslationUnit.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInternal, e.Op, e.Err)
}

func (e *InternalError) Unwrap() []error {
	return []error{ErrInternal, e.Err}
}

func internal(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// TokenSource produces tokens on demand. Once exhausted it must keep
// returning an EOF token.
type TokenSource interface {
	Next() lexer.Token
}

// Options configures a Parser
type Options struct {
	// ScopeCacheSize is the number of exited scopes kept for reuse.
	// 0 disables the cache.
	ScopeCacheSize int
}

// DefaultOptions returns the options used when New is given nil
func DefaultOptions() *Options {
	return &Options{ScopeCacheSize: scope.DefaultCacheSize}
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateFinished
)

// Parser parses one translation unit. A Parser is single-use and must not
// be shared between goroutines.
type Parser struct {
	src     TokenSource
	actions sema.Actions
	types   sema.TypeNameResolver // nil when actions has no typedef knowledge
	sink    diag.Sink

	tok          lexer.Token // lookahead
	parenCount   int
	bracketCount int
	braceCount   int

	scopes *scope.Stack
	state  state
}

// New creates a Parser. A nil sink collects into a throwaway diag.List and
// nil opts selects DefaultOptions.
func New(src TokenSource, actions sema.Actions, sink diag.Sink, opts *Options) *Parser {
	if opts == nil {
		opts = DefaultOptions()
	}
	if sink == nil {
		sink = diag.NewList(nil)
	}
	p := &Parser{
		src:     src,
		actions: actions,
		sink:    sink,
		tok:     lexer.Token{Type: lexer.TokenEOF},
		scopes:  scope.NewStack(opts.ScopeCacheSize),
	}
	if r, ok := actions.(sema.TypeNameResolver); ok {
		p.types = r
	}
	return p
}

// Current returns the lookahead token without consuming it
func (p *Parser) Current() lexer.Token {
	return p.tok
}

// ParenCount returns the number of consumed '(' not yet closed
func (p *Parser) ParenCount() int { return p.parenCount }

// BracketCount returns the number of consumed '[' not yet closed
func (p *Parser) BracketCount() int { return p.bracketCount }

// BraceCount returns the number of consumed '{' not yet closed
func (p *Parser) BraceCount() int { return p.braceCount }

// Scopes exposes the scope stack for inspection
func (p *Parser) Scopes() *scope.Stack {
	return p.scopes
}

func (p *Parser) report(pos lexer.Pos, id diag.ID, args ...string) {
	p.sink.Report(pos, id, args...)
}
