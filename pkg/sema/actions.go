// Package sema is the semantic layer the parser reports recognized syntax
// to. The parser only depends on the Actions interface; Builder is the
// implementation used by the command line driver.
package sema

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/scope"
)

// Decl is an opaque declaration handle. The parser never looks inside;
// nil means no declaration was produced.
type Decl interface{}

// Actions receives declarations as the parser completes them. The scopes
// passed in are only valid until the matching CloseScope call.
type Actions interface {
	// DeclareIdentifier is called once per completed declarator
	DeclareIdentifier(s *scope.Scope, d *cabs.Declarator, ctx cabs.DeclContext) Decl

	// CloseScope is called just before s is exited. It must not fail.
	CloseScope(pos lexer.Pos, s *scope.Scope)

	// FinishFunctionDefinition is called after a function body was parsed
	FinishFunctionDefinition(s *scope.Scope, d *cabs.Declarator, body *cabs.Block) Decl
}

// TypeNameResolver is an optional capability of an Actions value. When
// present the parser asks it whether an identifier names a type; without
// it no identifier starts a declaration.
type TypeNameResolver interface {
	IsTypeName(name string, scopes *scope.Stack) bool
}
