package parser

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/scope"
	"github.com/raymyers/cfront/pkg/sema"
)

// Initialize primes the lookahead, opens the file scope and declares the
// builtin typedefs. It must be called exactly once, first.
func (p *Parser) Initialize() {
	if p.state != stateIdle {
		panic(internal("Initialize", errState))
	}
	p.state = stateRunning

	p.tok = p.src.Next()
	p.enterScope(scope.DeclScope)

	// typedef char *__builtin_va_list;
	spec := &cabs.DeclSpec{Storage: cabs.StorageTypedef, TypeSpecs: []string{"char"}}
	d := cabs.NewDeclarator(spec, cabs.FileContext)
	d.Ident = "__builtin_va_list"
	d.AddPiece(cabs.TypeInfo{Kind: cabs.PointerPiece})
	p.actions.DeclareIdentifier(p.curScope(), d, cabs.FileContext)

	if p.is(lexer.TokenEOF) {
		p.report(p.tok.Pos, diag.ExtEmptySourceFile)
	}
}

// ParseTopLevelDecl parses one external declaration. done is true once
// the input is exhausted; decl is nil when nothing was declared.
func (p *Parser) ParseTopLevelDecl() (decl sema.Decl, done bool) {
	if p.state != stateRunning {
		panic(internal("ParseTopLevelDecl", errState))
	}
	if p.is(lexer.TokenEOF) {
		return nil, true
	}
	return p.parseExternalDeclaration(), false
}

// Finalize closes the file scope. No scope may remain open afterwards.
func (p *Parser) Finalize() {
	if p.state != stateRunning {
		panic(internal("Finalize", errState))
	}
	p.exitScope()
	if !p.scopes.Empty() {
		panic(internal("Finalize", scope.ErrImbalance))
	}
	p.state = stateFinished
}

// ParseTranslationUnit runs Initialize, ParseTopLevelDecl until EOF and
// Finalize. It returns the declarations produced in source order. The
// error is non-nil only for an InternalError.
func (p *Parser) ParseTranslationUnit() (decls []sema.Decl, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	p.Initialize()
	for {
		d, done := p.ParseTopLevelDecl()
		if done {
			break
		}
		if d != nil {
			decls = append(decls, d)
		}
	}
	p.Finalize()
	return decls, nil
}

// parseExternalDeclaration:
//
//	external-declaration:
//	  function-definition
//	  declaration
//	  ';'                          [EXT]
//	  'asm' '(' string ')' ';'     [GNU]
//	  '@' directive                [OBJC]
//	  '-' or '+' method            [OBJC]
func (p *Parser) parseExternalDeclaration() sema.Decl {
	switch p.tok.Type {
	case lexer.TokenSemicolon:
		p.report(p.tok.Pos, diag.ExtTopLevelSemi)
		p.consumeToken()
		return nil
	case lexer.TokenAsm:
		p.parseSimpleAsm()
		p.expectAndConsume(lexer.TokenSemicolon, diag.ErrExpectedSemiAfter, "top-level asm block", lexer.TokenNone)
		return nil
	case lexer.TokenAt:
		p.parseAtDirective()
		return nil
	case lexer.TokenMinus, lexer.TokenPlus:
		p.parseMethodDeclaration()
		return nil
	}
	return p.parseDeclarationOrFunctionDefinition()
}

// parseDeclarationOrFunctionDefinition parses the prefix shared by
// declarations and function definitions, then decides from the lookahead
// and the declarator's shape which one it has.
func (p *Parser) parseDeclarationOrFunctionDefinition() sema.Decl {
	spec := &cabs.DeclSpec{Pos: p.tok.Pos}
	p.parseDeclarationSpecifiers(spec)

	// struct S; enum { X };
	if p.is(lexer.TokenSemicolon) {
		p.consumeToken()
		return nil
	}

	d := cabs.NewDeclarator(spec, cabs.FileContext)
	p.parseDeclarator(d)
	if !d.HasIdentifier() {
		p.skipUntil(lexer.TokenRBrace, true, true)
		if p.is(lexer.TokenSemicolon) {
			p.consumeToken()
		}
		return nil
	}

	switch p.tok.Type {
	case lexer.TokenAssign, lexer.TokenComma, lexer.TokenSemicolon, lexer.TokenAsm, lexer.TokenAttribute:
		// int f() = ..., int f(), int f(); and so on: not a definition
	default:
		if d.IsFunctionDeclarator() && (p.is(lexer.TokenLBrace) || p.isDeclarationSpecifier()) {
			return p.parseFunctionDefinition(d)
		}
		if d.IsFunctionDeclarator() {
			p.report(p.tok.Pos, diag.ErrExpectedFnBody)
		} else {
			p.report(p.tok.Pos, diag.ErrExpectedAfterDeclarator)
		}
		p.skipUntil(lexer.TokenSemicolon, false, true)
		return nil
	}

	decl, _ := p.parseInitDeclaratorListAfterFirstDeclarator(d)
	return decl
}

// parseFunctionDefinition parses the K&R parameter declarations, if any,
// and the body of a function whose declarator has been parsed.
// Parameters get no scope of their own.
func (p *Parser) parseFunctionDefinition(d *cabs.Declarator) sema.Decl {
	fi := d.FunctionInfo()
	if fi == nil {
		panic(internal("ParseFunctionDefinition", errNotFunction))
	}

	// int foo(a, b) int a; float b; {}
	if fi.IsKNR() {
		for p.isDeclarationSpecifier() {
			p.parseDeclaration(cabs.KNRTypeListContext)
		}
	}

	if !p.is(lexer.TokenLBrace) {
		p.report(p.tok.Pos, diag.ErrExpectedFnBody)
		p.skipUntil(lexer.TokenLBrace, true, false)
		if !p.is(lexer.TokenLBrace) {
			return nil
		}
	}

	body, ok := p.parseCompoundStatement(scope.FnScope | scope.DeclScope | scope.BlockScope)
	if !ok {
		return nil
	}
	return p.actions.FinishFunctionDefinition(p.curScope(), d, body)
}
