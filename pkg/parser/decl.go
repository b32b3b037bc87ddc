package parser

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/sema"
)

// parseDeclaration:
//
//	declaration:
//	  declaration-specifiers init-declarator-list[opt] ';'
//
// It returns the last handle from the semantic layer and the declarators
// that were completed.
func (p *Parser) parseDeclaration(ctx cabs.DeclContext) (sema.Decl, []*cabs.Declarator) {
	spec := &cabs.DeclSpec{Pos: p.tok.Pos}
	p.parseDeclarationSpecifiers(spec)
	if p.is(lexer.TokenSemicolon) {
		p.consumeToken()
		return nil, nil
	}

	d := cabs.NewDeclarator(spec, ctx)
	p.parseDeclarator(d)
	if !d.HasIdentifier() {
		if ctx == cabs.BlockContext {
			p.skipToStatementEnd()
			return nil, nil
		}
		p.skipUntil(lexer.TokenRBrace, true, true)
		if p.is(lexer.TokenSemicolon) {
			p.consumeToken()
		}
		return nil, nil
	}
	return p.parseInitDeclaratorListAfterFirstDeclarator(d)
}

// parseInitDeclaratorListAfterFirstDeclarator:
//
//	init-declarator-list:
//	  init-declarator
//	  init-declarator-list ',' init-declarator
//	init-declarator:
//	  declarator asm-label[opt] attributes[opt]
//	  declarator asm-label[opt] attributes[opt] '=' initializer
func (p *Parser) parseInitDeclaratorListAfterFirstDeclarator(d *cabs.Declarator) (sema.Decl, []*cabs.Declarator) {
	var last sema.Decl
	var decls []*cabs.Declarator
	for {
		if p.is(lexer.TokenAsm) {
			d.AsmLabel, _ = p.parseSimpleAsm()
		}
		d.Attrs = append(d.Attrs, p.parseAttributes()...)
		if p.is(lexer.TokenAssign) {
			p.consumeToken()
			d.Init = p.parseInitializer()
		}

		if d.HasIdentifier() {
			last = p.actions.DeclareIdentifier(p.curScope(), d, d.Context)
			decls = append(decls, d)
		}

		if !p.is(lexer.TokenComma) {
			break
		}
		p.consumeToken()
		d = cabs.NewDeclarator(d.Spec, d.Context)
		p.parseDeclarator(d)
	}

	if d.Context == cabs.BlockContext {
		p.expectStatementSemi(diag.ErrExpectedSemiDeclaration, "")
	} else {
		p.expectAndConsume(lexer.TokenSemicolon, diag.ErrExpectedSemiDeclaration, "", lexer.TokenSemicolon)
	}
	return last, decls
}

// parseInitializer:
//
//	initializer:
//	  assignment-expression
//	  '{' initializer-list ','[opt] '}'
func (p *Parser) parseInitializer() cabs.Expr {
	if !p.is(lexer.TokenLBrace) {
		return p.parseAssignmentExpression()
	}
	lbrace := p.consumeToken()
	list := cabs.InitList{}
	for !p.is(lexer.TokenRBrace) {
		item := p.parseInitializer()
		if item == nil {
			p.skipUntil(lexer.TokenRBrace, false, true)
			return list
		}
		list.Items = append(list.Items, item)
		if !p.is(lexer.TokenComma) {
			break
		}
		p.consumeToken()
	}
	p.matchRHSPunctuation(lexer.TokenRBrace, lbrace)
	return list
}
