package parser

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseDeclarator:
//
//	declarator:
//	  pointer[opt] direct-declarator
//	pointer:
//	  '*' type-qualifier-list[opt]
//	  '*' type-qualifier-list[opt] pointer
//
// Pieces end up innermost first: the pointer is added after everything
// the direct declarator binds more tightly.
func (p *Parser) parseDeclarator(d *cabs.Declarator) {
	if p.is(lexer.TokenStar) {
		pos := p.consumeToken()
		quals := p.parseTypeQualifiers()
		p.parseDeclarator(d)
		d.AddPiece(cabs.TypeInfo{Kind: cabs.PointerPiece, Pos: pos, Quals: quals})
		return
	}
	p.parseDirectDeclarator(d)
}

// parseDirectDeclarator:
//
//	direct-declarator:
//	  identifier
//	  '(' declarator ')'
//	  direct-declarator '[' assignment-expression[opt] ']'
//	  direct-declarator '(' parameter-type-list ')'
//	  direct-declarator '(' identifier-list[opt] ')'
func (p *Parser) parseDirectDeclarator(d *cabs.Declarator) {
	switch {
	case p.is(lexer.TokenIdent):
		d.Ident = p.tok.Literal
		d.IdentPos = p.consumeToken()
	case p.is(lexer.TokenLParen):
		lparen := p.consumeToken()
		// In an abstract declarator "(int)" and "()" are parameter lists
		if d.Context.AllowsAbstract() && p.startsParameterList() {
			p.parseFunctionDeclaratorAfterParen(d, lparen)
			break
		}
		d.Attrs = append(d.Attrs, p.parseAttributes()...)
		p.parseDeclarator(d)
		p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	default:
		if !d.Context.AllowsAbstract() {
			p.report(p.tok.Pos, diag.ErrExpectedIdentOrLParen)
		}
	}

	for {
		switch p.tok.Type {
		case lexer.TokenLParen:
			lparen := p.consumeToken()
			p.parseFunctionDeclaratorAfterParen(d, lparen)
		case lexer.TokenLBracket:
			p.parseBracketDeclarator(d)
		default:
			return
		}
	}
}

func (p *Parser) startsParameterList() bool {
	return p.is(lexer.TokenRParen) || p.is(lexer.TokenEllipsis) || p.isDeclarationSpecifier()
}

// parseFunctionDeclaratorAfterParen parses a parameter list whose '(' is
// already consumed and adds the function piece.
func (p *Parser) parseFunctionDeclaratorAfterParen(d *cabs.Declarator, lparen lexer.Pos) {
	fi := &cabs.FunctionInfo{LParen: lparen}
	switch {
	case p.is(lexer.TokenRParen):
		// int f()
		fi.IsEmpty = true
		fi.RParen = p.consumeToken()
	case p.is(lexer.TokenIdent) && !p.isTypeName(p.tok.Literal):
		// int f(a, b)
		p.parseIdentifierList(fi)
		fi.RParen = p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	default:
		fi.HasPrototype = true
		p.parseParameterTypeList(fi)
		fi.RParen = p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	}
	d.AddPiece(cabs.TypeInfo{Kind: cabs.FunctionPiece, Pos: lparen, Fun: fi})
}

// parseIdentifierList:
//
//	identifier-list:
//	  identifier
//	  identifier-list ',' identifier
func (p *Parser) parseIdentifierList(fi *cabs.FunctionInfo) {
	for {
		fi.Idents = append(fi.Idents, cabs.Ident{Name: p.tok.Literal, Pos: p.tok.Pos})
		p.consumeToken()
		if !p.is(lexer.TokenComma) {
			return
		}
		p.consumeToken()
		if !p.is(lexer.TokenIdent) {
			p.report(p.tok.Pos, diag.ErrExpectedIdent)
			return
		}
	}
}

// parseParameterTypeList:
//
//	parameter-type-list:
//	  parameter-list
//	  parameter-list ',' '...'
//	parameter-declaration:
//	  declaration-specifiers declarator
//	  declaration-specifiers abstract-declarator[opt]
func (p *Parser) parseParameterTypeList(fi *cabs.FunctionInfo) {
	for {
		if p.is(lexer.TokenEllipsis) {
			p.consumeToken()
			fi.IsVariadic = true
			break
		}
		spec := &cabs.DeclSpec{Pos: p.tok.Pos}
		p.parseDeclarationSpecifiers(spec)
		param := cabs.NewDeclarator(spec, cabs.PrototypeContext)
		p.parseDeclarator(param)
		param.Attrs = append(param.Attrs, p.parseAttributes()...)
		fi.Params = append(fi.Params, param)
		if !p.is(lexer.TokenComma) {
			break
		}
		p.consumeToken()
	}

	// int f(void)
	if len(fi.Params) == 1 && !fi.IsVariadic && isVoidParam(fi.Params[0]) {
		fi.Params = nil
	}
}

func isVoidParam(d *cabs.Declarator) bool {
	s := d.Spec
	return d.Ident == "" && len(d.Pieces) == 0 && s.Storage == cabs.StorageNone &&
		s.Quals == 0 && len(s.TypeSpecs) == 1 && s.TypeSpecs[0] == "void"
}

// parseBracketDeclarator:
//
//	'[' type-qualifier-list[opt] 'static'[opt] assignment-expression[opt] ']'
func (p *Parser) parseBracketDeclarator(d *cabs.Declarator) {
	lbracket := p.consumeToken()
	piece := cabs.TypeInfo{Kind: cabs.ArrayPiece, Pos: lbracket}
	for {
		if p.is(lexer.TokenStatic) {
			p.consumeToken()
			continue
		}
		if _, ok := qualifiers[p.tok.Type]; ok {
			piece.Quals |= p.parseTypeQualifiers()
			continue
		}
		break
	}
	if !p.is(lexer.TokenRBracket) {
		piece.Size = p.parseAssignmentExpression()
	}
	p.matchRHSPunctuation(lexer.TokenRBracket, lbracket)
	d.AddPiece(piece)
}

// parseTypeName:
//
//	type-name:
//	  specifier-qualifier-list abstract-declarator[opt]
func (p *Parser) parseTypeName() *cabs.TypeName {
	spec := &cabs.DeclSpec{Pos: p.tok.Pos}
	p.parseDeclarationSpecifiers(spec)
	d := cabs.NewDeclarator(spec, cabs.TypeNameContext)
	p.parseDeclarator(d)
	return &cabs.TypeName{Spec: spec, Decl: d}
}
