package parser

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseSimpleAsm:
//
//	simple-asm-expr:
//	  'asm' '(' asm-string-literal ')'    [GNU]
//
// It returns the string and whether one was found.
func (p *Parser) parseSimpleAsm() (string, bool) {
	p.consumeToken()
	if !p.is(lexer.TokenLParen) {
		p.report(p.tok.Pos, diag.ErrExpectedLParenAfter, "asm")
		return "", false
	}
	lparen := p.consumeToken()
	s, ok := p.parseAsmStringLiteral()
	p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	return s, ok
}

// parseAsmStringLiteral:
//
//	asm-string-literal:
//	  string-literal
func (p *Parser) parseAsmStringLiteral() (string, bool) {
	if !p.tok.Type.IsStringLiteral() {
		p.report(p.tok.Pos, diag.ErrExpectedStringLiteral)
		return "", false
	}
	lit := p.parseStringLiteralExpression()
	return lit.Value, true
}

// parseAsmStatement parses a GNU asm statement. Operand lists after the
// template are skipped.
//
//	asm-statement:
//	  'asm' type-qualifier-list[opt] '(' asm-string-literal asm-operands[opt] ')' ';'
func (p *Parser) parseAsmStatement() cabs.Stmt {
	p.consumeToken()
	p.parseTypeQualifiers()
	if !p.is(lexer.TokenLParen) {
		p.report(p.tok.Pos, diag.ErrExpectedLParenAfter, "asm")
		p.skipToStatementEnd()
		return nil
	}
	lparen := p.consumeToken()
	s, _ := p.parseAsmStringLiteral()
	if p.is(lexer.TokenColon) {
		p.skipUntil(lexer.TokenRParen, false, false)
	}
	p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	p.expectStatementSemi(diag.ErrExpectedSemiAfter, "asm statement")
	return cabs.Computation{Expr: cabs.Call{
		Func: cabs.Variable{Name: "__asm__"},
		Args: []cabs.Expr{cabs.StringLiteral{Value: s}},
	}}
}
