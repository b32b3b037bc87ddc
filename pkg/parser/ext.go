package parser

import (
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// parseAtDirective recognizes an '@' directive and skips it. One-line
// forms end at ';'; the others run to the matching '@end'.
func (p *Parser) parseAtDirective() {
	at := p.consumeToken()
	name := p.tok.Literal
	if p.is(lexer.TokenIdent) {
		p.consumeToken()
	}
	p.report(at, diag.ExtUnsupportedDirective, "'@"+name+"' directive")

	switch name {
	case "end":
		return
	case "class", "compatibility_alias":
		p.skipUntil(lexer.TokenSemicolon, false, true)
		return
	}

	for !p.is(lexer.TokenEOF) {
		if p.is(lexer.TokenAt) {
			p.consumeToken()
			if p.is(lexer.TokenIdent) && p.tok.Literal == "end" {
				p.consumeToken()
				return
			}
			continue
		}
		p.skipBalancedToken()
	}
}

// parseMethodDeclaration skips a '-' or '+' method declaration, which
// ends at ';' or after a braced body.
func (p *Parser) parseMethodDeclaration() {
	pos := p.consumeToken()
	p.report(pos, diag.ExtUnsupportedDirective, "method declaration")

	for !p.is(lexer.TokenEOF) {
		switch p.tok.Type {
		case lexer.TokenSemicolon:
			p.consumeToken()
			return
		case lexer.TokenLBrace:
			p.consumeToken()
			p.skipUntil(lexer.TokenRBrace, false, true)
			return
		}
		p.skipBalancedToken()
	}
}

// skipBalancedToken consumes one token, or one bracketed group when the
// lookahead opens one.
func (p *Parser) skipBalancedToken() {
	switch p.tok.Type {
	case lexer.TokenLParen:
		p.consumeToken()
		p.skipUntil(lexer.TokenRParen, false, true)
	case lexer.TokenLBracket:
		p.consumeToken()
		p.skipUntil(lexer.TokenRBracket, false, true)
	case lexer.TokenLBrace:
		p.consumeToken()
		p.skipUntil(lexer.TokenRBrace, false, true)
	default:
		p.consumeAnyToken()
	}
}
