package parser

import "github.com/raymyers/cfront/pkg/lexer"

// consumeToken consumes the lookahead, whatever its kind, and returns its
// position. The nesting counters follow every bracket kind.
func (p *Parser) consumeToken() lexer.Pos {
	switch p.tok.Type {
	case lexer.TokenLParen, lexer.TokenRParen:
		return p.consumeParen()
	case lexer.TokenLBracket, lexer.TokenRBracket:
		return p.consumeBracket()
	case lexer.TokenLBrace, lexer.TokenRBrace:
		return p.consumeBrace()
	}
	return p.advance()
}

// consumeParen consumes a '(' or ')'. The counter saturates at zero.
func (p *Parser) consumeParen() lexer.Pos {
	if p.is(lexer.TokenLParen) {
		p.parenCount++
	} else if p.parenCount > 0 {
		p.parenCount--
	}
	return p.advance()
}

// consumeBracket consumes a '[' or ']'. The counter saturates at zero.
func (p *Parser) consumeBracket() lexer.Pos {
	if p.is(lexer.TokenLBracket) {
		p.bracketCount++
	} else if p.bracketCount > 0 {
		p.bracketCount--
	}
	return p.advance()
}

// consumeBrace consumes a '{' or '}'. The counter saturates at zero.
func (p *Parser) consumeBrace() lexer.Pos {
	if p.is(lexer.TokenLBrace) {
		p.braceCount++
	} else if p.braceCount > 0 {
		p.braceCount--
	}
	return p.advance()
}

// consumeStringToken consumes a string literal. Kept apart from
// consumeToken for literal-specific bookkeeping.
func (p *Parser) consumeStringToken() lexer.Pos {
	return p.advance()
}

func (p *Parser) consumeAnyToken() lexer.Pos {
	if p.tok.Type.IsStringLiteral() {
		return p.consumeStringToken()
	}
	return p.consumeToken()
}

func (p *Parser) advance() lexer.Pos {
	pos := p.tok.Pos
	p.tok = p.src.Next()
	return pos
}

func (p *Parser) is(t lexer.TokenType) bool {
	return p.tok.Type == t
}
