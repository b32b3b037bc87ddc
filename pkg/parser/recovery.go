package parser

import (
	"errors"

	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// skipUntil consumes tokens until the lookahead is target. Nested
// brackets are skipped as whole units. A closer that is not the target
// stops the skip when an enclosing caller has an open bracket of that
// kind, unless it is the very first token looked at. With stopAtSemi a
// ';' that is not the target stops the skip unconsumed. EOF always stops
// it. It returns the position of target and whether it was found.
func (p *Parser) skipUntil(target lexer.TokenType, stopAtSemi, consume bool) (lexer.Pos, bool) {
	first := true
	for {
		if p.tok.Type == target {
			pos := p.tok.Pos
			if consume {
				p.consumeAnyToken()
			}
			return pos, true
		}

		switch p.tok.Type {
		case lexer.TokenEOF:
			return p.tok.Pos, false

		case lexer.TokenLParen:
			p.consumeParen()
			p.skipUntil(lexer.TokenRParen, false, true)
		case lexer.TokenLBracket:
			p.consumeBracket()
			p.skipUntil(lexer.TokenRBracket, false, true)
		case lexer.TokenLBrace:
			p.consumeBrace()
			p.skipUntil(lexer.TokenRBrace, false, true)

		case lexer.TokenRParen:
			if p.parenCount > 0 && !first {
				return p.tok.Pos, false
			}
			p.consumeParen()
		case lexer.TokenRBracket:
			if p.bracketCount > 0 && !first {
				return p.tok.Pos, false
			}
			p.consumeBracket()
		case lexer.TokenRBrace:
			if p.braceCount > 0 && !first {
				return p.tok.Pos, false
			}
			p.consumeBrace()

		case lexer.TokenString, lexer.TokenWideString:
			p.consumeStringToken()

		case lexer.TokenSemicolon:
			if stopAtSemi {
				return p.tok.Pos, false
			}
			p.consumeToken()

		default:
			p.consumeToken()
		}
		first = false
	}
}

// matchRHSPunctuation consumes the closer matching the opener at
// openPos. On a mismatch it reports the missing closer and the opener,
// skips to the closer and returns the position of the mismatch.
func (p *Parser) matchRHSPunctuation(close lexer.TokenType, openPos lexer.Pos) lexer.Pos {
	if p.tok.Type == close {
		return p.consumeAnyToken()
	}

	var id diag.ID
	var open string
	switch close {
	case lexer.TokenRParen:
		id, open = diag.ErrExpectedRParen, "("
	case lexer.TokenRBrace:
		id, open = diag.ErrExpectedRBrace, "{"
	case lexer.TokenRBracket:
		id, open = diag.ErrExpectedRSquare, "["
	default:
		panic(internal("MatchRHSPunctuation", errors.New("not a closing delimiter: "+close.String())))
	}

	pos := p.tok.Pos
	p.report(pos, id)
	p.report(openPos, diag.NoteMatching, open)
	p.skipUntil(close, false, true)
	return pos
}

// expectAndConsume consumes the lookahead if it is expected. Otherwise it
// reports id with arg and, unless recoverTo is TokenNone, skips to
// recoverTo. It reports whether the expected token was there.
func (p *Parser) expectAndConsume(expected lexer.TokenType, id diag.ID, arg string, recoverTo lexer.TokenType) bool {
	if p.tok.Type == expected {
		p.consumeAnyToken()
		return true
	}
	if arg != "" {
		p.report(p.tok.Pos, id, arg)
	} else {
		p.report(p.tok.Pos, id)
	}
	if recoverTo != lexer.TokenNone {
		p.skipUntil(recoverTo, false, true)
	}
	return false
}

// skipToStatementEnd skips past the next ';' but never eats the '}' that
// closes the enclosing block.
func (p *Parser) skipToStatementEnd() {
	if !p.is(lexer.TokenRBrace) {
		p.skipUntil(lexer.TokenSemicolon, false, true)
	}
}

// expectStatementSemi is expectAndConsume for the ';' ending a statement
func (p *Parser) expectStatementSemi(id diag.ID, arg string) bool {
	if p.expectAndConsume(lexer.TokenSemicolon, id, arg, lexer.TokenNone) {
		return true
	}
	p.skipToStatementEnd()
	return false
}
