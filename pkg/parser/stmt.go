package parser

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/scope"
)

// parseCompoundStatement parses a block in a new scope with the given
// flags. The lookahead must be '{'. The block is invalid when the input
// ends before its '}'.
//
//	compound-statement:
//	  '{' block-item-list[opt] '}'
func (p *Parser) parseCompoundStatement(flags scope.Flags) (*cabs.Block, bool) {
	lbrace := p.consumeToken()
	p.enterScope(flags)

	block := &cabs.Block{}
	for !p.is(lexer.TokenRBrace) && !p.is(lexer.TokenEOF) {
		if s := p.parseStatementOrDeclaration(); s != nil {
			block.Items = append(block.Items, s)
		}
	}

	p.exitScope()
	if !p.is(lexer.TokenRBrace) {
		p.matchRHSPunctuation(lexer.TokenRBrace, lbrace)
		return block, false
	}
	p.consumeToken()
	return block, true
}

func (p *Parser) parseStatementOrDeclaration() cabs.Stmt {
	if p.isDeclarationSpecifier() {
		_, decls := p.parseDeclaration(cabs.BlockContext)
		if len(decls) == 0 {
			return nil
		}
		return &cabs.DeclStmt{Decls: decls}
	}
	return p.parseStatement()
}

// parseStatement parses one statement. It returns nil when the statement
// was malformed; recovery has already happened by then.
func (p *Parser) parseStatement() cabs.Stmt {
	switch p.tok.Type {
	case lexer.TokenSemicolon:
		p.consumeToken()
		return cabs.Null{}
	case lexer.TokenLBrace:
		block, _ := p.parseCompoundStatement(scope.BlockScope | scope.DeclScope)
		return block
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenDo:
		return p.parseDoStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenSwitch:
		return p.parseSwitchStatement()
	case lexer.TokenCase:
		return p.parseCaseStatement()
	case lexer.TokenDefault:
		return p.parseDefaultStatement()
	case lexer.TokenReturn:
		return p.parseReturnStatement()
	case lexer.TokenBreak:
		p.consumeToken()
		p.expectStatementSemi(diag.ErrExpectedSemiAfter, "break statement")
		return cabs.Break{}
	case lexer.TokenContinue:
		p.consumeToken()
		p.expectStatementSemi(diag.ErrExpectedSemiAfter, "continue statement")
		return cabs.Continue{}
	case lexer.TokenGoto:
		return p.parseGotoStatement()
	case lexer.TokenAsm:
		return p.parseAsmStatement()
	case lexer.TokenIdent:
		// label or expression starting with an identifier
		ident := p.tok
		p.consumeToken()
		if p.is(lexer.TokenColon) {
			p.consumeToken()
			return cabs.Label{Name: ident.Literal, Stmt: p.parseSubStatement()}
		}
		return p.finishExpressionStatement(p.parseExpressionWithLeadingIdentifier(ident))
	}
	return p.finishExpressionStatement(p.parseExpression())
}

func (p *Parser) finishExpressionStatement(e cabs.Expr) cabs.Stmt {
	if e == nil {
		p.skipToStatementEnd()
		return nil
	}
	p.expectStatementSemi(diag.ErrExpectedSemiAfter, "expression")
	return cabs.Computation{Expr: e}
}

// parseSubStatement parses the statement governed by a label or a
// control statement. A '}' or EOF there is reported and left alone.
func (p *Parser) parseSubStatement() cabs.Stmt {
	if p.is(lexer.TokenRBrace) || p.is(lexer.TokenEOF) {
		p.report(p.tok.Pos, diag.ErrExpectedStatement)
		return cabs.Null{}
	}
	if s := p.parseStatement(); s != nil {
		return s
	}
	return cabs.Null{}
}

// parseParenExpression parses '(' expression ')' after keyword. ok is
// false when the '(' is missing; the caller should give up on the
// statement.
func (p *Parser) parseParenExpression(keyword string) (e cabs.Expr, ok bool) {
	if !p.is(lexer.TokenLParen) {
		p.report(p.tok.Pos, diag.ErrExpectedLParenAfter, keyword)
		p.skipToStatementEnd()
		return nil, false
	}
	lparen := p.consumeToken()
	e = p.parseExpression()
	if e == nil {
		p.skipUntil(lexer.TokenRParen, false, true)
		return nil, true
	}
	p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	return e, true
}

//	'if' '(' expression ')' statement
//	'if' '(' expression ')' statement 'else' statement
func (p *Parser) parseIfStatement() cabs.Stmt {
	p.consumeToken()
	cond, ok := p.parseParenExpression("if")
	if !ok {
		return nil
	}
	st := cabs.If{Cond: cond, Then: p.parseSubStatement()}
	if p.is(lexer.TokenElse) {
		p.consumeToken()
		st.Else = p.parseSubStatement()
	}
	if cond == nil {
		return nil
	}
	return st
}

func (p *Parser) parseWhileStatement() cabs.Stmt {
	p.consumeToken()
	cond, ok := p.parseParenExpression("while")
	if !ok {
		return nil
	}
	body := p.parseSubStatement()
	if cond == nil {
		return nil
	}
	return cabs.While{Cond: cond, Body: body}
}

//	'do' statement 'while' '(' expression ')' ';'
func (p *Parser) parseDoStatement() cabs.Stmt {
	p.consumeToken()
	body := p.parseSubStatement()
	if !p.is(lexer.TokenWhile) {
		p.report(p.tok.Pos, diag.ErrExpectedWhile)
		p.skipToStatementEnd()
		return nil
	}
	p.consumeToken()
	cond, ok := p.parseParenExpression("while")
	if !ok {
		return nil
	}
	p.expectStatementSemi(diag.ErrExpectedSemiAfter, "do/while statement")
	if cond == nil {
		return nil
	}
	return cabs.DoWhile{Body: body, Cond: cond}
}

//	'for' '(' expression[opt] ';' expression[opt] ';' expression[opt] ')' statement
//	'for' '(' declaration expression[opt] ';' expression[opt] ')' statement
func (p *Parser) parseForStatement() cabs.Stmt {
	p.consumeToken()
	if !p.is(lexer.TokenLParen) {
		p.report(p.tok.Pos, diag.ErrExpectedLParenAfter, "for")
		p.skipToStatementEnd()
		return nil
	}
	lparen := p.consumeToken()
	p.enterScope(scope.BlockScope | scope.DeclScope)

	st := cabs.For{}
	ok := true
	if p.isDeclarationSpecifier() {
		_, decls := p.parseDeclaration(cabs.BlockContext)
		st.InitDecl = &cabs.DeclStmt{Decls: decls}
	} else {
		if !p.is(lexer.TokenSemicolon) {
			st.Init = p.parseExpression()
			ok = st.Init != nil
		}
		ok = ok && p.expectAndConsume(lexer.TokenSemicolon, diag.ErrExpected, ";", lexer.TokenNone)
	}
	if ok && !p.is(lexer.TokenSemicolon) {
		st.Cond = p.parseExpression()
		ok = st.Cond != nil
	}
	ok = ok && p.expectAndConsume(lexer.TokenSemicolon, diag.ErrExpected, ";", lexer.TokenNone)
	if ok && !p.is(lexer.TokenRParen) {
		st.Step = p.parseExpression()
		ok = st.Step != nil
	}
	if ok {
		p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	} else {
		p.skipUntil(lexer.TokenRParen, false, true)
	}

	st.Body = p.parseSubStatement()
	p.exitScope()
	if !ok {
		return nil
	}
	return st
}

func (p *Parser) parseSwitchStatement() cabs.Stmt {
	p.consumeToken()
	cond, ok := p.parseParenExpression("switch")
	if !ok {
		return nil
	}
	body := p.parseSubStatement()
	if cond == nil {
		return nil
	}
	return cabs.Switch{Expr: cond, Body: body}
}

//	'case' constant-expression ':' statement
func (p *Parser) parseCaseStatement() cabs.Stmt {
	p.consumeToken()
	e := p.parseConstantExpression()
	if e == nil {
		p.skipToStatementEnd()
		return nil
	}
	if !p.expectAndConsume(lexer.TokenColon, diag.ErrExpected, ":", lexer.TokenNone) {
		p.skipToStatementEnd()
		return nil
	}
	return cabs.Case{Expr: e, Stmt: p.parseSubStatement()}
}

func (p *Parser) parseDefaultStatement() cabs.Stmt {
	p.consumeToken()
	if !p.expectAndConsume(lexer.TokenColon, diag.ErrExpected, ":", lexer.TokenNone) {
		p.skipToStatementEnd()
		return nil
	}
	return cabs.Default{Stmt: p.parseSubStatement()}
}

func (p *Parser) parseReturnStatement() cabs.Stmt {
	p.consumeToken()
	st := cabs.Return{}
	if !p.is(lexer.TokenSemicolon) {
		st.Expr = p.parseExpression()
		if st.Expr == nil {
			p.skipToStatementEnd()
			return nil
		}
	}
	p.expectStatementSemi(diag.ErrExpectedSemiAfter, "return statement")
	return st
}

func (p *Parser) parseGotoStatement() cabs.Stmt {
	p.consumeToken()
	if !p.is(lexer.TokenIdent) {
		p.report(p.tok.Pos, diag.ErrExpectedIdent)
		p.skipToStatementEnd()
		return nil
	}
	st := cabs.Goto{Label: p.tok.Literal}
	p.consumeToken()
	p.expectStatementSemi(diag.ErrExpectedSemiAfter, "goto statement")
	return st
}
