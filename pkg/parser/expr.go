package parser

import (
	"strconv"
	"strings"

	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// prec is the binding strength of a binary operator. Higher binds tighter.
type prec int

const (
	precUnknown prec = iota // not a binary operator
	precComma
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precInclusiveOr
	precExclusiveOr
	precAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type binOpInfo struct {
	op   cabs.BinaryOp
	prec prec
}

var binOps = map[lexer.TokenType]binOpInfo{
	lexer.TokenComma:         {cabs.OpComma, precComma},
	lexer.TokenAssign:        {cabs.OpAssign, precAssignment},
	lexer.TokenPlusAssign:    {cabs.OpAddAssign, precAssignment},
	lexer.TokenMinusAssign:   {cabs.OpSubAssign, precAssignment},
	lexer.TokenStarAssign:    {cabs.OpMulAssign, precAssignment},
	lexer.TokenSlashAssign:   {cabs.OpDivAssign, precAssignment},
	lexer.TokenPercentAssign: {cabs.OpModAssign, precAssignment},
	lexer.TokenAndAssign:     {cabs.OpAndAssign, precAssignment},
	lexer.TokenOrAssign:      {cabs.OpOrAssign, precAssignment},
	lexer.TokenXorAssign:     {cabs.OpXorAssign, precAssignment},
	lexer.TokenShlAssign:     {cabs.OpShlAssign, precAssignment},
	lexer.TokenShrAssign:     {cabs.OpShrAssign, precAssignment},
	lexer.TokenOr:            {cabs.OpOr, precLogicalOr},
	lexer.TokenAnd:           {cabs.OpAnd, precLogicalAnd},
	lexer.TokenPipe:          {cabs.OpBitOr, precInclusiveOr},
	lexer.TokenCaret:         {cabs.OpBitXor, precExclusiveOr},
	lexer.TokenAmpersand:     {cabs.OpBitAnd, precAnd},
	lexer.TokenEq:            {cabs.OpEq, precEquality},
	lexer.TokenNe:            {cabs.OpNe, precEquality},
	lexer.TokenLt:            {cabs.OpLt, precRelational},
	lexer.TokenLe:            {cabs.OpLe, precRelational},
	lexer.TokenGt:            {cabs.OpGt, precRelational},
	lexer.TokenGe:            {cabs.OpGe, precRelational},
	lexer.TokenShl:           {cabs.OpShl, precShift},
	lexer.TokenShr:           {cabs.OpShr, precShift},
	lexer.TokenPlus:          {cabs.OpAdd, precAdditive},
	lexer.TokenMinus:         {cabs.OpSub, precAdditive},
	lexer.TokenStar:          {cabs.OpMul, precMultiplicative},
	lexer.TokenSlash:         {cabs.OpDiv, precMultiplicative},
	lexer.TokenPercent:       {cabs.OpMod, precMultiplicative},
}

func binOpPrecedence(t lexer.TokenType) prec {
	if t == lexer.TokenQuestion {
		return precConditional
	}
	return binOps[t].prec
}

var prefixOps = map[lexer.TokenType]cabs.UnaryOp{
	lexer.TokenIncrement: cabs.OpPreInc,
	lexer.TokenDecrement: cabs.OpPreDec,
	lexer.TokenAmpersand: cabs.OpAddrOf,
	lexer.TokenStar:      cabs.OpDeref,
	lexer.TokenPlus:      cabs.OpPlus,
	lexer.TokenMinus:     cabs.OpNeg,
	lexer.TokenTilde:     cabs.OpBitNot,
	lexer.TokenNot:       cabs.OpNot,
}

// Every expression parser below returns nil once it has reported an
// error. The caller decides how far to skip.

// parseExpression:
//
//	expression:
//	  assignment-expression
//	  expression ',' assignment-expression
func (p *Parser) parseExpression() cabs.Expr {
	lhs := p.parseCastExpression()
	if lhs == nil {
		return nil
	}
	return p.parseRHSOfBinaryExpression(lhs, precComma)
}

// parseExpressionWithLeadingIdentifier continues an expression whose first
// token, an identifier, was consumed while looking for a label.
func (p *Parser) parseExpressionWithLeadingIdentifier(ident lexer.Token) cabs.Expr {
	lhs := p.parsePostfixExpressionSuffix(cabs.Variable{Name: ident.Literal})
	if lhs == nil {
		return nil
	}
	return p.parseRHSOfBinaryExpression(lhs, precComma)
}

func (p *Parser) parseAssignmentExpression() cabs.Expr {
	lhs := p.parseCastExpression()
	if lhs == nil {
		return nil
	}
	return p.parseRHSOfBinaryExpression(lhs, precAssignment)
}

// parseConstantExpression:
//
//	constant-expression:
//	  conditional-expression
func (p *Parser) parseConstantExpression() cabs.Expr {
	lhs := p.parseCastExpression()
	if lhs == nil {
		return nil
	}
	return p.parseRHSOfBinaryExpression(lhs, precConditional)
}

// parseRHSOfBinaryExpression folds binary operators of at least minPrec
// onto lhs by precedence climbing. Assignment and '?:' are right
// associative.
func (p *Parser) parseRHSOfBinaryExpression(lhs cabs.Expr, minPrec prec) cabs.Expr {
	next := binOpPrecedence(p.tok.Type)
	for {
		if next < minPrec || next == precUnknown {
			return lhs
		}
		opTok := p.tok
		p.consumeToken()

		var middle cabs.Expr
		if next == precConditional {
			middle = p.parseExpression()
			if middle == nil {
				return nil
			}
			if !p.expectAndConsume(lexer.TokenColon, diag.ErrExpected, ":", lexer.TokenNone) {
				return nil
			}
		}

		rhs := p.parseCastExpression()
		if rhs == nil {
			return nil
		}

		thisPrec := next
		next = binOpPrecedence(p.tok.Type)
		rightAssoc := thisPrec == precConditional || thisPrec == precAssignment
		if thisPrec < next || (thisPrec == next && rightAssoc) {
			sub := thisPrec + 1
			if rightAssoc {
				sub = thisPrec
			}
			rhs = p.parseRHSOfBinaryExpression(rhs, sub)
			if rhs == nil {
				return nil
			}
			next = binOpPrecedence(p.tok.Type)
		}

		if middle != nil {
			lhs = cabs.Conditional{Cond: lhs, Then: middle, Else: rhs}
		} else {
			lhs = cabs.Binary{Op: binOps[opTok.Type].op, Left: lhs, Right: rhs}
		}
	}
}

// parseCastExpression:
//
//	cast-expression:
//	  unary-expression
//	  '(' type-name ')' cast-expression
//	unary-expression:
//	  postfix-expression
//	  '++' unary-expression
//	  '--' unary-expression
//	  unary-operator cast-expression
//	  'sizeof' unary-expression
//	  'sizeof' '(' type-name ')'
//	primary-expression:
//	  identifier
//	  constant
//	  string-literal
//	  '(' expression ')'
func (p *Parser) parseCastExpression() cabs.Expr {
	if op, ok := prefixOps[p.tok.Type]; ok {
		p.consumeToken()
		operand := p.parseCastExpression()
		if operand == nil {
			return nil
		}
		return cabs.Unary{Op: op, Expr: operand}
	}

	switch p.tok.Type {
	case lexer.TokenLParen:
		return p.parseParenExpressionOrCast()
	case lexer.TokenSizeof:
		return p.parseSizeof()
	case lexer.TokenIdent:
		name := p.tok.Literal
		p.consumeToken()
		return p.parsePostfixExpressionSuffix(cabs.Variable{Name: name})
	case lexer.TokenNumber:
		c := numericConstant(p.tok.Literal)
		p.consumeToken()
		return p.parsePostfixExpressionSuffix(c)
	case lexer.TokenCharLit:
		c := cabs.CharLiteral{Value: p.tok.Literal}
		p.consumeToken()
		return p.parsePostfixExpressionSuffix(c)
	case lexer.TokenString, lexer.TokenWideString:
		return p.parsePostfixExpressionSuffix(p.parseStringLiteralExpression())
	}

	p.report(p.tok.Pos, diag.ErrExpectedExpression)
	return nil
}

// parseParenExpressionOrCast handles every form that starts with '(':
// a cast, a compound literal or a parenthesized expression.
func (p *Parser) parseParenExpressionOrCast() cabs.Expr {
	lparen := p.consumeToken()
	if p.isDeclarationSpecifier() {
		tn := p.parseTypeName()
		p.matchRHSPunctuation(lexer.TokenRParen, lparen)
		if p.is(lexer.TokenLBrace) {
			// (struct point){1, 2}
			return p.parsePostfixExpressionSuffix(cabs.Cast{Type: tn, Expr: p.parseInitializer()})
		}
		operand := p.parseCastExpression()
		if operand == nil {
			return nil
		}
		return cabs.Cast{Type: tn, Expr: operand}
	}

	e := p.parseExpression()
	if e == nil {
		p.skipUntil(lexer.TokenRParen, false, true)
		return nil
	}
	p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	return p.parsePostfixExpressionSuffix(cabs.Paren{Expr: e})
}

func (p *Parser) parseSizeof() cabs.Expr {
	p.consumeToken()
	if !p.is(lexer.TokenLParen) {
		operand := p.parseCastExpression()
		if operand == nil {
			return nil
		}
		return cabs.SizeofExpr{Expr: operand}
	}

	lparen := p.consumeToken()
	if p.isDeclarationSpecifier() {
		tn := p.parseTypeName()
		p.matchRHSPunctuation(lexer.TokenRParen, lparen)
		if p.is(lexer.TokenLBrace) {
			lit := p.parsePostfixExpressionSuffix(cabs.Cast{Type: tn, Expr: p.parseInitializer()})
			if lit == nil {
				return nil
			}
			return cabs.SizeofExpr{Expr: lit}
		}
		return cabs.SizeofType{Type: tn}
	}

	e := p.parseExpression()
	if e == nil {
		p.skipUntil(lexer.TokenRParen, false, true)
		return nil
	}
	p.matchRHSPunctuation(lexer.TokenRParen, lparen)
	operand := p.parsePostfixExpressionSuffix(cabs.Paren{Expr: e})
	if operand == nil {
		return nil
	}
	return cabs.SizeofExpr{Expr: operand}
}

// parsePostfixExpressionSuffix:
//
//	postfix-expression:
//	  primary-expression
//	  postfix-expression '[' expression ']'
//	  postfix-expression '(' argument-expression-list[opt] ')'
//	  postfix-expression '.' identifier
//	  postfix-expression '->' identifier
//	  postfix-expression '++'
//	  postfix-expression '--'
func (p *Parser) parsePostfixExpressionSuffix(lhs cabs.Expr) cabs.Expr {
	for {
		switch p.tok.Type {
		case lexer.TokenLBracket:
			lbracket := p.consumeToken()
			idx := p.parseExpression()
			if idx == nil {
				p.skipUntil(lexer.TokenRBracket, false, true)
				return nil
			}
			p.matchRHSPunctuation(lexer.TokenRBracket, lbracket)
			lhs = cabs.Index{Array: lhs, Index: idx}

		case lexer.TokenLParen:
			lparen := p.consumeToken()
			call := cabs.Call{Func: lhs}
			for !p.is(lexer.TokenRParen) {
				arg := p.parseAssignmentExpression()
				if arg == nil {
					p.skipUntil(lexer.TokenRParen, false, true)
					return nil
				}
				call.Args = append(call.Args, arg)
				if !p.is(lexer.TokenComma) {
					break
				}
				p.consumeToken()
			}
			p.matchRHSPunctuation(lexer.TokenRParen, lparen)
			lhs = call

		case lexer.TokenDot, lexer.TokenArrow:
			arrow := p.is(lexer.TokenArrow)
			p.consumeToken()
			if !p.is(lexer.TokenIdent) {
				p.report(p.tok.Pos, diag.ErrExpectedIdent)
				return nil
			}
			lhs = cabs.Member{Expr: lhs, Name: p.tok.Literal, IsArrow: arrow}
			p.consumeToken()

		case lexer.TokenIncrement:
			p.consumeToken()
			lhs = cabs.Unary{Op: cabs.OpPostInc, Expr: lhs}
		case lexer.TokenDecrement:
			p.consumeToken()
			lhs = cabs.Unary{Op: cabs.OpPostDec, Expr: lhs}

		default:
			return lhs
		}
	}
}

// parseStringLiteralExpression concatenates adjacent string literals. The
// result is wide if any piece is. The lookahead must be a string literal.
func (p *Parser) parseStringLiteralExpression() cabs.StringLiteral {
	var lit cabs.StringLiteral
	var b strings.Builder
	for p.tok.Type.IsStringLiteral() {
		if p.is(lexer.TokenWideString) {
			lit.Wide = true
		}
		b.WriteString(p.tok.Literal)
		p.consumeStringToken()
	}
	lit.Value = b.String()
	return lit
}

// numericConstant converts the spelling of a numeric literal. Integer
// suffixes are ignored; a spelling that is not a C integer keeps Value 0.
func numericConstant(text string) cabs.Constant {
	c := cabs.Constant{Text: text}
	digits := strings.TrimRight(text, "uUlL")
	if !isCInteger(digits) {
		return c
	}
	if v, err := strconv.ParseInt(digits, 0, 64); err == nil {
		c.Value = v
	} else if u, err := strconv.ParseUint(digits, 0, 64); err == nil {
		c.Value = int64(u)
	}
	return c
}

// isCInteger rejects the spellings strconv accepts but C does not: digit
// separators and the 0b and 0o prefixes.
func isCInteger(digits string) bool {
	if strings.ContainsRune(digits, '_') {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'b', 'B', 'o', 'O':
			return false
		}
	}
	return true
}
