package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes C source code
type Lexer struct {
	input     string
	file      string
	pos       int  // current position in input
	readPos   int  // next reading position
	ch        byte // current character
	line      int
	column    int
	lineStart bool // only whitespace seen since the last newline
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	return NewFile("", input)
}

// NewFile creates a Lexer whose token positions carry filename. Line
// markers in the input (`# 12 "other.h"`) override it.
func NewFile(filename, input string) *Lexer {
	l := &Lexer{input: input, file: filename, line: 1, column: 0, lineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = min(l.readPos, len(l.input))
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekCharAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

// Next returns the next token. Once the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) Next() Token {
	return l.NextToken()
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		l.skipComments()
		l.skipWhitespace()
		if l.ch == '#' && l.lineStart {
			l.readDirectiveLine()
			continue
		}
		break
	}
	l.lineStart = false

	tok := Token{Pos: l.here()}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
		return tok
	case '+':
		tok = l.either(tok, '+', TokenIncrement, '=', TokenPlusAssign, TokenPlus)
	case '-':
		switch l.peekChar() {
		case '>':
			tok = l.two(tok, TokenArrow)
		case '-':
			tok = l.two(tok, TokenDecrement)
		case '=':
			tok = l.two(tok, TokenMinusAssign)
		default:
			tok = l.newToken(TokenMinus, l.ch)
		}
	case '*':
		tok = l.maybeAssign(tok, TokenStar, TokenStarAssign)
	case '/':
		tok = l.maybeAssign(tok, TokenSlash, TokenSlashAssign)
	case '%':
		tok = l.maybeAssign(tok, TokenPercent, TokenPercentAssign)
	case '^':
		tok = l.maybeAssign(tok, TokenCaret, TokenXorAssign)
	case '=':
		tok = l.maybeAssign(tok, TokenAssign, TokenEq)
	case '!':
		tok = l.maybeAssign(tok, TokenNot, TokenNe)
	case '<':
		if l.peekChar() == '<' {
			if l.peekCharAt(1) == '=' {
				tok = l.three(tok, TokenShlAssign)
			} else {
				tok = l.two(tok, TokenShl)
			}
		} else {
			tok = l.maybeAssign(tok, TokenLt, TokenLe)
		}
	case '>':
		if l.peekChar() == '>' {
			if l.peekCharAt(1) == '=' {
				tok = l.three(tok, TokenShrAssign)
			} else {
				tok = l.two(tok, TokenShr)
			}
		} else {
			tok = l.maybeAssign(tok, TokenGt, TokenGe)
		}
	case '&':
		tok = l.either(tok, '&', TokenAnd, '=', TokenAndAssign, TokenAmpersand)
	case '|':
		tok = l.either(tok, '|', TokenOr, '=', TokenOrAssign, TokenPipe)
	case '~':
		tok = l.newToken(TokenTilde, l.ch)
	case '?':
		tok = l.newToken(TokenQuestion, l.ch)
	case ':':
		tok = l.newToken(TokenColon, l.ch)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case '[':
		tok = l.newToken(TokenLBracket, l.ch)
	case ']':
		tok = l.newToken(TokenRBracket, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '@':
		tok = l.newToken(TokenAt, l.ch)
	case '#':
		tok = l.newToken(TokenHash, l.ch)
	case '.':
		if l.peekChar() == '.' && l.peekCharAt(1) == '.' {
			tok = l.three(tok, TokenEllipsis)
		} else if isDigit(l.peekChar()) {
			tok.Type = TokenNumber
			tok.Literal = l.readNumber()
			return tok
		} else {
			tok = l.newToken(TokenDot, l.ch)
		}
	case '"':
		tok.Type = TokenString
		tok.Literal = l.readQuoted('"')
		return tok
	case '\'':
		tok.Type = TokenCharLit
		tok.Literal = l.readQuoted('\'')
		return tok
	default:
		if isLetter(l.ch) {
			if l.ch == 'L' && (l.peekChar() == '"' || l.peekChar() == '\'') {
				l.readChar() // consume L
				if l.ch == '"' {
					tok.Type = TokenWideString
					tok.Literal = l.readQuoted('"')
				} else {
					tok.Type = TokenCharLit
					tok.Literal = l.readQuoted('\'')
				}
				return tok
			}
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			tok.Type = TokenNumber
			tok.Literal = l.readNumber()
			return tok
		} else {
			tok = l.newToken(TokenIllegal, l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) here() Pos {
	return Pos{File: l.file, Line: l.line, Column: l.column}
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Pos: l.here()}
}

// two consumes the current character and returns a two-character token.
// The caller's readChar at the end of NextToken consumes the second.
func (l *Lexer) two(tok Token, t TokenType) Token {
	start := l.pos
	l.readChar()
	tok.Type = t
	tok.Literal = l.input[start : l.pos+1]
	return tok
}

func (l *Lexer) three(tok Token, t TokenType) Token {
	start := l.pos
	l.readChar()
	l.readChar()
	tok.Type = t
	tok.Literal = l.input[start : l.pos+1]
	return tok
}

// maybeAssign handles the X / X= operator pairs.
func (l *Lexer) maybeAssign(tok Token, single, withEq TokenType) Token {
	if l.peekChar() == '=' {
		return l.two(tok, withEq)
	}
	return l.newToken(single, l.ch)
}

// either handles operators like + / ++ / += that have two possible
// second characters.
func (l *Lexer) either(tok Token, c1 byte, t1 TokenType, c2 byte, t2 TokenType, single TokenType) Token {
	switch l.peekChar() {
	case c1:
		return l.two(tok, t1)
	case c2:
		return l.two(tok, t2)
	}
	return l.newToken(single, l.ch)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		if l.ch == '\n' {
			l.lineStart = true
		}
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	for l.ch == '/' {
		if l.peekChar() == '/' {
			// Single-line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.skipWhitespace()
		} else if l.peekChar() == '*' {
			// Multi-line comment
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 {
					break
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			l.skipWhitespace()
		} else {
			break
		}
	}
}

// readDirectiveLine consumes a line that starts with '#'. Line markers
// emitted by a preprocessor (`# 42 "file.c" 1` or `#line 42 "file.c"`)
// reset the current line and file; anything else is ignored.
func (l *Lexer) readDirectiveLine() {
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := strings.TrimSpace(l.input[start+1 : l.pos])
	text = strings.TrimPrefix(text, "line")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	// readChar has already counted the newline ending the directive, so
	// the next line is line n.
	l.line = n
	if len(fields) > 1 {
		if name, err := strconv.Unquote(fields[1]); err == nil {
			l.file = name
		}
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads a preprocessing number: digits, letters, '.', and
// exponent signs. Classification into integer or floating constants is
// left to the parser.
func (l *Lexer) readNumber() string {
	pos := l.pos
	for {
		switch {
		case isDigit(l.ch) || isLetter(l.ch) || l.ch == '.':
			prev := l.ch
			l.readChar()
			if (prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P') && (l.ch == '+' || l.ch == '-') {
				l.readChar()
			}
		default:
			return l.input[pos:l.pos]
		}
	}
}

// readQuoted reads a string or character literal body, returning it
// without the surrounding quotes. Escapes are kept verbatim.
func (l *Lexer) readQuoted(quote byte) string {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escape char
			if l.ch == 0 {
				break
			}
		}
		l.readChar()
	}
	str := l.input[pos:l.pos]
	if l.ch == quote {
		l.readChar() // consume closing quote
	}
	return str
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
