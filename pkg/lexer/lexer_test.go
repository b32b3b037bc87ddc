package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int main() { return 42; }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenInt_, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenNumber, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ^ ~ << >> <<= >>= += -= *= /= %= &= |= ^= ++ -- -> ... ? : @`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenAmpersand, "&"},
		{TokenPipe, "|"},
		{TokenCaret, "^"},
		{TokenTilde, "~"},
		{TokenShl, "<<"},
		{TokenShr, ">>"},
		{TokenShlAssign, "<<="},
		{TokenShrAssign, ">>="},
		{TokenPlusAssign, "+="},
		{TokenMinusAssign, "-="},
		{TokenStarAssign, "*="},
		{TokenSlashAssign, "/="},
		{TokenPercentAssign, "%="},
		{TokenAndAssign, "&="},
		{TokenOrAssign, "|="},
		{TokenXorAssign, "^="},
		{TokenIncrement, "++"},
		{TokenDecrement, "--"},
		{TokenArrow, "->"},
		{TokenEllipsis, "..."},
		{TokenQuestion, "?"},
		{TokenColon, ":"},
		{TokenAt, "@"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestComments(t *testing.T) {
	input := `int // comment
main /* block
comment */ ()`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenInt_, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{`"hello\n"`, TokenString, `hello\n`},
		{`L"wide"`, TokenWideString, "wide"},
		{`'a'`, TokenCharLit, "a"},
		{`'\''`, TokenCharLit, `\'`},
		{`L'x'`, TokenCharLit, "x"},
		{`0x1fUL`, TokenNumber, "0x1fUL"},
		{`1.5e+3`, TokenNumber, "1.5e+3"},
		{`.25`, TokenNumber, ".25"},
		{`Lvalue`, TokenIdent, "Lvalue"},
		{`__asm__`, TokenAsm, "__asm__"},
		{`__attribute__`, TokenAttribute, "__attribute__"},
		{`_Bool`, TokenBool, "_Bool"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Errorf("type: expected %s, got %s", tt.typ, tok.Type)
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal: expected %q, got %q", tt.literal, tok.Literal)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	input := "int x;\n  foo(\n)"
	want := []Pos{
		{Line: 1, Column: 1},
		{Line: 1, Column: 5},
		{Line: 1, Column: 6},
		{Line: 2, Column: 3},
		{Line: 2, Column: 6},
		{Line: 3, Column: 1},
	}

	l := New(input)
	for i, w := range want {
		tok := l.Next()
		if tok.Pos != w {
			t.Errorf("token %d (%s): expected %s, got %s", i, tok.Type, w, tok.Pos)
		}
	}
}

func TestLineMarkers(t *testing.T) {
	input := "# 10 \"inc.h\" 1\nint a;\n#line 40 \"main.c\"\nint b;\n#pragma once\nint c;"

	l := NewFile("orig.c", input)
	var idents []Token
	for tok := l.Next(); tok.Type != TokenEOF; tok = l.Next() {
		if tok.Type == TokenIdent {
			idents = append(idents, tok)
		}
	}

	if len(idents) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(idents))
	}
	checks := []struct {
		file string
		line int
	}{
		{"inc.h", 10},
		{"main.c", 40},
		{"main.c", 42},
	}
	for i, c := range checks {
		if idents[i].File != c.file || idents[i].Line != c.line {
			t.Errorf("ident %d: expected %s:%d, got %s", i, c.file, c.line, idents[i].Pos)
		}
	}
}

func TestEOFRepeats(t *testing.T) {
	l := New("x")
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Type != TokenEOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestHashMidLine(t *testing.T) {
	l := New("a # b")
	l.Next()
	if tok := l.Next(); tok.Type != TokenHash {
		t.Errorf("expected '#', got %s", tok.Type)
	}
}

func TestUnterminatedEscapeAtEOF(t *testing.T) {
	tests := []struct {
		input   string
		types   []TokenType
		literal string
	}{
		{`"\`, []TokenType{TokenString}, `\`},
		{`'\`, []TokenType{TokenCharLit}, `\`},
		{`L"\`, []TokenType{TokenWideString}, `\`},
		{`char *s = "abc\`, []TokenType{TokenChar, TokenStar, TokenIdent, TokenAssign, TokenString}, `abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			var tok Token
			for i, want := range tt.types {
				tok = l.Next()
				if tok.Type != want {
					t.Fatalf("token %d: expected %s, got %s", i, want, tok.Type)
				}
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal: expected %q, got %q", tt.literal, tok.Literal)
			}
			for i := 0; i < 2; i++ {
				if tok := l.Next(); tok.Type != TokenEOF {
					t.Fatalf("call %d after literal: expected EOF, got %s", i, tok.Type)
				}
			}
		})
	}
}

func TestPosBefore(t *testing.T) {
	p := func(file string, line, col int) Pos { return Pos{File: file, Line: line, Column: col} }
	tests := []struct {
		a, b Pos
		want bool
	}{
		{p("a.c", 1, 5), p("a.c", 1, 6), true},
		{p("a.c", 1, 9), p("a.c", 2, 1), true},
		{p("a.c", 2, 1), p("a.c", 1, 9), false},
		{p("a.c", 1, 5), p("a.c", 1, 5), false},
		{p("a.c", 1, 1), p("b.c", 2, 1), false},
		{Pos{}, p("a.c", 1, 1), false},
		{p("a.c", 1, 1), Pos{}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%s.Before(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
