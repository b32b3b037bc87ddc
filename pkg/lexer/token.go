package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent      // main, foo, x
	TokenNumber     // 42, 0x1f, 1.5e3
	TokenCharLit    // 'a'
	TokenString     // "hello"
	TokenWideString // L"hello"

	// Keywords
	TokenInt_      // int
	TokenVoid      // void
	TokenReturn    // return
	TokenIf        // if
	TokenElse      // else
	TokenWhile     // while
	TokenDo        // do
	TokenFor       // for
	TokenBreak     // break
	TokenContinue  // continue
	TokenSwitch    // switch
	TokenCase      // case
	TokenDefault   // default
	TokenGoto      // goto
	TokenTypedef   // typedef
	TokenStruct    // struct
	TokenSizeof    // sizeof
	TokenUnion     // union
	TokenEnum      // enum
	TokenStatic    // static
	TokenExtern    // extern
	TokenAuto      // auto
	TokenRegister  // register
	TokenConst     // const
	TokenVolatile  // volatile
	TokenRestrict  // restrict
	TokenChar      // char
	TokenShort     // short
	TokenLong      // long
	TokenFloat     // float
	TokenDouble    // double
	TokenSigned    // signed
	TokenUnsigned  // unsigned
	TokenBool      // _Bool
	TokenInline    // inline
	TokenAsm       // asm, __asm, __asm__
	TokenAttribute // __attribute__

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenShl       // <<
	TokenShr       // >>
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=
	TokenShlAssign     // <<=
	TokenShrAssign     // >>=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenArrow     // ->
	TokenEllipsis  // ...
	TokenAt        // @
	TokenHash      // #

	// TokenNone is never produced by the lexer. Parser helpers use it to
	// mean "no token kind".
	TokenNone
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIllegal:       "ILLEGAL",
	TokenIdent:         "IDENT",
	TokenNumber:        "NUMBER",
	TokenCharLit:       "CHAR",
	TokenString:        "STRING",
	TokenWideString:    "WSTRING",
	TokenInt_:          "int",
	TokenVoid:          "void",
	TokenReturn:        "return",
	TokenIf:            "if",
	TokenElse:          "else",
	TokenWhile:         "while",
	TokenDo:            "do",
	TokenFor:           "for",
	TokenBreak:         "break",
	TokenContinue:      "continue",
	TokenSwitch:        "switch",
	TokenCase:          "case",
	TokenDefault:       "default",
	TokenGoto:          "goto",
	TokenTypedef:       "typedef",
	TokenStruct:        "struct",
	TokenSizeof:        "sizeof",
	TokenUnion:         "union",
	TokenEnum:          "enum",
	TokenStatic:        "static",
	TokenExtern:        "extern",
	TokenAuto:          "auto",
	TokenRegister:      "register",
	TokenConst:         "const",
	TokenVolatile:      "volatile",
	TokenRestrict:      "restrict",
	TokenChar:          "char",
	TokenShort:         "short",
	TokenLong:          "long",
	TokenFloat:         "float",
	TokenDouble:        "double",
	TokenSigned:        "signed",
	TokenUnsigned:      "unsigned",
	TokenBool:          "_Bool",
	TokenInline:        "inline",
	TokenAsm:           "asm",
	TokenAttribute:     "__attribute__",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenAmpersand:     "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenArrow:         "->",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenHash:          "#",
	TokenNone:          "<none>",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsStringLiteral reports whether t is a narrow or wide string literal.
func (t TokenType) IsStringLiteral() bool {
	return t == TokenString || t == TokenWideString
}

// Pos is a source location. Line and Column are 1-based; the zero Pos is
// an unknown location.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position refers to a real source location
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly before q in the same file. It
// is false when either position is unknown.
func (p Pos) Before(q Pos) bool {
	if !p.IsValid() || !q.IsValid() || p.File != q.File {
		return false
	}
	return p.Line < q.Line || p.Line == q.Line && p.Column < q.Column
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token. Tokens are values and are never
// mutated once produced.
type Token struct {
	Type    TokenType
	Literal string
	Pos
}

func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s@%s", t.Type, t.Pos)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"int":           TokenInt_,
	"void":          TokenVoid,
	"return":        TokenReturn,
	"if":            TokenIf,
	"else":          TokenElse,
	"while":         TokenWhile,
	"do":            TokenDo,
	"for":           TokenFor,
	"break":         TokenBreak,
	"continue":      TokenContinue,
	"switch":        TokenSwitch,
	"case":          TokenCase,
	"default":       TokenDefault,
	"goto":          TokenGoto,
	"typedef":       TokenTypedef,
	"struct":        TokenStruct,
	"sizeof":        TokenSizeof,
	"union":         TokenUnion,
	"enum":          TokenEnum,
	"static":        TokenStatic,
	"extern":        TokenExtern,
	"auto":          TokenAuto,
	"register":      TokenRegister,
	"const":         TokenConst,
	"__const":       TokenConst,
	"volatile":      TokenVolatile,
	"__volatile__":  TokenVolatile,
	"restrict":      TokenRestrict,
	"__restrict":    TokenRestrict,
	"char":          TokenChar,
	"short":         TokenShort,
	"long":          TokenLong,
	"float":         TokenFloat,
	"double":        TokenDouble,
	"signed":        TokenSigned,
	"unsigned":      TokenUnsigned,
	"_Bool":         TokenBool,
	"inline":        TokenInline,
	"__inline":      TokenInline,
	"__inline__":    TokenInline,
	"asm":           TokenAsm,
	"__asm":         TokenAsm,
	"__asm__":       TokenAsm,
	"__attribute__": TokenAttribute,
	"__attribute":   TokenAttribute,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
