package parser

import (
	"slices"

	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
)

// isDeclarationSpecifier reports whether the lookahead can start
// declaration specifiers. Identifiers qualify only when the semantic
// layer knows them as typedef names.
func (p *Parser) isDeclarationSpecifier() bool {
	switch p.tok.Type {
	case lexer.TokenTypedef, lexer.TokenExtern, lexer.TokenStatic, lexer.TokenAuto, lexer.TokenRegister,
		lexer.TokenInline, lexer.TokenConst, lexer.TokenVolatile, lexer.TokenRestrict,
		lexer.TokenVoid, lexer.TokenChar, lexer.TokenShort, lexer.TokenInt_, lexer.TokenLong,
		lexer.TokenFloat, lexer.TokenDouble, lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenBool,
		lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum, lexer.TokenAttribute:
		return true
	case lexer.TokenIdent:
		return p.isTypeName(p.tok.Literal)
	}
	return false
}

func (p *Parser) isTypeName(name string) bool {
	return p.types != nil && p.types.IsTypeName(name, p.scopes)
}

var storageClasses = map[lexer.TokenType]cabs.StorageClass{
	lexer.TokenTypedef:  cabs.StorageTypedef,
	lexer.TokenExtern:   cabs.StorageExtern,
	lexer.TokenStatic:   cabs.StorageStatic,
	lexer.TokenAuto:     cabs.StorageAuto,
	lexer.TokenRegister: cabs.StorageRegister,
}

var qualifiers = map[lexer.TokenType]cabs.TypeQual{
	lexer.TokenConst:    cabs.QualConst,
	lexer.TokenVolatile: cabs.QualVolatile,
	lexer.TokenRestrict: cabs.QualRestrict,
}

var typeSpecifiers = map[lexer.TokenType]bool{
	lexer.TokenVoid: true, lexer.TokenChar: true, lexer.TokenShort: true, lexer.TokenInt_: true,
	lexer.TokenLong: true, lexer.TokenFloat: true, lexer.TokenDouble: true,
	lexer.TokenSigned: true, lexer.TokenUnsigned: true, lexer.TokenBool: true,
}

// combinable lists, for each keyword type specifier, the others it may
// appear with.
var combinable = map[string][]string{
	"void":     nil,
	"_Bool":    nil,
	"float":    nil,
	"char":     {"signed", "unsigned"},
	"short":    {"signed", "unsigned", "int"},
	"int":      {"signed", "unsigned", "short", "long"},
	"long":     {"signed", "unsigned", "int", "long", "double"},
	"double":   {"long"},
	"signed":   {"char", "short", "int", "long"},
	"unsigned": {"char", "short", "int", "long"},
}

// parseDeclarationSpecifiers:
//
//	declaration-specifiers:
//	  storage-class-specifier declaration-specifiers[opt]
//	  type-specifier declaration-specifiers[opt]
//	  type-qualifier declaration-specifiers[opt]
//	  function-specifier declaration-specifiers[opt]
//	  attributes declaration-specifiers[opt]    [GNU]
func (p *Parser) parseDeclarationSpecifiers(ds *cabs.DeclSpec) {
	for {
		tok := p.tok
		if sc, ok := storageClasses[tok.Type]; ok {
			switch {
			case ds.Storage == sc:
				p.report(tok.Pos, diag.ExtDuplicateDeclSpec, sc.String())
			case ds.Storage != cabs.StorageNone:
				p.report(tok.Pos, diag.ErrInvalidDeclSpecCombination, ds.Storage.String())
			default:
				ds.Storage = sc
			}
			p.consumeToken()
			continue
		}
		if q, ok := qualifiers[tok.Type]; ok {
			if ds.Quals&q != 0 {
				p.report(tok.Pos, diag.ExtDuplicateDeclSpec, q.String())
			}
			ds.Quals |= q
			p.consumeToken()
			continue
		}
		if typeSpecifiers[tok.Type] {
			word := tok.Type.String()
			if prev := p.typeSpecConflict(ds, word); prev != "" {
				p.report(tok.Pos, diag.ErrInvalidDeclSpecCombination, prev)
			} else {
				ds.TypeSpecs = append(ds.TypeSpecs, word)
			}
			p.consumeToken()
			continue
		}

		switch tok.Type {
		case lexer.TokenInline:
			if ds.Inline {
				p.report(tok.Pos, diag.ExtDuplicateDeclSpec, "inline")
			}
			ds.Inline = true
			p.consumeToken()
		case lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum:
			p.parseTagSpecifier(ds)
		case lexer.TokenAttribute:
			ds.Attrs = append(ds.Attrs, p.parseAttributes()...)
		case lexer.TokenIdent:
			if ds.HasTypeSpec() || !p.isTypeName(tok.Literal) {
				return
			}
			ds.TypedefName = tok.Literal
			p.consumeToken()
		default:
			return
		}
	}
}

// typeSpecConflict returns the already written specifier that word cannot
// be combined with, or "" when it fits.
func (p *Parser) typeSpecConflict(ds *cabs.DeclSpec, word string) string {
	if ds.Tag != nil {
		return ds.Tag.Kind.String()
	}
	if ds.TypedefName != "" {
		return ds.TypedefName
	}
	n := 0
	for _, have := range ds.TypeSpecs {
		if have == word {
			n++
		}
	}
	if n > 0 && !(word == "long" && n == 1) {
		return word
	}
	for _, have := range ds.TypeSpecs {
		if have != word && !slices.Contains(combinable[word], have) {
			return have
		}
	}
	return ""
}

// parseTagSpecifier:
//
//	struct-or-union-specifier:
//	  struct-or-union identifier[opt] '{' struct-declaration-list '}'
//	  struct-or-union identifier
//	enum-specifier:
//	  'enum' identifier[opt] '{' enumerator-list ','[opt] '}'
//	  'enum' identifier
func (p *Parser) parseTagSpecifier(ds *cabs.DeclSpec) {
	kind := cabs.TagStruct
	switch p.tok.Type {
	case lexer.TokenUnion:
		kind = cabs.TagUnion
	case lexer.TokenEnum:
		kind = cabs.TagEnum
	}
	pos := p.consumeToken()
	if prev := p.typeSpecConflict(ds, kind.String()); prev != "" {
		p.report(pos, diag.ErrInvalidDeclSpecCombination, prev)
	}

	tag := &cabs.TagSpec{Kind: kind}
	ds.Attrs = append(ds.Attrs, p.parseAttributes()...)
	if p.is(lexer.TokenIdent) {
		tag.Name = p.tok.Literal
		p.consumeToken()
	}

	if p.is(lexer.TokenLBrace) {
		lbrace := p.consumeToken()
		tag.HasBody = true
		if kind == cabs.TagEnum {
			p.parseEnumBody(tag)
		} else {
			p.parseStructBody(tag)
		}
		p.matchRHSPunctuation(lexer.TokenRBrace, lbrace)
		ds.Attrs = append(ds.Attrs, p.parseAttributes()...)
	} else if tag.Name == "" {
		p.report(p.tok.Pos, diag.ErrExpected, "{")
	}

	if ds.Tag == nil && ds.TypedefName == "" && len(ds.TypeSpecs) == 0 {
		ds.Tag = tag
	}
}

// parseStructBody parses member declarations up to the closing '}'
func (p *Parser) parseStructBody(tag *cabs.TagSpec) {
	for !p.is(lexer.TokenRBrace) && !p.is(lexer.TokenEOF) {
		if p.is(lexer.TokenSemicolon) {
			p.consumeToken()
			continue
		}

		spec := &cabs.DeclSpec{Pos: p.tok.Pos}
		p.parseDeclarationSpecifiers(spec)
		if p.is(lexer.TokenSemicolon) {
			// anonymous struct or union member
			p.consumeToken()
			continue
		}
		for {
			d := cabs.NewDeclarator(spec, cabs.MemberContext)
			if !p.is(lexer.TokenColon) {
				p.parseDeclarator(d)
			}
			if p.is(lexer.TokenColon) {
				// bit-field width
				p.consumeToken()
				p.parseConstantExpression()
			}
			d.Attrs = append(d.Attrs, p.parseAttributes()...)
			if d.HasIdentifier() {
				tag.Fields = append(tag.Fields, d)
			}
			if !p.is(lexer.TokenComma) {
				break
			}
			p.consumeToken()
		}
		p.expectStatementSemi(diag.ErrExpectedSemiDeclaration, "")
	}
}

// parseEnumBody parses enumerators up to the closing '}'
func (p *Parser) parseEnumBody(tag *cabs.TagSpec) {
	for p.is(lexer.TokenIdent) {
		e := cabs.Enumerator{Name: p.tok.Literal}
		p.consumeToken()
		if p.is(lexer.TokenAssign) {
			p.consumeToken()
			e.Value = p.parseConstantExpression()
		}
		tag.Enumerators = append(tag.Enumerators, e)
		if !p.is(lexer.TokenComma) {
			return
		}
		p.consumeToken()
	}
	if !p.is(lexer.TokenRBrace) {
		p.report(p.tok.Pos, diag.ErrExpectedIdent)
	}
}

// parseTypeQualifiers parses a possibly empty qualifier list after '*'
func (p *Parser) parseTypeQualifiers() cabs.TypeQual {
	var quals cabs.TypeQual
	for {
		q, ok := qualifiers[p.tok.Type]
		if !ok {
			return quals
		}
		if quals&q != 0 {
			p.report(p.tok.Pos, diag.ExtDuplicateDeclSpec, q.String())
		}
		quals |= q
		p.consumeToken()
	}
}

// parseAttributes:
//
//	attributes:
//	  '__attribute__' '(' '(' attribute-list ')' ')'    [GNU]
//
// Only the attribute names are kept.
func (p *Parser) parseAttributes() []string {
	var attrs []string
	for p.is(lexer.TokenAttribute) {
		p.consumeToken()
		outer := p.tok.Pos
		if !p.expectAndConsume(lexer.TokenLParen, diag.ErrExpectedLParenAfter, "__attribute__", lexer.TokenNone) {
			return attrs
		}
		inner := p.tok.Pos
		if !p.expectAndConsume(lexer.TokenLParen, diag.ErrExpectedLParenAfter, "(", lexer.TokenRParen) {
			return attrs
		}

	list:
		for !p.is(lexer.TokenRParen) && !p.is(lexer.TokenEOF) {
			switch p.tok.Type {
			case lexer.TokenComma:
				p.consumeToken()
				continue
			case lexer.TokenLParen, lexer.TokenLBracket, lexer.TokenLBrace,
				lexer.TokenRBracket, lexer.TokenRBrace, lexer.TokenSemicolon:
				p.report(p.tok.Pos, diag.ErrExpectedIdent)
				break list
			}
			name := p.tok.Literal
			if name == "" {
				name = p.tok.Type.String()
			}
			p.consumeToken()
			if p.is(lexer.TokenLParen) {
				p.consumeToken()
				p.skipUntil(lexer.TokenRParen, false, true)
			}
			attrs = append(attrs, name)
		}
		p.matchRHSPunctuation(lexer.TokenRParen, inner)
		p.matchRHSPunctuation(lexer.TokenRParen, outer)
	}
	return attrs
}
