package cabs

import (
	"strings"

	"github.com/raymyers/cfront/pkg/lexer"
)

// StorageClass is the storage-class specifier of a declaration
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageTypedef
	StorageExtern
	StorageStatic
	StorageAuto
	StorageRegister
)

func (s StorageClass) String() string {
	switch s {
	case StorageTypedef:
		return "typedef"
	case StorageExtern:
		return "extern"
	case StorageStatic:
		return "static"
	case StorageAuto:
		return "auto"
	case StorageRegister:
		return "register"
	}
	return ""
}

// TypeQual is a set of type qualifiers
type TypeQual uint

const (
	QualConst TypeQual = 1 << iota
	QualVolatile
	QualRestrict
)

func (q TypeQual) String() string {
	var parts []string
	if q&QualConst != 0 {
		parts = append(parts, "const")
	}
	if q&QualVolatile != 0 {
		parts = append(parts, "volatile")
	}
	if q&QualRestrict != 0 {
		parts = append(parts, "restrict")
	}
	return strings.Join(parts, " ")
}

// TagKind distinguishes struct, union and enum specifiers
type TagKind int

const (
	TagStruct TagKind = iota
	TagUnion
	TagEnum
)

func (k TagKind) String() string {
	switch k {
	case TagUnion:
		return "union"
	case TagEnum:
		return "enum"
	}
	return "struct"
}

// Enumerator is one name in an enum body
type Enumerator struct {
	Name  string
	Value Expr // nil when implicit
}

// TagSpec is a struct, union or enum specifier. Fields and Enumerators are
// only meaningful when HasBody is set.
type TagSpec struct {
	Kind        TagKind
	Name        string
	HasBody     bool
	Fields      []*Declarator
	Enumerators []Enumerator
}

// DeclSpec is the declaration-specifier prefix shared by every declarator
// of one declaration.
type DeclSpec struct {
	Pos         lexer.Pos
	Storage     StorageClass
	Quals       TypeQual
	Inline      bool
	TypeSpecs   []string // keyword type specifiers in source order
	TypedefName string
	Tag         *TagSpec
	Attrs       []string
}

// HasTypeSpec reports whether any type specifier was written
func (s *DeclSpec) HasTypeSpec() bool {
	return len(s.TypeSpecs) > 0 || s.TypedefName != "" || s.Tag != nil
}

// TypeString returns the type part of the specifier, e.g. "unsigned long",
// "struct point" or a typedef name. Implicit int is spelled "int".
func (s *DeclSpec) TypeString() string {
	switch {
	case s.Tag != nil:
		if s.Tag.Name == "" {
			return s.Tag.Kind.String()
		}
		return s.Tag.Kind.String() + " " + s.Tag.Name
	case s.TypedefName != "":
		return s.TypedefName
	case len(s.TypeSpecs) > 0:
		return strings.Join(s.TypeSpecs, " ")
	}
	return "int"
}

// String renders storage class, qualifiers and type
func (s *DeclSpec) String() string {
	var parts []string
	if st := s.Storage.String(); st != "" {
		parts = append(parts, st)
	}
	if s.Inline {
		parts = append(parts, "inline")
	}
	if q := s.Quals.String(); q != "" {
		parts = append(parts, q)
	}
	parts = append(parts, s.TypeString())
	return strings.Join(parts, " ")
}

// DeclContext is the syntactic context a declarator appears in
type DeclContext int

const (
	FileContext DeclContext = iota
	BlockContext
	PrototypeContext
	KNRTypeListContext
	MemberContext
	TypeNameContext
)

func (c DeclContext) String() string {
	switch c {
	case FileContext:
		return "file"
	case BlockContext:
		return "block"
	case PrototypeContext:
		return "prototype"
	case KNRTypeListContext:
		return "knr"
	case MemberContext:
		return "member"
	case TypeNameContext:
		return "typename"
	}
	return "?"
}

// AllowsAbstract reports whether a declarator in this context may omit
// its identifier.
func (c DeclContext) AllowsAbstract() bool {
	return c == PrototypeContext || c == TypeNameContext
}

// PieceKind is the kind of a derived-type piece
type PieceKind int

const (
	PointerPiece PieceKind = iota
	ArrayPiece
	FunctionPiece
)

// FunctionInfo describes the parameter list of a function declarator.
// Exactly one shape holds: a prototype (HasPrototype), a K&R identifier
// list (len(Idents) > 0), or an empty list (IsEmpty).
type FunctionInfo struct {
	LParen       lexer.Pos
	RParen       lexer.Pos
	HasPrototype bool
	IsEmpty      bool
	IsVariadic   bool
	Params       []*Declarator
	Idents       []Ident
}

// IsKNR reports whether the list is a K&R identifier list
func (f *FunctionInfo) IsKNR() bool {
	return !f.HasPrototype && !f.IsEmpty
}

// Ident is a name with its position
type Ident struct {
	Name string
	Pos  lexer.Pos
}

// TypeInfo is one derived-type piece of a declarator
type TypeInfo struct {
	Kind  PieceKind
	Pos   lexer.Pos
	Quals TypeQual      // pointer qualifiers
	Size  Expr          // array size, nil when unspecified
	Fun   *FunctionInfo // function parameter list
}

// Declarator names an entity and describes how its type derives from the
// declaration specifiers. Pieces are ordered innermost first: for
// "int *f(void)" Pieces[0] is the function and Pieces[1] the pointer.
type Declarator struct {
	Spec     *DeclSpec
	Context  DeclContext
	Ident    string
	IdentPos lexer.Pos
	Pieces   []TypeInfo
	Init     Expr
	AsmLabel string
	Attrs    []string
}

// NewDeclarator creates an empty declarator for the given prefix and context
func NewDeclarator(spec *DeclSpec, ctx DeclContext) *Declarator {
	return &Declarator{Spec: spec, Context: ctx}
}

// HasIdentifier reports whether the declarator names an entity
func (d *Declarator) HasIdentifier() bool {
	return d.Ident != ""
}

// AddPiece appends a derived-type piece further from the identifier
func (d *Declarator) AddPiece(t TypeInfo) {
	d.Pieces = append(d.Pieces, t)
}

// IsFunctionDeclarator reports whether the declarator declares a function,
// i.e. its innermost derived-type piece is a function.
func (d *Declarator) IsFunctionDeclarator() bool {
	return len(d.Pieces) > 0 && d.Pieces[0].Kind == FunctionPiece
}

// FunctionInfo returns the parameter list of a function declarator, or nil
func (d *Declarator) FunctionInfo() *FunctionInfo {
	if !d.IsFunctionDeclarator() {
		return nil
	}
	return d.Pieces[0].Fun
}

// IsTypedef reports whether the declarator introduces a typedef name
func (d *Declarator) IsTypedef() bool {
	return d.Spec != nil && d.Spec.Storage == StorageTypedef
}

// TypeName is a specifier plus abstract declarator, as used in casts and sizeof
type TypeName struct {
	Spec *DeclSpec
	Decl *Declarator
}

// String renders the type name in C syntax
func (t *TypeName) String() string {
	if t == nil {
		return "?"
	}
	return DeclString(t.Decl)
}
