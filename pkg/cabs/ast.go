// Package cabs defines the syntax tree produced by the parser: declaration
// specifiers, declarators, statements, expressions and the top-level
// definitions collected by the semantic layer.
package cabs

import "github.com/raymyers/cfront/pkg/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	implCabsNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implCabsExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implCabsStmt()
}

// Definition is the interface for top-level definitions
type Definition interface {
	Node
	implDefinition()
	Name() string
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl // <<
	OpShr // >>
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
	OpComma
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=", "&&", "||", "&", "|", "^", "<<", ">>", "=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", ","}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNeg     UnaryOp = iota // -
	OpNot                    // !
	OpBitNot                 // ~
	OpPreInc                 // ++x
	OpPreDec                 // --x
	OpPostInc                // x++
	OpPostDec                // x--
	OpAddrOf                 // &
	OpDeref                  // *
	OpPlus                   // +
)

func (op UnaryOp) String() string {
	names := []string{"-", "!", "~", "++", "--", "++", "--", "&", "*", "+"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Constant represents a numeric constant. Text keeps the source spelling;
// Value is meaningful when the spelling is an integer.
type Constant struct {
	Value int64
	Text  string
}

// StringLiteral is one or more adjacent string literals, concatenated
type StringLiteral struct {
	Value string
	Wide  bool
}

// CharLiteral represents a character constant
type CharLiteral struct {
	Value string
}

// Variable represents an identifier expression
type Variable struct {
	Name string
}

// Unary represents a unary expression
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

// Binary represents a binary expression
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Paren represents a parenthesized expression
type Paren struct {
	Expr Expr
}

// Conditional represents the ternary operator: cond ? then : else
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Call represents a function call
type Call struct {
	Func Expr
	Args []Expr
}

// Index represents array subscript access: arr[idx]
type Index struct {
	Array Expr
	Index Expr
}

// Member represents s.f or p->f
type Member struct {
	Expr    Expr
	Name    string
	IsArrow bool
}

// SizeofExpr represents sizeof applied to an expression
type SizeofExpr struct {
	Expr Expr
}

// SizeofType represents sizeof(type-name)
type SizeofType struct {
	Type *TypeName
}

// Cast represents (type-name) expr
type Cast struct {
	Type *TypeName
	Expr Expr
}

// InitList is a brace-enclosed initializer
type InitList struct {
	Items []Expr
}

// Block represents a compound statement (block)
type Block struct {
	Items []Stmt
}

// Null is the empty statement ';'
type Null struct{}

// Computation is an expression statement
type Computation struct {
	Expr Expr
}

// Return represents a return statement
type Return struct {
	Expr Expr // nil for bare return
}

// If represents if/else
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

// While represents a while loop
type While struct {
	Cond Expr
	Body Stmt
}

// DoWhile represents a do/while loop
type DoWhile struct {
	Body Stmt
	Cond Expr
}

// For represents a for loop. Init and InitDecl are mutually exclusive.
type For struct {
	Init     Expr
	InitDecl *DeclStmt
	Cond     Expr
	Step     Expr
	Body     Stmt
}

// Switch represents a switch statement
type Switch struct {
	Expr Expr
	Body Stmt
}

// Case represents a case label and the statement it labels
type Case struct {
	Expr Expr
	Stmt Stmt
}

// Default represents a default label and the statement it labels
type Default struct {
	Stmt Stmt
}

// Break represents break
type Break struct{}

// Continue represents continue
type Continue struct{}

// Goto represents goto label
type Goto struct {
	Label string
}

// Label represents label: stmt
type Label struct {
	Name string
	Stmt Stmt
}

// DeclStmt is a declaration appearing in a block
type DeclStmt struct {
	Decls []*Declarator
}

// Marker methods for interface implementation
func (Constant) implCabsNode() {}
func (Constant) implCabsExpr() {}

func (StringLiteral) implCabsNode() {}
func (StringLiteral) implCabsExpr() {}

func (CharLiteral) implCabsNode() {}
func (CharLiteral) implCabsExpr() {}

func (Variable) implCabsNode() {}
func (Variable) implCabsExpr() {}

func (Unary) implCabsNode() {}
func (Unary) implCabsExpr() {}

func (Binary) implCabsNode() {}
func (Binary) implCabsExpr() {}

func (Paren) implCabsNode() {}
func (Paren) implCabsExpr() {}

func (Conditional) implCabsNode() {}
func (Conditional) implCabsExpr() {}

func (Call) implCabsNode() {}
func (Call) implCabsExpr() {}

func (Index) implCabsNode() {}
func (Index) implCabsExpr() {}

func (Member) implCabsNode() {}
func (Member) implCabsExpr() {}

func (SizeofExpr) implCabsNode() {}
func (SizeofExpr) implCabsExpr() {}

func (SizeofType) implCabsNode() {}
func (SizeofType) implCabsExpr() {}

func (Cast) implCabsNode() {}
func (Cast) implCabsExpr() {}

func (InitList) implCabsNode() {}
func (InitList) implCabsExpr() {}

func (*Block) implCabsNode() {}
func (*Block) implCabsStmt() {}

func (Null) implCabsNode() {}
func (Null) implCabsStmt() {}

func (Computation) implCabsNode() {}
func (Computation) implCabsStmt() {}

func (Return) implCabsNode() {}
func (Return) implCabsStmt() {}

func (If) implCabsNode() {}
func (If) implCabsStmt() {}

func (While) implCabsNode() {}
func (While) implCabsStmt() {}

func (DoWhile) implCabsNode() {}
func (DoWhile) implCabsStmt() {}

func (For) implCabsNode() {}
func (For) implCabsStmt() {}

func (Switch) implCabsNode() {}
func (Switch) implCabsStmt() {}

func (Case) implCabsNode() {}
func (Case) implCabsStmt() {}

func (Default) implCabsNode() {}
func (Default) implCabsStmt() {}

func (Break) implCabsNode() {}
func (Break) implCabsStmt() {}

func (Continue) implCabsNode() {}
func (Continue) implCabsStmt() {}

func (Goto) implCabsNode() {}
func (Goto) implCabsStmt() {}

func (Label) implCabsNode() {}
func (Label) implCabsStmt() {}

func (*DeclStmt) implCabsNode() {}
func (*DeclStmt) implCabsStmt() {}

// Program is a translation unit's file-scope definitions in source order
type Program struct {
	Definitions []Definition
}

// Declaration is a declared entity that is not a function definition:
// an object, a typedef name, or a function prototype.
type Declaration struct {
	D *Declarator
}

// FunDef represents a function definition. KNRParams holds the
// declarations written between a K&R identifier list and the body.
type FunDef struct {
	D         *Declarator
	KNRParams []*Declarator
	Body      *Block
}

// Name returns the declared identifier
func (d *Declaration) Name() string { return d.D.Ident }

// Name returns the function name
func (f *FunDef) Name() string { return f.D.Ident }

// Pos returns the position of the function name
func (f *FunDef) Pos() lexer.Pos { return f.D.IdentPos }

func (*Declaration) implCabsNode()   {}
func (*Declaration) implDefinition() {}

func (*FunDef) implCabsNode()   {}
func (*FunDef) implDefinition() {}
