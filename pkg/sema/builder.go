package sema

import (
	"github.com/raymyers/cfront/pkg/cabs"
	"github.com/raymyers/cfront/pkg/ctypes"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/raymyers/cfront/pkg/scope"
)

// Entity is what Builder stores in a scope's bag and hands back as a Decl
type Entity struct {
	Name    string
	Pos     lexer.Pos
	Type    ctypes.Type
	Typedef bool
	Defined bool // function with a body, or object with an initializer
	Extern  bool
	Node    cabs.Definition
}

// Builder is the production Actions implementation: it keeps declarations
// in scope bags, answers typedef-name queries and collects the file-scope
// definitions into a cabs.Program.
type Builder struct {
	sink     diag.Sink
	program  cabs.Program
	typedefs map[string]ctypes.Type
	knr      []*cabs.Declarator
	closed   int
}

// NewBuilder creates a Builder reporting semantic errors to sink
func NewBuilder(sink diag.Sink) *Builder {
	return &Builder{sink: sink, typedefs: make(map[string]ctypes.Type)}
}

var (
	_ Actions          = (*Builder)(nil)
	_ TypeNameResolver = (*Builder)(nil)
)

// DeclareIdentifier records d in s. Declarations from a K&R parameter
// type list are held back for the function definition that follows.
func (b *Builder) DeclareIdentifier(s *scope.Scope, d *cabs.Declarator, ctx cabs.DeclContext) Decl {
	if !d.HasIdentifier() {
		return nil
	}
	ent := &Entity{
		Name:    d.Ident,
		Pos:     d.IdentPos,
		Type:    ctypes.FromDeclarator(d, b.resolve),
		Typedef: d.IsTypedef(),
		Defined: d.Init != nil,
		Extern:  d.Spec != nil && d.Spec.Storage == cabs.StorageExtern,
		Node:    &cabs.Declaration{D: d},
	}
	if ctx == cabs.KNRTypeListContext {
		b.knr = append(b.knr, d)
		return ent
	}
	if isFileScope(s) {
		// a new top-level declaration; any held K&R list was abandoned
		b.knr = nil
	}

	if prev := lookupLocal(s, d.Ident); prev != nil {
		b.checkRedeclaration(s, prev, ent)
	}
	s.Decls = append(s.Decls, ent)

	if isFileScope(s) {
		if ent.Typedef {
			b.typedefs[ent.Name] = ent.Type
		}
		if ent.Pos.IsValid() {
			b.program.Definitions = append(b.program.Definitions, ent.Node)
		}
	}
	return ent
}

// CloseScope never fails; the bag is left for the scope stack to recycle
func (b *Builder) CloseScope(pos lexer.Pos, s *scope.Scope) {
	b.closed++
	if isFileScope(s) {
		b.knr = nil
	}
}

// FinishFunctionDefinition records the definition of d with the given body
func (b *Builder) FinishFunctionDefinition(s *scope.Scope, d *cabs.Declarator, body *cabs.Block) Decl {
	params := knrParamsOf(d, b.knr)
	b.knr = nil
	b.checkKNRParams(d, params)

	def := &cabs.FunDef{D: d, KNRParams: params, Body: body}
	ent := &Entity{
		Name:    d.Ident,
		Pos:     d.IdentPos,
		Type:    ctypes.FromDeclarator(d, b.resolve),
		Defined: true,
		Node:    def,
	}
	if prev := lookupLocal(s, d.Ident); prev != nil {
		b.checkRedeclaration(s, prev, ent)
	}
	s.Decls = append(s.Decls, ent)
	if isFileScope(s) {
		b.program.Definitions = append(b.program.Definitions, def)
	}
	return ent
}

// IsTypeName reports whether the innermost visible declaration of name is
// a typedef.
func (b *Builder) IsTypeName(name string, scopes *scope.Stack) bool {
	found, typedef := false, false
	scopes.Walk(func(s *scope.Scope) bool {
		if ent := lookupLocal(s, name); ent != nil {
			found, typedef = true, ent.Typedef
			return false
		}
		return true
	})
	return found && typedef
}

// Program returns the file-scope definitions seen so far in source order
func (b *Builder) Program() *cabs.Program {
	return &b.program
}

// ScopesClosed returns how many CloseScope notifications were received
func (b *Builder) ScopesClosed() int {
	return b.closed
}

func (b *Builder) resolve(name string) ctypes.Type {
	return b.typedefs[name]
}

func (b *Builder) checkRedeclaration(s *scope.Scope, prev, cur *Entity) {
	switch {
	case prev.Typedef != cur.Typedef:
		b.report(cur, diag.ErrRedefinition, prev, diag.NotePreviousDefinition)
	case prev.Defined && cur.Defined:
		b.report(cur, diag.ErrRedefinition, prev, diag.NotePreviousDefinition)
	case !isFileScope(s) && !prev.Extern && !cur.Extern:
		b.report(cur, diag.ErrRedefinition, prev, diag.NotePreviousDefinition)
	case !ctypes.Compatible(prev.Type, cur.Type):
		b.report(cur, diag.ErrConflictingTypes, prev, diag.NotePreviousDeclaration)
	}
}

// knrParamsOf keeps the held K&R declarations that belong to d: d must
// have an identifier list and they must follow its ')'. Anything else is
// left over from a definition that never got a body.
func knrParamsOf(d *cabs.Declarator, held []*cabs.Declarator) []*cabs.Declarator {
	fi := d.FunctionInfo()
	if fi == nil || !fi.IsKNR() {
		return nil
	}
	var params []*cabs.Declarator
	for _, p := range held {
		if !p.IdentPos.Before(fi.RParen) {
			params = append(params, p)
		}
	}
	return params
}

func (b *Builder) checkKNRParams(d *cabs.Declarator, params []*cabs.Declarator) {
	fi := d.FunctionInfo()
	if fi == nil {
		return
	}
	listed := make(map[string]bool, len(fi.Idents))
	for _, id := range fi.Idents {
		listed[id.Name] = true
	}
	for _, p := range params {
		if !listed[p.Ident] {
			b.sink.Report(p.IdentPos, diag.ErrKNRParamNotInList, p.Ident)
		}
	}
}

func (b *Builder) report(cur *Entity, id diag.ID, prev *Entity, note diag.ID) {
	b.sink.Report(cur.Pos, id, cur.Name)
	if prev.Pos.IsValid() {
		b.sink.Report(prev.Pos, note)
	}
}

// lookupLocal finds the latest declaration of name in s alone
func lookupLocal(s *scope.Scope, name string) *Entity {
	for i := len(s.Decls) - 1; i >= 0; i-- {
		if ent, ok := s.Decls[i].(*Entity); ok && ent.Name == name {
			return ent
		}
	}
	return nil
}

func isFileScope(s *scope.Scope) bool {
	return s.Parent() == scope.None
}
