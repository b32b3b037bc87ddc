package parser

import "github.com/raymyers/cfront/pkg/scope"

// enterScope opens a new scope nested in the current one
func (p *Parser) enterScope(flags scope.Flags) *scope.Scope {
	return p.scopes.Push(flags)
}

// exitScope tells the semantic layer the current scope is closing and
// pops it. Exiting with no scope open is a parser defect.
func (p *Parser) exitScope() {
	if p.scopes.Empty() {
		panic(internal("ExitScope", scope.ErrImbalance))
	}
	p.actions.CloseScope(p.tok.Pos, p.scopes.Current())
	p.scopes.Pop()
}

func (p *Parser) curScope() *scope.Scope {
	return p.scopes.Current()
}
