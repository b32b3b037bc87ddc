// Package cabs provides AST printing functionality
package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the AST in a human-readable format
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, def := range prog.Definitions {
		p.printDefinition(def)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printDefinition(def Definition) {
	switch d := def.(type) {
	case *FunDef:
		p.printFunDef(d)
	case *Declaration:
		p.printDeclarator(d.D)
		fmt.Fprintln(p.w, ";")
	default:
		fmt.Fprintf(p.w, "/* unknown definition %T */\n", def)
	}
}

func (p *Printer) printFunDef(f *FunDef) {
	fmt.Fprintln(p.w, DeclString(f.D))
	for _, param := range f.KNRParams {
		fmt.Fprintf(p.w, "%s;\n", DeclString(param))
	}
	p.printBlock(f.Body)
}

// printDeclarator prints a declaration without the terminating ';'
func (p *Printer) printDeclarator(d *Declarator) {
	fmt.Fprint(p.w, DeclString(d))
	if d.AsmLabel != "" {
		fmt.Fprintf(p.w, " __asm__(\"%s\")", d.AsmLabel)
	}
	if d.Init != nil {
		fmt.Fprint(p.w, " = ")
		p.printExpr(d.Init)
	}
}

func (p *Printer) printBlock(b *Block) {
	p.writeIndent()
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range b.Items {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStmt(stmt Stmt) {
	if b, ok := stmt.(*Block); ok {
		p.printBlock(b)
		return
	}
	p.writeIndent()
	switch s := stmt.(type) {
	case Null:
		fmt.Fprintln(p.w, ";")
	case Return:
		fmt.Fprint(p.w, "return")
		if s.Expr != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case Computation:
		p.printExpr(s.Expr)
		fmt.Fprintln(p.w, ";")
	case If:
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Then)
		if s.Else != nil {
			p.writeIndent()
			fmt.Fprintln(p.w, "else")
			p.printBody(s.Else)
		}
	case While:
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Body)
	case DoWhile:
		fmt.Fprintln(p.w, "do")
		p.printBody(s.Body)
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ");")
	case For:
		fmt.Fprint(p.w, "for (")
		if s.InitDecl != nil {
			p.printDeclList(s.InitDecl.Decls)
		} else if s.Init != nil {
			p.printExpr(s.Init)
		}
		fmt.Fprint(p.w, "; ")
		if s.Cond != nil {
			p.printExpr(s.Cond)
		}
		fmt.Fprint(p.w, "; ")
		if s.Step != nil {
			p.printExpr(s.Step)
		}
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Body)
	case Switch:
		fmt.Fprint(p.w, "switch (")
		p.printExpr(s.Expr)
		fmt.Fprintln(p.w, ")")
		p.printBody(s.Body)
	case Case:
		fmt.Fprint(p.w, "case ")
		p.printExpr(s.Expr)
		fmt.Fprintln(p.w, ":")
		p.printBody(s.Stmt)
	case Default:
		fmt.Fprintln(p.w, "default:")
		p.printBody(s.Stmt)
	case Break:
		fmt.Fprintln(p.w, "break;")
	case Continue:
		fmt.Fprintln(p.w, "continue;")
	case Goto:
		fmt.Fprintf(p.w, "goto %s;\n", s.Label)
	case Label:
		fmt.Fprintf(p.w, "%s:\n", s.Name)
		p.printBody(s.Stmt)
	case *DeclStmt:
		for i, decl := range s.Decls {
			if i > 0 {
				p.writeIndent()
			}
			p.printDeclarator(decl)
			fmt.Fprintln(p.w, ";")
		}
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */;\n", stmt)
	}
}

// printBody prints a sub-statement one level deeper
func (p *Printer) printBody(s Stmt) {
	p.indent++
	p.printStmt(s)
	p.indent--
}

// printDeclList prints a list of declarations for C99 for-loop init (no trailing semicolon)
func (p *Printer) printDeclList(decls []*Declarator) {
	for i, decl := range decls {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		p.printDeclarator(decl)
	}
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case Constant:
		if e.Text != "" {
			fmt.Fprint(p.w, e.Text)
		} else {
			fmt.Fprintf(p.w, "%d", e.Value)
		}
	case StringLiteral:
		if e.Wide {
			fmt.Fprint(p.w, "L")
		}
		fmt.Fprintf(p.w, "\"%s\"", e.Value)
	case CharLiteral:
		fmt.Fprintf(p.w, "'%s'", e.Value)
	case Variable:
		fmt.Fprint(p.w, e.Name)
	case Unary:
		p.printUnary(e)
	case Binary:
		p.printBinary(e)
	case Paren:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Expr)
		fmt.Fprint(p.w, ")")
	case Conditional:
		p.printExpr(e.Cond)
		fmt.Fprint(p.w, " ? ")
		p.printExpr(e.Then)
		fmt.Fprint(p.w, " : ")
		p.printExpr(e.Else)
	case Call:
		p.printExpr(e.Func)
		fmt.Fprint(p.w, "(")
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case Index:
		p.printExpr(e.Array)
		fmt.Fprint(p.w, "[")
		p.printExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case Member:
		p.printExpr(e.Expr)
		if e.IsArrow {
			fmt.Fprint(p.w, "->")
		} else {
			fmt.Fprint(p.w, ".")
		}
		fmt.Fprint(p.w, e.Name)
	case SizeofExpr:
		fmt.Fprint(p.w, "sizeof ")
		p.printExpr(e.Expr)
	case SizeofType:
		fmt.Fprintf(p.w, "sizeof(%s)", e.Type)
	case Cast:
		fmt.Fprintf(p.w, "(%s)", e.Type)
		p.printExpr(e.Expr)
	case InitList:
		fmt.Fprint(p.w, "{")
		for i, item := range e.Items {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(item)
		}
		fmt.Fprint(p.w, "}")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

func (p *Printer) printUnary(u Unary) {
	switch u.Op {
	case OpPostInc, OpPostDec:
		p.printExpr(u.Expr)
		fmt.Fprint(p.w, u.Op.String())
	default:
		fmt.Fprint(p.w, u.Op.String())
		p.printExpr(u.Expr)
	}
}

func (p *Printer) printBinary(b Binary) {
	p.printExpr(b.Left)
	if b.Op == OpComma {
		fmt.Fprint(p.w, ", ")
	} else {
		fmt.Fprintf(p.w, " %s ", b.Op.String())
	}
	p.printExpr(b.Right)
}

// ExprString renders an expression in C syntax
func ExprString(e Expr) string {
	var b strings.Builder
	NewPrinter(&b).printExpr(e)
	return b.String()
}

// DeclString renders specifiers and declarator in C syntax, without any
// initializer, e.g. "static int (*fp)(char *, ...)".
func DeclString(d *Declarator) string {
	if d == nil {
		return "?"
	}
	spec := "int"
	if d.Spec != nil {
		spec = specString(d.Spec)
	}
	if inner := declaratorString(d); inner != "" {
		return spec + " " + inner
	}
	return spec
}

func specString(s *DeclSpec) string {
	str := s.String()
	if s.Tag == nil || !s.Tag.HasBody {
		return str
	}
	var b strings.Builder
	b.WriteString(str)
	b.WriteString(" {")
	if s.Tag.Kind == TagEnum {
		for i, e := range s.Tag.Enumerators {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(" " + e.Name)
			if e.Value != nil {
				b.WriteString(" = " + ExprString(e.Value))
			}
		}
	} else {
		for _, f := range s.Tag.Fields {
			b.WriteString(" " + DeclString(f) + ";")
		}
	}
	b.WriteString(" }")
	return b.String()
}

// declaratorString renders the declarator part. Pieces are innermost
// first, so each piece wraps the text built so far; a pointer followed
// by an array or function needs grouping parentheses.
func declaratorString(d *Declarator) string {
	s := d.Ident
	afterPointer := false
	for _, piece := range d.Pieces {
		switch piece.Kind {
		case PointerPiece:
			if q := piece.Quals.String(); q != "" {
				s = strings.TrimSpace("* " + q + " " + s)
			} else {
				s = "*" + s
			}
			afterPointer = true
			continue
		case ArrayPiece:
			if afterPointer {
				s = "(" + s + ")"
			}
			size := ""
			if piece.Size != nil {
				size = ExprString(piece.Size)
			}
			s += "[" + size + "]"
		case FunctionPiece:
			if afterPointer {
				s = "(" + s + ")"
			}
			s += paramsString(piece.Fun)
		}
		afterPointer = false
	}
	return s
}

func paramsString(f *FunctionInfo) string {
	if f == nil || f.IsEmpty {
		return "()"
	}
	var parts []string
	if f.HasPrototype {
		for _, param := range f.Params {
			parts = append(parts, DeclString(param))
		}
		if f.IsVariadic {
			parts = append(parts, "...")
		}
		if len(parts) == 0 {
			parts = append(parts, "void")
		}
	} else {
		for _, id := range f.Idents {
			parts = append(parts, id.Name)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
