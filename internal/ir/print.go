//nolint:errcheck // best-effort text dump; the writer error is surfaced once at the end
package ir

import (
	"fmt"
	"io"
	"strings"

	"sable/internal/fqname"
)

// Printer dumps IR to a deterministic, source-like text format used by
// tests and the CLI.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes a lowered unit to w.
func Dump(w io.Writer, u *Unit) error {
	p := NewPrinter(w)
	p.PrintUnit(u)
	return p.err
}

// DumpFiltered writes only the declarations whose qualified name the
// pattern matches. A class whose own name does not match still prints
// when a nested declaration matches, with the non-matching members
// elided. Top-level statements carry no qualified name and are skipped.
func DumpFiltered(w io.Writer, u *Unit, pat *fqname.Pattern) error {
	if pat == nil {
		return Dump(w, u)
	}
	p := NewPrinter(w)
	if u.Path != "" {
		p.printf("unit %s\n\n", u.Path)
	}
	for _, c := range u.Classes {
		if fc, ok := filterClass(c, pat); ok {
			p.printClass(fc)
			p.printf("\n")
		}
	}
	for _, f := range u.Funcs {
		if pat.Matches(f.FqName) {
			p.printFunc(f)
			p.printf("\n")
		}
	}
	return p.err
}

func filterClass(c *Class, pat *fqname.Pattern) (*Class, bool) {
	if pat.Matches(c.FqName) {
		return c, true
	}
	out := &Class{Name: c.Name, FqName: c.FqName, Span: c.Span, Record: c.Record, Fields: c.Fields}
	keep := false
	for _, m := range c.Members {
		if pat.Matches(m.FqName) {
			out.Members = append(out.Members, m)
			keep = true
		}
	}
	for _, n := range c.Nested {
		if fn, ok := filterClass(n, pat); ok {
			out.Nested = append(out.Nested, fn)
			keep = true
		}
	}
	return out, keep
}

// DumpExpr writes a single expression to w.
func DumpExpr(w io.Writer, e *Expr) error {
	p := NewPrinter(w)
	p.printExpr(e)
	p.printf("\n")
	return p.err
}

// PrintUnit prints a complete unit.
func (p *Printer) PrintUnit(u *Unit) {
	if u.Path != "" {
		p.printf("unit %s\n\n", u.Path)
	}
	for _, c := range u.Classes {
		p.printClass(c)
		p.printf("\n")
	}
	for _, f := range u.Funcs {
		p.printFunc(f)
		p.printf("\n")
	}
	for _, s := range u.Stmts {
		p.printIndent()
		p.printExpr(s)
		p.printf("\n")
	}
}

func (p *Printer) printClass(c *Class) {
	kw := "class"
	if c.Record {
		kw = "record"
	}
	p.printIndent()
	p.printf("%s %s", kw, c.FqName)
	if len(c.Fields) > 0 {
		p.printf("(")
		for i, f := range c.Fields {
			if i > 0 {
				p.printf(", ")
			}
			switch {
			case f.Stored && f.Mutable:
				p.printf("var ")
			case f.Stored:
				p.printf("val ")
			}
			p.printf("%s: %s", f.Name, f.TypeText)
		}
		p.printf(")")
	}
	p.printf("\n")
	p.indent++
	for _, nested := range c.Nested {
		p.printClass(nested)
	}
	for _, m := range c.Members {
		p.printFunc(m)
	}
	for _, s := range c.Stmts {
		p.printIndent()
		p.printExpr(s)
		p.printf("\n")
	}
	p.indent--
}

func (p *Printer) printFunc(f *Function) {
	p.printIndent()
	if f.Operator {
		p.printf("operator ")
	}
	p.printf("fun %s(", f.Name)
	for i, param := range f.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", param.Name)
		if param.TypeText != "" {
			p.printf(": %s", param.TypeText)
		}
		if param.Default != nil {
			p.printf(" = ")
			p.printExpr(param.Default)
		}
	}
	p.printf(")")
	if f.ReturnType != "" {
		p.printf(": %s", f.ReturnType)
	}
	if f.Origin.Synthetic() {
		p.printf(" [%s]", f.Origin)
	}
	if f.Body != nil {
		p.printf(" ")
		p.printExpr(f.Body)
	}
	p.printf("\n")
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	switch e.Kind {
	case ExprConst:
		data := e.Data.(ConstData)
		p.printf("%s", data.Value)

	case ExprError:
		data := e.Data.(ErrorData)
		p.printf("<error %s: %s>", data.Diag.Code, data.Diag.Message)

	case ExprBlock:
		data := e.Data.(BlockData)
		p.printf("{")
		p.printOriginTag(e.Origin)
		p.printf("\n")
		p.indent++
		for _, stmt := range data.Stmts {
			p.printIndent()
			p.printExpr(stmt)
			p.printf("\n")
		}
		p.indent--
		p.printIndent()
		p.printf("}")

	case ExprCall:
		data := e.Data.(CallData)
		if data.Receiver != nil {
			p.printExpr(data.Receiver)
			p.printf(".")
		}
		p.printRef(data.Callee)
		p.printf("(")
		for i, arg := range data.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(arg)
		}
		p.printf(")")
		p.printOriginTag(e.Origin)

	case ExprPropertyAccess:
		data := e.Data.(AccessData)
		p.printRef(data.Callee)

	case ExprQualifiedAccess:
		data := e.Data.(AccessData)
		p.printExpr(data.Receiver)
		p.printf(".")
		p.printRef(data.Callee)

	case ExprVarAssign:
		data := e.Data.(AssignData)
		if data.Receiver != nil {
			p.printExpr(data.Receiver)
			p.printf(".")
		}
		p.printRef(data.Callee)
		p.printf(" = ")
		p.printExpr(data.Value)
		p.printOriginTag(e.Origin)

	case ExprSafeCall:
		data := e.Data.(SafeCallData)
		p.printf("safe(%s = ", data.Subject)
		p.printExpr(data.Receiver)
		p.printf(") ")
		p.printExpr(data.Selector)

	case ExprThis:
		data := e.Data.(ThisData)
		p.printf("this")
		if data.Label != "" {
			p.printf("@%s", data.Label)
		}

	case ExprLoop:
		data := e.Data.(LoopData)
		if data.Label != "" {
			p.printf("%s@ ", data.Label)
		}
		if data.Loop == LoopDoWhile {
			p.printf("do ")
			p.printExpr(data.Body)
			p.printf(" while (")
			p.printExpr(data.Cond)
			p.printf(")")
		} else {
			p.printf("while (")
			p.printExpr(data.Cond)
			p.printf(") ")
			p.printExpr(data.Body)
		}
		p.printOriginTag(e.Origin)

	case ExprLoopJump:
		data := e.Data.(LoopJumpData)
		if data.IsBreak {
			p.printf("break")
		} else {
			p.printf("continue")
		}
		if data.Target != nil {
			if data.Target.IsError() {
				p.printf("@<error>")
			} else if data.Target.Label() != "" {
				p.printf("@%s", data.Target.Label())
			}
		}

	case ExprReturn:
		data := e.Data.(ReturnData)
		p.printf("return")
		if data.Target != nil && data.Target.Label() != "" {
			p.printf("@%s", data.Target.Label())
		}
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}

	case ExprVarDecl:
		data := e.Data.(VarDeclData)
		if data.Mutable {
			p.printf("var ")
		} else {
			p.printf("val ")
		}
		p.printf("%s", data.Name)
		if data.TypeText != "" {
			p.printf(": %s", data.TypeText)
		}
		if data.Init != nil {
			p.printf(" = ")
			p.printExpr(data.Init)
		}

	case ExprStringConcat:
		data := e.Data.(StringConcatData)
		p.printf("concat(")
		for i, part := range data.Parts {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(part)
		}
		p.printf(")")
		p.printOriginTag(e.Origin)

	default:
		p.printf("<unknown expr kind %d>", e.Kind)
	}
}

func (p *Printer) printRef(r Ref) {
	switch r.Kind {
	case RefNamed:
		p.printf("%s", r.Name)
	case RefThis:
		p.printf("this")
		if r.Label != "" {
			p.printf("@%s", r.Label)
		}
	case RefError:
		p.printf("<error-ref>")
	default:
		p.printf("<ref?%d>", r.Kind)
	}
}

func (p *Printer) printOriginTag(o Origin) {
	if o.Synthetic() {
		p.printf(" [%s]", o)
	}
}

func (p *Printer) printIndent() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
