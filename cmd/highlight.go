package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"tigerc/ast"
	"tigerc/report"
	"tigerc/syntax"
)

// Styles of the terminal renderer, one per syntactic role.
var (
	keywordStyle  = pterm.NewStyle(pterm.FgMagenta, pterm.Bold)
	typeNameStyle = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	funcNameStyle = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	identStyle    = pterm.NewStyle(pterm.FgCyan)
	stringStyle   = pterm.NewStyle(pterm.FgGreen)
	numberStyle   = pterm.NewStyle(pterm.FgYellow)
	operStyle     = pterm.NewStyle(pterm.FgWhite, pterm.Bold)
)

// runHighlight implements the highlight subcommand: parse the input, then
// render the tree back to concrete syntax with terminal colors.
func runHighlight(inputPath string) int {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		report.DisplayFatal("cannot open file `%s`: %s", inputPath, err)
		return 1
	}

	program, err := syntax.NewParser(string(source)).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	h := &highlighter{}
	fmt.Println(h.expr(program))
	return 0
}

// -----------------------------------------------------------------------------

// highlighter renders an AST back to indented Tiger source, styling
// keywords, identifiers, type names, function names, literals, and
// operators differently.
type highlighter struct {
	level int
}

func (h *highlighter) indent() string {
	return strings.Repeat("  ", h.level)
}

func kw(text string) string    { return keywordStyle.Sprint(text) }
func ident(text string) string { return identStyle.Sprint(text) }
func tyName(text string) string { return typeNameStyle.Sprint(text) }
func fnName(text string) string { return funcNameStyle.Sprint(text) }
func oper(text string) string  { return operStyle.Sprint(text) }

func (h *highlighter) expr(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.NilExpr:
		return kw("nil")
	case *ast.IntExpr:
		return numberStyle.Sprint(strconv.Itoa(v.Value))
	case *ast.StringExpr:
		return stringStyle.Sprint(strconv.Quote(v.Value))
	case *ast.VarExpr:
		return h.lvalue(v)
	case *ast.CallExpr:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = h.expr(arg)
		}
		return fnName(v.Func) + oper("(") + strings.Join(args, oper(", ")) + oper(")")
	case *ast.OpExpr:
		return h.opExpr(v)
	case *ast.RecordExpr:
		fields := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = ident(field.Name) + oper(" = ") + h.expr(field.Value)
		}
		return tyName(v.TypeID) + oper(" {") + strings.Join(fields, oper(", ")) + oper("}")
	case *ast.ArrayExpr:
		return tyName(v.TypeID) + oper(" [") + h.expr(v.Size) + oper("] ") +
			kw("of") + " " + h.expr(v.Init)
	case *ast.AssignExpr:
		return h.lvalue(v.Var) + " " + oper(":=") + " " + h.expr(v.Expr)
	case *ast.IfExpr:
		return h.ifExpr(v)
	case *ast.WhileExpr:
		sb := &strings.Builder{}
		sb.WriteString(kw("while") + " " + h.expr(v.Test) + " " + kw("do") + "\n")
		h.level++
		sb.WriteString(h.indent() + h.expr(v.Body))
		h.level--
		return sb.String()
	case *ast.ForExpr:
		sb := &strings.Builder{}
		sb.WriteString(kw("for") + " " + ident(v.Var) + " " + oper(":=") + " " +
			h.expr(v.Lo) + " " + kw("to") + " " + h.expr(v.Hi) + " " + kw("do") + "\n")
		h.level++
		sb.WriteString(h.indent() + h.expr(v.Body))
		h.level--
		return sb.String()
	case *ast.BreakExpr:
		return kw("break")
	case *ast.LetExpr:
		return h.letExpr(v)
	case *ast.SeqExpr:
		exprs := make([]string, len(v.Exprs))
		for i, e := range v.Exprs {
			exprs[i] = h.expr(e)
		}
		return oper("(") + strings.Join(exprs, oper("; ")) + oper(")")
	default:
		return ""
	}
}

func (h *highlighter) lvalue(v *ast.VarExpr) string {
	switch v.Kind {
	case ast.FieldVar:
		return h.lvalue(v.Var) + oper(".") + ident(v.Name)
	case ast.SubscriptVar:
		return h.lvalue(v.Var) + oper("[") + h.expr(v.Index) + oper("]")
	default:
		return ident(v.Name)
	}
}

func (h *highlighter) opExpr(v *ast.OpExpr) string {
	// Parenthesize an operand that is itself an operator application, so
	// the rendering never misreads precedence.
	left := h.expr(v.Left)
	if _, ok := v.Left.(*ast.OpExpr); ok {
		left = oper("(") + left + oper(")")
	}

	right := h.expr(v.Right)
	if _, ok := v.Right.(*ast.OpExpr); ok {
		right = oper("(") + right + oper(")")
	}

	return left + " " + oper(ast.OpString(v.Op)) + " " + right
}

func (h *highlighter) ifExpr(v *ast.IfExpr) string {
	sb := &strings.Builder{}
	sb.WriteString(kw("if") + " " + h.expr(v.Test) + "\n")
	sb.WriteString(h.indent() + kw("then") + " ")

	h.level++
	sb.WriteString(h.expr(v.Then))
	h.level--

	if v.Else != nil {
		sb.WriteString("\n" + h.indent() + kw("else") + " ")
		h.level++
		sb.WriteString(h.expr(v.Else))
		h.level--
	}

	return sb.String()
}

func (h *highlighter) letExpr(v *ast.LetExpr) string {
	sb := &strings.Builder{}
	sb.WriteString(kw("let") + "\n")

	h.level++
	for _, decl := range v.Decls {
		sb.WriteString(h.indent() + h.decl(decl) + "\n")
	}
	h.level--

	sb.WriteString(h.indent() + kw("in") + "\n")

	h.level++
	for i, e := range v.Body {
		if i > 0 {
			sb.WriteString(oper(";") + "\n")
		}
		sb.WriteString(h.indent() + h.expr(e))
	}
	h.level--

	sb.WriteString("\n" + h.indent() + kw("end"))
	return sb.String()
}

func (h *highlighter) decl(decl ast.Decl) string {
	switch v := decl.(type) {
	case *ast.TypeDecl:
		return kw("type") + " " + tyName(v.Name) + " " + oper("=") + " " + h.typeAST(v.Type)
	case *ast.VarDecl:
		sb := &strings.Builder{}
		sb.WriteString(kw("var") + " " + ident(v.Name))
		if v.TypeID != "" {
			sb.WriteString(oper(": ") + tyName(v.TypeID))
		}
		sb.WriteString(" " + oper(":=") + " " + h.expr(v.Init))
		return sb.String()
	case *ast.FuncDecl:
		sb := &strings.Builder{}
		sb.WriteString(kw("function") + " " + fnName(v.Name) + oper("("))

		params := make([]string, len(v.Params))
		for i, param := range v.Params {
			params[i] = ident(param.Name) + oper(": ") + tyName(param.TypeID)
		}
		sb.WriteString(strings.Join(params, oper(", ")) + oper(")"))

		if v.ResultID != "" {
			sb.WriteString(oper(": ") + tyName(v.ResultID))
		}

		sb.WriteString(" " + oper("=") + "\n")
		h.level++
		sb.WriteString(h.indent() + h.expr(v.Body))
		h.level--
		return sb.String()
	default:
		return ""
	}
}

func (h *highlighter) typeAST(t ast.TypeAST) string {
	switch v := t.(type) {
	case *ast.NameTypeAST:
		return tyName(v.Name)
	case *ast.RecordTypeAST:
		fields := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = ident(field.Name) + oper(": ") + tyName(field.TypeID)
		}
		return oper("{") + strings.Join(fields, oper(", ")) + oper("}")
	case *ast.ArrayTypeAST:
		return kw("array") + " " + kw("of") + " " + tyName(v.ElemID)
	default:
		return ""
	}
}
