package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders an expression as a parenthesized one-node-per-line text form,
// used by the driver's --dump-ast flag.
func Dump(expr Expr) string {
	sb := &strings.Builder{}
	dumpExpr(sb, expr, 0)
	return sb.String()
}

func dumpLine(sb *strings.Builder, depth int, text string) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(text)
	sb.WriteRune('\n')
}

// OpString returns the source text of a binary operator.
func OpString(op int) string {
	return opNames[op]
}

var opNames = map[int]string{
	OpPlus:   "+",
	OpMinus:  "-",
	OpTimes:  "*",
	OpDivide: "/",
	OpEq:     "=",
	OpNeq:    "<>",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpAnd:    "&",
	OpOr:     "|",
}

func dumpExpr(sb *strings.Builder, expr Expr, depth int) {
	switch v := expr.(type) {
	case *NilExpr:
		dumpLine(sb, depth, "(nil)")
	case *IntExpr:
		dumpLine(sb, depth, "(int "+strconv.Itoa(v.Value)+")")
	case *StringExpr:
		dumpLine(sb, depth, "(string "+strconv.Quote(v.Value)+")")
	case *VarExpr:
		dumpVar(sb, v, depth)
	case *OpExpr:
		dumpLine(sb, depth, "(op "+opNames[v.Op])
		dumpExpr(sb, v.Left, depth+1)
		dumpExpr(sb, v.Right, depth+1)
		dumpLine(sb, depth, ")")
	case *CallExpr:
		dumpLine(sb, depth, "(call "+v.Func)
		for _, arg := range v.Args {
			dumpExpr(sb, arg, depth+1)
		}
		dumpLine(sb, depth, ")")
	case *RecordExpr:
		dumpLine(sb, depth, "(record "+v.TypeID)
		for _, field := range v.Fields {
			dumpLine(sb, depth+1, "(field "+field.Name)
			dumpExpr(sb, field.Value, depth+2)
			dumpLine(sb, depth+1, ")")
		}
		dumpLine(sb, depth, ")")
	case *ArrayExpr:
		dumpLine(sb, depth, "(array "+v.TypeID)
		dumpExpr(sb, v.Size, depth+1)
		dumpExpr(sb, v.Init, depth+1)
		dumpLine(sb, depth, ")")
	case *AssignExpr:
		dumpLine(sb, depth, "(assign")
		dumpVar(sb, v.Var, depth+1)
		dumpExpr(sb, v.Expr, depth+1)
		dumpLine(sb, depth, ")")
	case *IfExpr:
		dumpLine(sb, depth, "(if")
		dumpExpr(sb, v.Test, depth+1)
		dumpExpr(sb, v.Then, depth+1)
		if v.Else != nil {
			dumpExpr(sb, v.Else, depth+1)
		}
		dumpLine(sb, depth, ")")
	case *WhileExpr:
		dumpLine(sb, depth, "(while")
		dumpExpr(sb, v.Test, depth+1)
		dumpExpr(sb, v.Body, depth+1)
		dumpLine(sb, depth, ")")
	case *ForExpr:
		dumpLine(sb, depth, fmt.Sprintf("(for %s escape=%t", v.Var, v.Escape))
		dumpExpr(sb, v.Lo, depth+1)
		dumpExpr(sb, v.Hi, depth+1)
		dumpExpr(sb, v.Body, depth+1)
		dumpLine(sb, depth, ")")
	case *BreakExpr:
		dumpLine(sb, depth, "(break)")
	case *LetExpr:
		dumpLine(sb, depth, "(let")
		for _, decl := range v.Decls {
			dumpDecl(sb, decl, depth+1)
		}
		dumpLine(sb, depth+1, "(in")
		for _, e := range v.Body {
			dumpExpr(sb, e, depth+2)
		}
		dumpLine(sb, depth+1, ")")
		dumpLine(sb, depth, ")")
	case *SeqExpr:
		dumpLine(sb, depth, "(seq")
		for _, e := range v.Exprs {
			dumpExpr(sb, e, depth+1)
		}
		dumpLine(sb, depth, ")")
	}
}

func dumpVar(sb *strings.Builder, v *VarExpr, depth int) {
	switch v.Kind {
	case SimpleVar:
		dumpLine(sb, depth, "(var "+v.Name+")")
	case FieldVar:
		dumpLine(sb, depth, "(field-of "+v.Name)
		dumpVar(sb, v.Var, depth+1)
		dumpLine(sb, depth, ")")
	case SubscriptVar:
		dumpLine(sb, depth, "(subscript")
		dumpVar(sb, v.Var, depth+1)
		dumpExpr(sb, v.Index, depth+1)
		dumpLine(sb, depth, ")")
	}
}

func dumpDecl(sb *strings.Builder, decl Decl, depth int) {
	switch v := decl.(type) {
	case *TypeDecl:
		dumpLine(sb, depth, "(type "+v.Name)
		dumpTypeAST(sb, v.Type, depth+1)
		dumpLine(sb, depth, ")")
	case *VarDecl:
		header := "(var-decl " + v.Name
		if v.TypeID != "" {
			header += " : " + v.TypeID
		}
		dumpLine(sb, depth, fmt.Sprintf("%s escape=%t", header, v.Escape))
		dumpExpr(sb, v.Init, depth+1)
		dumpLine(sb, depth, ")")
	case *FuncDecl:
		header := "(function " + v.Name + " ("
		params := make([]string, len(v.Params))
		for i, param := range v.Params {
			params[i] = param.Name + ":" + param.TypeID
		}
		header += strings.Join(params, ", ") + ")"
		if v.ResultID != "" {
			header += " : " + v.ResultID
		}
		dumpLine(sb, depth, header)
		dumpExpr(sb, v.Body, depth+1)
		dumpLine(sb, depth, ")")
	}
}

func dumpTypeAST(sb *strings.Builder, t TypeAST, depth int) {
	switch v := t.(type) {
	case *NameTypeAST:
		dumpLine(sb, depth, "(name "+v.Name+")")
	case *RecordTypeAST:
		fields := make([]string, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = field.Name + ":" + field.TypeID
		}
		dumpLine(sb, depth, "(record-type {"+strings.Join(fields, ", ")+"})")
	case *ArrayTypeAST:
		dumpLine(sb, depth, "(array-type "+v.ElemID+")")
	}
}
