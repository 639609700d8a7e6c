// Package types implements the Tiger type universe.  Tiger typing is
// nominal: every record and array declaration mints a fresh type identity,
// so two syntactically identical declarations produce distinct types.
package types

import "strings"

// Type represents a Tiger semantic type.
type Type interface {
	// equals returns whether this type is equal to the other type.  It does
	// not unwrap name aliases: callers must go through Equals, which
	// resolves both sides first.
	equals(other Type) bool

	// Repr returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive type.  This must be one of the enumerated
// primitive type values below.  Primitives compare by value and are shared
// across the whole program.
type PrimType int

// Enumeration of the primitive types.
const (
	PrimInt = PrimType(iota)
	PrimString
	PrimNil
	PrimVoid
)

func (pt PrimType) equals(other Type) bool {
	if pt == PrimNil {
		// nil compares equal to any record type.
		if _, ok := other.(*RecordType); ok {
			return true
		}
	}

	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimType) Repr() string {
	switch pt {
	case PrimInt:
		return "int"
	case PrimString:
		return "string"
	case PrimNil:
		return "nil"
	default:
		return "void"
	}
}

// -----------------------------------------------------------------------------

// Field is a single named field of a record type.  The field's position in
// the record is its storage slot: the IR generator addresses field k at
// offset k * word-size.
type Field struct {
	Name string
	Type Type
}

// RecordType represents a record type.  Each record declaration creates a
// fresh identity: two records are equal exactly when their ids are equal.
type RecordType struct {
	// The unique identity of this record declaration.
	ID uint64

	// The fields of this record, in declaration order.
	Fields []Field
}

func (rt *RecordType) equals(other Type) bool {
	// nil can stand in for any record.
	if pt, ok := other.(PrimType); ok && pt == PrimNil {
		return true
	}

	if ort, ok := other.(*RecordType); ok {
		return rt.ID == ort.ID
	}

	return false
}

func (rt *RecordType) Repr() string {
	sb := strings.Builder{}
	sb.WriteRune('{')

	for i, field := range rt.Fields {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(field.Name)
		sb.WriteString(": ")

		// Recursive records would loop if we printed the field type fully;
		// name aliases print by name alone.
		if nt, ok := field.Type.(*NameType); ok {
			sb.WriteString(nt.Name)
		} else {
			sb.WriteString(field.Type.Repr())
		}
	}

	sb.WriteRune('}')
	return sb.String()
}

// FieldIndex returns the declaration index of the named field.
func (rt *RecordType) FieldIndex(name string) (int, bool) {
	for i, field := range rt.Fields {
		if field.Name == name {
			return i, true
		}
	}

	return 0, false
}

// FieldType returns the type of the named field.
func (rt *RecordType) FieldType(name string) (Type, bool) {
	for _, field := range rt.Fields {
		if field.Name == name {
			return field.Type, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// ArrayType represents an array type.  Like records, each array declaration
// creates a fresh identity.
type ArrayType struct {
	// The unique identity of this array declaration.
	ID uint64

	// The element type of the array.
	Elem Type
}

func (at *ArrayType) equals(other Type) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.ID == oat.ID
	}

	return false
}

func (at *ArrayType) Repr() string {
	if nt, ok := at.Elem.(*NameType); ok {
		return "array of " + nt.Name
	}

	return "array of " + at.Elem.Repr()
}

// -----------------------------------------------------------------------------

// NameType represents a named type alias.  Aliases support forward
// declaration: they are created unbound and later bound to their true
// definition, which is how mutually recursive type batches resolve.
type NameType struct {
	// The declared name of the alias.
	Name string

	// The type this alias is bound to, or nil while unresolved.
	binding Type
}

// Bind attaches the alias's resolution.
func (nt *NameType) Bind(typ Type) {
	nt.binding = typ
}

// Binding returns the type this alias is bound to, or nil.
func (nt *NameType) Binding() Type {
	return nt.binding
}

func (nt *NameType) equals(other Type) bool {
	// An alias that reaches this method was not resolved by Equals: it is
	// unbound, and equality on unresolved aliases is false.
	return false
}

func (nt *NameType) Repr() string {
	return nt.Name
}

// -----------------------------------------------------------------------------

// FuncType represents a function signature.
type FuncType struct {
	// The parameter types of the function.
	Params []Type

	// The result type of the function.  Procedures have result PrimVoid.
	Result Type
}

func (ft *FuncType) equals(other Type) bool {
	oft, ok := other.(*FuncType)
	if !ok || len(ft.Params) != len(oft.Params) {
		return false
	}

	for i, param := range ft.Params {
		if !Equals(param, oft.Params[i]) {
			return false
		}
	}

	return Equals(ft.Result, oft.Result)
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}
	sb.WriteRune('(')

	for i, param := range ft.Params {
		if i != 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Repr())
	}

	sb.WriteString(") -> ")
	sb.WriteString(ft.Result.Repr())
	return sb.String()
}
