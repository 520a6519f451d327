package compiler

import (
	"fmt"
	"strings"
)

// BaseType is one of the two scalar base types in the language.
type BaseType int

const (
	BaseInt BaseType = iota
	BaseFloat
)

func (b BaseType) String() string {
	switch b {
	case BaseInt:
		return "int"
	case BaseFloat:
		return "float"
	default:
		return fmt.Sprintf("BaseType(%d)", int(b))
	}
}

// symbolKind distinguishes a scalar/array variable descriptor from a
// function descriptor.
type symbolKind int

const (
	kindScalar symbolKind = iota
	kindFunction
)

// TypeDescriptor is the type of a declared name or an expression's computed
// type. A function descriptor's own Indexed is always false; one of its
// Parameters may itself be Indexed but is never itself a function.
type TypeDescriptor struct {
	Base       BaseType
	Indexed    bool
	Kind       symbolKind
	Parameters []TypeDescriptor // only meaningful when Kind == kindFunction
}

func scalarType(base BaseType) TypeDescriptor {
	return TypeDescriptor{Base: base, Kind: kindScalar}
}

func arrayType(base BaseType) TypeDescriptor {
	return TypeDescriptor{Base: base, Indexed: true, Kind: kindScalar}
}

func functionType(ret BaseType, params []TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Base: ret, Kind: kindFunction, Parameters: params}
}

func (t TypeDescriptor) isFunction() bool { return t.Kind == kindFunction }

func (t TypeDescriptor) String() string {
	if t.Kind == kindFunction {
		parts := make([]string, len(t.Parameters))
		for i, p := range t.Parameters {
			parts[i] = p.String()
		}
		return fmt.Sprintf("func(%s) %s", strings.Join(parts, ", "), t.Base)
	}
	if t.Indexed {
		return fmt.Sprintf("%s[]", t.Base)
	}
	return t.Base.String()
}
