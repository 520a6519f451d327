package compiler

import "fmt"

// resolver runs the combined name-resolution and type-checking pass. It
// rewrites the tree in place, replacing every expression that needs an
// implicit conversion with an explicit CastExpr, so the code generator never
// has to reason about coercions itself.
type resolver struct {
	sink        *diagSink
	global      *Scope
	blockScopes map[*BlockStmt]*Scope
}

// Resolve walks prog, declaring globals and function signatures, then
// type-checks and rewrites every function body. It panics with a
// fatalDiagnostic on the first fatal error, matching the sink's contract;
// callers should invoke it under the recover in Compile. The returned map
// records, for every BlockStmt in the tree, the Scope the resolver built for
// it; the code generator looks storage and register state back out of these
// same Scope values rather than reconstructing them.
func Resolve(prog *Program, sink *diagSink) (*Scope, map[*BlockStmt]*Scope) {
	r := &resolver{sink: sink, global: newProgramScope(), blockScopes: make(map[*BlockStmt]*Scope)}

	// Pass 1: predeclare every function signature so calls may appear
	// before their definitions (and so recursive/mutually-recursive calls
	// resolve).
	for _, fn := range prog.Funcs {
		params := make([]TypeDescriptor, len(fn.Params))
		for i, p := range fn.Params {
			if p.IsIndexed {
				params[i] = arrayType(p.Type)
			} else {
				params[i] = scalarType(p.Type)
			}
		}
		r.global.declareSymbol(functionType(fn.ReturnType, params), fn.Name, 0)
	}

	// Pass 2: globals, in source order.
	for _, d := range prog.Globals {
		r.declareVar(d, r.global)
	}

	// Pass 3: function bodies, in source order.
	for _, fn := range prog.Funcs {
		r.resolveFunction(fn)
	}

	return r.global, r.blockScopes
}

// declareVar declares every declarator in d within scope, allocating
// storage via scope.allocWords. An array reserves a header word followed by
// its n data words; the header's location is the declarator's recorded
// location, matching spec.md's "header slot as authoritative" resolution of
// the original's size accounting.
func (r *resolver) declareVar(d *VarDecl, scope *Scope) {
	for _, decl := range d.Declarators {
		if decl.IsIndexed {
			loc := scope.allocWords(decl.ArrayLen + 1)
			scope.declareSymbol(arrayType(d.Type), decl.Name, loc)
		} else {
			loc := scope.allocWords(1)
			scope.declareSymbol(scalarType(d.Type), decl.Name, loc)
		}
	}
}

func (r *resolver) resolveFunction(fn *FunctionDecl) {
	fnType, _ := r.global.lookupType(fn.Name)
	fnScope := r.global.newChildScope(&fnType, true)

	// Parameters occupy negative FP-relative offsets below the saved-FP and
	// return-address slots, in source order: param i sits at FP-(2+i).
	for i, p := range fn.Params {
		loc := -(2 + i)
		if p.IsIndexed {
			fnScope.declareSymbol(arrayType(p.Type), p.Name, loc)
		} else {
			fnScope.declareSymbol(scalarType(p.Type), p.Name, loc)
		}
	}

	r.blockScopes[fn.Body] = fnScope
	r.resolveBlockIn(fn.Body, fnScope)
}

// resolveBlockIn type-checks b using scope directly as the block's own
// scope (used for a function's outermost block, so parameters and the
// block's own locals share one frame).
func (r *resolver) resolveBlockIn(b *BlockStmt, scope *Scope) {
	for _, d := range b.Decls {
		r.declareVar(d, scope)
	}
	for i, s := range b.Stmts {
		b.Stmts[i] = r.resolveStmt(s, scope)
	}
}

// resolveBlock opens a fresh child scope for a nested compound statement.
func (r *resolver) resolveBlock(b *BlockStmt, parent *Scope) *Scope {
	child := parent.newChildScope(nil, parent.isLocal)
	r.blockScopes[b] = child
	r.resolveBlockIn(b, child)
	return child
}

func (r *resolver) resolveStmt(s Stmt, scope *Scope) Stmt {
	switch n := s.(type) {
	case *BlockStmt:
		r.resolveBlock(n, scope)
		return n
	case *AssignStmt:
		r.resolveAssign(n, scope)
		return n
	case *ExprStmt:
		n.Expr = r.resolveCallStmt(n.Expr, scope)
		return n
	case *ReturnStmt:
		r.resolveReturn(n, scope)
		return n
	case *IfStmt:
		n.Cond = r.coerceCondition(n.Cond, scope)
		n.Then = r.resolveStmt(n.Then, scope)
		if n.Else != nil {
			n.Else = r.resolveStmt(n.Else, scope)
		}
		return n
	case *WhileStmt:
		n.Cond = r.coerceCondition(n.Cond, scope)
		n.Body = r.resolveStmt(n.Body, scope)
		return n
	case *DoWhileStmt:
		n.Body = r.resolveStmt(n.Body, scope)
		n.Cond = r.coerceCondition(n.Cond, scope)
		return n
	case *ForStmt:
		if n.Init != nil {
			n.Init = r.resolveStmt(n.Init, scope)
		}
		if n.Cond != nil {
			n.Cond = r.coerceCondition(n.Cond, scope)
		}
		if n.Post != nil {
			n.Post = r.resolveStmt(n.Post, scope)
		}
		n.Body = r.resolveStmt(n.Body, scope)
		return n
	case *SwitchStmt:
		r.resolveSwitch(n, scope)
		return n
	case *VarDecl:
		// Declarations nested directly in a statement list (should not
		// occur; VarDecls live in BlockStmt.Decls) are declared as-is.
		r.declareVar(n, scope)
		return n
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", s))
	}
}

// resolveCallStmt type-checks an expression used in statement position. The
// grammar only permits this for function calls, and only here may the call
// target the printf/scanf intrinsics.
func (r *resolver) resolveCallStmt(e Expr, scope *Scope) Expr {
	call, ok := e.(*CallExpr)
	if !ok {
		r.sink.error(e.line(), TypeError, "", e.String())
	}
	if call.Name == "printf" || call.Name == "scanf" {
		r.resolveIntrinsicCall(call, scope)
		return call
	}
	r.resolveCall(call, scope)
	return call
}

// resolveIntrinsicCall type-checks a call to printf or scanf in statement
// context, per their special single-argument conventions.
func (r *resolver) resolveIntrinsicCall(c *CallExpr, scope *Scope) {
	if len(c.Args) != 1 {
		r.sink.error(c.Line, TypeError, "", c.String())
	}
	if c.Name == "printf" {
		argType := r.resolveExprType(c.Args[0], scope)
		if argType.isFunction() || argType.Indexed {
			r.sink.error(c.Line, TypeError, "", c.String())
		}
		return
	}
	switch c.Args[0].(type) {
	case *Ident, *IndexExpr:
		r.resolveExpr(c.Args[0], scope)
	default:
		r.sink.error(c.Line, TypeError, "scanf requires an identifier argument", c.String())
	}
}

func (r *resolver) resolveAssign(a *AssignStmt, scope *Scope) {
	typ, ok := scope.lookupType(a.Name)
	if !ok {
		r.sink.error(a.Line, NotDefined, "", a.Name)
	}
	if typ.isFunction() {
		r.sink.error(a.Line, TypeError, "cannot assign to a function", a.Name)
	}

	if a.Index != nil {
		if !typ.Indexed {
			r.sink.error(a.Line, TypeError, "indexed assignment to non-array", a.Name)
		}
		a.Index = r.coerceToInt(a.Index, scope)
	} else if typ.Indexed {
		r.sink.error(a.Line, TypeError, "array name used as scalar", a.Name)
	}

	valType := r.resolveExprType(a.Value, scope)
	if valType.isFunction() || valType.Indexed {
		r.sink.error(a.Line, TypeError, "", a.Value.String())
	}
	a.Value = r.coerceTo(typ.Base, a.Value, valType)
}

func (r *resolver) resolveReturn(n *ReturnStmt, scope *Scope) {
	fnType := *scope.currentFn
	if n.Expr == nil {
		r.sink.error(n.Line, TypeError, "Should return a value", "return")
		return
	}
	exprType := r.resolveExprType(n.Expr, scope)
	if exprType.isFunction() || exprType.Indexed {
		r.sink.error(n.Line, TypeError, "", n.Expr.String())
	}
	n.Expr = r.coerceTo(fnType.Base, n.Expr, exprType)
}

func (r *resolver) resolveSwitch(n *SwitchStmt, scope *Scope) {
	switch n.Target.(type) {
	case *Ident, *IndexExpr:
	default:
		r.sink.error(n.Line, TypeError, "switch target must be an identifier", n.Target.String())
	}

	targetType := r.resolveExprType(n.Target, scope)
	if targetType.isFunction() || targetType.Indexed {
		r.sink.error(n.Line, TypeError, "", n.Target.String())
	}
	n.Target = r.coerceTo(BaseInt, n.Target, targetType)

	for ci := range n.Cases {
		for si, s := range n.Cases[ci].Body {
			n.Cases[ci].Body[si] = r.resolveStmt(s, scope)
		}
	}
	for si, s := range n.Default {
		n.Default[si] = r.resolveStmt(s, scope)
	}
}

// coerceCondition checks that e is a scalar and coerces a FLOAT condition
// to INT with a warning, per every condition position in the grammar.
func (r *resolver) coerceCondition(e Expr, scope *Scope) Expr {
	return r.coerceToInt(e, scope)
}

func (r *resolver) coerceToInt(e Expr, scope *Scope) Expr {
	t := r.resolveExprType(e, scope)
	if t.isFunction() || t.Indexed {
		r.sink.error(e.line(), TypeError, "", e.String())
	}
	return r.coerceTo(BaseInt, e, t)
}

// coerceTo wraps e in a CastExpr to target if its base differs, emitting the
// Implicit type casting warning. e must already be resolved (resolveExprType
// must have been called on it). Neither resolveExprType nor coerceTo rejects
// array/function values; callers that require a scalar check that first.
func (r *resolver) coerceTo(target BaseType, e Expr, t TypeDescriptor) Expr {
	if t.Base == target {
		return e
	}
	cast := &CastExpr{Target: target, Inner: e}
	r.sink.warning(e.line(), ImplicitTypeCasting, "", cast.String())
	return cast
}

// resolveExpr resolves e's children in place (inserting casts as needed) and
// returns the possibly-rewritten node.
func (r *resolver) resolveExpr(e Expr, scope *Scope) Expr {
	switch n := e.(type) {
	case *IntLit, *FloatLit:
		return n
	case *Ident:
		if _, ok := scope.lookupType(n.Name); !ok {
			r.sink.error(n.Line, NotDefined, "", n.Name)
		}
		return n
	case *IndexExpr:
		typ, ok := scope.lookupType(n.Name)
		if !ok {
			r.sink.error(n.Line, NotDefined, "", n.Name)
		}
		if !typ.Indexed {
			r.sink.error(n.Line, TypeError, "indexing a non-array", n.Name)
		}
		n.Index = r.coerceToInt(n.Index, scope)
		return n
	case *UnaryExpr:
		operandType := r.resolveExprType(n.Operand, scope)
		if operandType.isFunction() || operandType.Indexed {
			r.sink.error(n.Line, TypeError, "", n.String())
		}
		return n
	case *BinaryExpr:
		leftType := r.resolveExprType(n.Left, scope)
		rightType := r.resolveExprType(n.Right, scope)
		if leftType.isFunction() || leftType.Indexed || rightType.isFunction() || rightType.Indexed {
			r.sink.error(n.Line, TypeError, "", n.String())
		}
		if leftType.Base != rightType.Base {
			if leftType.Base == BaseFloat {
				n.Right = r.coerceTo(BaseFloat, n.Right, rightType)
			} else {
				n.Left = r.coerceTo(BaseFloat, n.Left, leftType)
			}
		}
		return n
	case *CallExpr:
		r.resolveCall(n, scope)
		return n
	case *CastExpr:
		return n
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}

// resolveCall type-checks an ordinary function call. It is reached only from
// resolveExpr, i.e. for a call nested in expression position; printf/scanf
// are valid only as a whole statement (resolveCallStmt handles those via
// resolveIntrinsicCall), so a reference to either by name here is itself the
// type error the spec calls for.
func (r *resolver) resolveCall(c *CallExpr, scope *Scope) {
	if c.Name == "printf" || c.Name == "scanf" {
		r.sink.error(c.Line, TypeError, "call to "+c.Name+" is only valid as a statement", c.String())
	}

	fnType, ok := scope.lookupType(c.Name)
	if !ok {
		r.sink.error(c.Line, NotDefined, "", c.Name)
	}
	if !fnType.isFunction() {
		r.sink.error(c.Line, TypeError, "", c.Name)
	}
	if len(c.Args) != len(fnType.Parameters) {
		r.sink.error(c.Line, TypeError, "", c.String())
	}
	for i, arg := range c.Args {
		param := fnType.Parameters[i]
		argType := r.resolveExprType(arg, scope)
		if argType.isFunction() || argType.Indexed != param.Indexed {
			r.sink.error(c.Line, TypeError, "", c.String())
		}
		c.Args[i] = r.coerceTo(param.Base, arg, argType)
	}
}

// resolveExprType resolves e in place and returns its computed type.
func (r *resolver) resolveExprType(e Expr, scope *Scope) TypeDescriptor {
	resolved := r.resolveExpr(e, scope)
	return r.typeOf(resolved, scope)
}

// typeOf computes the type of an already-resolved expression without
// re-walking or re-checking its children.
func (r *resolver) typeOf(e Expr, scope *Scope) TypeDescriptor {
	switch n := e.(type) {
	case *IntLit:
		return scalarType(BaseInt)
	case *FloatLit:
		return scalarType(BaseFloat)
	case *Ident:
		t, _ := scope.lookupType(n.Name)
		return t
	case *IndexExpr:
		t, _ := scope.lookupType(n.Name)
		return scalarType(t.Base)
	case *UnaryExpr:
		return r.typeOf(n.Operand, scope)
	case *BinaryExpr:
		leftType := r.typeOf(n.Left, scope)
		if isComparison(n.Op) {
			return scalarType(BaseInt)
		}
		return scalarType(leftType.Base)
	case *CallExpr:
		if n.Name == "printf" || n.Name == "scanf" {
			return scalarType(BaseInt)
		}
		t, _ := scope.lookupType(n.Name)
		return scalarType(t.Base)
	case *CastExpr:
		return scalarType(n.Target)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", e))
	}
}

func isComparison(op TokenType) bool {
	switch op {
	case EQUALS, NOT_EQ, LESS, LESS_EQ, GREATER, GREATER_EQ:
		return true
	default:
		return false
	}
}
