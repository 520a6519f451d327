package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeGen walks a resolved AST and emits abstract-machine assembly text.
// It does not rebuild any scope: every storage location and type it needs
// is read back out of the Scope values Resolve built (the program scope and
// the per-BlockStmt map), so it always sees the locations the resolver
// assigned.
type CodeGen struct {
	out         strings.Builder
	global      *Scope
	blockScopes map[*BlockStmt]*Scope
	breakLabel  string // the label a switch arm's trailing break jumps to; switch-only, never set by a loop
}

func newCodeGen(global *Scope, blockScopes map[*BlockStmt]*Scope) *CodeGen {
	return &CodeGen{global: global, blockScopes: blockScopes}
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

//  operand rendering

// addr renders the address of a storage location: a frame-relative form for
// a local (FP@(loc)) or an absolute data-segment offset for a global.
func (cg *CodeGen) addr(loc int, isLocal bool) string {
	if isLocal {
		return fmt.Sprintf("FP@(%d)", loc)
	}
	return strconv.Itoa(loc)
}

// mem renders MEM(addr) with no load indirection: used as a MOVE
// destination, or as a MOVE source when the address value itself (not the
// cell's contents) is wanted.
func (cg *CodeGen) mem(loc int, isLocal bool) string {
	return fmt.Sprintf("MEM(%s)", cg.addr(loc, isLocal))
}

// memLoad renders MEM(addr)@: load the contents of the cell at loc.
func (cg *CodeGen) memLoad(loc int, isLocal bool) string {
	return cg.mem(loc, isLocal) + "@"
}

// memAt wraps an arbitrary address-valued operand (e.g. a register holding a
// runtime-computed address) in MEM(...), for indexed access through a
// header word.
func (cg *CodeGen) memAt(addrExpr string) string {
	return fmt.Sprintf("MEM(%s)", addrExpr)
}

func vr(id int) string     { return fmt.Sprintf("VR(%d)", id) }
func vrLoad(id int) string { return fmt.Sprintf("VR(%d)@", id) }

// memSP renders MEM(SP@) or MEM(SP@)(k) for k != 0, the stack-relative
// addressing used by spills, argument pushes, and the return-address slot.
func (cg *CodeGen) memSP(k int) string {
	if k == 0 {
		return "MEM(SP@)"
	}
	return fmt.Sprintf("MEM(SP@)(%d)", k)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

//  arithmetic op selection

// arithOp returns the three-letter arithmetic mnemonic for op, with the
// float-prefixed form selected by base, not inverted (see the fix to the
// original's apparent UnOpExpr bug, carried through to every arithmetic
// site here).
func arithOp(op TokenType, base BaseType) string {
	var name string
	switch op {
	case PLUS:
		name = "ADD"
	case MINUS:
		name = "SUB"
	case STAR:
		name = "MUL"
	case SLASH:
		name = "DIV"
	default:
		panic(fmt.Sprintf("codegen: %s is not an arithmetic operator", op))
	}
	if base == BaseFloat {
		return "F" + name
	}
	return name
}

//  Generate — entry point

// Generate runs code generation over prog, whose scopes have already been
// built by Resolve, and returns the emitted assembly text.
func Generate(prog *Program, global *Scope, blockScopes map[*BlockStmt]*Scope) string {
	cg := newCodeGen(global, blockScopes)

	cg.line("AREA SP")
	cg.line("AREA FP")
	cg.line("AREA VR")
	cg.line("AREA MEM")
	cg.line("LAB START")
	cg.line("MOVE 0 FP")
	cg.line("MOVE 0 SP")

	for _, d := range prog.Globals {
		cg.genGlobalDecl(d)
	}

	endLabel := fmt.Sprintf("L%d", global.allocLabel())
	cg.line("ADD SP@ 1 SP")
	cg.line("MOVE %s MEM(SP@)", endLabel)
	cg.line("JMP Fmain")
	cg.line("LAB %s", endLabel)

	for _, fn := range prog.Funcs {
		cg.genFunction(fn)
	}

	cg.genIntrinsics()

	return cg.out.String()
}

// genGlobalDecl emits the header-address initialization for every array
// declarator in d. Scalars need no code; their storage already exists in
// the data segment.
func (cg *CodeGen) genGlobalDecl(d *VarDecl) {
	for _, decl := range d.Declarators {
		if !decl.IsIndexed {
			continue
		}
		loc, _, ok := cg.global.lookupLocation(decl.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: global %q has no recorded location", decl.Name))
		}
		cg.line("MOVE %s %s", cg.mem(loc+1, false), cg.mem(loc, false))
	}
}

//  functions

func (cg *CodeGen) genFunction(fn *FunctionDecl) {
	scope := cg.blockScopes[fn.Body]
	if scope == nil {
		panic(fmt.Sprintf("codegen: function %q has no resolved scope", fn.Name))
	}

	cg.line("LAB F%s", fn.Name)
	cg.line("ADD SP@ 1 SP")
	cg.line("MOVE FP@ MEM(SP@)")
	cg.line("MOVE SP@ FP")

	cg.genBlockBody(fn.Body, scope)
}

// genBlockBody emits a block's array-header declarations followed by its
// statements, using scope directly (no new child scope is opened: the
// caller has already selected the correct one via blockScopes).
func (cg *CodeGen) genBlockBody(b *BlockStmt, scope *Scope) {
	var delta int
	for _, d := range b.Decls {
		delta += cg.genLocalDecl(d, scope)
	}
	if delta > 0 {
		cg.line("ADD SP@ %d SP", delta)
	}
	for _, s := range b.Stmts {
		cg.genStmt(s, scope)
	}
}

// genLocalDecl emits header initialization for every array declarator and
// returns the total number of words the declaration added to the frame.
func (cg *CodeGen) genLocalDecl(d *VarDecl, scope *Scope) int {
	total := 0
	for _, decl := range d.Declarators {
		loc, _, ok := scope.lookupLocation(decl.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: local %q has no recorded location", decl.Name))
		}
		if decl.IsIndexed {
			cg.line("MOVE %s %s", cg.mem(loc+1, true), cg.mem(loc, true))
			total += decl.ArrayLen + 1
		} else {
			total++
		}
	}
	return total
}

//  statements

func (cg *CodeGen) genStmt(s Stmt, scope *Scope) {
	switch n := s.(type) {
	case *BlockStmt:
		child := cg.blockScopes[n]
		if child == nil {
			child = scope
		}
		cg.genBlockBody(n, child)
	case *AssignStmt:
		cg.genAssign(n, scope)
	case *ExprStmt:
		r := cg.genExpr(n.Expr, scope)
		scope.freeRegister(r)
	case *ReturnStmt:
		cg.genReturn(n, scope)
	case *IfStmt:
		cg.genIf(n, scope)
	case *WhileStmt:
		cg.genWhile(n, scope)
	case *DoWhileStmt:
		cg.genDoWhile(n, scope)
	case *ForStmt:
		cg.genFor(n, scope)
	case *SwitchStmt:
		cg.genSwitch(n, scope)
	case *VarDecl:
		cg.genLocalDecl(n, scope)
	default:
		panic(fmt.Sprintf("codegen: unhandled statement %T", s))
	}
}

func (cg *CodeGen) genAssign(a *AssignStmt, scope *Scope) {
	loc, isLocal, ok := scope.lookupLocation(a.Name)
	if !ok {
		panic(fmt.Sprintf("codegen: %q has no recorded location", a.Name))
	}

	if a.Index == nil {
		r := cg.genExpr(a.Value, scope)
		cg.line("MOVE %s %s", vrLoad(r), cg.mem(loc, isLocal))
		scope.freeRegister(r)
		return
	}

	idx := cg.genExpr(a.Index, scope)
	val := cg.genExpr(a.Value, scope)
	base := scope.allocRegister()
	cg.line("MOVE %s %s", cg.memLoad(loc, isLocal), vr(base))
	cg.line("ADD %s %s %s", vrLoad(base), vrLoad(idx), vr(base))
	cg.line("MOVE %s %s", vrLoad(val), cg.memAt(vrLoad(base)))
	scope.freeRegister(idx)
	scope.freeRegister(val)
	scope.freeRegister(base)
}

func (cg *CodeGen) genReturn(r *ReturnStmt, scope *Scope) {
	v := cg.genExpr(r.Expr, scope)
	cg.line("MOVE %s VR", vrLoad(v))
	scope.freeRegister(v)
	cg.line("MOVE FP@ SP")
	cg.line("MOVE MEM(SP@)@ FP")
	cg.line("SUB SP@ 1 SP")
	cg.line("JMP MEM(SP@)@")
}

func (cg *CodeGen) genIf(n *IfStmt, scope *Scope) {
	lElse := fmt.Sprintf("L%d", scope.allocLabel())
	lJoin := fmt.Sprintf("L%d", scope.allocLabel())

	c := cg.genExpr(n.Cond, scope)
	cg.line("JMPZ %s %s", vrLoad(c), lElse)
	scope.freeRegister(c)

	cg.genStmt(n.Then, scope)
	cg.line("JMP %s", lJoin)
	cg.line("LAB %s", lElse)
	if n.Else != nil {
		cg.genStmt(n.Else, scope)
	}
	cg.line("LAB %s", lJoin)
}

func (cg *CodeGen) genWhile(n *WhileStmt, scope *Scope) {
	lTop := fmt.Sprintf("L%d", scope.allocLabel())
	lEnd := fmt.Sprintf("L%d", scope.allocLabel())

	cg.line("LAB %s", lTop)
	c := cg.genExpr(n.Cond, scope)
	cg.line("JMPZ %s %s", vrLoad(c), lEnd)
	scope.freeRegister(c)
	cg.genStmt(n.Body, scope)
	cg.line("JMP %s", lTop)
	cg.line("LAB %s", lEnd)
}

// genDoWhile shares while's termination test: the loop exits when cond is
// zero after running the body, rather than strict "repeat while nonzero"
// C semantics. This is the behavior spec.md's design notes adopt as
// intentional.
func (cg *CodeGen) genDoWhile(n *DoWhileStmt, scope *Scope) {
	lTop := fmt.Sprintf("L%d", scope.allocLabel())
	lEnd := fmt.Sprintf("L%d", scope.allocLabel())

	cg.line("LAB %s", lTop)
	cg.genStmt(n.Body, scope)
	c := cg.genExpr(n.Cond, scope)
	cg.line("JMPZ %s %s", vrLoad(c), lEnd)
	scope.freeRegister(c)
	cg.line("JMP %s", lTop)
	cg.line("LAB %s", lEnd)
}

func (cg *CodeGen) genFor(n *ForStmt, scope *Scope) {
	if n.Init != nil {
		cg.genStmt(n.Init, scope)
	}
	lTop := fmt.Sprintf("L%d", scope.allocLabel())
	lEnd := fmt.Sprintf("L%d", scope.allocLabel())

	cg.line("LAB %s", lTop)
	if n.Cond != nil {
		c := cg.genExpr(n.Cond, scope)
		cg.line("JMPZ %s %s", vrLoad(c), lEnd)
		scope.freeRegister(c)
	}
	cg.genStmt(n.Body, scope)
	if n.Post != nil {
		cg.genStmt(n.Post, scope)
	}
	cg.line("JMP %s", lTop)
	cg.line("LAB %s", lEnd)
}

func (cg *CodeGen) genSwitch(n *SwitchStmt, scope *Scope) {
	r := cg.genExpr(n.Target, scope)
	lBreak := fmt.Sprintf("L%d", scope.allocLabel())

	prevBreak := cg.breakLabel
	cg.breakLabel = lBreak
	defer func() { cg.breakLabel = prevBreak }()

	armLabels := make([]string, len(n.Cases))
	for i := range n.Cases {
		armLabels[i] = fmt.Sprintf("L%d", scope.allocLabel())
	}
	defaultLabel := ""
	if n.HasDefault {
		defaultLabel = fmt.Sprintf("L%d", scope.allocLabel())
	}

	for i, c := range n.Cases {
		t := scope.allocRegister()
		cg.line("SUB %s %d %s", vrLoad(r), c.Value, vr(t))
		cg.line("JMPZ %s %s", vrLoad(t), armLabels[i])
		scope.freeRegister(t)
	}
	if n.HasDefault {
		cg.line("JMP %s", defaultLabel)
	}
	cg.line("JMP %s", lBreak)
	scope.freeRegister(r)

	for i, c := range n.Cases {
		cg.line("LAB %s", armLabels[i])
		for _, s := range c.Body {
			cg.genStmt(s, scope)
		}
		if c.Break {
			cg.line("JMP %s", lBreak)
		}
	}
	if n.HasDefault {
		cg.line("LAB %s", defaultLabel)
		for _, s := range n.Default {
			cg.genStmt(s, scope)
		}
		if n.DefaultBreak {
			cg.line("JMP %s", lBreak)
		}
	}
	cg.line("LAB %s", lBreak)
}

//  expressions

// genExpr returns a live virtual-register id holding e's computed value.
// The caller owns the returned register and must free it.
func (cg *CodeGen) genExpr(e Expr, scope *Scope) int {
	switch n := e.(type) {
	case *IntLit:
		r := scope.allocRegister()
		cg.line("MOVE %d %s", n.Value, vr(r))
		return r
	case *FloatLit:
		r := scope.allocRegister()
		cg.line("MOVE %s %s", formatFloat(n.Value), vr(r))
		return r
	case *Ident:
		loc, isLocal, ok := scope.lookupLocation(n.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: %q has no recorded location", n.Name))
		}
		r := scope.allocRegister()
		cg.line("MOVE %s %s", cg.memLoad(loc, isLocal), vr(r))
		return r
	case *IndexExpr:
		return cg.genIndexLoad(n, scope)
	case *UnaryExpr:
		return cg.genUnary(n, scope)
	case *BinaryExpr:
		return cg.genBinary(n, scope)
	case *CastExpr:
		return cg.genCast(n, scope)
	case *CallExpr:
		return cg.genCall(n, scope)
	default:
		panic(fmt.Sprintf("codegen: unhandled expression %T", e))
	}
}

// genIndexAddr loads the computed element address of n into a fresh
// register: the header word's value plus the index value.
func (cg *CodeGen) genIndexAddr(n *IndexExpr, scope *Scope) int {
	loc, isLocal, ok := scope.lookupLocation(n.Name)
	if !ok {
		panic(fmt.Sprintf("codegen: %q has no recorded location", n.Name))
	}
	idx := cg.genExpr(n.Index, scope)
	base := scope.allocRegister()
	cg.line("MOVE %s %s", cg.memLoad(loc, isLocal), vr(base))
	cg.line("ADD %s %s %s", vrLoad(base), vrLoad(idx), vr(base))
	scope.freeRegister(idx)
	return base
}

func (cg *CodeGen) genIndexLoad(n *IndexExpr, scope *Scope) int {
	addr := cg.genIndexAddr(n, scope)
	cg.line("MOVE %s %s", cg.memAt(vrLoad(addr))+"@", vr(addr))
	return addr
}

// genUnary emits the binary subtraction 0 - v, reusing the operand's
// register, with the F-prefixed form selected by the operand's type.
func (cg *CodeGen) genUnary(n *UnaryExpr, scope *Scope) int {
	r := cg.genExpr(n.Operand, scope)
	base := exprBase(n.Operand, scope)
	op := arithOp(MINUS, base)
	zero := "0"
	if base == BaseFloat {
		zero = "0.0"
	}
	cg.line("%s %s %s %s", op, zero, vrLoad(r), vr(r))
	return r
}

func (cg *CodeGen) genBinary(n *BinaryExpr, scope *Scope) int {
	rl := cg.genExpr(n.Left, scope)
	rr := cg.genExpr(n.Right, scope)
	base := exprBase(n.Left, scope)

	rd := scope.allocRegister()

	if !isComparison(n.Op) {
		cg.line("%s %s %s %s", arithOp(n.Op, base), vrLoad(rl), vrLoad(rr), vr(rd))
		scope.freeRegister(rl)
		scope.freeRegister(rr)
		return rd
	}

	diffOp := "SUB"
	if base == BaseFloat {
		diffOp = "FSUB"
	}
	diff := scope.allocRegister()

	lTrue := fmt.Sprintf("L%d", scope.allocLabel())
	lFalse := fmt.Sprintf("L%d", scope.allocLabel())
	lJoin := fmt.Sprintf("L%d", scope.allocLabel())

	switch n.Op {
	case EQUALS:
		cg.line("%s %s %s %s", diffOp, vrLoad(rl), vrLoad(rr), vr(diff))
		cg.line("JMPZ %s %s", vrLoad(diff), lTrue)
		cg.line("JMP %s", lFalse)
	case NOT_EQ:
		cg.line("%s %s %s %s", diffOp, vrLoad(rl), vrLoad(rr), vr(diff))
		cg.line("JMPZ %s %s", vrLoad(diff), lFalse)
		cg.line("JMP %s", lTrue)
	case LESS:
		cg.line("%s %s %s %s", diffOp, vrLoad(rl), vrLoad(rr), vr(diff))
		cg.line("JMPN %s %s", vrLoad(diff), lTrue)
		cg.line("JMP %s", lFalse)
	case LESS_EQ:
		cg.line("%s %s %s %s", diffOp, vrLoad(rr), vrLoad(rl), vr(diff))
		cg.line("JMPN %s %s", vrLoad(diff), lFalse)
		cg.line("JMP %s", lTrue)
	case GREATER:
		cg.line("%s %s %s %s", diffOp, vrLoad(rr), vrLoad(rl), vr(diff))
		cg.line("JMPN %s %s", vrLoad(diff), lTrue)
		cg.line("JMP %s", lFalse)
	case GREATER_EQ:
		cg.line("%s %s %s %s", diffOp, vrLoad(rl), vrLoad(rr), vr(diff))
		cg.line("JMPN %s %s", vrLoad(diff), lFalse)
		cg.line("JMP %s", lTrue)
	default:
		panic(fmt.Sprintf("codegen: %s is not a comparison operator", n.Op))
	}

	scope.freeRegister(rl)
	scope.freeRegister(rr)
	scope.freeRegister(diff)

	cg.line("LAB %s", lTrue)
	cg.line("MOVE 1 %s", vr(rd))
	cg.line("JMP %s", lJoin)
	cg.line("LAB %s", lFalse)
	cg.line("MOVE 0 %s", vr(rd))
	cg.line("LAB %s", lJoin)
	return rd
}

func (cg *CodeGen) genCast(n *CastExpr, scope *Scope) int {
	r := cg.genExpr(n.Inner, scope)
	innerBase := exprBase(n.Inner, scope)
	if innerBase == n.Target {
		return r
	}
	if n.Target == BaseFloat {
		cg.line("I2F %s %s", vr(r), vr(r))
	} else {
		cg.line("F2I %s %s", vr(r), vr(r))
	}
	return r
}

//  calls & intrinsics

// callArg is one operand queued for the call protocol: the value to push,
// and the register it came from (-1 when no register was allocated, as for
// a scanf target's address, which is rendered straight from its storage
// location).
type callArg struct {
	operand string
	reg     int
}

// genValueArg evaluates e into a fresh register and queues its value.
func (cg *CodeGen) genValueArg(e Expr, scope *Scope) callArg {
	r := cg.genExpr(e, scope)
	return callArg{operand: vrLoad(r), reg: r}
}

// genScanfArg queues the address of e's storage, per the scanf calling
// convention (spec section 4.5): a scalar's address is the bare MEM(...)
// form with no load indirection; an indexed target's address is computed at
// runtime the same way an indexed store computes it.
func (cg *CodeGen) genScanfArg(e Expr, scope *Scope) callArg {
	switch n := e.(type) {
	case *Ident:
		loc, isLocal, ok := scope.lookupLocation(n.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: %q has no recorded location", n.Name))
		}
		return callArg{operand: cg.mem(loc, isLocal), reg: -1}
	case *IndexExpr:
		addr := cg.genIndexAddr(n, scope)
		return callArg{operand: vrLoad(addr), reg: addr}
	default:
		panic(fmt.Sprintf("codegen: scanf argument must be an identifier, got %T", e))
	}
}

// scanfBase reports the base type of a scanf target, selecting Fscanfi vs
// Fscanff.
func scanfBase(e Expr, scope *Scope) BaseType {
	var name string
	switch n := e.(type) {
	case *Ident:
		name = n.Name
	case *IndexExpr:
		name = n.Name
	default:
		panic(fmt.Sprintf("codegen: scanf argument must be an identifier, got %T", e))
	}
	t, _ := scope.lookupType(name)
	return t.Base
}

// genCall implements the per-call protocol of spec section 4.5: spill every
// live register the caller still needs, push arguments in reverse source
// order plus a return-address slot in one SP commit, jump to the callee,
// then unwind and reload on return.
func (cg *CodeGen) genCall(c *CallExpr, scope *Scope) int {
	var callee string
	var args []callArg
	isIntrinsic := c.Name == "printf" || c.Name == "scanf"
	preLive := scope.liveIDs()

	switch c.Name {
	case "printf":
		callee = "Fprintf"
		args = []callArg{cg.genValueArg(c.Args[0], scope)}
	case "scanf":
		if scanfBase(c.Args[0], scope) == BaseFloat {
			callee = "Fscanff"
		} else {
			callee = "Fscanfi"
		}
		args = []callArg{cg.genScanfArg(c.Args[0], scope)}
	default:
		callee = "F" + c.Name
		args = make([]callArg, len(c.Args))
		for i, a := range c.Args {
			args[i] = cg.genValueArg(a, scope)
		}
	}

	stk := len(preLive) + len(args)

	for i, id := range preLive {
		cg.line("MOVE %s %s", vrLoad(id), cg.memSP(i+1))
	}
	for i := len(args) - 1; i >= 0; i-- {
		cg.line("MOVE %s %s", args[i].operand, cg.memSP(len(preLive)+len(args)-i))
		if args[i].reg >= 0 {
			scope.freeRegister(args[i].reg)
		}
	}

	retLabel := fmt.Sprintf("L%d", scope.allocLabel())
	cg.line("ADD SP@ %d SP", stk+1)
	cg.line("MOVE %s %s", retLabel, cg.memSP(0))
	cg.line("JMP %s", callee)
	cg.line("LAB %s", retLabel)

	result := scope.allocRegister()
	if !isIntrinsic {
		cg.line("MOVE VR@ %s", vr(result))
	}
	cg.line("SUB SP@ %d SP", stk+1)
	for i, id := range preLive {
		cg.line("MOVE %s@ %s", cg.memSP(i+1), vr(id))
	}
	return result
}

// genIntrinsics emits the printf/scanf stubs at program end. Unlike a user
// function they carry no prologue/epilogue: the single argument always sits
// at MEM(SP@)(-1) regardless of how many registers the caller spilled (the
// call protocol always reserves the slot immediately below the
// return-address slot for the last-pushed argument).
func (cg *CodeGen) genIntrinsics() {
	cg.line("LAB Fprintf")
	cg.line("WRITE %s@", cg.memSP(-1))
	cg.line("JMP %s@", cg.memSP(0))

	cg.line("LAB Fscanfi")
	cg.line("READI %s@", cg.memSP(-1))
	cg.line("JMP %s@", cg.memSP(0))

	cg.line("LAB Fscanff")
	cg.line("READF %s@", cg.memSP(-1))
	cg.line("JMP %s@", cg.memSP(0))
}

// exprBase reports an already-resolved expression's base type, mirroring
// resolver.typeOf's cases that matter for instruction selection. Bare
// identifiers, indexed loads, and calls carry no literal/cast marker of
// their own, so those cases consult scope for the declared type.
func exprBase(e Expr, scope *Scope) BaseType {
	switch n := e.(type) {
	case *IntLit:
		return BaseInt
	case *FloatLit:
		return BaseFloat
	case *CastExpr:
		return n.Target
	case *UnaryExpr:
		return exprBase(n.Operand, scope)
	case *BinaryExpr:
		if isComparison(n.Op) {
			return BaseInt
		}
		return exprBase(n.Left, scope)
	case *Ident:
		t, ok := scope.lookupType(n.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: %q has no recorded type", n.Name))
		}
		return t.Base
	case *IndexExpr:
		t, ok := scope.lookupType(n.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: %q has no recorded type", n.Name))
		}
		return t.Base
	case *CallExpr:
		if n.Name == "printf" || n.Name == "scanf" {
			return BaseInt
		}
		t, ok := scope.lookupType(n.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: %q has no recorded type", n.Name))
		}
		return t.Base
	default:
		panic(fmt.Sprintf("codegen: unhandled expression %T", e))
	}
}
