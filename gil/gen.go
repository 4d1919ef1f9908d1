package gil

import (
	"fmt"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/internal/types"
)

// Generate lowers a semantically checked module into GIL. Callers must
// have already run sema.Check and confirmed it reported no errors —
// Generate does not re-validate the AST and will produce malformed GIL
// (or panic on a type assertion) if handed an AST with unresolved
// types or unresolved identifiers.
func Generate(tc *types.Context, module *ast.ModuleDecl) *Module {
	m := NewModule(module.Name)
	for _, d := range module.Decls {
		switch v := d.(type) {
		case *ast.FunctionDecl:
			if v.Body == nil {
				continue
			}
			m.AddFunction(lowerFunction(tc, v))
		case *ast.VarDecl:
			m.AddGlobal(lowerGlobal(v.Name, v.Type, v.Initial))
		case *ast.LetDecl:
			m.AddGlobal(lowerGlobal(v.Name, v.Type, v.Initial))
		}
	}
	return m
}

// lowerGlobal builds a Global descriptor. Only a literal initializer
// can be represented directly as Global.Initial; anything else is
// lowered with a nil Initial (zero-initialized), since a general
// expression would need a synthesized module initializer function
// that this lowering does not model.
func lowerGlobal(name string, ty types.Type, initial ast.Expr) *Global {
	g := &Global{Name: name, Type: ty}
	if lit, ok := initial.(*ast.LiteralExpr); ok {
		g.Initial = literalConstant(lit)
	}
	return g
}

func literalConstant(v *ast.LiteralExpr) *Constant {
	switch v.LitKind {
	case ast.LiteralInt:
		return &Constant{ConstKind: KindIntegerLiteral, IntVal: v.Int}
	case ast.LiteralFloat:
		return &Constant{ConstKind: KindFloatLiteral, FloatVal: v.Float}
	case ast.LiteralString:
		return &Constant{ConstKind: KindStringLiteral, StringVal: v.Str}
	case ast.LiteralBool:
		iv := int64(0)
		if v.Bool {
			iv = 1
		}
		return &Constant{ConstKind: KindIntegerLiteral, IntVal: iv}
	case ast.LiteralChar:
		return &Constant{ConstKind: KindIntegerLiteral, IntVal: int64(v.Char)}
	default:
		return &Constant{ConstKind: KindIntegerLiteral, IntVal: 0}
	}
}

type localSlot struct {
	addr Operand
	typ  types.Type
}

type loopTargets struct {
	head, exit *BasicBlock
}

// builder lowers one function body. It holds the current insertion
// block and the address of every local (parameter, var, let) as a
// stack slot, so assignment and mutation always go through
// Alloca/Load/Store rather than needing SSA renaming of locals —
// control-flow joins only need a block argument where an expression
// itself produces a merged value (TernaryConditionalExpr).
type builder struct {
	tc     *types.Context
	fn     *Function
	block  *BasicBlock
	locals map[ast.Decl]localSlot
	loops  []loopTargets
	fresh  int
}

func lowerFunction(tc *types.Context, fn *ast.FunctionDecl) *Function {
	var params []Param
	for _, p := range fn.Params {
		params = append(params, Param{Name: p.Name, Type: p.Type})
	}
	gf := NewFunction(fn.Name, params, fn.ReturnType)
	entry := gf.NewBlock("entry")
	b := &builder{tc: tc, fn: gf, block: entry, locals: map[ast.Decl]localSlot{}}

	for i, p := range fn.Params {
		arg := entry.AddArg(p.Type)
		addrInst := gf.Append(entry, &AllocaInst{ElemType: p.Type}, tc.Pointer(p.Type))
		addr := Val(addrInst.Result())
		gf.Append(entry, &StoreInst{Addr: addr, Value: Val(arg)}, nil)
		b.locals[fn.Params[i]] = localSlot{addr: addr, typ: p.Type}
	}

	b.lowerStmt(fn.Body)
	if b.block.Terminator() == nil {
		if fn.ReturnType == nil || fn.ReturnType.Kind() == types.KindVoid {
			gf.Append(b.block, &ReturnInst{IsVoid: true}, nil)
		} else {
			gf.Append(b.block, &UnreachableInst{}, nil)
		}
	}
	return gf
}

func (b *builder) freshBlock(prefix string) *BasicBlock {
	b.fresh++
	return b.fn.NewBlock(fmt.Sprintf("%s.%d", prefix, b.fresh))
}

func (b *builder) declareLocal(decl ast.Decl, ty types.Type, init ast.Expr) {
	addrInst := b.fn.Append(b.block, &AllocaInst{ElemType: ty}, b.tc.Pointer(ty))
	addr := Val(addrInst.Result())
	b.locals[decl] = localSlot{addr: addr, typ: ty}
	if init != nil {
		v := b.lowerExpr(init)
		b.fn.Append(b.block, &StoreInst{Addr: addr, Value: v}, nil)
	}
}

func (b *builder) lowerStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.CompoundStmt:
		for _, child := range v.Stmts {
			b.lowerStmt(child)
		}
	case *ast.DeclStmt:
		switch d := v.Decl.(type) {
		case *ast.VarDecl:
			b.declareLocal(d, d.Type, d.Initial)
		case *ast.LetDecl:
			b.declareLocal(d, d.Type, d.Initial)
		}
	case *ast.ReturnStmt:
		if v.Value == nil {
			b.fn.Append(b.block, &ReturnInst{IsVoid: true}, nil)
		} else {
			val := b.lowerExpr(v.Value)
			b.fn.Append(b.block, &ReturnInst{Value: val}, nil)
		}
	case *ast.AssignStmt:
		val := b.lowerExpr(v.Value)
		addr := b.lowerAddr(v.Target)
		b.fn.Append(b.block, &StoreInst{Addr: addr, Value: val}, nil)
	case *ast.ExpressionStmt:
		b.lowerExpr(v.Value)
	case *ast.IfStmt:
		b.lowerIf(v)
	case *ast.WhileStmt:
		b.lowerWhile(v)
	case *ast.ForStmt:
		b.lowerFor(v)
	case *ast.BreakStmt:
		if len(b.loops) > 0 {
			b.fn.Append(b.block, &BrInst{Target: b.loops[len(b.loops)-1].exit}, nil)
		}
	case *ast.ContinueStmt:
		if len(b.loops) > 0 {
			b.fn.Append(b.block, &BrInst{Target: b.loops[len(b.loops)-1].head}, nil)
		}
	}
}

func (b *builder) lowerIf(v *ast.IfStmt) {
	cond := b.lowerExpr(v.Cond)
	thenBlock := b.freshBlock("if.then")
	elseBlock := b.freshBlock("if.else")
	joinBlock := b.freshBlock("if.join")

	b.fn.Append(b.block, &CondBrInst{Cond: cond, Then: thenBlock, Else: elseBlock}, nil)

	b.block = thenBlock
	b.lowerStmt(v.Then)
	if b.block.Terminator() == nil {
		b.fn.Append(b.block, &BrInst{Target: joinBlock}, nil)
	}

	b.block = elseBlock
	if v.Else != nil {
		b.lowerStmt(v.Else)
	}
	if b.block.Terminator() == nil {
		b.fn.Append(b.block, &BrInst{Target: joinBlock}, nil)
	}

	b.block = joinBlock
}

func (b *builder) lowerWhile(v *ast.WhileStmt) {
	headBlock := b.freshBlock("while.cond")
	bodyBlock := b.freshBlock("while.body")
	exitBlock := b.freshBlock("while.exit")

	b.fn.Append(b.block, &BrInst{Target: headBlock}, nil)

	b.block = headBlock
	cond := b.lowerExpr(v.Cond)
	b.fn.Append(b.block, &CondBrInst{Cond: cond, Then: bodyBlock, Else: exitBlock}, nil)

	b.block = bodyBlock
	b.loops = append(b.loops, loopTargets{head: headBlock, exit: exitBlock})
	b.lowerStmt(v.Body)
	b.loops = b.loops[:len(b.loops)-1]
	if b.block.Terminator() == nil {
		b.fn.Append(b.block, &BrInst{Target: headBlock}, nil)
	}

	b.block = exitBlock
}

// lowerFor only handles iteration over a StaticArrayType, whose
// element count is known at compile time; any other iterable type
// (dynamic arrays have no length representable in the type system
// here) lowers to an empty loop body, since there is no GIL
// instruction in this module modeling a runtime-computed trip count.
func (b *builder) lowerFor(v *ast.ForStmt) {
	arr, ok := types.Canonical(v.Iterable.Type()).(types.StaticArrayType)
	if !ok {
		return
	}
	base := b.lowerExpr(v.Iterable)

	idxAddr := b.fn.Append(b.block, &AllocaInst{ElemType: b.tc.Int(false, 64)}, b.tc.Pointer(b.tc.Int(false, 64)))
	idxSlot := Val(idxAddr.Result())
	zero := b.fn.Append(b.block, &Constant{ConstKind: KindIntegerLiteral, IntVal: 0}, b.tc.Int(false, 64))
	b.fn.Append(b.block, &StoreInst{Addr: idxSlot, Value: Val(zero.Result())}, nil)

	headBlock := b.freshBlock("for.cond")
	bodyBlock := b.freshBlock("for.body")
	exitBlock := b.freshBlock("for.exit")
	b.fn.Append(b.block, &BrInst{Target: headBlock}, nil)

	b.block = headBlock
	idxLoad := b.fn.Append(b.block, &LoadInst{Addr: idxSlot}, b.tc.Int(false, 64))
	bound := b.fn.Append(b.block, &Constant{ConstKind: KindIntegerLiteral, IntVal: int64(arr.Count)}, b.tc.Int(false, 64))
	cmp := b.fn.Append(b.block, &ArithmeticInst{Op: ArithCmpLt, LHS: Val(idxLoad.Result()), RHS: Val(bound.Result())}, b.tc.Bool())
	b.fn.Append(b.block, &CondBrInst{Cond: Val(cmp.Result()), Then: bodyBlock, Else: exitBlock}, nil)

	b.block = bodyBlock
	elemAddr := b.fn.Append(b.block, &PtrOffsetInst{Base: base, Offset: Val(idxLoad.Result())}, b.tc.Pointer(arr.Element))
	elem := b.fn.Append(b.block, &LoadInst{Addr: Val(elemAddr.Result())}, arr.Element)
	b.locals[v.Binding] = localSlot{addr: Operand{}, typ: arr.Element}
	bindingAddr := b.fn.Append(b.block, &AllocaInst{ElemType: arr.Element}, b.tc.Pointer(arr.Element))
	b.fn.Append(b.block, &StoreInst{Addr: Val(bindingAddr.Result()), Value: Val(elem.Result())}, nil)
	b.locals[v.Binding] = localSlot{addr: Val(bindingAddr.Result()), typ: arr.Element}

	b.loops = append(b.loops, loopTargets{head: headBlock, exit: exitBlock})
	b.lowerStmt(v.Body)
	b.loops = b.loops[:len(b.loops)-1]

	if b.block.Terminator() == nil {
		one := b.fn.Append(b.block, &Constant{ConstKind: KindIntegerLiteral, IntVal: 1}, b.tc.Int(false, 64))
		cur := b.fn.Append(b.block, &LoadInst{Addr: idxSlot}, b.tc.Int(false, 64))
		next := b.fn.Append(b.block, &ArithmeticInst{Op: ArithAdd, LHS: Val(cur.Result()), RHS: Val(one.Result())}, b.tc.Int(false, 64))
		b.fn.Append(b.block, &StoreInst{Addr: idxSlot, Value: Val(next.Result())}, nil)
		b.fn.Append(b.block, &BrInst{Target: headBlock}, nil)
	}

	b.block = exitBlock
}

func (b *builder) lowerAddr(e ast.Expr) Operand {
	switch v := e.(type) {
	case *ast.RefExpr:
		if slot, ok := b.locals[v.Resolved]; ok {
			return slot.addr
		}
		inst := b.fn.Append(b.block, &Constant{ConstKind: KindGlobalPtr, SymbolVal: v.Name}, b.tc.Pointer(v.Type()))
		return Val(inst.Result())
	case *ast.PointerDerefExpr:
		return b.lowerExpr(v.Operand)
	default:
		// StructMemberExpr as an assignment target needs a
		// field-pointer instruction this lowering does not model;
		// callers that assign through a struct field get a zero
		// Operand store target rather than a crash.
		return Operand{}
	}
}

func (b *builder) lowerExpr(e ast.Expr) Operand {
	switch v := e.(type) {
	case *ast.LiteralExpr:
		c := literalConstant(v)
		inst := b.fn.Append(b.block, c, v.Type())
		return Val(inst.Result())
	case *ast.RefExpr:
		return b.lowerRef(v)
	case *ast.BinaryOpExpr:
		lhs := b.lowerExpr(v.LHS)
		rhs := b.lowerExpr(v.RHS)
		inst := b.fn.Append(b.block, &ArithmeticInst{Op: arithOpFor(v.Op, v.LHS.Type()), LHS: lhs, RHS: rhs}, v.Type())
		return Val(inst.Result())
	case *ast.UnaryOpExpr:
		if v.Op == ast.OpAddressOf {
			return b.lowerAddr(v.Operand)
		}
		operand := b.lowerExpr(v.Operand)
		inst := b.fn.Append(b.block, &UnaryInst{Op: unaryOpFor(v.Op), Operand: operand}, v.Type())
		return Val(inst.Result())
	case *ast.CallExpr:
		callee := b.lowerExpr(v.Callee)
		args := make([]Operand, len(v.Args))
		for i, a := range v.Args {
			args[i] = b.lowerExpr(a)
		}
		inst := b.fn.Append(b.block, &CallInst{Callee: callee, Args: args}, v.Type())
		return Val(inst.Result())
	case *ast.CastExpr:
		operand := b.lowerExpr(v.Operand)
		inst := b.fn.Append(b.block, &ConversionInst{
			ConvKind: conversionKindFor(v.Operand.Type(), v.Target),
			Operand:  operand,
			Target:   v.Target,
		}, v.Target)
		return Val(inst.Result())
	case *ast.StructMemberExpr:
		base := b.lowerExpr(v.Base)
		inst := b.fn.Append(b.block, &StructExtractInst{Base: base, FieldIndex: fieldIndex(v), FieldName: v.Member}, v.Type())
		return Val(inst.Result())
	case *ast.PointerDerefExpr:
		addr := b.lowerExpr(v.Operand)
		inst := b.fn.Append(b.block, &LoadInst{Addr: addr}, v.Type())
		return Val(inst.Result())
	case *ast.StructInitializerExpr:
		fields := make([]Operand, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = b.lowerExpr(f.Value)
		}
		inst := b.fn.Append(b.block, &StructCreateInst{StructType: v.StructType, Fields: fields}, v.StructType)
		return Val(inst.Result())
	case *ast.TernaryConditionalExpr:
		return b.lowerTernary(v)
	default:
		return Operand{}
	}
}

func (b *builder) lowerRef(v *ast.RefExpr) Operand {
	if slot, ok := b.locals[v.Resolved]; ok {
		inst := b.fn.Append(b.block, &LoadInst{Addr: slot.addr}, slot.typ)
		return Val(inst.Result())
	}
	if _, ok := v.Resolved.(*ast.FunctionDecl); ok {
		inst := b.fn.Append(b.block, &Constant{ConstKind: KindFunctionPtr, SymbolVal: v.Name}, v.Type())
		return Val(inst.Result())
	}
	return Sym(v.Name)
}

func (b *builder) lowerTernary(v *ast.TernaryConditionalExpr) Operand {
	cond := b.lowerExpr(v.Cond)
	thenBlock := b.freshBlock("ternary.then")
	elseBlock := b.freshBlock("ternary.else")
	joinBlock := b.freshBlock("ternary.join")
	joinArg := joinBlock.AddArg(v.Type())

	b.fn.Append(b.block, &CondBrInst{Cond: cond, Then: thenBlock, Else: elseBlock}, nil)

	b.block = thenBlock
	thenVal := b.lowerExpr(v.Then)
	b.fn.Append(b.block, &BrInst{Target: joinBlock, Args: []Operand{thenVal}}, nil)

	b.block = elseBlock
	elseVal := b.lowerExpr(v.Else)
	b.fn.Append(b.block, &BrInst{Target: joinBlock, Args: []Operand{elseVal}}, nil)

	b.block = joinBlock
	return Val(joinArg)
}

func arithOpFor(op ast.BinaryOp, lhsType types.Type) ArithOp {
	signed := true
	if it, ok := types.Canonical(lhsType).(types.IntType); ok {
		signed = it.Signed
	}
	_, isFloat := types.Canonical(lhsType).(types.FloatType)
	switch op {
	case ast.OpAdd:
		if isFloat {
			return ArithFAdd
		}
		return ArithAdd
	case ast.OpSub:
		if isFloat {
			return ArithFSub
		}
		return ArithSub
	case ast.OpMul:
		if isFloat {
			return ArithFMul
		}
		return ArithMul
	case ast.OpDiv:
		if isFloat {
			return ArithFDiv
		}
		return ArithDiv
	case ast.OpMod:
		if isFloat {
			return ArithFRem
		}
		return ArithMod
	case ast.OpEq:
		return ArithCmpEq
	case ast.OpNe:
		return ArithCmpNe
	case ast.OpLt:
		return ArithCmpLt
	case ast.OpLe:
		return ArithCmpLe
	case ast.OpGt:
		return ArithCmpGt
	case ast.OpGe:
		return ArithCmpGe
	case ast.OpAnd:
		return ArithLogicalAnd
	case ast.OpOr:
		return ArithLogicalOr
	case ast.OpBitAnd:
		return ArithAnd
	case ast.OpBitOr:
		return ArithOr
	case ast.OpBitXor:
		return ArithXor
	case ast.OpShl:
		return ArithShl
	case ast.OpShr:
		_ = signed
		return ArithShr
	default:
		return ArithAdd
	}
}

func unaryOpFor(op ast.UnaryOp) UnaryOp {
	switch op {
	case ast.OpNeg:
		return UnaryNeg
	case ast.OpNot:
		return UnaryNot
	case ast.OpBitNot:
		return UnaryBitNot
	default:
		return UnaryNeg
	}
}

func conversionKindFor(from, to types.Type) ConversionKind {
	from, to = types.Canonical(from), types.Canonical(to)
	switch fv := from.(type) {
	case types.IntType:
		switch tv := to.(type) {
		case types.IntType:
			if fv.Width < tv.Width {
				if fv.Signed {
					return ConvIntSext
				}
				return ConvIntZext
			}
			return ConvIntTrunc
		case types.FloatType:
			_ = tv
			return ConvIntToFloat
		case types.PointerType:
			return ConvIntToPtr
		}
	case types.FloatType:
		switch tv := to.(type) {
		case types.FloatType:
			if fv.Width < tv.Width {
				return ConvFloatExt
			}
			return ConvFloatTrunc
		case types.IntType:
			return ConvFloatToInt
		}
	case types.PointerType:
		if _, ok := to.(types.IntType); ok {
			return ConvPtrToInt
		}
	}
	return ConvBitcast
}

func fieldIndex(v *ast.StructMemberExpr) int {
	st, ok := types.Canonical(v.Base.Type()).(types.StructType)
	if !ok {
		return -1
	}
	decl, ok := st.DeclRef.(*ast.StructDecl)
	if !ok {
		return -1
	}
	for i, fd := range decl.Fields {
		if fd == v.FieldDecl {
			return i
		}
	}
	return -1
}
