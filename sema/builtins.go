package sema

import (
	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/internal/types"
)

// intWidths and floatWidths list the primitive numeric widths builtin operators are
// overloaded across, narrowest first.
var intWidths = []int{8, 16, 32, 64}
var floatWidths = []int{16, 32, 64, 80, 128}

// binaryOverloads returns one *ast.BuiltinDecl candidate per (width,
// signedness) combination accepted by op. Each call builds a fresh set, so
// two calls for the same op return distinct *BuiltinDecl values.
func binaryOverloads(tc *types.Context, op ast.BinaryOp) []*ast.BuiltinDecl {
	var out []*ast.BuiltinDecl
	numeric := func(ty types.Type, name string) {
		fn := tc.Function([]types.Type{ty, ty}, resultTypeFor(op, ty, tc), false)
		out = append(out, ast.NewBuiltinDecl(name, fn))
	}
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		for _, w := range intWidths {
			numeric(tc.Int(true, w), "int.arith")
			numeric(tc.Int(false, w), "uint.arith")
		}
		for _, w := range floatWidths {
			numeric(tc.Float(w), "float.arith")
		}
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		for _, w := range intWidths {
			numeric(tc.Int(true, w), "int.cmp")
			numeric(tc.Int(false, w), "uint.cmp")
		}
		for _, w := range floatWidths {
			numeric(tc.Float(w), "float.cmp")
		}
		out = append(out, ast.NewBuiltinDecl("bool.cmp", tc.Function([]types.Type{tc.Bool(), tc.Bool()}, tc.Bool(), false)))
	case ast.OpAnd, ast.OpOr:
		out = append(out, ast.NewBuiltinDecl("bool.logic", tc.Function([]types.Type{tc.Bool(), tc.Bool()}, tc.Bool(), false)))
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		for _, w := range intWidths {
			numeric(tc.Int(true, w), "int.bit")
			numeric(tc.Int(false, w), "uint.bit")
		}
	}
	return out
}

func resultTypeFor(op ast.BinaryOp, operand types.Type, tc *types.Context) types.Type {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return tc.Bool()
	default:
		return operand
	}
}

// unaryOverloads returns the builtin candidates for a unary operator.
func unaryOverloads(tc *types.Context, op ast.UnaryOp) []*ast.BuiltinDecl {
	var out []*ast.BuiltinDecl
	switch op {
	case ast.OpNeg:
		for _, w := range intWidths {
			out = append(out, ast.NewBuiltinDecl("int.neg", tc.Function([]types.Type{tc.Int(true, w)}, tc.Int(true, w), false)))
		}
		for _, w := range floatWidths {
			out = append(out, ast.NewBuiltinDecl("float.neg", tc.Function([]types.Type{tc.Float(w)}, tc.Float(w), false)))
		}
	case ast.OpNot:
		out = append(out, ast.NewBuiltinDecl("bool.not", tc.Function([]types.Type{tc.Bool()}, tc.Bool(), false)))
	case ast.OpBitNot:
		for _, w := range intWidths {
			out = append(out, ast.NewBuiltinDecl("int.bitnot", tc.Function([]types.Type{tc.Int(true, w)}, tc.Int(true, w), false)))
			out = append(out, ast.NewBuiltinDecl("uint.bitnot", tc.Function([]types.Type{tc.Int(false, w)}, tc.Int(false, w), false)))
		}
	}
	return out
}
