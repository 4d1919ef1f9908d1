package gil

import (
	"fmt"

	"github.com/glu-lang/glu/internal/types"
)

// Value identifies one SSA result: either an instruction's result or a
// basic block argument. Values are numbered per-function in the order
// they are defined, giving the printer's "%n" names.
type Value struct {
	ID   int
	Type types.Type
}

func (v *Value) String() string { return fmt.Sprintf("%%%d", v.ID) }

// OperandKind tags which alternative of Operand's union is populated.
type OperandKind int

const (
	// OperandValue references a Value defined by an instruction or a
	// block argument.
	OperandValue OperandKind = iota
	// OperandLiteralInt carries an untyped integer literal operand.
	OperandLiteralInt
	// OperandLiteralFloat carries an untyped float literal operand.
	OperandLiteralFloat
	// OperandLiteralString carries a string literal operand.
	OperandLiteralString
	// OperandSymbol references a function or global by name.
	OperandSymbol
	// OperandLabel references a basic block, used by terminators.
	OperandLabel
)

// Operand is GIL's tagged-union instruction operand: exactly one of the
// Value/LiteralInt/LiteralFloat/LiteralString/Symbol/Label fields is
// meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind

	Value         *Value
	LiteralInt    int64
	LiteralFloat  float64
	LiteralString string
	Symbol        string
	Label         *BasicBlock
}

// Val wraps a Value as a value operand.
func Val(v *Value) Operand { return Operand{Kind: OperandValue, Value: v} }

// IntLit wraps an integer literal as an operand.
func IntLit(v int64) Operand { return Operand{Kind: OperandLiteralInt, LiteralInt: v} }

// FloatLit wraps a float literal as an operand.
func FloatLit(v float64) Operand { return Operand{Kind: OperandLiteralFloat, LiteralFloat: v} }

// StringLit wraps a string literal as an operand.
func StringLit(v string) Operand { return Operand{Kind: OperandLiteralString, LiteralString: v} }

// Sym wraps a function/global reference as an operand.
func Sym(name string) Operand { return Operand{Kind: OperandSymbol, Symbol: name} }

// Label wraps a basic block reference as an operand.
func Label(b *BasicBlock) Operand { return Operand{Kind: OperandLabel, Label: b} }

func (o Operand) String() string {
	switch o.Kind {
	case OperandValue:
		return o.Value.String()
	case OperandLiteralInt:
		return fmt.Sprintf("%d", o.LiteralInt)
	case OperandLiteralFloat:
		return fmt.Sprintf("%g", o.LiteralFloat)
	case OperandLiteralString:
		return fmt.Sprintf("%q", o.LiteralString)
	case OperandSymbol:
		return "@" + o.Symbol
	case OperandLabel:
		return o.Label.Name
	default:
		return "?"
	}
}
