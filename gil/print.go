package gil

import (
	"fmt"
	"strings"

	"github.com/glu-lang/glu/srcmgr"
)

// gilNode is a piece of GIL text that knows how to render itself
// through a printer, separating "what to emit" from "how to indent
// it" for GIL's "%n = op operands, loc ..." grammar.
type gilNode interface {
	emit(p *printer)
}

type printer struct {
	sb     strings.Builder
	indent int
	src    srcmgr.Manager // nil: locations print as bare integers
}

func (p *printer) line(format string, args ...any) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

// Print renders m as GIL text using bare integer source locations.
func Print(m *Module) string {
	p := &printer{}
	(*moduleNode)(m).emit(p)
	return p.sb.String()
}

// PrintWithSource renders m as GIL text, resolving each instruction's
// location through src into a "file:line:col" note.
func PrintWithSource(m *Module, src srcmgr.Manager) string {
	p := &printer{src: src}
	(*moduleNode)(m).emit(p)
	return p.sb.String()
}

type moduleNode Module

func (m *moduleNode) emit(p *printer) {
	p.line("module %s {", m.Name)
	p.indent++
	for _, g := range m.Globals {
		(*globalNode)(g).emit(p)
	}
	for _, f := range m.Functions {
		(*functionNode)(f).emit(p)
	}
	p.indent--
	p.line("}")
}

type globalNode Global

func (g *globalNode) emit(p *printer) {
	if g.Initial == nil {
		p.line("global @%s : %s", g.Name, g.Type)
		return
	}
	p.line("global @%s : %s = %s", g.Name, g.Type, formatConstant(g.Initial))
}

type functionNode Function

func (f *functionNode) emit(p *printer) {
	var params []string
	for _, param := range f.Params {
		params = append(params, fmt.Sprintf("%s: %s", param.Name, param.Type))
	}
	p.line("func @%s(%s) -> %s {", f.Name, strings.Join(params, ", "), f.ReturnType)
	p.indent++
	for _, b := range f.Blocks {
		(*blockNode)(b).emit(p)
	}
	p.indent--
	p.line("}")
}

type blockNode BasicBlock

func (b *blockNode) emit(p *printer) {
	var args []string
	for _, a := range b.Args {
		args = append(args, fmt.Sprintf("%s: %s", a, a.Type))
	}
	if len(args) > 0 {
		p.line("%s(%s):", b.Name, strings.Join(args, ", "))
	} else {
		p.line("%s:", b.Name)
	}
	p.indent++
	for _, inst := range (*BasicBlock)(b).Instructions() {
		p.line("%s", formatInstruction(inst, p.src))
	}
	p.indent--
}

func formatConstant(c *Constant) string {
	switch c.ConstKind {
	case KindIntegerLiteral:
		return fmt.Sprintf("%d", c.IntVal)
	case KindFloatLiteral:
		return fmt.Sprintf("%g", c.FloatVal)
	case KindStringLiteral:
		return fmt.Sprintf("%q", c.StringVal)
	case KindFunctionPtr, KindGlobalPtr:
		return "@" + c.SymbolVal
	default:
		return "?"
	}
}

// formatInstruction renders one instruction's "%n = op operands, loc
// ..." line. src may be nil, in which case loc prints as a bare
// integer handle.
func formatInstruction(inst Instruction, src srcmgr.Manager) string {
	var sb strings.Builder
	if r := inst.Result(); r != nil {
		fmt.Fprintf(&sb, "%s = ", r)
	}

	switch v := inst.(type) {
	case *Constant:
		fmt.Fprintf(&sb, "%s %s", mnemonic(v.Kind()), formatConstant(v))
	case *ArithmeticInst:
		fmt.Fprintf(&sb, "%s %s, %s", v.Op, v.LHS, v.RHS)
	case *UnaryInst:
		fmt.Fprintf(&sb, "%s %s", v.Op, v.Operand)
	case *ConversionInst:
		fmt.Fprintf(&sb, "%s %s to %s", convMnemonic(v.ConvKind), v.Operand, v.Target)
	case *AllocaInst:
		fmt.Fprintf(&sb, "alloca %s", v.ElemType)
	case *LoadInst:
		fmt.Fprintf(&sb, "load %s", v.Addr)
	case *StoreInst:
		fmt.Fprintf(&sb, "store %s to %s", v.Value, v.Addr)
	case *StructCreateInst:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.String()
		}
		fmt.Fprintf(&sb, "struct_create %s (%s)", v.StructType, strings.Join(parts, ", "))
	case *StructExtractInst:
		fmt.Fprintf(&sb, "struct_extract %s, %d", v.Base, v.FieldIndex)
	case *PtrOffsetInst:
		fmt.Fprintf(&sb, "ptr_offset %s, %s", v.Base, v.Offset)
	case *CallInst:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = a.String()
		}
		fmt.Fprintf(&sb, "call %s(%s)", v.Callee, strings.Join(parts, ", "))
	case *DebugValueInst:
		fmt.Fprintf(&sb, "debug_value %q, %s", v.Name, v.Value)
	case *MoveInst:
		fmt.Fprintf(&sb, "move %s", v.Operand)
	case *CopyInst:
		fmt.Fprintf(&sb, "copy %s", v.Operand)
	case *DropInst:
		fmt.Fprintf(&sb, "drop %s", v.Operand)
	case *ImmutableBorrowInst:
		fmt.Fprintf(&sb, "immutable_borrow %s", v.Operand)
	case *MutableBorrowInst:
		fmt.Fprintf(&sb, "mutable_borrow %s", v.Operand)
	case *EndBorrowInst:
		fmt.Fprintf(&sb, "end_borrow %s", v.Operand)
	case *BrInst:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = a.String()
		}
		fmt.Fprintf(&sb, "br %s(%s)", v.Target.Name, strings.Join(parts, ", "))
	case *CondBrInst:
		fmt.Fprintf(&sb, "cond_br %s, %s, %s", v.Cond, v.Then.Name, v.Else.Name)
	case *ReturnInst:
		if v.IsVoid {
			sb.WriteString("return")
		} else {
			fmt.Fprintf(&sb, "return %s", v.Value)
		}
	case *UnreachableInst:
		sb.WriteString("unreachable")
	default:
		sb.WriteString("?")
	}

	loc := inst.Loc()
	if loc != 0 {
		if src != nil {
			fmt.Fprintf(&sb, ", loc %q", src.Position(loc).String())
		} else {
			fmt.Fprintf(&sb, ", loc %d", loc)
		}
	}
	return sb.String()
}

func mnemonic(k InstKind) string {
	switch k {
	case KindIntegerLiteral:
		return "integer_literal"
	case KindFloatLiteral:
		return "float_literal"
	case KindStringLiteral:
		return "string_literal"
	case KindFunctionPtr:
		return "function_ptr"
	case KindGlobalPtr:
		return "global_ptr"
	default:
		return "?"
	}
}

func convMnemonic(k ConversionKind) string {
	names := [...]string{"int_trunc", "int_sext", "int_zext", "int_to_float",
		"float_to_int", "float_trunc", "float_ext", "bitcast", "int_to_ptr", "ptr_to_int"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}
