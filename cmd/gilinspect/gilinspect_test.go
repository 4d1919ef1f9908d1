package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glu-lang/glu/ast"
	"github.com/glu-lang/glu/diag"
	"github.com/glu-lang/glu/gil"
	"github.com/glu-lang/glu/sema"
)

func TestFixtureModuleTypeChecks(t *testing.T) {
	c := ast.NewContext()
	module := buildFixtureModule(c)
	diags := diag.NewBag()
	ok := sema.Check(c, module, diags)
	require.True(t, ok, "%v", diags.All())
}

func TestFixtureModuleLowersAndPrints(t *testing.T) {
	c := ast.NewContext()
	module := buildFixtureModule(c)
	diags := diag.NewBag()
	require.True(t, sema.Check(c, module, diags))

	m := gil.Generate(c.Types, module)
	out := gil.Print(m)
	assert.Contains(t, out, "func @sum")
	assert.Contains(t, out, "func @clamp")
	assert.Contains(t, out, "func @point_x")
	assert.Contains(t, out, "struct_extract")
}

func TestColorizeGILHighlightsHeaders(t *testing.T) {
	out := colorizeGIL("module test {\n  func @sum() -> Int32 {\n", true)
	assert.True(t, strings.Contains(out, ansiGreen+"module test {"+ansiReset))
}

func TestColorizeGILNoopWithoutColor(t *testing.T) {
	text := "module test {\n"
	assert.Equal(t, text, colorizeGIL(text, false))
}
