package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/cxtract/ast/cppast"
)

func TestFunctions_DoxygenBriefParamReturn(t *testing.T) {
	// spec.md §8 scenario 2's literal input: a bare prototype, not a
	// definition — headers (ccollec's primary use case) carry prototypes.
	u, err := cppast.Parse("t.cpp", []byte(
		"/** \\brief hi\n@param x the x\n@return ok */\nint f(int x);"))
	assert.NoError(t, err)

	fns := Functions(u, Options{})
	assert.Len(t, fns, 1)
	f := fns[0]
	assert.Equal(t, "f", f.Name)
	assert.Equal(t, "int", f.ReturnType)
	assert.Equal(t, "hi", f.BriefComment)
	assert.Equal(t, "ok", f.ReturnComment)
	assert.Len(t, f.Params, 1)
	assert.Equal(t, "x", f.Params[0].Name)
	assert.Equal(t, "int", f.Params[0].Type)
	assert.Equal(t, "the x", f.Params[0].Comment)
	assert.Empty(t, f.Source)
}

func TestFunctions_PrototypeWithoutBodyIsEmitted(t *testing.T) {
	u, err := cppast.Parse("t.cpp", []byte("int f(int x);"))
	assert.NoError(t, err)

	fns := Functions(u, Options{})
	assert.Len(t, fns, 1)
	assert.Equal(t, "f", fns[0].Name)
}

func TestFunctions_WithSourceAttachesVerbatimText(t *testing.T) {
	u, err := cppast.Parse("t.cpp", []byte("int f(int x) { return x; }"))
	assert.NoError(t, err)

	fns := Functions(u, Options{Source: true})
	assert.Len(t, fns, 1)
	assert.Contains(t, fns[0].Source, "return x;")
}

func TestFunctions_ZeroArityEmitted(t *testing.T) {
	u, err := cppast.Parse("t.cpp", []byte("void f() { }"))
	assert.NoError(t, err)

	fns := Functions(u, Options{})
	assert.Len(t, fns, 1)
	assert.Empty(t, fns[0].Params)
}

func TestFunctions_ParamWithoutDoxygenCommentIsEmpty(t *testing.T) {
	u, err := cppast.Parse("t.cpp", []byte("int f(int y) { return y; }"))
	assert.NoError(t, err)

	fns := Functions(u, Options{})
	assert.Len(t, fns, 1)
	assert.Equal(t, "", fns[0].Params[0].Comment)
}
