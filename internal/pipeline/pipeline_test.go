package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/span"
)

func module(name, file string, items ...ast.Declaration) *ast.Module {
	return &ast.Module{Name: name, Span: span.New(file, 1, 1), Items: items}
}

func brokenConstant(file string, line int) *ast.ConstantDeclaration {
	return &ast.ConstantDeclaration{
		Span: span.New(file, line, 1),
		Name: "BROKEN",
		Type: &ast.TypeName{Span: span.New(file, line, 1), Name: "NoSuchType"},
	}
}

func cleanConstant(file string, line int) *ast.ConstantDeclaration {
	return &ast.ConstantDeclaration{
		Span:  span.New(file, line, 1),
		Name:  "OK",
		Type:  &ast.TypeName{Span: span.New(file, line, 1), Name: "bool"},
		Value: &ast.BoolLiteral{Span: span.New(file, line, 1), Value: true},
	}
}

func TestCheckContinuesPastFailingModule(t *testing.T) {
	prog := &ast.Module{
		Name: "prog",
		Span: span.New("prog.sw", 1, 1),
		Submodules: []*ast.Module{
			module("bad1", "bad1.sw", brokenConstant("bad1.sw", 2)),
			module("bad2", "bad2.sw", brokenConstant("bad2.sw", 2)),
			module("good", "good.sw", cleanConstant("good.sw", 2)),
		},
	}

	session := NewSession(config.Default(), &bytes.Buffer{})
	ctx := Check(session, prog)

	// Both failing modules report; the clean one still checked.
	errs := ctx.Handler.Errors()
	require.Len(t, errs, 2)
	files := []string{errs[0].Span.File, errs[1].Span.File}
	assert.Contains(t, files, "bad1.sw")
	assert.Contains(t, files, "bad2.sw")

	good, diag := ctx.Root.Module().LookupSubmodule([]string{"good"}, span.Span{})
	require.Nil(t, diag)
	assert.True(t, good.Items().HasSymbol("OK"))
}

func TestSessionFinishFansErrorsIn(t *testing.T) {
	prog := &ast.Module{
		Name:       "prog",
		Span:       span.New("prog.sw", 1, 1),
		Submodules: []*ast.Module{module("bad", "bad.sw", brokenConstant("bad.sw", 2))},
	}

	session := NewSession(config.Default(), &bytes.Buffer{})
	ctx := Check(session, prog)

	err := session.Finish(ctx.Handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchType")
}

func TestSessionFinishCleanRunIsNil(t *testing.T) {
	prog := &ast.Module{
		Name:       "prog",
		Span:       span.New("prog.sw", 1, 1),
		Submodules: []*ast.Module{module("good", "good.sw", cleanConstant("good.sw", 2))},
	}

	session := NewSession(config.Default(), &bytes.Buffer{})
	ctx := Check(session, prog)

	assert.NoError(t, session.Finish(ctx.Handler))
	assert.False(t, ctx.Handler.HasErrors())
}

func TestSessionLoggingRespectsLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "debug"

	var buf bytes.Buffer
	session := NewSession(cfg, &buf)
	Check(session, &ast.Module{Name: "prog", Span: span.New("prog.sw", 1, 1)})

	out := buf.String()
	assert.Contains(t, out, "running stage")
	assert.Contains(t, out, session.ID.String())
}

func TestSessionReportRendersDiagnostics(t *testing.T) {
	prog := &ast.Module{
		Name:       "prog",
		Span:       span.New("prog.sw", 1, 1),
		Submodules: []*ast.Module{module("bad", "bad.sw", brokenConstant("bad.sw", 2))},
	}

	session := NewSession(config.Default(), &bytes.Buffer{})
	ctx := Check(session, prog)

	var out strings.Builder
	session.Report(&out, ctx.Handler)
	assert.Contains(t, out.String(), diagnostics.CodeUnknownType)
	assert.Contains(t, out.String(), "NoSuchType")
}
