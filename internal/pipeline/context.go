package pipeline

import (
	"github.com/FuelLabs/sway-sub007/internal/ast"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/resolve"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// Context is the state threaded through the pipeline stages: the program
// under compilation and the per-run engine, namespace tree, diagnostics
// handler and checker built for it.
type Context struct {
	Session *Session
	Program *ast.Module
	Engine  *typesystem.TypeEngine
	Root    *namespace.Root
	Handler *diagnostics.Handler
	Checker *resolve.Checker
}

// NewContext prepares a fresh compilation context for one program. Engine,
// namespace and handler live exactly as long as the context; nothing is
// shared between runs.
func NewContext(session *Session, program *ast.Module) *Context {
	engine := typesystem.NewTypeEngine()
	root := namespace.NewRoot(namespace.NewModule(program.Name, program.Span))
	handler := diagnostics.NewHandler(session.Config.MaxErrors, session.Log)
	return &Context{
		Session: session,
		Program: program,
		Engine:  engine,
		Root:    root,
		Handler: handler,
		Checker: resolve.NewChecker(engine, root, handler, session.Config, session.Log),
	}
}
