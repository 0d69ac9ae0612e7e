package pipeline

import "github.com/FuelLabs/sway-sub007/internal/ast"

// CollectModulesProcessor builds the namespace tree and registers every
// module's type-introducing declarations.
type CollectModulesProcessor struct{}

func (*CollectModulesProcessor) Name() string { return "collect-modules" }

func (*CollectModulesProcessor) Process(ctx *Context) *Context {
	ctx.Checker.CollectModule(ctx.Program, nil)
	return ctx
}

// ResolveImportsProcessor applies every module's use statements against the
// collected tree.
type ResolveImportsProcessor struct{}

func (*ResolveImportsProcessor) Name() string { return "resolve-imports" }

func (*ResolveImportsProcessor) Process(ctx *Context) *Context {
	ctx.Checker.ResolveImports(ctx.Program, nil)
	return ctx
}

// ResolveTypesProcessor re-resolves type names that were interned as
// placeholders before imports were applied, so declarations whose types name
// imported symbols carry real descriptors into checking.
type ResolveTypesProcessor struct{}

func (*ResolveTypesProcessor) Name() string { return "resolve-types" }

func (*ResolveTypesProcessor) Process(ctx *Context) *Context {
	ctx.Checker.ResolveTypes()
	return ctx
}

// CheckModulesProcessor resolves value declarations, registers
// implementation blocks and checks function bodies.
type CheckModulesProcessor struct{}

func (*CheckModulesProcessor) Name() string { return "check-modules" }

func (*CheckModulesProcessor) Process(ctx *Context) *Context {
	ctx.Checker.CheckModule(ctx.Program, nil)
	return ctx
}

// Check runs the standard semantic stages over a parsed program and returns
// the final context. The caller decides what a dirty handler means; see
// Session.Finish.
func Check(session *Session, program *ast.Module) *Context {
	ctx := NewContext(session, program)
	return New(
		&CollectModulesProcessor{},
		&ResolveImportsProcessor{},
		&ResolveTypesProcessor{},
		&CheckModulesProcessor{},
	).Run(ctx)
}
