// Package resolve turns syntax into checked declarations: it interns written
// type syntax against the namespace, collects module declarations, registers
// implementation blocks in the scoped trait maps and checks expression types.
// Every failure is reported through the diagnostics handler and replaced by
// a recovery placeholder, so one broken declaration never stops the run.
package resolve

import (
	"github.com/rs/zerolog"

	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/decl"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
	"github.com/FuelLabs/sway-sub007/internal/namespace"
	"github.com/FuelLabs/sway-sub007/internal/span"
	"github.com/FuelLabs/sway-sub007/internal/typesystem"
)

// Checker drives resolution and type checking for one compilation run. It
// walks one module at a time; ns, scopes, selfType and returnType track the
// position of the walk and are only touched from the walking goroutine.
type Checker struct {
	engine  *typesystem.TypeEngine
	root    *namespace.Root
	handler *diagnostics.Handler
	cfg     config.Config
	log     zerolog.Logger

	// origins maps a struct or enum declaration site to its declaring
	// module path, for method lookup on qualified receivers.
	origins map[span.Span][]string

	// pending holds placeholder type references interned during collection,
	// re-targeted by ResolveTypes once imports are applied.
	pending []pendingType

	ns         *namespace.Namespace
	scopes     []*namespace.Items
	selfType   typesystem.TypeId
	returnType typesystem.TypeId
}

func NewChecker(engine *typesystem.TypeEngine, root *namespace.Root, handler *diagnostics.Handler, cfg config.Config, log zerolog.Logger) *Checker {
	return &Checker{
		engine:   engine,
		root:     root,
		handler:  handler,
		cfg:      cfg,
		log:      log,
		origins:  make(map[span.Span][]string),
		ns:       namespace.NewNamespace(root, nil),
		selfType: typesystem.ErrorRecoveryId,
	}
}

func (c *Checker) genericMode() namespace.GenericShadowingMode {
	if c.cfg.GenericShadowing == "allow" {
		return namespace.AllowGenericShadowing
	}
	return namespace.DisallowGenericShadowing
}

// enterModule points the checker at the module with the given absolute path.
func (c *Checker) enterModule(path []string) {
	c.ns = namespace.NewNamespace(c.root, path)
}

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, namespace.NewItems())
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// insertLocal binds a declaration in the innermost block scope, with
// sequential constant shadowing as blocks allow.
func (c *Checker) insertLocal(name string, d decl.Declaration) {
	top := c.scopes[len(c.scopes)-1]
	c.handler.AppendAll(top.InsertSymbol(name, d, namespace.Sequential, c.genericMode()))
}

// lookup finds a name through the block scopes innermost-out, then the
// module scope with its imports.
func (c *Checker) lookup(name string, sp span.Span) (decl.Declaration, []*diagnostics.Diagnostic) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].HasSymbol(name) {
			d, _ := c.scopes[i].GetSymbol(name, sp)
			return d, nil
		}
	}
	return c.ns.ResolveSymbol(name, sp)
}

// declPathOf reports the module that declared the type behind id, when the
// type is a declared struct or enum collected in this run.
func (c *Checker) declPathOf(id typesystem.TypeId) []string {
	_, info := c.engine.Resolve(id)
	switch info := info.(type) {
	case typesystem.TStruct:
		return c.origins[info.DeclSpan]
	case typesystem.TEnum:
		return c.origins[info.DeclSpan]
	}
	return nil
}
