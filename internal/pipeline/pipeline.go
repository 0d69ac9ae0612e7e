// Package pipeline drives one compilation session as a sequence of
// processing stages over a shared context. Stages never short-circuit: a
// failing module still leaves its diagnostics behind and later stages run,
// so one broken input reports everything wrong with it at once.
package pipeline

// Processor is one compilation stage.
type Processor interface {
	Name() string
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every stage runs even when an earlier one
// reported errors, so diagnostics from all stages accumulate.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx.Session.Log.Debug().Str("stage", processor.Name()).Msg("running stage")
		ctx = processor.Process(ctx)
	}
	return ctx
}
