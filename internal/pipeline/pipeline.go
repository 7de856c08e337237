package pipeline

import (
	"github.com/funvibe/argmatch/internal/casefile"
	"github.com/funvibe/argmatch/internal/s4"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

// PipelineContext carries a case file through the processing stages.
type PipelineContext struct {
	Path         string
	File         *casefile.File
	Resolver     *argmatch.Resolver
	Results      []casefile.Result
	Declarations []s4.Declaration
	Errors       []error
}

// NewContext creates a context for the case file at path. A nil resolver
// gets a fresh one.
func NewContext(path string, r *argmatch.Resolver) *PipelineContext {
	if r == nil {
		r = argmatch.New()
	}
	return &PipelineContext{Path: path, Resolver: r}
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Processor is one stage of a Pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Stages after a failed load have nothing to work on and skip
		// themselves; other errors are collected from every stage.
	}
	return ctx
}
