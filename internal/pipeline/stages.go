package pipeline

import (
	"fmt"

	"github.com/funvibe/argmatch/internal/casefile"
	"github.com/funvibe/argmatch/internal/s4"
)

// LoadProcessor reads the case file named by ctx.Path.
type LoadProcessor struct{}

func (LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	file, err := casefile.Load(ctx.Path)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.File = file
	return ctx
}

// MatchProcessor matches every case and checks its expectation.
type MatchProcessor struct{}

func (MatchProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.File == nil {
		return ctx
	}
	ctx.Results = ctx.File.Run(ctx.Resolver)
	return ctx
}

// DeclarationProcessor extracts the object-system declarations of the file.
// Calls that declare nothing are reported as errors.
type DeclarationProcessor struct{}

func (DeclarationProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.File == nil {
		return ctx
	}
	extractor := s4.NewExtractor(ctx.Resolver)
	for i, call := range ctx.File.BuildDeclarations() {
		decl, ok := extractor.Extract(call)
		if !ok {
			ctx.Errors = append(ctx.Errors,
				fmt.Errorf("%s: declarations[%d]: %s(...) declares nothing", ctx.File.Path, i, call.FunctionName()))
			continue
		}
		ctx.Declarations = append(ctx.Declarations, decl)
	}
	return ctx
}
