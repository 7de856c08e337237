package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/argmatch/internal/s4"
)

const cases = `
cases:
  - params: [x, "..."]
    pipe: a
    args: [b, c]
    expect: {slots: [0, 1, 1]}
declarations:
  - {call: setClass, args: ['"Point"', {name: slots, value: {call: c, args: [{name: x, value: '"numeric"'}]}}]}
  - {call: setValidity, args: ['"Point"']}
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "argmatch.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPipeline_AllStages(t *testing.T) {
	path := writeFile(t, cases)
	ctx := New(LoadProcessor{}, MatchProcessor{}, DeclarationProcessor{}).Run(NewContext(path, nil))

	if ctx.File == nil {
		t.Fatalf("file not loaded: %v", ctx.Errors)
	}
	if len(ctx.Results) != 1 || ctx.Results[0].Failed() {
		t.Errorf("results = %+v", ctx.Results)
	}
	if len(ctx.Declarations) != 1 || ctx.Declarations[0].Kind != s4.ClassDecl || ctx.Declarations[0].Name != "Point" {
		t.Errorf("declarations = %+v", ctx.Declarations)
	}
	// setValidity is not a registration the extractor knows.
	if len(ctx.Errors) != 1 || !strings.Contains(ctx.Errors[0].Error(), "declarations[1]: setValidity(...) declares nothing") {
		t.Errorf("errors = %v", ctx.Errors)
	}
	if !ctx.Failed() {
		t.Error("Failed() = false with a recorded error")
	}
}

func TestPipeline_LoadFailureSkipsLaterStages(t *testing.T) {
	ctx := New(LoadProcessor{}, MatchProcessor{}, DeclarationProcessor{}).
		Run(NewContext(filepath.Join(t.TempDir(), "missing.yaml"), nil))

	if ctx.File != nil || ctx.Results != nil || ctx.Declarations != nil {
		t.Errorf("stages ran without a file: %+v", ctx)
	}
	if len(ctx.Errors) != 1 {
		t.Errorf("errors = %v, want the load error only", ctx.Errors)
	}
}

func TestPipeline_SharesResolver(t *testing.T) {
	path := writeFile(t, cases)
	ctx := NewContext(path, nil)
	p := New(LoadProcessor{}, MatchProcessor{})
	p.Run(ctx)

	// A second run over the same context rebuilds the call sites, so every
	// lookup is a fresh miss on the shared cache.
	ctx.File = nil
	p.Run(ctx)
	if stats := ctx.Resolver.Cache().Stats(); stats.Misses != 2 || stats.Hits != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
