// Package argmatch answers "which argument fills which parameter" for a
// call site, given the formal parameter list of the function it targets.
//
// A Resolver memoizes the matching per call site; a Match is the read-only
// view of one result. Every index a Match accepts or returns refers to the
// arguments as written. When the call is the right operand of a forward pipe
// (a %>% f(b)), the piped value takes part in matching as the first argument
// but is reported only through PipeValue, VariadicArguments, the parameter
// lookups and the withPipe variant of ParameterIndexFor.
//
// Lookups never panic: out-of-range indices, unknown names and calls whose
// callee could not be resolved all answer with nil, false, "" or Unmatched.
package argmatch

import (
	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/binding"
	"github.com/funvibe/argmatch/internal/cache"
	"github.com/funvibe/argmatch/internal/pipe"
)

// Unmatched is the parameter index of an argument that fills no parameter.
const Unmatched = binding.Unmatched

// Resolver matches call sites against signatures and memoizes the results.
//
// Safe for concurrent use by multiple goroutines, provided the call trees
// are not edited concurrently with the lookups.
type Resolver struct {
	cache *cache.Cache
	pipe  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache makes the resolver share c. Resolvers sharing a cache must agree
// on pipe handling.
func WithCache(c *cache.Cache) Option {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithoutPipe matches the written arguments only, ignoring an enclosing
// forward pipe.
func WithoutPipe() Option {
	return func(r *Resolver) {
		r.pipe = false
	}
}

// New creates a Resolver with its own cache unless WithCache is given.
func New(opts ...Option) *Resolver {
	r := &Resolver{pipe: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = cache.New()
	}
	return r
}

// Cache returns the resolver's binding cache.
func (r *Resolver) Cache() *cache.Cache {
	return r.cache
}

// Match matches call against sig. A nil sig stands for a callee that could
// not be resolved and yields an absent Match; so does a nil call.
func (r *Resolver) Match(call *ast.CallExpression, sig *binding.Signature) *Match {
	if call == nil || sig == nil {
		return nil
	}
	args, injected := r.effective(call)
	b := r.cache.GetOrCompute(call, args, *sig, func() *binding.Binding {
		return binding.Bind(args, *sig)
	})
	m := &Match{call: call, sig: *sig, binding: b, args: args}
	if injected {
		m.pipeValue = args[0].Value
	}
	return m
}

// MatchNames parses names as a formal parameter list ("..." or "name=..."
// marks the rest slot) and matches call against it. A nil names slice is an
// unresolved callee. An invalid parameter list yields an absent Match and
// the parse error.
func (r *Resolver) MatchNames(call *ast.CallExpression, names []string) (*Match, error) {
	if names == nil {
		return nil, nil
	}
	sig, err := binding.ParseSignature(names)
	if err != nil {
		return nil, err
	}
	return r.Match(call, &sig), nil
}

// Invalidate forgets the memoized binding of call.
func (r *Resolver) Invalidate(call *ast.CallExpression) {
	if call != nil {
		r.cache.Invalidate(call)
	}
}

func (r *Resolver) effective(call *ast.CallExpression) ([]*ast.Argument, bool) {
	if !r.pipe {
		return call.Arguments, false
	}
	return pipe.Effective(call)
}

// CallAt returns the innermost call whose span contains offset, for callers
// that map a caret position to a call site. Spans are assigned when the tree
// is laid out by the pretty printer or by a parser.
func CallAt(root ast.Node, offset int) *ast.CallExpression {
	path := ast.PathAt(root, offset)
	for i := len(path) - 1; i >= 0; i-- {
		if call, ok := path[i].(*ast.CallExpression); ok {
			return call
		}
	}
	return nil
}
