// Package cache memoizes bindings per call site.
//
// An entry is keyed by the identity of the call node and remembers the
// revision of the argument list, the shape of the arguments it was matched
// from and the signature it was computed for. A lookup hits only when all
// three still match, so an edited call or a call rebound against a different
// definition is recomputed on next access. The shape check also catches
// edits made by writing to the argument list directly.
//
// The cache holds its call sites weakly. Once a call node is unreachable its
// entry is dropped by a cleanup registered when the entry was first stored.
//
// Entries are immutable and published with a single store. Readers never take
// a lock; two readers missing the same entry both compute it and the last
// store wins, which is harmless because matching is pure.
//
// # Example
//
//	c := cache.New()
//	args, _ := pipe.Effective(call)
//	b := c.GetOrCompute(call, args, sig, func() *binding.Binding {
//		return binding.Bind(args, sig)
//	})
package cache

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/binding"
)

type key = weak.Pointer[ast.CallExpression]

// argShape is what matching reads from one argument.
type argShape struct {
	named    bool
	name     string
	injected bool
}

// entry is a published cache slot. It is never mutated after Store and holds
// nothing that points back into the tree.
type entry struct {
	revision uint64
	shape    []argShape
	sig      binding.Signature
	binding  *binding.Binding
}

// Stats counts lookups since the cache was created or cleared.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache maps call sites to their latest binding.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	items  sync.Map // key -> *entry
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

func shapeOf(args []*ast.Argument) []argShape {
	shape := make([]argShape, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		shape[i] = argShape{named: arg.IsNamed(), name: arg.ArgName(), injected: arg.Injected}
	}
	return shape
}

func sameShape(shape []argShape, args []*ast.Argument) bool {
	if len(shape) != len(args) {
		return false
	}
	for i, arg := range args {
		var s argShape
		if arg != nil {
			s = argShape{named: arg.IsNamed(), name: arg.ArgName(), injected: arg.Injected}
		}
		if shape[i] != s {
			return false
		}
	}
	return true
}

// Get returns the binding stored for call if it was computed for the call's
// current revision, for arguments shaped like args and for sig.
func (c *Cache) Get(call *ast.CallExpression, args []*ast.Argument, sig binding.Signature) (*binding.Binding, bool) {
	if call == nil {
		return nil, false
	}
	v, ok := c.items.Load(weak.Make(call))
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	if e.revision != call.Revision() || !e.sig.Equal(sig) || !sameShape(e.shape, args) {
		return nil, false
	}
	return e.binding, true
}

// Set publishes b as the binding of call at its current revision, matched
// from args.
func (c *Cache) Set(call *ast.CallExpression, args []*ast.Argument, sig binding.Signature, b *binding.Binding) {
	if call == nil {
		return
	}
	params := make([]binding.Param, len(sig.Params))
	copy(params, sig.Params)
	k := weak.Make(call)
	_, loaded := c.items.Swap(k, &entry{
		revision: call.Revision(),
		shape:    shapeOf(args),
		sig:      binding.Signature{Params: params},
		binding:  b,
	})
	if !loaded {
		// A cleanup left over from an earlier Invalidate only deletes the
		// same dead key again.
		runtime.AddCleanup(call, c.release, k)
	}
}

func (c *Cache) release(k key) {
	c.items.Delete(k)
}

// GetOrCompute returns the cached binding for (call, args, sig), or calls
// compute, publishes its result and returns it. compute may run more than
// once for the same key when readers race on a miss.
func (c *Cache) GetOrCompute(call *ast.CallExpression, args []*ast.Argument, sig binding.Signature, compute func() *binding.Binding) *binding.Binding {
	if b, ok := c.Get(call, args, sig); ok {
		c.hits.Add(1)
		return b
	}
	c.misses.Add(1)
	b := compute()
	c.Set(call, args, sig, b)
	return b
}

// Invalidate drops the entry of one call site, e.g. when its node is removed
// from the tree.
func (c *Cache) Invalidate(call *ast.CallExpression) {
	if call == nil {
		return
	}
	c.items.Delete(weak.Make(call))
}

// Clear removes all entries and resets the counters.
func (c *Cache) Clear() {
	c.items.Range(func(k, _ any) bool {
		c.items.Delete(k)
		return true
	})
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	n := 0
	c.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
