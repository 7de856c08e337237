// Package casefile reads argmatch.yaml files: call sites described as data,
// together with the parameter lists to match them against and, optionally,
// the expected outcome.
//
// A file looks like this:
//
//	signatures:
//	  foo: [fst, snd, thd, "fth=..."]
//	cases:
//	  - name: overflow into the rest slot
//	    function: foo
//	    args: [40, {name: thd, value: 41}, {name: snd, value: 43}, 42]
//	    expect: {slots: [0, 2, 1, 3], valid: true, unbound: []}
//	  - name: pipe
//	    params: [x, "..."]
//	    pipe: a
//	    args: [b, c]
//	declarations:
//	  - {call: setClass, args: ['"Person"', {name: slots, value: {call: c, args: [{name: name, value: '"character"'}]}}]}
//
// Scalars become identifiers, numbers, quoted strings or opaque text;
// {call: f, args: [...]} is a nested call; {name: n, value: v} in an argument
// list is a named argument.
package casefile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/argmatch/internal/binding"
	"github.com/funvibe/argmatch/internal/config"
)

// File represents a whole argmatch.yaml.
type File struct {
	// Signatures maps function names to their formal parameter lists.
	// "..." is the anonymous rest slot, "name=..." a named one.
	Signatures map[string][]string `yaml:"signatures,omitempty"`

	// Cases are call sites to match.
	Cases []Case `yaml:"cases,omitempty"`

	// Declarations are object-system registration calls to extract.
	Declarations []Expr `yaml:"declarations,omitempty"`

	// Path is the file the cases were read from.
	Path string `yaml:"-"`
}

// Case is one call site.
type Case struct {
	// Name identifies the case in reports. Defaults to "case N".
	Name string `yaml:"name,omitempty"`

	// Function is the callee. Its parameters come from Params or, when
	// Params is omitted, from the file's signatures. A callee with neither
	// is unresolved and matches nothing. Defaults to "f".
	Function string `yaml:"function,omitempty"`

	// Params overrides the signature lookup. An explicit empty list is a
	// function without parameters.
	Params *[]string `yaml:"params,omitempty"`

	// Pipe is the left operand of a forward pipe targeting the call.
	Pipe *Expr `yaml:"pipe,omitempty"`

	// PipeOperator is the pipe written between Pipe and the call.
	// Defaults to "%>%".
	PipeOperator string `yaml:"pipe_operator,omitempty"`

	// Args is the written argument list.
	Args []Arg `yaml:"args,omitempty"`

	// Expect, when present, is compared with the result by Check.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the expected outcome of a case.
type Expect struct {
	// Slots is the parameter index of each matched argument, the pipe value
	// first; -1 marks an unmatched argument.
	Slots []int `yaml:"slots,omitempty"`

	// Valid is the expected validity.
	Valid *bool `yaml:"valid,omitempty"`

	// Unbound lists the parameters expected to receive nothing.
	Unbound *[]string `yaml:"unbound,omitempty"`

	// Variadic lists, as source text, the values captured by the rest slot.
	Variadic *[]string `yaml:"variadic,omitempty"`

	// Bound maps parameter names to the source text of their first value.
	Bound map[string]string `yaml:"bound,omitempty"`

	// Unresolved expects the callee to have no parameter list.
	Unresolved bool `yaml:"unresolved,omitempty"`
}

// Load reads and parses a case file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses case file content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.Path = path
	if err := f.validate(); err != nil {
		return nil, err
	}
	f.setDefaults()
	return &f, nil
}

// Find searches for argmatch.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{config.CaseFileName, config.CaseFileAltName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the file for semantic errors.
func (f *File) validate() error {
	if len(f.Cases) == 0 && len(f.Declarations) == 0 {
		return fmt.Errorf("%s: no cases or declarations defined", f.Path)
	}

	for name, params := range f.Signatures {
		if _, err := binding.ParseSignature(params); err != nil {
			return fmt.Errorf("%s: signatures[%s]: %w", f.Path, name, err)
		}
	}

	seen := make(map[string]int)
	for i, c := range f.Cases {
		name := c.Name
		if name == "" {
			name = defaultCaseName(i)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s: cases[%d]: name %q already used by cases[%d]", f.Path, i, name, prev)
		}
		seen[name] = i
		if c.Params != nil {
			if _, err := binding.ParseSignature(*c.Params); err != nil {
				return fmt.Errorf("%s: cases[%d]: params: %w", f.Path, i, err)
			}
		}
		if c.PipeOperator != "" && c.Pipe == nil {
			return fmt.Errorf("%s: cases[%d]: pipe_operator without pipe", f.Path, i)
		}
		if c.PipeOperator != "" && !config.IsPipeOperator(c.PipeOperator) {
			return fmt.Errorf("%s: cases[%d]: %q is not a forward pipe (want one of %v)",
				f.Path, i, c.PipeOperator, config.PipeOperators)
		}
		if c.Expect != nil && c.Expect.Unresolved && (len(c.Expect.Slots) > 0 || c.Expect.Valid != nil) {
			return fmt.Errorf("%s: cases[%d]: expect.unresolved excludes slots and valid", f.Path, i)
		}
	}

	for i, d := range f.Declarations {
		if d.Call == "" {
			return fmt.Errorf("%s: declarations[%d]: call is required", f.Path, i)
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (f *File) setDefaults() {
	for i := range f.Cases {
		c := &f.Cases[i]
		if c.Name == "" {
			c.Name = defaultCaseName(i)
		}
		if c.Function == "" {
			c.Function = "f"
		}
		if c.Pipe != nil && c.PipeOperator == "" {
			c.PipeOperator = config.PipeOperators[0]
		}
	}
}

func defaultCaseName(i int) string {
	return fmt.Sprintf("case %d", i+1)
}

// Signature returns the parameter list of c: its own params, else the
// file's entry for its function, else nil for an unresolved callee.
func (f *File) Signature(c *Case) *binding.Signature {
	names, ok := f.Signatures[c.Function]
	if c.Params != nil {
		names, ok = *c.Params, true
	}
	if !ok {
		return nil
	}
	sig, err := binding.ParseSignature(names)
	if err != nil {
		// validate already rejected invalid lists
		return nil
	}
	return &sig
}
