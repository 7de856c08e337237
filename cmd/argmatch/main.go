package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/funvibe/argmatch/internal/casefile"
	"github.com/funvibe/argmatch/internal/config"
	"github.com/funvibe/argmatch/internal/index"
	"github.com/funvibe/argmatch/internal/pipeline"
)

const usage = `Usage: argmatch <command> [flags] [file]

Commands:
  check     match every case and compare it with its expectation
  explain   show which argument fills which parameter
  index     extract class, generic and method declarations into a database
  help      show this message

The case file defaults to the nearest argmatch.yaml (or argmatch.yml) in the
current directory or one of its parents.

Run 'argmatch <command> -h' for the flags of a command.
`

// cli carries the output streams and the exit code of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	style  palette
	code   int
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	log.SetFlags(0)
	log.SetOutput(stderr)

	c := &cli{stdout: stdout, stderr: stderr, style: newPalette(isTerminal(stdout))}

	if c.handleHelp(args) {
		return c.code
	}
	if c.handleCheck(args) {
		return c.code
	}
	if c.handleExplain(args) {
		return c.code
	}
	if c.handleIndex(args) {
		return c.code
	}

	if len(args) > 0 {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
	}
	fmt.Fprint(stderr, usage)
	return 2
}

func (c *cli) handleHelp(args []string) bool {
	if len(args) == 0 {
		return false
	}
	if args[0] != "-help" && args[0] != "--help" && args[0] != "-h" && args[0] != "help" {
		return false
	}
	fmt.Fprint(c.stdout, usage)
	return true
}

func (c *cli) handleCheck(args []string) bool {
	if len(args) == 0 || args[0] != "check" {
		return false
	}

	fs := c.flagSet("check")
	dbPath := fs.String("db", "", "record binding problems in this index database")
	if !c.parse(fs, args[1:]) {
		return true
	}
	pc, ok := c.load(fs.Args(), pipeline.MatchProcessor{})
	if !ok {
		return true
	}
	file := pc.File

	var store *index.Store
	if *dbPath != "" {
		var err error
		if store, err = index.Open(context.Background(), *dbPath); err != nil {
			c.fail("Error: %s", err)
			return true
		}
		defer store.Close()
	}

	checked, failed := 0, 0
	for _, res := range pc.Results {
		logf("%s: %s", res.Case.Name, res.Site.Source)
		c.printResult(res)
		if res.Case.Expect != nil {
			checked++
		}
		if res.Failed() {
			failed++
		}
		if store != nil {
			if err := store.SaveProblems(context.Background(), file.Path, res.Case.Name, res.Match.Problems()); err != nil {
				c.fail("Error: %s", err)
				return true
			}
		}
	}

	stats := pc.Resolver.Cache().Stats()
	logf("cache: %d hits, %d misses", stats.Hits, stats.Misses)

	passed := checked - failed
	fmt.Fprintln(c.stdout)
	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if failed > 0 {
		fmt.Fprintln(c.stdout, c.style.fail.Render(summary))
		c.code = 1
	} else {
		fmt.Fprintln(c.stdout, c.style.pass.Render(summary))
	}
	return true
}

func (c *cli) handleExplain(args []string) bool {
	if len(args) == 0 || args[0] != "explain" {
		return false
	}

	fs := c.flagSet("explain")
	name := fs.String("case", "", "explain only the case with this name")
	at := fs.Int("at", -1, "also report the parameter under this byte offset of the rendered call")
	if !c.parse(fs, args[1:]) {
		return true
	}
	pc, ok := c.load(fs.Args(), pipeline.MatchProcessor{})
	if !ok {
		return true
	}

	found := false
	for _, res := range pc.Results {
		if *name != "" && res.Case.Name != *name {
			continue
		}
		found = true
		c.printExplanation(res, *at)
	}
	if !found && *name != "" {
		c.fail("Error: no case named %q in %s", *name, pc.Path)
	}
	return true
}

func (c *cli) handleIndex(args []string) bool {
	if len(args) == 0 || args[0] != "index" {
		return false
	}

	fs := c.flagSet("index")
	dbPath := fs.String("db", "", "index database (default: argmatch.db next to the case file)")
	if !c.parse(fs, args[1:]) {
		return true
	}
	pc, ok := c.load(fs.Args(), pipeline.DeclarationProcessor{})
	if !ok {
		return true
	}
	file := pc.File
	if *dbPath == "" {
		*dbPath = filepath.Join(filepath.Dir(file.Path), config.IndexFileName)
	}
	for _, err := range pc.Errors {
		fmt.Fprintf(c.stderr, "%s: %s\n", c.style.warn.Render("warning"), err)
	}
	decls := pc.Declarations
	for _, decl := range decls {
		if !decl.Valid {
			fmt.Fprintf(c.stderr, "%s: %s %s has arguments that match no parameter\n",
				c.style.warn.Render("warning"), decl.Kind, decl.Name)
		}
	}

	ctx := context.Background()
	store, err := index.Open(ctx, *dbPath)
	if err != nil {
		c.fail("Error: %s", err)
		return true
	}
	defer store.Close()

	if err := store.SaveDeclarations(ctx, file.Path, decls); err != nil {
		c.fail("Error: %s", err)
		return true
	}
	logf("indexed %d declarations from %s into %s", len(decls), file.Path, *dbPath)

	if err := c.printIndex(ctx, store); err != nil {
		c.fail("Error: %s", err)
	}
	return true
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.BoolVar(&config.IsVerbose, "v", false, "trace every case on stderr")
	return fs
}

// parse reports whether the command should go on.
func (c *cli) parse(fs *flag.FlagSet, args []string) bool {
	if err := fs.Parse(args); err != nil {
		if err != flag.ErrHelp {
			c.code = 2
		}
		return false
	}
	return true
}

// load runs the stages over the case file named in args, or the nearest
// one. It reports false when the file could not be read.
func (c *cli) load(args []string, stages ...pipeline.Processor) (*pipeline.PipelineContext, bool) {
	var path string
	switch len(args) {
	case 0:
		found, err := casefile.Find(".")
		if err != nil {
			c.fail("Error: %s", err)
			return nil, false
		}
		if found == "" {
			c.fail("Error: no %s found in this directory or its parents", config.CaseFileName)
			return nil, false
		}
		path = found
	case 1:
		path = args[0]
	default:
		c.fail("Error: expected one case file, got %d", len(args))
		return nil, false
	}

	logf("loading %s", path)
	stages = append([]pipeline.Processor{pipeline.LoadProcessor{}}, stages...)
	pc := pipeline.New(stages...).Run(pipeline.NewContext(path, nil))
	if pc.File == nil {
		for _, err := range pc.Errors {
			c.fail("Error: %s", err)
		}
		return nil, false
	}
	return pc, true
}

func (c *cli) fail(format string, args ...any) {
	fmt.Fprintf(c.stderr, format+"\n", args...)
	c.code = 1
}

func logf(format string, args ...any) {
	if config.IsVerbose {
		log.Printf(format, args...)
	}
}
