// Command cxtract extracts a structured catalogue of declared types and
// functions from one or more C/C++ translation units and writes it as JSON.
// It does not build flowchart graphs (see DESIGN.md). See SPEC_FULL.md for
// the full external interface.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/viant/cxtract/ast/cppast"
	"github.com/viant/cxtract/document"
	"github.com/viant/cxtract/extract"
	"github.com/viant/cxtract/info"
	"github.com/viant/cxtract/source"
)

const usage = `cxtract [flags] file...

Flags:
  --main-only    restrict extraction to declarations in the primary input file
  --no-functions omit function extraction
  --no-structs   omit struct extraction
  --no-sizes     omit builtin bit-size annotations on fields
  --with-source  include verbatim source text per declaration
  --help         print this message and exit

Any other flag is passed through unconsumed (intended for a real
compiler's include paths, defines, or language standard).
`

// recognizedFlags are the control flags cxtract itself understands; every
// other argument starting with "-" is treated as a passthrough compiler flag,
// mirroring the original ccollec driver's argv classification.
var recognizedFlags = map[string]bool{
	"--main-only":    true,
	"--no-functions": true,
	"--no-structs":   true,
	"--no-sizes":     true,
	"--with-source":  true,
	"--help":         true,
}

type config struct {
	mainOnly    bool
	noFunctions bool
	noStructs   bool
	noSizes     bool
	withSource  bool
	help        bool
	files       []string
}

func parseArgs(args []string) config {
	var c config
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			c.files = append(c.files, a)
			continue
		}
		if !recognizedFlags[a] {
			// passthrough compiler flag, e.g. -I, -D, -std=...
			continue
		}
		switch a {
		case "--main-only":
			c.mainOnly = true
		case "--no-functions":
			c.noFunctions = true
		case "--no-structs":
			c.noStructs = true
		case "--no-sizes":
			c.noSizes = true
		case "--with-source":
			c.withSource = true
		case "--help":
			c.help = true
		}
	}
	return c
}

// diagnostic is a non-fatal, per-file failure recorded rather than
// aborting the whole run (spec.md §7): a hard parse failure for one file
// in a multi-file invocation skips that file without aborting the rest.
type diagnostic struct {
	file string
	err  error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	cfg := parseArgs(args)

	if len(args) == 0 || cfg.help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if len(cfg.files) == 0 {
		fmt.Fprintln(stderr, "fatal error: no input files")
		return 1
	}

	opts := extract.Options{Sizes: !cfg.noSizes, Source: cfg.withSource}
	loader := source.NewLoader()
	ctx := context.Background()

	var structsByFile [][]info.StructInfo
	var functionsByFile [][]info.FunctionInfo
	var diags []diagnostic

	for _, path := range cfg.files {
		src, err := loader.Read(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "fatal error: %v\n", err)
			return 1
		}
		unit, err := cppast.Parse(path, src)
		if err != nil {
			diags = append(diags, diagnostic{file: path, err: err})
			continue
		}

		// --main-only is parsed but not passed on: the extractors always
		// use cppast.NonSystem, and both scopes yield the same declarations
		// since cxtract has no preprocessor (see DESIGN.md), so the flag has
		// no observable effect.
		_ = cfg.mainOnly

		if !cfg.noStructs {
			structsByFile = append(structsByFile, extract.Structs(unit, opts))
		}
		if !cfg.noFunctions {
			functionsByFile = append(functionsByFile, extract.Functions(unit, opts))
		}
	}

	for _, d := range diags {
		fmt.Fprintf(stderr, "warning: failed to process %s: %v\n", d.file, d.err)
	}

	root := document.Assemble(structsByFile, functionsByFile)
	if err := document.Write(stdout, root); err != nil {
		fmt.Fprintf(stderr, "fatal error: %v\n", err)
		return 1
	}
	return 0
}
