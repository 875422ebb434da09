// Package extract implements the struct and function extractors: the
// declaration-extraction engine's two leaf components described in
// SPEC_FULL.md §4.3/§4.4, built on the ast/cppast adapter and the doxygen
// parser.
package extract

// Options controls what the extractors attach to emitted records, mirroring
// spec.md §6's --no-sizes / --with-source flags.
type Options struct {
	// Sizes, when true, attaches builtin bit-size annotations to
	// primitive-typed fields.
	Sizes bool
	// Source, when true, attaches verbatim source text to structs and
	// functions.
	Source bool
}
