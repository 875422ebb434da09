// Package cppast adapts a tree-sitter-cpp parse tree into the vocabulary
// SPEC_FULL.md §4.1 names: translation units, scoped declaration lists,
// struct/function/parameter accessors, and printed type/source/location
// strings. It also normalizes statement-level nodes into the abstracted
// Stmt tree the flowchart builder consumes (see stmt.go), decoupling the
// builder from tree-sitter-cpp's concrete grammar shape.
package cppast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Unit is one parsed translation unit: a file's source text and its parse
// tree. cxtract does not run a real C preprocessor, so a Unit's content is
// exactly one input file's text (see DESIGN.md's "no-preprocessor
// simplification" Open Question resolution).
type Unit struct {
	Path   string
	Source []byte
	Root   *sitter.Node
}

// Parse parses src as a C/C++ translation unit rooted at path.
func Parse(path string, src []byte) (*Unit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("cppast: failed to parse %s: %w", path, err)
	}
	return &Unit{Path: path, Source: src, Root: tree.RootNode()}, nil
}

// Scope selects which declarations DeclarationsIn returns.
type Scope int

const (
	// MainFile restricts to declarations located in the translation
	// unit's primary input file.
	MainFile Scope = iota
	// NonSystem excludes declarations resolving to a system header.
	NonSystem
)

// Decl wraps one declaration-shaped node together with the unit it came
// from, so printing/location helpers never need a second parameter.
type Decl struct {
	Node *sitter.Node
	Unit *Unit
}

func (d Decl) text() string {
	return d.Node.Content(d.Unit.Source)
}

// DeclarationsIn returns the translation unit's top-level declarations
// visible under scope. Since cxtract has no preprocessor, every declaration
// in Root belongs to the primary file and there is no separate system-header
// content to exclude; both Scope values therefore return the same set for a
// given Unit (see DESIGN.md).
func DeclarationsIn(u *Unit, _ Scope) []Decl {
	var out []Decl
	root := u.Root
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		out = append(out, Decl{Node: child, Unit: u})
	}
	return out
}

var structKinds = map[string]bool{
	"struct_specifier": true,
	"class_specifier":   true,
	"union_specifier":   true,
}

var functionDefKinds = map[string]bool{
	"function_definition": true,
}

// FilterStructs narrows decls to struct/class/union declarations (including
// ones nested inside a plain `declaration` wrapper, e.g. `struct S { ... };`).
func FilterStructs(decls []Decl) []Decl {
	var out []Decl
	for _, d := range decls {
		if structKinds[d.Node.Type()] {
			out = append(out, d)
			continue
		}
		if d.Node.Type() == "declaration" || d.Node.Type() == "type_definition" {
			if n := firstNamedChildOfKind(d.Node, structKinds); n != nil {
				out = append(out, Decl{Node: n, Unit: d.Unit})
			}
		}
	}
	return out
}

// FilterFunctions narrows decls to function definitions and prototypes (a
// plain `declaration` whose declarator is a function_declarator, e.g.
// `int f(int x);`). Headers — ccollec's primary use case — carry
// prototypes rather than definitions, so both shapes must be emitted
// (spec.md §8 scenario 2's input is itself a bare prototype).
func FilterFunctions(decls []Decl) []Decl {
	var out []Decl
	for _, d := range decls {
		if functionDefKinds[d.Node.Type()] {
			out = append(out, d)
			continue
		}
		if d.Node.Type() == "declaration" && declaresFunction(d.Node) {
			out = append(out, d)
		}
	}
	return out
}

func firstNamedChildOfKind(n *sitter.Node, kinds map[string]bool) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if kinds[c.Type()] {
			return c
		}
	}
	return nil
}

// FieldsOf returns the field_declaration children of a struct/class body.
func FieldsOf(d Decl) []Decl {
	body := d.Node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var out []Decl
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "field_declaration" && !declaresFunction(c) {
			out = append(out, Decl{Node: c, Unit: d.Unit})
		}
	}
	return out
}

// MethodsOf returns the method (function-shaped field_declaration, or
// inline function_definition) children of a struct/class body.
func MethodsOf(d Decl) []Decl {
	body := d.Node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var out []Decl
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch {
		case c.Type() == "function_definition":
			out = append(out, Decl{Node: c, Unit: d.Unit})
		case c.Type() == "field_declaration" && declaresFunction(c):
			out = append(out, Decl{Node: c, Unit: d.Unit})
		}
	}
	return out
}

// declaresFunction reports whether a field_declaration's declarator is a
// function_declarator (a method prototype), as opposed to a plain data
// member.
func declaresFunction(fieldDecl *sitter.Node) bool {
	for i := 0; i < int(fieldDecl.NamedChildCount()); i++ {
		c := fieldDecl.NamedChild(i)
		if c.Type() == "function_declarator" {
			return true
		}
		if declarator := c.ChildByFieldName("declarator"); declarator != nil && declarator.Type() == "function_declarator" {
			return true
		}
	}
	return false
}

// ParamsOf returns a function declaration's parameter_declaration nodes.
func ParamsOf(d Decl) []Decl {
	fd := functionDeclaratorOf(d.Node)
	if fd == nil {
		return nil
	}
	params := fd.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []Decl
	for i := 0; i < int(params.NamedChildCount()); i++ {
		c := params.NamedChild(i)
		if c.Type() == "parameter_declaration" {
			out = append(out, Decl{Node: c, Unit: d.Unit})
		}
	}
	return out
}

// functionDeclaratorOf locates the function_declarator of a
// function_definition or function-shaped field_declaration, looking through
// any pointer_declarator wrapping (for functions returning pointers).
func functionDeclaratorOf(n *sitter.Node) *sitter.Node {
	declarator := n.ChildByFieldName("declarator")
	for declarator != nil {
		switch declarator.Type() {
		case "function_declarator":
			return declarator
		case "pointer_declarator", "reference_declarator":
			declarator = declarator.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

// PrintType renders the printed type string for a declaration's return/
// field type, or a parameter's declared type.
func PrintType(d Decl) string {
	typeNode := d.Node.ChildByFieldName("type")
	if typeNode == nil {
		return ""
	}
	declarator := d.Node.ChildByFieldName("declarator")
	qualifier := ""
	for declarator != nil && (declarator.Type() == "pointer_declarator" || declarator.Type() == "reference_declarator") {
		if declarator.Type() == "pointer_declarator" {
			qualifier += "*"
		} else {
			qualifier += "&"
		}
		declarator = declarator.ChildByFieldName("declarator")
	}
	base := typeNode.Content(d.Unit.Source)
	if qualifier != "" {
		return base + qualifier
	}
	return base
}

// PrintSource returns the verbatim source text spanned by d.
func PrintSource(d Decl) string { return d.text() }

// LocationString renders "file:line:col" (1-based line/col) for d.
func LocationString(d Decl) string {
	p := d.Node.StartPoint()
	return fmt.Sprintf("%s:%d:%d", d.Unit.Path, p.Row+1, p.Column+1)
}

// NameOf returns the declared identifier's text for a struct/class,
// function, field, or parameter declaration.
func NameOf(d Decl) string {
	if n := d.Node.ChildByFieldName("name"); n != nil {
		return n.Content(d.Unit.Source)
	}
	declarator := d.Node.ChildByFieldName("declarator")
	for declarator != nil {
		switch declarator.Type() {
		case "function_declarator", "array_declarator", "pointer_declarator", "reference_declarator":
			if inner := declarator.ChildByFieldName("declarator"); inner != nil {
				declarator = inner
				continue
			}
		case "identifier", "field_identifier":
			return declarator.Content(d.Unit.Source)
		}
		break
	}
	if declarator != nil {
		return declarator.Content(d.Unit.Source)
	}
	return ""
}
