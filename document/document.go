// Package document implements the hierarchical output container described
// in SPEC_FULL.md §3: an ordered tree of named nodes, each either a leaf
// value or an ordered sequence of children, and the top-level assembler
// that aggregates per-file struct/function records into one such tree
// before it is rendered as JSON on stdout.
package document

import (
	"encoding/json"
	"io"

	"github.com/viant/cxtract/info"
)

// Node is the universal output container: a leaf string/uint64 value, or
// an ordered sequence of named or unnamed child nodes.
type Node struct {
	Name     string
	Text     string
	Number   uint64
	IsNumber bool
	Children []*Node
	isLeaf   bool
	isArray  bool
}

// Leaf returns a named string-valued leaf node.
func Leaf(name, text string) *Node {
	return &Node{Name: name, Text: text, isLeaf: true}
}

// NumberLeaf returns a named unsigned-integer-valued leaf node.
func NumberLeaf(name string, n uint64) *Node {
	return &Node{Name: name, Number: n, IsNumber: true, isLeaf: true}
}

// Object returns a named node holding an ordered sequence of child nodes.
func Object(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Array returns a named node holding an ordered sequence of unnamed
// elements.
func Array(name string, elements ...*Node) *Node {
	return &Node{Name: name, Children: elements, isArray: true}
}

// MarshalJSON renders a Node the way the top-level assembler's output is
// described in spec.md §6: objects keyed by child name, arrays as JSON
// arrays of elements, leaves as their scalar value.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.isLeaf {
		if n.IsNumber {
			return json.Marshal(n.Number)
		}
		return json.Marshal(n.Text)
	}
	if n.isArray {
		return json.Marshal(n.Children)
	}
	obj := make(map[string]*Node, len(n.Children))
	for _, c := range n.Children {
		obj[c.Name] = c
	}
	return json.Marshal(obj)
}

// Write renders the document tree as JSON to w.
func Write(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	return enc.Encode(root)
}

// Assemble builds the top-level document from per-file extraction results,
// in the order files were given (spec.md §5's ordering guarantee), omitting
// the "structs"/"functions" keys entirely when empty (spec.md §6).
func Assemble(structsByFile [][]info.StructInfo, functionsByFile [][]info.FunctionInfo) *Node {
	var structs []*Node
	for _, fileStructs := range structsByFile {
		for _, s := range fileStructs {
			structs = append(structs, structNode(s))
		}
	}
	var functions []*Node
	for _, fileFuncs := range functionsByFile {
		for _, f := range fileFuncs {
			functions = append(functions, functionNode(f))
		}
	}

	var top []*Node
	if len(structs) > 0 {
		top = append(top, Array("structs", structs...))
	}
	if len(functions) > 0 {
		top = append(top, Array("functions", functions...))
	}
	return Object("", top...)
}

func functionNode(f info.FunctionInfo) *Node {
	children := []*Node{
		Leaf("location", f.Location),
		Leaf("name", f.Name),
		Leaf("return_type", f.ReturnType),
		Leaf("return_comment", f.ReturnComment),
		Leaf("brief_comment", f.BriefComment),
		Array("params", paramNodes(f.Params)...),
	}
	if f.Source != "" {
		children = append(children, Leaf("source", f.Source))
	}
	return Object("", children...)
}

func paramNodes(params []info.ParamInfo) []*Node {
	out := make([]*Node, 0, len(params))
	for _, p := range params {
		out = append(out, Object("",
			Leaf("name", p.Name),
			Leaf("type", p.Type),
			Leaf("comment", p.Comment),
		))
	}
	return out
}

func structNode(s info.StructInfo) *Node {
	var fields []*Node
	for _, f := range s.Fields {
		fields = append(fields, fieldNode(f))
	}
	var methods []*Node
	for _, m := range s.Methods {
		methods = append(methods, methodNode(m))
	}
	children := []*Node{
		Leaf("location", s.Location),
		Leaf("name", s.Name),
		Leaf("brief_comment", s.BriefComment),
		Array("fields", fields...),
		Array("methods", methods...),
	}
	if s.Source != "" {
		children = append(children, Leaf("source", s.Source))
	}
	return Object("", children...)
}

func fieldNode(f info.FieldInfo) *Node {
	children := []*Node{
		Leaf("name", f.Name),
		Leaf("type", f.Type),
		Leaf("comment", f.Comment),
	}
	if f.Array != nil {
		sizes := make([]*Node, 0, len(f.Array.Size))
		for _, s := range f.Array.Size {
			sizes = append(sizes, &Node{Number: s, IsNumber: true, isLeaf: true})
		}
		children = append(children, Object("array",
			Leaf("elem_type", f.Array.ElemType),
			Array("size", sizes...),
		))
	}
	if f.BitfieldWidth != nil {
		children = append(children, NumberLeaf("bitfield_width", *f.BitfieldWidth))
	}
	if f.Builtin != nil {
		children = append(children, NumberLeaf("builtin", *f.Builtin))
	}
	return Object("", children...)
}

func methodNode(m info.MethodInfo) *Node {
	n := functionNode(m.FunctionInfo)
	mods := make([]*Node, 0, len(m.Modifiers))
	for _, mod := range m.Modifiers {
		mods = append(mods, &Node{Text: string(mod), isLeaf: true})
	}
	n.Children = append(n.Children, Array("modifiers", mods...))
	return n
}
