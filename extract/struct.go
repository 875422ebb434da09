package extract

import (
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/cxtract/ast/cppast"
	"github.com/viant/cxtract/doxygen"
	"github.com/viant/cxtract/info"
)

// Structs extracts a StructInfo for every struct/class/union declaration in
// u, preserving declaration order.
func Structs(u *cppast.Unit, opts Options) []info.StructInfo {
	decls := cppast.FilterStructs(cppast.DeclarationsIn(u, cppast.NonSystem))
	out := make([]info.StructInfo, 0, len(decls))
	for _, d := range decls {
		out = append(out, structInfo(d, opts))
	}
	return out
}

func structInfo(d cppast.Decl, opts Options) info.StructInfo {
	brief, _ := doxygen.Parse(cppast.RawComment(d), cppast.Brief(d))

	si := info.StructInfo{
		Location:     cppast.LocationString(d),
		Name:         cppast.NameOf(d),
		BriefComment: brief,
	}
	for _, f := range cppast.FieldsOf(d) {
		si.Fields = append(si.Fields, fieldInfo(f, opts))
	}
	for _, m := range cppast.MethodsOf(d) {
		si.Methods = append(si.Methods, methodInfo(m, opts))
	}
	if opts.Source {
		si.Source = cppast.PrintSource(d)
	}
	return si
}

func fieldInfo(d cppast.Decl, opts Options) info.FieldInfo {
	brief, _ := doxygen.Parse(cppast.RawComment(d), cppast.Brief(d))
	fi := info.FieldInfo{
		Name:    cppast.NameOf(d),
		Type:    cppast.PrintType(d),
		Comment: brief,
	}

	if arr, elemType := unwindArray(d.Node, d.Unit); arr != nil {
		fi.Array = &info.ArrayInfo{ElemType: elemType, Size: arr}
	} else if width, ok := bitfieldWidth(d.Node, d.Unit); ok {
		fi.BitfieldWidth = &width
	} else if opts.Sizes {
		if bits, ok := builtinBitSize(fi.Type); ok {
			fi.Builtin = &bits
		}
	}
	return fi
}

func methodInfo(d cppast.Decl, opts Options) info.MethodInfo {
	mi := info.MethodInfo{FunctionInfo: functionInfo(d, opts)}
	text := d.Node.Content(d.Unit.Source)
	if hasLeadingKeyword(text, "static") {
		mi.Modifiers = append(mi.Modifiers, info.ModifierStatic)
	}
	if hasLeadingKeyword(text, "virtual") {
		mi.Modifiers = append(mi.Modifiers, info.ModifierVirtual)
	}
	if trailingConstRe.MatchString(text) {
		mi.Modifiers = append(mi.Modifiers, info.ModifierConst)
	}
	if pureVirtualRe.MatchString(text) {
		mi.Modifiers = append(mi.Modifiers, info.ModifierPure)
	}
	return mi
}

var (
	trailingConstRe = regexp.MustCompile(`\)\s*const\b`)
	pureVirtualRe   = regexp.MustCompile(`=\s*0\s*;?\s*$`)
)

func hasLeadingKeyword(text, kw string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, kw+" ")
}

// unwindArray unwinds nested constant-array declarators outermost-first,
// returning the dimension sizes and the fully unwrapped element type. It
// returns nil if d is not an array-typed field.
func unwindArray(n *sitter.Node, u *cppast.Unit) ([]uint64, string) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil || declarator.Type() != "array_declarator" {
		return nil, ""
	}
	var sizes []uint64
	cur := declarator
	for cur != nil && cur.Type() == "array_declarator" {
		size := cur.ChildByFieldName("size")
		if size == nil {
			sizes = append(sizes, 0)
		} else if v, err := strconv.ParseUint(strings.TrimSpace(size.Content(u.Source)), 10, 64); err == nil {
			sizes = append(sizes, v)
		} else {
			sizes = append(sizes, 0)
		}
		cur = cur.ChildByFieldName("declarator")
	}
	// tree-sitter nests "b[3][4]" as (b[3])[4], so the walk above collects
	// the innermost dimension first; reverse to outermost-first.
	for i, j := 0, len(sizes)-1; i < j; i, j = i+1, j-1 {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	}
	elemType := ""
	if typeNode := n.ChildByFieldName("type"); typeNode != nil {
		elemType = typeNode.Content(u.Source)
	}
	return sizes, elemType
}

// bitfieldWidth reports a field's bit-width, if it is a bit-field.
func bitfieldWidth(n *sitter.Node, u *cppast.Unit) (uint64, bool) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "bitfield_clause" {
			continue
		}
		for j := 0; j < int(c.NamedChildCount()); j++ {
			cc := c.NamedChild(j)
			if cc.Type() == "number_literal" {
				if v, err := strconv.ParseUint(strings.TrimSpace(cc.Content(u.Source)), 10, 64); err == nil {
					return v, true
				}
			}
		}
	}
	return 0, false
}

// builtinBitSizes maps normalized primitive type spellings to their bit
// size. cxtract has no real target ABI/compiler behind it, so these are the
// conventional ILP32/LP64 sizes a typical C/C++ compiler reports.
var builtinBitSizes = map[string]uint64{
	"bool": 8, "char": 8, "signed char": 8, "unsigned char": 8,
	"short": 16, "short int": 16, "unsigned short": 16, "unsigned short int": 16,
	"int": 32, "unsigned int": 32, "unsigned": 32, "signed": 32, "signed int": 32,
	"long": 64, "long int": 64, "unsigned long": 64, "unsigned long int": 64,
	"long long": 64, "long long int": 64, "unsigned long long": 64, "unsigned long long int": 64,
	"float": 32, "double": 64, "long double": 128,
}

func builtinBitSize(typeName string) (uint64, bool) {
	normalized := strings.Join(strings.Fields(strings.TrimSuffix(strings.TrimSpace(typeName), "*")), " ")
	bits, ok := builtinBitSizes[normalized]
	return bits, ok
}
