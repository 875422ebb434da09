// Package info defines the declaration-record data model: the structured
// catalogue of functions and structs/classes cxtract extracts from a
// translation unit, per the hierarchical document described in SPEC_FULL.md
// §3. These are the leaf records the document package assembles into the
// final output tree.
package info

// ParamInfo describes one function parameter.
type ParamInfo struct {
	Name    string
	Type    string
	Comment string
}

// FunctionInfo describes a function or method declaration.
type FunctionInfo struct {
	Location      string
	Name          string
	ReturnType    string
	ReturnComment string
	BriefComment  string
	Params        []ParamInfo
	Source        string // populated only when sources are requested
}

// Modifier is a C++ method qualifier.
type Modifier string

const (
	ModifierStatic  Modifier = "static"
	ModifierConst   Modifier = "const"
	ModifierVirtual Modifier = "virtual"
	ModifierPure    Modifier = "pure"
)

// MethodInfo is a FunctionInfo plus its method modifiers.
type MethodInfo struct {
	FunctionInfo
	Modifiers []Modifier
}

// ArrayInfo describes a constant-array field, outermost dimension first.
type ArrayInfo struct {
	ElemType string
	Size     []uint64
}

// FieldInfo describes one struct/class field.
type FieldInfo struct {
	Name          string
	Type          string
	Comment       string
	Array         *ArrayInfo
	BitfieldWidth *uint64
	Builtin       *uint64 // bit size, only attached when sizes are requested
}

// StructInfo describes a struct/class declaration.
type StructInfo struct {
	Location     string
	Name         string
	BriefComment string
	Fields       []FieldInfo
	Methods      []MethodInfo
	Source       string // populated only when sources are requested
}
