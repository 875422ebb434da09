package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/cxtract/info"
)

func TestAssemble_EmptyWhenNoContent(t *testing.T) {
	root := Assemble(nil, nil)
	b, err := json.Marshal(root)
	assert.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestAssemble_OmitsEmptyTopLevelKeys(t *testing.T) {
	root := Assemble(nil, [][]info.FunctionInfo{{{Name: "f", ReturnType: "int"}}})
	b, err := json.Marshal(root)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &decoded))
	_, hasStructs := decoded["structs"]
	assert.False(t, hasStructs)
	_, hasFunctions := decoded["functions"]
	assert.True(t, hasFunctions)
}

func TestFunctionNode_Fields(t *testing.T) {
	f := info.FunctionInfo{
		Name: "f", ReturnType: "int", ReturnComment: "ok", BriefComment: "hi",
		Params: []info.ParamInfo{{Name: "x", Type: "int", Comment: "the x"}},
	}
	n := functionNode(f)
	b, err := json.Marshal(n)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "f", decoded["name"])
	assert.Equal(t, "int", decoded["return_type"])
	assert.Equal(t, "ok", decoded["return_comment"])
	assert.Equal(t, "hi", decoded["brief_comment"])
	params := decoded["params"].([]interface{})
	assert.Len(t, params, 1)
}

func TestStructNode_ArrayField(t *testing.T) {
	width := uint64(2)
	s := info.StructInfo{
		Name: "S",
		Fields: []info.FieldInfo{
			{Name: "b", Type: "char", Array: &info.ArrayInfo{ElemType: "char", Size: []uint64{3, 4}}},
			{Name: "c", Type: "unsigned", BitfieldWidth: &width},
		},
	}
	n := structNode(s)
	b, err := json.Marshal(n)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &decoded))
	fields := decoded["fields"].([]interface{})
	assert.Len(t, fields, 2)
	first := fields[0].(map[string]interface{})
	arr := first["array"].(map[string]interface{})
	assert.Equal(t, "char", arr["elem_type"])
	assert.Equal(t, []interface{}{float64(3), float64(4)}, arr["size"])
}
