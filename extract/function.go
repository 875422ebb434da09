package extract

import (
	"github.com/viant/cxtract/ast/cppast"
	"github.com/viant/cxtract/doxygen"
	"github.com/viant/cxtract/info"
)

// Functions extracts a FunctionInfo for every top-level function definition
// and prototype in u,
// preserving declaration order (spec.md §5's ordering guarantee).
func Functions(u *cppast.Unit, opts Options) []info.FunctionInfo {
	decls := cppast.FilterFunctions(cppast.DeclarationsIn(u, cppast.NonSystem))
	out := make([]info.FunctionInfo, 0, len(decls))
	for _, d := range decls {
		out = append(out, functionInfo(d, opts))
	}
	return out
}

func functionInfo(d cppast.Decl, opts Options) info.FunctionInfo {
	raw := cppast.RawComment(d)
	brief, tags := doxygen.Parse(raw, cppast.Brief(d))

	fi := info.FunctionInfo{
		Location:      cppast.LocationString(d),
		Name:          cppast.NameOf(d),
		ReturnType:    cppast.PrintType(d),
		ReturnComment: tags[doxygen.ReturnKey],
		BriefComment:  brief,
	}
	for _, p := range cppast.ParamsOf(d) {
		name := cppast.NameOf(p)
		fi.Params = append(fi.Params, info.ParamInfo{
			Name:    name,
			Type:    cppast.PrintType(p),
			Comment: tags[name],
		})
	}
	if opts.Source {
		fi.Source = cppast.PrintSource(d)
	}
	return fi
}
