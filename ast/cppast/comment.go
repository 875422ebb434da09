package cppast

import "strings"

// RawComment returns the verbatim leading comment block attached to d (the
// nearest contiguous run of `comment` sibling nodes immediately preceding
// it), or "" if none. Grounded on the sibling-walk used by
// extractDocumentation in the teacher's Java inspector, adapted to
// tree-sitter-cpp's flat `comment` node kind.
func RawComment(d Decl) string {
	n := d.Node
	prev := n.PrevSibling()
	var parts []string
	for prev != nil && prev.Type() == "comment" {
		parts = append([]string{prev.Content(d.Unit.Source)}, parts...)
		prev = prev.PrevSibling()
	}
	return strings.Join(parts, "\n")
}

// Brief extracts the short leading description from a declaration's
// comment. Tree-sitter has no builtin Doxygen brief extractor, so this is
// always the adapter's own best-effort reading: the first `\brief`/`@brief`
// tagged line if present, else "" (the doxygen package falls back to the
// first non-tag decorated line when this is empty, per spec.md §4.2 step 3).
func Brief(d Decl) string {
	raw := RawComment(d)
	if raw == "" {
		return ""
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"/**", "/*", "///", "//", "*"} {
			if strings.HasPrefix(line, marker) {
				line = strings.TrimPrefix(line, marker)
				break
			}
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, "*/"))
		fields := strings.Fields(line)
		if len(fields) >= 2 && (fields[0] == "@brief" || fields[0] == "\\brief") {
			return strings.Join(fields[1:], " ")
		}
	}
	return ""
}
