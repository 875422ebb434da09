package cppast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// knownSystemCalls is a small, explicit allowlist of C standard library
// functions. cxtract has no symbol table or real preprocessor (Non-goals:
// "semantic analysis beyond statement-class dispatch"), so "is this callee
// user-defined" can't be resolved by linkage the way a real compiler front
// end would; this list is the pragmatic, documented stand-in so ordinary
// library calls (printf, malloc, ...) are demoted to Simple per spec.md
// §4.6's dispatch table rather than rendered as subprogram calls.
var knownSystemCalls = map[string]bool{
	"printf": true, "fprintf": true, "sprintf": true, "snprintf": true,
	"malloc": true, "calloc": true, "realloc": true, "free": true,
	"memcpy": true, "memmove": true, "memset": true, "memcmp": true,
	"strlen": true, "strcpy": true, "strncpy": true, "strcmp": true, "strncmp": true,
	"strcat": true, "strncat": true, "strchr": true, "strstr": true,
	"puts": true, "putchar": true, "getchar": true, "fgets": true,
	"fopen": true, "fclose": true, "fread": true, "fwrite": true,
	"exit": true, "abort": true, "assert": true,
}

// BuildStatement lowers a tree-sitter-cpp statement node into the
// normalized Stmt tree the flowchart builder consumes. A nil node lowers to
// an empty Compound (a no-op, matching the empty-compound semantics).
func BuildStatement(n *sitter.Node, u *Unit) *Stmt {
	if n == nil {
		return &Stmt{Kind: Compound}
	}
	switch n.Type() {
	case "compound_statement":
		return buildCompound(n, u)
	case "if_statement":
		then := BuildStatement(n.ChildByFieldName("consequence"), u)
		var elseStmt *Stmt
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			elseStmt = BuildStatement(alt, u)
		}
		return &Stmt{Kind: If, Cond: conditionText(n, u), Then: then, Else: elseStmt}
	case "switch_statement":
		body := n.ChildByFieldName("body")
		return &Stmt{Kind: Switch, Cond: conditionText(n, u), Children: buildSwitchBody(body, u)}
	case "for_statement":
		return &Stmt{
			Kind: For,
			Init: fieldText(n, "initializer", u),
			Cond: fieldText(n, "condition", u),
			Post: fieldText(n, "update", u),
			Body: BuildStatement(n.ChildByFieldName("body"), u),
		}
	case "while_statement":
		return &Stmt{Kind: While, Cond: conditionText(n, u), Body: BuildStatement(n.ChildByFieldName("body"), u)}
	case "do_statement":
		return &Stmt{Kind: DoWhile, Cond: conditionText(n, u), Body: BuildStatement(n.ChildByFieldName("body"), u)}
	case "return_statement":
		return &Stmt{Kind: Return, Source: returnExprText(n, u)}
	case "break_statement":
		return &Stmt{Kind: Break}
	case "continue_statement":
		return &Stmt{Kind: Continue}
	case "expression_statement":
		if call, name := leadingCall(n, u); call != nil {
			return &Stmt{Kind: Call, Label: name, Source: n.Content(u.Source)}
		}
		return &Stmt{Kind: Simple, Source: n.Content(u.Source)}
	default:
		return &Stmt{Kind: Simple, Source: n.Content(u.Source)}
	}
}

func buildCompound(n *sitter.Node, u *Unit) *Stmt {
	var children []*Stmt
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		children = append(children, BuildStatement(c, u))
	}
	return &Stmt{Kind: Compound, Children: children}
}

// buildSwitchBody normalizes tree-sitter-cpp's flat sequence of sibling
// case_statement nodes (each owning only the statements up to the next
// case/default label) into grouped Case/Default Stmts, chaining consecutive
// empty-bodied labels (fallthrough, e.g. "case 1: case 2: f();") into a
// single group whose Conditions lists every accumulated value. This is the
// adapter-level resolution of the tree-sitter-vs-Clang-AST shape mismatch
// (see DESIGN.md).
func buildSwitchBody(body *sitter.Node, u *Unit) []*Stmt {
	if body == nil {
		return nil
	}
	var groups []*Stmt
	count := int(body.NamedChildCount())
	i := 0
	for i < count {
		c := body.NamedChild(i)
		if c.Type() != "case_statement" {
			groups = append(groups, BuildStatement(c, u))
			i++
			continue
		}

		var conditions []string
		isDefault := false
		for {
			if v := c.ChildByFieldName("value"); v != nil {
				conditions = append(conditions, v.Content(u.Source))
			} else {
				isDefault = true
			}
			stmts := caseBodyStatements(c, u)
			i++
			if len(stmts) > 0 || i >= count {
				kind := Case
				if isDefault {
					kind = Default
				}
				groups = append(groups, &Stmt{Kind: kind, Conditions: conditions, Body: buildStmtSequence(stmts, u)})
				break
			}
			next := body.NamedChild(i)
			if next.Type() != "case_statement" {
				kind := Case
				if isDefault {
					kind = Default
				}
				groups = append(groups, &Stmt{Kind: kind, Conditions: conditions, Body: buildStmtSequence(stmts, u)})
				break
			}
			c = next
		}
	}
	return groups
}

// caseBodyStatements returns a case_statement's trailing statement nodes
// (every named child after its optional "value" field).
func caseBodyStatements(c *sitter.Node, u *Unit) []*sitter.Node {
	value := c.ChildByFieldName("value")
	var out []*sitter.Node
	for i := 0; i < int(c.NamedChildCount()); i++ {
		n := c.NamedChild(i)
		if value != nil && n == value {
			continue
		}
		if n.Type() == "comment" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func buildStmtSequence(nodes []*sitter.Node, u *Unit) *Stmt {
	if len(nodes) == 0 {
		return &Stmt{Kind: Compound}
	}
	if len(nodes) == 1 {
		return BuildStatement(nodes[0], u)
	}
	children := make([]*Stmt, len(nodes))
	for i, n := range nodes {
		children[i] = BuildStatement(n, u)
	}
	return &Stmt{Kind: Compound, Children: children}
}

func conditionText(n *sitter.Node, u *Unit) string {
	cond := n.ChildByFieldName("condition")
	if cond == nil {
		return ""
	}
	text := cond.Content(u.Source)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	return strings.TrimSpace(text)
}

func fieldText(n *sitter.Node, field string, u *Unit) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(c.Content(u.Source)), ";")
}

func returnExprText(n *sitter.Node, u *Unit) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		return strings.TrimSpace(c.Content(u.Source))
	}
	return ""
}

// leadingCall reports the call_expression at the top of an
// expression_statement and its callee name, when the callee is not a known
// system function.
func leadingCall(n *sitter.Node, u *Unit) (*sitter.Node, string) {
	if n.NamedChildCount() == 0 {
		return nil, ""
	}
	expr := n.NamedChild(0)
	if expr.Type() != "call_expression" {
		return nil, ""
	}
	fn := expr.ChildByFieldName("function")
	if fn == nil {
		return nil, ""
	}
	name := fn.Content(u.Source)
	if knownSystemCalls[name] {
		return nil, ""
	}
	return expr, name
}
