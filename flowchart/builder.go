package flowchart

import (
	"fmt"
	"strings"

	"github.com/viant/cxtract/ast/cppast"
)

// Builder lowers a function body's normalized statement tree into a Graph.
// Each expand call threads four contextual vertices — the targets for
// normal flow continuation, return-statement flow, break-statement flow,
// and continue-statement flow; no separate begin vertex is passed. A
// Builder is built once per function body and
// discarded once Expand returns the function's entry vertex.
type Builder struct {
	g *Graph
}

// NewBuilder returns a Builder that populates g.
func NewBuilder(g *Graph) *Builder { return &Builder{g: g} }

// Expand lowers body into g, wiring its normal flow to end (the vertex
// representing "function exit"), return statements to onReturn, and any
// break / continue statement not enclosed by a loop (or, for break, a
// switch) inside body to onBreak / onContinue; loops and switches within
// body set their own targets. For a top-level function body pass end for
// both, since break/continue outside a loop or switch is not well-formed
// C/C++ and is tolerated as a no-op fallback. It returns the entry vertex
// of the expanded body.
func (b *Builder) Expand(body *cppast.Stmt, end, onReturn, onBreak, onContinue VertexID) VertexID {
	return b.expand(body, end, onReturn, onBreak, onContinue)
}

func (b *Builder) expand(s *cppast.Stmt, end, onReturn, onBreak, onContinue VertexID) VertexID {
	if s == nil {
		return end
	}
	switch s.Kind {
	case cppast.Simple:
		return b.expandSimple(s, end)
	case cppast.Call:
		return b.expandCall(s, end)
	case cppast.Return:
		return b.expandReturn(s, onReturn)
	case cppast.Break:
		return onBreak
	case cppast.Continue:
		return onContinue
	case cppast.If:
		return b.expandIf(s, end, onReturn, onBreak, onContinue)
	case cppast.For, cppast.While, cppast.DoWhile:
		return b.expandLoop(s, end, onReturn)
	case cppast.Switch:
		return b.expandSwitch(s, end, onReturn, onContinue)
	case cppast.Compound:
		return b.expandCompound(s, end, onReturn, onBreak, onContinue)
	case cppast.Case, cppast.Default:
		// A case/default's own entry is its body's entry; the switch that
		// owns this group wires the labeled edge into it itself.
		return b.expand(s.Body, end, onReturn, onBreak, onContinue)
	default:
		// Unknown statement class: fall back to Simple, per spec.md §7 —
		// preserves output completeness at the cost of flowchart fidelity.
		return b.expandSimple(s, end)
	}
}

func (b *Builder) expandSimple(s *cppast.Stmt, end VertexID) VertexID {
	v := b.g.AddProcess("process")
	b.g.AddEdge(v, end)
	b.g.SetOperator(v, "process", s.Source)
	return v
}

func (b *Builder) expandCall(s *cppast.Stmt, end VertexID) VertexID {
	label := s.Label
	if label == "" {
		label = "call"
	}
	v := b.g.AddProcess(label)
	b.g.AddEdge(v, end)
	b.g.SetOperator(v, label, s.Source)
	return v
}

func (b *Builder) expandReturn(s *cppast.Stmt, onReturn VertexID) VertexID {
	v := b.g.AddProcess("return")
	b.g.AddEdge(v, onReturn)
	b.g.SetOperator(v, "return", "return "+s.Source)
	return v
}

func (b *Builder) expandIf(s *cppast.Stmt, end, onReturn, onBreak, onContinue VertexID) VertexID {
	v := b.g.AddCondition(s.Cond)
	b.g.SetOperator(v, "if", s.Cond)

	thenEntry := b.expand(s.Then, end, onReturn, onBreak, onContinue)
	b.addLabeled(v, thenEntry, "true")

	if s.Else != nil {
		elseEntry := b.expand(s.Else, end, onReturn, onBreak, onContinue)
		b.addLabeled(v, elseEntry, "false")
	} else {
		b.addLabeled(v, end, "false")
	}
	return v
}

func (b *Builder) expandLoop(s *cppast.Stmt, end, onReturn VertexID) VertexID {
	open := b.g.AddLoopOpen(loopLabel(s.Kind))
	close_ := b.g.AddLoopClose("loop_close")
	b.g.AddEdge(close_, end)
	b.g.SetOperator(close_, "loop_close", "")

	bodyEntry := b.expand(s.Body, close_, onReturn, end, close_)
	b.g.AddEdge(open, bodyEntry)
	b.g.SetOperator(open, loopLabel(s.Kind), loopContents(s))
	return open
}

func loopLabel(k cppast.StmtKind) string {
	switch k {
	case cppast.For:
		return "for"
	case cppast.While:
		return "while"
	case cppast.DoWhile:
		return "do-while"
	default:
		return "loop"
	}
}

func loopContents(s *cppast.Stmt) string {
	switch s.Kind {
	case cppast.For:
		return fmt.Sprintf("for( %s; %s; %s)", s.Init, s.Cond, s.Post)
	case cppast.While:
		return s.Cond
	case cppast.DoWhile:
		return "do while: " + s.Cond
	default:
		return s.Cond
	}
}

func (b *Builder) expandCompound(s *cppast.Stmt, end, onReturn, onBreak, onContinue VertexID) VertexID {
	groups := groupChildren(s.Children)
	if len(groups) == 0 {
		// Empty compound: no-op, no vertex allocated. See DESIGN.md's
		// resolution of the original's own acknowledged ambiguity here.
		return end
	}
	entries := make([]VertexID, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		localEnd := end
		if i < len(groups)-1 {
			localEnd = entries[i+1]
		}
		entries[i] = b.expand(groups[i], localEnd, onReturn, onBreak, onContinue)
	}
	return entries[0]
}

func (b *Builder) expandSwitch(s *cppast.Stmt, end, onReturn, onContinue VertexID) VertexID {
	v := b.g.AddCondition(s.Cond)
	b.g.SetOperator(v, "switch", s.Cond)

	groups := groupChildren(s.Children)
	n := len(groups)
	if n == 0 {
		// Empty switch body: the condition still needs ≥1 outgoing edge
		// (spec.md §3/§8 invariant 5), so it flows straight to end.
		b.g.AddEdge(v, end)
		return v
	}

	// break inside a switch escapes the switch itself, i.e. flows to the
	// switch's own continuation, not to any enclosing loop's break target.
	onBreakInSwitch := end

	entries := make([]VertexID, n)
	for i := n - 1; i >= 0; i-- {
		group := groups[i]
		isLast := i == n-1

		if isLast && group.Kind == cppast.Break {
			// No-op: falling off the end of a switch via a lone break
			// contributes neither a vertex nor an edge.
			entries[i] = end
			continue
		}

		localEnd := end
		if !isLast {
			if groups[i+1].Kind == cppast.Break {
				localEnd = end
			} else {
				localEnd = entries[i+1]
			}
		}

		entry := b.expand(group, localEnd, onReturn, onBreakInSwitch, onContinue)
		entries[i] = entry

		// Every group is provisionally wired from the switch condition;
		// only case/default groups keep that connection (relabeled),
		// others are reachable solely by fallthrough from a prior case.
		eid := b.g.AddEdge(v, entry)
		switch group.Kind {
		case cppast.Case:
			b.g.RemoveEdge(v, entry)
			eid = b.g.AddEdge(v, entry)
			b.g.SetEdgeText(eid, strings.Join(group.Conditions, ", "))
		case cppast.Default:
			b.g.RemoveEdge(v, entry)
			eid = b.g.AddEdge(v, entry)
			b.g.SetEdgeText(eid, "default")
		default:
			_ = eid
			b.g.RemoveEdge(v, entry)
		}
	}
	return v
}

func (b *Builder) addLabeled(from, to VertexID, text string) {
	id := b.g.AddEdge(from, to)
	b.g.SetEdgeText(id, text)
}

// groupChildren collapses consecutive "simple-like" statements (Simple
// only, see Stmt.IsSimpleLike) into a single synthetic process block printed as their sources
// joined by newline, matching the spec's SimpleCompound grouping rule. A
// non-simple statement (Call, If, Switch, loop, Return, Break, Continue,
// Case, Default) always starts its own group.
func groupChildren(children []*cppast.Stmt) []*cppast.Stmt {
	var groups []*cppast.Stmt
	i := 0
	for i < len(children) {
		c := children[i]
		if !c.IsSimpleLike() {
			groups = append(groups, c)
			i++
			continue
		}
		j := i
		var parts []string
		for j < len(children) && children[j].IsSimpleLike() {
			parts = append(parts, children[j].Source)
			j++
		}
		if j-i == 1 {
			groups = append(groups, children[i])
		} else {
			groups = append(groups, &cppast.Stmt{
				Kind:   cppast.Simple,
				Source: strings.Join(parts, "\n"),
			})
		}
		i = j
	}
	return groups
}
