// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg builds a statement-level control flow graph from a Swift AST
// statement list (spec.md section 3.3 and component 4.3). It generalizes
// the teacher's extras/cfg package (a CFG over go/ast.Stmt, built by a
// single DFS pass over a block's statement list, storing predecessors and
// successors as adjacency maps with no explicit edge objects) in three
// ways the teacher's single-function CFG never needed: a subgraph node
// that embeds a complete inner CFG and can be inlined into its parent
// (expand-subgraphs), an explicit back-edge flag computed as a
// post-construction pass rather than implied by which construct produced
// an edge, and an end-of-scope marker node kind (which Build itself never
// inserts).
package cfg

import "github.com/godoctor/swiftrewriter/swiftast"

// NodeKind distinguishes the different things a CFG Node can represent.
type NodeKind int

const (
	EntryNode NodeKind = iota
	ExitNode
	StmtNode
	SubgraphNode
	ScopeEndNode
)

// Node is one vertex of a CFG. Every non-entry/exit StmtNode is associated
// with a Swift AST node by reference identity (spec 3.3); a SubgraphNode
// instead owns a nested, complete CFG; a ScopeEndNode marks the boundary a
// variable leaves (spec 3.3, "End-of-scope marker nodes").
type Node struct {
	Kind NodeKind
	Stmt swiftast.Statement // valid when Kind == StmtNode
	Inner *CFG              // valid when Kind == SubgraphNode
	Scope string            // valid when Kind == ScopeEndNode: the scope's debug name
}

// Edge is one directed control-flow edge. BackEdge is set by MarkBackEdges
// (spec 4.3); Label is an optional human-readable annotation such as
// "true"/"false" for an if-branch or "break"/"continue" for a jump edge.
type Edge struct {
	From, To *Node
	BackEdge bool
	Label    string
}

// CFG is a directed graph with exactly one Entry and one Exit node (spec
// 3.3, 8 "CFG well-formedness"). Entry has no incoming edges; Exit has no
// outgoing edges.
type CFG struct {
	Entry, Exit *Node
	nodes       []*Node
	succs       map[*Node][]*Edge
	preds       map[*Node][]*Edge
}

func newEmptyCFG() *CFG {
	c := &CFG{
		Entry: &Node{Kind: EntryNode},
		Exit:  &Node{Kind: ExitNode},
		succs: make(map[*Node][]*Edge),
		preds: make(map[*Node][]*Edge),
	}
	c.nodes = []*Node{c.Entry, c.Exit}
	return c
}

// Nodes returns every node in the graph, including Entry and Exit, in the
// order they were first referenced during construction.
func (c *CFG) Nodes() []*Node { return c.nodes }

// NodeFor returns the StmtNode associated with stmt by reference identity,
// or nil if stmt has no node in this graph.
func (c *CFG) NodeFor(stmt swiftast.Statement) *Node {
	for _, n := range c.nodes {
		if n.Kind == StmtNode && n.Stmt == stmt {
			return n
		}
	}
	return nil
}

// Succs returns n's immediate successor edges.
func (c *CFG) Succs(n *Node) []*Edge { return c.succs[n] }

// Preds returns n's immediate predecessor edges.
func (c *CFG) Preds(n *Node) []*Edge { return c.preds[n] }

// addNode registers n (idempotent if already present).
func (c *CFG) addNode(n *Node) {
	for _, existing := range c.nodes {
		if existing == n {
			return
		}
	}
	c.nodes = append(c.nodes, n)
}

// addEdge wires from -> to, recording the edge in both adjacency maps.
// Structural violations (an endpoint not belonging to this graph) are
// programmer errors (spec 7, category 3) and panic rather than return an
// error.
func (c *CFG) addEdge(from, to *Node, label string) *Edge {
	if from == nil || to == nil {
		panic("cfg: addEdge with a nil endpoint")
	}
	c.addNode(from)
	c.addNode(to)
	e := &Edge{From: from, To: to, Label: label}
	c.succs[from] = append(c.succs[from], e)
	c.preds[to] = append(c.preds[to], e)
	return e
}

// removeNode deletes n and every edge touching it.
func (c *CFG) removeNode(n *Node) {
	for _, e := range c.succs[n] {
		c.preds[e.To] = removeEdge(c.preds[e.To], e)
	}
	for _, e := range c.preds[n] {
		c.succs[e.From] = removeEdge(c.succs[e.From], e)
	}
	delete(c.succs, n)
	delete(c.preds, n)
	for i, existing := range c.nodes {
		if existing == n {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}
}

func removeEdge(edges []*Edge, target *Edge) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}

// AddSubgraphNode registers a new SubgraphNode embedding inner and returns
// it, unconnected. Callers wire it in with Connect.
func (c *CFG) AddSubgraphNode(inner *CFG) *Node {
	n := &Node{Kind: SubgraphNode, Inner: inner}
	c.addNode(n)
	return n
}

// Connect adds a directed edge from -> to, labeled label. It is the
// exported entry point other packages (notably passes, which needs to
// extend a per-method CFG while running dead-code elimination) use to
// build or extend a graph without reaching into unexported builder state.
func (c *CFG) Connect(from, to *Node, label string) *Edge {
	return c.addEdge(from, to, label)
}

// Copy returns a shallow copy of c: a new graph object sharing node
// identity with c, suitable for cheap iteration that a caller wants to
// mutate the edge lists of without disturbing c (spec 4.3 "Copy
// semantics").
func (c *CFG) Copy() *CFG {
	cp := &CFG{
		Entry: c.Entry,
		Exit:  c.Exit,
		nodes: append([]*Node(nil), c.nodes...),
		succs: make(map[*Node][]*Edge, len(c.succs)),
		preds: make(map[*Node][]*Edge, len(c.preds)),
	}
	for n, edges := range c.succs {
		cp.succs[n] = append([]*Edge(nil), edges...)
	}
	for n, edges := range c.preds {
		cp.preds[n] = append([]*Edge(nil), edges...)
	}
	return cp
}

// DeepCopy returns a new graph with entirely new Node and Edge objects,
// preserving the identity of the original Entry/Exit only in the sense
// that the copy's Entry/Exit occupy the same structural position (spec
// 4.3): cfg.Copy().DeepCopy() is structurally equal to cfg (spec 8).
func (c *CFG) DeepCopy() *CFG {
	cp := newEmptyCFG()
	replacement := map[*Node]*Node{c.Entry: cp.Entry, c.Exit: cp.Exit}
	clone := func(n *Node) *Node {
		if r, ok := replacement[n]; ok {
			return r
		}
		r := &Node{Kind: n.Kind, Stmt: n.Stmt, Scope: n.Scope}
		if n.Kind == SubgraphNode && n.Inner != nil {
			r.Inner = n.Inner.DeepCopy()
		}
		replacement[n] = r
		return r
	}
	for _, n := range c.nodes {
		clone(n)
	}
	for _, n := range c.nodes {
		for _, e := range c.succs[n] {
			cp.addEdge(clone(e.From), clone(e.To), e.Label).BackEdge = e.BackEdge
		}
	}
	return cp
}

// StructurallyEqual reports whether c and o have the same node kinds and
// edge shape, ignoring pointer identity — used to check DeepCopy's
// round-trip property (spec 8).
func (c *CFG) StructurallyEqual(o *CFG) bool {
	if len(c.nodes) != len(o.nodes) {
		return false
	}
	// index nodes canonically by a deterministic signature so the two
	// graphs' node sets can be paired up regardless of slice order.
	cIdx := indexBySignature(c)
	oIdx := indexBySignature(o)
	if len(cIdx) != len(oIdx) {
		return false
	}
	for sig, cn := range cIdx {
		on, ok := oIdx[sig]
		if !ok {
			return false
		}
		if !edgeSetsEqual(c.succs[cn], o.succs[on], cIdx, oIdx) {
			return false
		}
	}
	return true
}

func indexBySignature(c *CFG) map[string]*Node {
	counts := map[string]int{}
	idx := map[string]*Node{}
	for _, n := range c.nodes {
		sig := nodeSignature(n)
		counts[sig]++
		key := sig
		if counts[sig] > 1 {
			// Disambiguate repeated signatures (e.g. two identical
			// UnknownStmt text) with an occurrence counter.
			key = sig + "#"
			for i := 2; ; i++ {
				candidate := sig + string(rune('0'+i))
				if _, exists := idx[candidate]; !exists {
					key = candidate
					break
				}
			}
		}
		idx[key] = n
	}
	return idx
}

func nodeSignature(n *Node) string {
	switch n.Kind {
	case EntryNode:
		return "entry"
	case ExitNode:
		return "exit"
	case ScopeEndNode:
		return "scopeend:" + n.Scope
	case SubgraphNode:
		return "subgraph"
	default:
		return "stmt:" + stmtSignature(n.Stmt)
	}
}

func edgeSetsEqual(a, b []*Edge, aIdx, bIdx map[string]*Node) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ea := range a {
		matched := false
		for i, eb := range b {
			if used[i] {
				continue
			}
			if nodeSignature(ea.To) == nodeSignature(eb.To) && ea.BackEdge == eb.BackEdge {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
