// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import "github.com/bits-and-blooms/bitset"

// nodeIndex assigns every node in c a stable position, so reachability and
// other per-node facts can be tracked in a bitset.BitSet the way the
// teacher's dataflow package indexes statements for its gen/kill sets
// (analysis/dataflow/reaching.go).
type nodeIndex struct {
	byNode map[*Node]uint
	nodes  []*Node
}

func indexNodes(c *CFG) *nodeIndex {
	idx := &nodeIndex{byNode: make(map[*Node]uint, len(c.nodes)), nodes: c.nodes}
	for i, n := range c.nodes {
		idx.byNode[n] = uint(i)
	}
	return idx
}

// MarkBackEdges performs a DFS from Entry, flagging every edge whose
// target is already on the current visit path as a back edge (spec 4.3).
// This is independent of which construct produced the edge, unlike the
// teacher's builder (which never tags back edges at all, since its single
// flat per-function CFG never needed them): a later stage such as
// expand-subgraphs needs to know which outer edges must propagate the
// flag regardless of how they originated.
func (c *CFG) MarkBackEdges() {
	onPath := make(map[*Node]bool)
	visited := make(map[*Node]bool)
	var visit func(n *Node)
	visit = func(n *Node) {
		onPath[n] = true
		visited[n] = true
		for _, e := range c.succs[n] {
			if onPath[e.To] {
				e.BackEdge = true
				continue
			}
			if !visited[e.To] {
				visit(e.To)
			}
		}
		onPath[n] = false
	}
	visit(c.Entry)
}

// Prune removes every node unreachable from Entry (spec 4.3). Reachability
// is computed as a bitset over the graph's stable node index, continuing
// the teacher's dataflow-analysis convention of indexing nodes into
// bitsets rather than walking the graph repeatedly.
func (c *CFG) Prune() {
	idx := indexNodes(c)
	reachable := bitset.New(uint(len(idx.nodes)))
	var visit func(n *Node)
	seen := make(map[*Node]bool)
	visit = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		reachable.Set(idx.byNode[n])
		for _, e := range c.succs[n] {
			visit(e.To)
		}
	}
	visit(c.Entry)

	for _, n := range append([]*Node(nil), c.nodes...) {
		if n == c.Entry || n == c.Exit {
			continue
		}
		if !reachable.Test(idx.byNode[n]) {
			c.removeNode(n)
		}
	}
}

// Reachable reports whether n is reachable from c.Entry, without mutating
// c. Passes that only need a yes/no answer (e.g. dead-statement removal)
// use this instead of a full Prune when they must not disturb node
// identity for other consumers still holding references.
func (c *CFG) Reachable(n *Node) bool {
	idx := indexNodes(c)
	reachable := bitset.New(uint(len(idx.nodes)))
	seen := make(map[*Node]bool)
	var visit func(cur *Node)
	visit = func(cur *Node) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		reachable.Set(idx.byNode[cur])
		for _, e := range c.succs[cur] {
			visit(e.To)
		}
	}
	visit(c.Entry)
	return reachable.Test(idx.byNode[n])
}

// ExpandSubgraphs replaces every SubgraphNode in c with its inner graph's
// nodes, many-to-many rewiring the outer predecessors to the inner entry's
// successors and the inner exit's predecessors to the outer successors
// (spec 4.3). The outer edge's back-edge flag is propagated to every
// synthesised outer edge. ExpandSubgraphs is not recursive into nested
// subgraphs of subgraphs; call it again (or loop until no SubgraphNode
// remains) if that is required.
func (c *CFG) ExpandSubgraphs() {
	for _, n := range append([]*Node(nil), c.nodes...) {
		if n.Kind != SubgraphNode || n.Inner == nil {
			continue
		}
		c.expandOne(n)
	}
}

func (c *CFG) expandOne(n *Node) {
	inner := n.Inner
	inPreds := append([]*Edge(nil), c.preds[n]...)
	outSuccs := append([]*Edge(nil), c.succs[n]...)

	// Bring every inner node except its entry/exit sentinels into c.
	for _, innerNode := range inner.nodes {
		if innerNode == inner.Entry || innerNode == inner.Exit {
			continue
		}
		c.addNode(innerNode)
	}
	// Re-create inner edges that don't touch the inner sentinels.
	for _, innerNode := range inner.nodes {
		for _, e := range inner.succs[innerNode] {
			if e.From == inner.Entry || e.To == inner.Exit {
				continue
			}
			c.addEdge(e.From, e.To, e.Label).BackEdge = e.BackEdge
		}
	}

	// Wire outer predecessors directly to every successor of the inner
	// entry (i.e. the inner graph's real first nodes).
	for _, inEdge := range inPreds {
		for _, innerFirst := range inner.succs[inner.Entry] {
			ne := c.addEdge(inEdge.From, innerFirst.To, inEdge.Label)
			ne.BackEdge = inEdge.BackEdge
		}
	}
	// Wire every predecessor of the inner exit to the outer successors.
	for _, innerLast := range inner.preds[inner.Exit] {
		for _, outEdge := range outSuccs {
			ne := c.addEdge(innerLast.From, outEdge.To, outEdge.Label)
			ne.BackEdge = outEdge.BackEdge
		}
	}

	c.removeNode(n)
}
