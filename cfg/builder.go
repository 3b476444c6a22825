// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import "github.com/godoctor/swiftrewriter/swiftast"

// Build constructs a CFG from a Swift compound statement's body (spec
// 4.3). The returned graph's Entry dominates every reachable node, and
// every non-Exit path reaches either Exit or a terminal statement
// (throw, infinite loop).
func Build(body []swiftast.Statement) *CFG {
	b := &builder{cfg: newEmptyCFG()}
	b.buildBlock(b.cfg.Entry, body, b.cfg.Exit)
	if len(b.defers) > 0 {
		// Route every fall-off-the-end edge into Exit through the defer
		// chain; return/throw edges already reach it via flowThroughDefers.
		inChain := make(map[*Node]bool, len(b.defers))
		for _, d := range b.defers {
			inChain[d] = true
		}
		for _, e := range append([]*Edge(nil), b.cfg.preds[b.cfg.Exit]...) {
			if inChain[e.From] || e.Label == "return" || e.Label == "throw" {
				continue
			}
			b.cfg.preds[b.cfg.Exit] = removeEdge(b.cfg.preds[b.cfg.Exit], e)
			e.To = b.defers[0]
			b.cfg.preds[e.To] = append(b.cfg.preds[e.To], e)
		}
	}
	return b.cfg
}

// branch is an unresolved break/continue discovered while building a
// block; it is held here until an enclosing loop or switch claims it
// (spec 4.3, generalizing the teacher's builder.branches worklist).
type branch struct {
	node   *Node
	target string // empty for unlabeled
	isBreak bool  // false => continue
}

// builder mirrors the teacher's extras/cfg builder: edges holds the open
// "leaf" nodes of whatever was built last, to be wired to whatever comes
// next; branches holds break/continue nodes waiting for an enclosing loop
// or switch to claim them. defers is the function-scoped defer chain
// (innermost-pushed-fires-first), matching the teacher's own dHead/dTail
// simplification (extras/cfg/cfg.go); Swift's defer is actually
// scope-exit rather than function-exit, but — as with the teacher's own
// acknowledged defer limitations — block-precise defer timing is not
// modeled; every defer in a method flows through the same function-wide
// chain on every return/throw/fall-off-the-end path.
//
// TODO(defer-scoping): defer registered inside a loop body that never
// returns should still fire once per loop exit when Swift scope rules are
// followed to the letter; this builder only fires it on function exit.
type builder struct {
	cfg      *CFG
	edges    []*Node
	branches []branch
	defers   []*Node // subgraph nodes, most recently pushed first
}

func (b *builder) getNode(stmt swiftast.Statement) *Node {
	if n := b.cfg.NodeFor(stmt); n != nil {
		return n
	}
	n := &Node{Kind: StmtNode, Stmt: stmt}
	b.cfg.addNode(n)
	return n
}

func (b *builder) flowTo(from, to *Node, label string) {
	b.cfg.addEdge(from, to, label)
}

// buildBlock walks block in order, wiring owner -> first statement and
// letting buildStmt wire each statement's outgoing edges to the statement
// after it (or, for the last statement, to next).
func (b *builder) buildBlock(owner *Node, block []swiftast.Statement, next *Node) {
	if len(block) == 0 {
		b.flowTo(owner, next, "")
		return
	}
	for i, stmt := range block {
		var stmtNext *Node
		if i+1 < len(block) {
			stmtNext = b.getNode(block[i+1])
		} else {
			stmtNext = next
		}
		n := b.getNode(stmt)
		if i == 0 {
			b.flowTo(owner, n, "")
		}
		b.buildStmt(n, stmt, stmtNext)
	}
}

// buildStmt dispatches on stmt's concrete kind, wiring n's outgoing edges.
// Every Statement kind either produces edges here or degrades to the
// default case (flow straight through to next) — lowering's own totality
// guarantee (spec 4.1) means buildStmt never needs to reject a node.
func (b *builder) buildStmt(n *Node, stmt swiftast.Statement, next *Node) {
	switch s := stmt.(type) {
	case *swiftast.IfStmt:
		b.buildIf(n, s, next)
	case *swiftast.SwitchStmt:
		b.buildSwitch(n, s, next)
	case *swiftast.WhileStmt:
		b.buildWhile(n, s, next)
	case *swiftast.RepeatWhileStmt:
		b.buildRepeatWhile(n, s, next)
	case *swiftast.ForInStmt:
		b.buildForIn(n, s, next)
	case *swiftast.DoStmt:
		b.buildBlock(n, s.Body, next)
	case *swiftast.DeferStmt:
		b.pushDefer(s)
		b.flowTo(n, next, "")
	case *swiftast.ReturnStmt:
		b.flowThroughDefers(n, b.cfg.Exit, "return")
	case *swiftast.ThrowStmt:
		b.flowThroughDefers(n, b.cfg.Exit, "throw")
	case *swiftast.BreakStmt:
		b.branches = append(b.branches, branch{node: n, target: s.Target, isBreak: true})
	case *swiftast.ContinueStmt:
		b.branches = append(b.branches, branch{node: n, target: s.Target, isBreak: false})
	case *swiftast.FallthroughStmt:
		// buildSwitch adds the edge into the following case from
		// SwitchCase.Fallthrough; the statement itself flows to next.
		b.flowTo(n, next, "")
	case *swiftast.LocalFunctionStmt:
		// A nested function is its own, independent control-flow
		// region: build it as a subgraph but do not wire it into the
		// enclosing flow (it only runs when called, which the CFG
		// does not model).
		n.Kind = SubgraphNode
		n.Inner = Build(s.Body)
		b.flowTo(n, next, "")
	default:
		b.flowTo(n, next, "")
	}
}

// pushDefer records d onto the function-scoped defer chain.
func (b *builder) pushDefer(d *swiftast.DeferStmt) {
	node := &Node{Kind: SubgraphNode, Inner: Build(d.Body)}
	b.cfg.addNode(node)
	if len(b.defers) > 0 {
		b.flowTo(node, b.defers[0], "")
	} else {
		b.flowTo(node, b.cfg.Exit, "")
	}
	b.defers = append([]*Node{node}, b.defers...)
}

// flowThroughDefers wires n to the head of the active defer chain if one
// exists, otherwise straight to target.
func (b *builder) flowThroughDefers(n, target *Node, label string) {
	if len(b.defers) > 0 {
		b.flowTo(n, b.defers[0], label)
		return
	}
	b.flowTo(n, target, label)
}

func (b *builder) buildIf(n *Node, s *swiftast.IfStmt, next *Node) {
	thenEntry := blockEntry(s.Then, next)
	b.flowTo(n, thenEntry, "true")
	b.buildBlockFrom(n, s.Then, next)

	if len(s.Else) == 0 {
		b.flowTo(n, next, "false")
		return
	}
	elseEntry := blockEntry(s.Else, next)
	b.flowTo(n, elseEntry, "false")
	b.buildBlockFrom(n, s.Else, next)
}

// buildBlockFrom is buildBlock without re-adding the owner->first edge
// (buildIf already added the labeled owner->first edge itself).
func (b *builder) buildBlockFrom(owner *Node, block []swiftast.Statement, next *Node) {
	if len(block) == 0 {
		return
	}
	for i, stmt := range block {
		var stmtNext *Node
		if i+1 < len(block) {
			stmtNext = b.getNode(block[i+1])
		} else {
			stmtNext = next
		}
		n := b.getNode(stmt)
		b.buildStmt(n, stmt, stmtNext)
	}
}

func blockEntry(block []swiftast.Statement, fallback *Node) *Node {
	if len(block) == 0 {
		return fallback
	}
	return &Node{Kind: StmtNode, Stmt: block[0]}
}

func (b *builder) buildSwitch(n *Node, s *swiftast.SwitchStmt, next *Node) {
	hasDefault := false
	for i, c := range s.Cases {
		if len(c.Patterns) == 0 {
			hasDefault = true
		}
		caseEntry := next
		if len(c.Body) > 0 {
			caseEntry = b.getNode(c.Body[0])
		}
		b.flowTo(n, caseEntry, caseLabel(c))
		if len(c.Body) == 0 {
			continue
		}
		b.buildBlockFrom(n, c.Body, next)
		if c.Fallthrough && i+1 < len(s.Cases) {
			last := c.Body[len(c.Body)-1]
			nextCaseEntry := next
			if nb := s.Cases[i+1].Body; len(nb) > 0 {
				nextCaseEntry = b.getNode(nb[0])
			}
			b.flowTo(b.getNode(last), nextCaseEntry, "fallthrough")
		}
	}
	if !hasDefault {
		b.flowTo(n, next, "")
	}
	b.resolveBreaks(next, "")
}

func caseLabel(c swiftast.SwitchCase) string {
	if len(c.Patterns) == 0 {
		return "default"
	}
	return "case"
}

func (b *builder) buildWhile(n *Node, s *swiftast.WhileStmt, next *Node) {
	bodyEntry := blockEntry(s.Body, n)
	b.flowTo(n, bodyEntry, "true")
	b.flowTo(n, next, "false")
	b.buildLoopBody(n, s.Body, n, next)
}

func (b *builder) buildRepeatWhile(n *Node, s *swiftast.RepeatWhileStmt, next *Node) {
	bodyEntry := blockEntry(s.Body, n)
	b.flowTo(n, bodyEntry, "")
	b.buildLoopBody(n, s.Body, n, next)
	// the repeat-while condition itself is represented by n: after the
	// body completes it loops back to n, which then exits to next.
	b.flowTo(n, next, "false")
}

func (b *builder) buildForIn(n *Node, s *swiftast.ForInStmt, next *Node) {
	bodyEntry := blockEntry(s.Body, n)
	b.flowTo(n, bodyEntry, "has-next")
	b.flowTo(n, next, "exhausted")
	b.buildLoopBody(n, s.Body, n, next)
}

// buildLoopBody builds a loop's body block, wiring its fall-off-the-end
// edge back to header, and resolves any break/continue discovered inside
// it (spec 4.3: "break targets the loop's join; continue targets the
// header").
func (b *builder) buildLoopBody(header *Node, body []swiftast.Statement, backTo, join *Node) {
	if len(body) == 0 {
		return
	}
	b.buildBlockFrom(header, body, backTo)
	b.resolveBreaksAndContinues(join, backTo, "")
}

// resolveBreaks claims every pending unlabeled break (or one matching
// target) and wires it to join; used by switch, which has no continue
// target of its own.
func (b *builder) resolveBreaks(join *Node, target string) {
	remaining := b.branches[:0]
	for _, br := range b.branches {
		if br.isBreak && (br.target == "" || br.target == target) {
			b.flowTo(br.node, join, "break")
		} else {
			remaining = append(remaining, br)
		}
	}
	b.branches = remaining
}

// resolveBreaksAndContinues claims both break and continue for a loop.
func (b *builder) resolveBreaksAndContinues(join, header *Node, target string) {
	remaining := b.branches[:0]
	for _, br := range b.branches {
		switch {
		case br.target != "" && br.target != target:
			remaining = append(remaining, br)
		case br.isBreak:
			b.flowTo(br.node, join, "break")
		default:
			b.flowTo(br.node, header, "continue")
		}
	}
	b.branches = remaining
}
