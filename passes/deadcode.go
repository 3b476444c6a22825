// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/godoctor/swiftrewriter/cfg"
	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
)

// eliminateDeadCode is pass 6 (spec 4.4): build a CFG per method body on
// demand and remove any statement whose node is unreachable from entry.
// This is the one pass that touches the cfg package; every other pass
// works purely on the intention graph and swiftast trees.
type eliminateDeadCode struct{}

func (*eliminateDeadCode) Name() string { return "eliminate-dead-code" }

func (*eliminateDeadCode) Run(p *intention.Program) bool {
	changed := false
	for _, m := range p.AllMethods() {
		if pruneBody(m.Body) {
			changed = true
		}
	}
	for _, t := range p.AllTypes() {
		for _, prop := range t.Properties() {
			if pruneBody(prop.Getter) {
				changed = true
			}
			if pruneBody(prop.Setter) {
				changed = true
			}
		}
	}
	return changed
}

func pruneBody(body *intention.Body) bool {
	if body == nil || len(body.Block) == 0 {
		return false
	}
	g := cfg.Build(body.Block)
	reachable := make(map[swiftast.Statement]bool)
	for _, n := range g.Nodes() {
		if n.Stmt != nil && g.Reachable(n) {
			reachable[n.Stmt] = true
		}
	}
	kept, changed := filterReachable(body.Block, reachable)
	body.Block = kept
	return changed
}

// filterReachable drops every statement in stmts not marked reachable,
// recursing into the bodies of nested control constructs that share the
// same outer CFG (if/switch/loop/do). A DeferStmt or LocalFunctionStmt's
// body is built as its own independent CFG (cfg/builder.go's pushDefer and
// the LocalFunctionStmt case in buildStmt), so it carries no node in the
// outer reachable set and is left untouched here — only the defer/nested
// function statement itself is subject to pruning, as a whole.
func filterReachable(stmts []swiftast.Statement, reachable map[swiftast.Statement]bool) ([]swiftast.Statement, bool) {
	changed := false
	out := make([]swiftast.Statement, 0, len(stmts))
	for _, s := range stmts {
		if !reachable[s] {
			changed = true
			continue
		}
		if recursePrune(s, reachable) {
			changed = true
		}
		out = append(out, s)
	}
	return out, changed
}

func recursePrune(stmt swiftast.Statement, reachable map[swiftast.Statement]bool) bool {
	var changed bool
	switch s := stmt.(type) {
	case *swiftast.CompoundStmt:
		s.List, changed = filterReachable(s.List, reachable)
	case *swiftast.IfStmt:
		var c1, c2 bool
		s.Then, c1 = filterReachable(s.Then, reachable)
		s.Else, c2 = filterReachable(s.Else, reachable)
		changed = c1 || c2
	case *swiftast.SwitchStmt:
		for i := range s.Cases {
			var c bool
			s.Cases[i].Body, c = filterReachable(s.Cases[i].Body, reachable)
			changed = changed || c
		}
	case *swiftast.WhileStmt:
		s.Body, changed = filterReachable(s.Body, reachable)
	case *swiftast.RepeatWhileStmt:
		s.Body, changed = filterReachable(s.Body, reachable)
	case *swiftast.ForInStmt:
		s.Body, changed = filterReachable(s.Body, reachable)
	case *swiftast.DoStmt:
		s.Body, changed = filterReachable(s.Body, reachable)
	}
	return changed
}
