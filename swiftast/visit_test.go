// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swiftast

import "testing"

func TestWalkStatementsFlattensNesting(t *testing.T) {
	inner := &ExpressionStmt{X: &IdentifierExpr{Name: "a"}}
	ifStmt := &IfStmt{
		Cond: &IdentifierExpr{Name: "c"},
		Then: []Statement{inner},
	}
	loop := &WhileStmt{
		Cond: &IdentifierExpr{Name: "c"},
		Body: []Statement{ifStmt},
	}

	var seen []Statement
	WalkStatements(loop, func(s Statement) bool {
		seen = append(seen, s)
		return true
	})

	if len(seen) != 3 {
		t.Fatalf("expected 3 statements visited, got %d", len(seen))
	}
	if seen[0] != loop || seen[1] != ifStmt || seen[2] != inner {
		t.Errorf("unexpected visit order: %v", seen)
	}
}

func TestWalkStatementsStopsWhenVisitReturnsFalse(t *testing.T) {
	inner := &ExpressionStmt{X: &IdentifierExpr{Name: "a"}}
	ifStmt := &IfStmt{Then: []Statement{inner}}

	var seen int
	WalkStatements(ifStmt, func(s Statement) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("expected walk to stop after root, visited %d nodes", seen)
	}
}

func TestExpressionsInForAssignmentTargetCheck(t *testing.T) {
	cond := &BinaryExpr{LHS: &IdentifierExpr{Name: "i"}, Op: "<", RHS: &ConstantExpr{Kind: IntConstant, Text: "10"}}
	stmt := &WhileStmt{Cond: cond}

	exprs := ExpressionsIn(stmt)
	if len(exprs) != 1 || exprs[0] != cond {
		t.Fatalf("expected exactly the while condition, got %v", exprs)
	}
}

func TestResolvedTypeDefaultsToUnresolved(t *testing.T) {
	id := &IdentifierExpr{Name: "x"}
	if id.Type().Resolved() {
		t.Error("expected newly constructed expression to have an unresolved type")
	}
	id.SetType(SwiftType("Int"))
	if !id.Type().Resolved() || id.Type() != "Int" {
		t.Errorf("SetType did not take effect: got %q", id.Type())
	}
}
