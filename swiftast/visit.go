// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swiftast

// WalkStatements calls visit for stmt and, recursively, for every
// Statement nested inside it (compound bodies, if/else branches, loop
// bodies, switch case bodies, defer bodies). It replaces an inherited
// virtual-visitor chain with a flat dispatch over the closed Statement sum
// type (Design Notes: "Visitor dispatch"), so adding a new Statement kind
// is a single new case here rather than a new method on every visitor.
//
// visit is called on stmt itself before its children. If visit returns
// false, stmt's children are not walked.
func WalkStatements(stmt Statement, visit func(Statement) bool) {
	if stmt == nil || !visit(stmt) {
		return
	}
	switch s := stmt.(type) {
	case *CompoundStmt:
		walkAll(s.List, visit)
	case *IfStmt:
		walkAll(s.Then, visit)
		walkAll(s.Else, visit)
	case *SwitchStmt:
		for _, c := range s.Cases {
			walkAll(c.Body, visit)
		}
	case *WhileStmt:
		walkAll(s.Body, visit)
	case *RepeatWhileStmt:
		walkAll(s.Body, visit)
	case *ForInStmt:
		walkAll(s.Body, visit)
	case *DoStmt:
		walkAll(s.Body, visit)
	case *DeferStmt:
		walkAll(s.Body, visit)
	case *LocalFunctionStmt:
		walkAll(s.Body, visit)
	case *ExpressionStmt, *VarDeclStmt, *ThrowStmt, *BreakStmt, *ContinueStmt,
		*FallthroughStmt, *ReturnStmt, *UnknownStmt:
		// leaves: no nested statements
	}
}

func walkAll(list []Statement, visit func(Statement) bool) {
	for _, s := range list {
		WalkStatements(s, visit)
	}
}

// WalkExpressions calls visit for expr and, recursively, for every
// Expression it contains. Same flat-dispatch rationale as WalkStatements.
func WalkExpressions(expr Expression, visit func(Expression) bool) {
	if expr == nil || !visit(expr) {
		return
	}
	switch e := expr.(type) {
	case *BinaryExpr:
		WalkExpressions(e.LHS, visit)
		WalkExpressions(e.RHS, visit)
	case *AssignmentExpr:
		WalkExpressions(e.LHS, visit)
		WalkExpressions(e.RHS, visit)
	case *PostfixCallExpr:
		WalkExpressions(e.Callee, visit)
		for _, a := range e.Args {
			WalkExpressions(a, visit)
		}
	case *PostfixSubscriptExpr:
		WalkExpressions(e.Base, visit)
		WalkExpressions(e.Index, visit)
	case *PostfixMemberExpr:
		WalkExpressions(e.Base, visit)
	case *UnaryExpr:
		WalkExpressions(e.Operand, visit)
	case *CastExpr:
		WalkExpressions(e.Operand, visit)
	case *TernaryExpr:
		WalkExpressions(e.Cond, visit)
		WalkExpressions(e.Then, visit)
		WalkExpressions(e.Else, visit)
	case *ParensExpr:
		WalkExpressions(e.Inner, visit)
	case *ConstantExpr, *IdentifierExpr, *BlockLiteralExpr:
		// BlockLiteralExpr's body is a statement list, not walked by
		// WalkExpressions; callers that need it use WalkStatements on
		// each statement of e.Body explicitly.
	}
}

// ExpressionsIn returns every Expression directly reachable from stmt's own
// fields (not recursing into nested statements' bodies). Used by the
// counted-loop recognizer and the assignment-target check, both of which
// need "is v written anywhere in these statements, including nested
// blocks" without caring about statement structure otherwise.
func ExpressionsIn(stmt Statement) []Expression {
	var out []Expression
	add := func(e Expression) {
		if e != nil {
			out = append(out, e)
		}
	}
	switch s := stmt.(type) {
	case *ExpressionStmt:
		add(s.X)
	case *VarDeclStmt:
		add(s.Init)
	case *IfStmt:
		add(s.Cond)
	case *SwitchStmt:
		add(s.Subject)
		for _, c := range s.Cases {
			out = append(out, c.Patterns...)
		}
	case *WhileStmt:
		add(s.Cond)
	case *RepeatWhileStmt:
		add(s.Cond)
	case *ForInStmt:
		add(s.Seq)
	case *ThrowStmt:
		add(s.X)
	case *ReturnStmt:
		add(s.X)
	}
	return out
}
