// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lowering translates Objective-C parse-tree contexts, delivered
// through the objcparse.Reader boundary, into the Swift-shaped statement
// and expression AST defined by swiftast (spec.md section 4.1). Every
// entry point is total: a context either translates or degrades to an
// UnknownStmt wrapping its verbatim text, never a panic (spec section 7,
// category 1, "translation gaps").
package lowering

import (
	"strings"

	"github.com/godoctor/swiftrewriter/objcparse"
	"github.com/godoctor/swiftrewriter/swiftast"
	"github.com/godoctor/swiftrewriter/typemapper"
)

// LowerCompound translates every child of a compoundStatement node into a
// flat Swift statement list, splicing any immediately nested compound
// block into the result instead of wrapping it in its own CompoundStmt
// (spec 3.2: "a CompoundStatement directly nested inside another
// CompoundStatement is flattened").
func LowerCompound(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) []swiftast.Statement {
	if node == nil {
		return nil
	}
	var out []swiftast.Statement
	for _, child := range node.Children() {
		if child.Rule() == "compoundStatement" {
			out = append(out, LowerCompound(r, ctx, child)...)
			continue
		}
		out = append(out, LowerStatement(r, ctx, child))
	}
	return out
}

// LowerStatement translates one statement-level parse-tree node,
// dispatching on its grammar rule name. A node whose rule is not
// recognised becomes an UnknownStmt preserving the original source text,
// satisfying the lowering-totality property (spec section 8).
func LowerStatement(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	if node == nil {
		return &swiftast.UnknownStmt{RuleName: "nil"}
	}
	switch node.Rule() {
	case "compoundStatement":
		return &swiftast.CompoundStmt{List: LowerCompound(r, ctx, node)}
	case "expressionStatement":
		return &swiftast.ExpressionStmt{X: exprChild(r, ctx, node, "expr")}
	case "declarationStatement":
		return lowerDeclaration(r, ctx, node)
	case "ifStatement":
		return lowerIf(r, ctx, node)
	case "switchStatement":
		return lowerSwitch(r, ctx, node)
	case "whileStatement":
		return &swiftast.WhileStmt{
			Cond: exprChild(r, ctx, node, "condition"),
			Body: LowerCompound(r, ctx, node.Child("body", 0)),
		}
	case "doWhileStatement":
		return &swiftast.RepeatWhileStmt{
			Body: LowerCompound(r, ctx, node.Child("body", 0)),
			Cond: exprChild(r, ctx, node, "condition"),
		}
	case "forStatement":
		return lowerFor(r, ctx, node)
	case "forInStatement":
		return &swiftast.ForInStmt{
			Var:  textOfChild(node, "loopVar"),
			Seq:  exprChild(r, ctx, node, "loopSeq"),
			Body: LowerCompound(r, ctx, node.Child("body", 0)),
		}
	case "returnStatement":
		return &swiftast.ReturnStmt{X: exprChild(r, ctx, node, "value")}
	case "breakStatement":
		return &swiftast.BreakStmt{Target: textOfChild(node, "label")}
	case "continueStatement":
		return &swiftast.ContinueStmt{Target: textOfChild(node, "label")}
	case "synchronizedStatement":
		return lowerSynchronized(r, ctx, node)
	case "autoreleasepoolStatement":
		return &swiftast.DoStmt{Body: LowerCompound(r, ctx, node.Child("body", 0))}
	default:
		return &swiftast.UnknownStmt{OriginalText: node.Text(), RuleName: node.Rule()}
	}
}

func textOfChild(node objcparse.ParseNode, rule string) string {
	if c := node.Child(rule, 0); c != nil {
		return c.Text()
	}
	return ""
}

// unwrapSingle follows a positional accessor node down to the real
// expression/statement it wraps. Some parse-tree readers expose a
// position (e.g. "condition", "lhs") as a dedicated single-child rule
// around the concrete node; others return the concrete node directly.
// Unwrapping once, here, lets lowering's dispatch-on-Rule() work either
// way without caring which convention a given Reader implementation uses.
func unwrapSingle(node objcparse.ParseNode) objcparse.ParseNode {
	if node == nil {
		return nil
	}
	if kids := node.Children(); len(kids) == 1 {
		return kids[0]
	}
	return node
}

// exprChild fetches node's child at the given positional role and lowers
// it as an expression, unwrapping a single-child accessor wrapper first.
func exprChild(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode, role string) swiftast.Expression {
	return LowerExpression(r, ctx, unwrapSingle(node.Child(role, 0)))
}

func lowerIf(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	s := &swiftast.IfStmt{Cond: exprChild(r, ctx, node, "condition")}
	s.Then = LowerCompound(r, ctx, node.Child("then", 0))
	if elseNode := node.Child("else", 0); elseNode != nil {
		s.Else = LowerCompound(r, ctx, elseNode)
	}
	return s
}

// lowerSwitch translates every switchCase child into a swiftast.SwitchCase,
// synthesising a `[.break]` default when the input had none (spec 3.2,
// 4.1).
func lowerSwitch(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	s := &swiftast.SwitchStmt{Subject: exprChild(r, ctx, node, "subject")}
	hasDefault := false
	for _, child := range node.Children() {
		if child.Rule() != "switchCase" {
			continue
		}
		c := swiftast.SwitchCase{}
		for _, label := range child.Children() {
			if label.Rule() == "casePattern" {
				c.Patterns = append(c.Patterns, LowerExpression(r, ctx, unwrapSingle(label)))
			}
		}
		if len(c.Patterns) == 0 {
			hasDefault = true
		}
		if body := child.Child("caseBody", 0); body != nil {
			c.Body = LowerCompound(r, ctx, body)
		}
		s.Cases = append(s.Cases, c)
	}
	if !hasDefault {
		s.Cases = append(s.Cases, swiftast.SwitchCase{Body: []swiftast.Statement{&swiftast.BreakStmt{}}})
	}
	return s
}

// lowerFor attempts the counted-loop recognition spec 4.1 describes;
// failing that it emits the general desugaring, threading the step
// through a defer so it still runs on continue and early break. A missing
// cond lowers to the literal `true`; a missing init or step is left out of
// the generated `do { init; while cond { ... } }`.
func lowerFor(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	initNode := unwrapSingle(node.Child("forInit", 0))
	condNode := unwrapSingle(node.Child("forCond", 0))
	stepNode := unwrapSingle(node.Child("forStep", 0))
	bodyNode := node.Child("body", 0)
	body := LowerCompound(r, ctx, bodyNode)

	if v, start, limit, closed, ok := recognizeCountedLoop(r, ctx, initNode, condNode, stepNode, body); ok {
		return &swiftast.ForInStmt{Var: v, Seq: countedRangeExpr(start, limit, closed), Body: body, ClosedEnd: closed}
	}

	cond := LowerExpression(r, ctx, condNode)
	if cond == nil {
		cond = &swiftast.ConstantExpr{Kind: swiftast.BoolConstant, Text: "true"}
	}
	loopBody := body
	if stepNode != nil {
		step := &swiftast.ExpressionStmt{X: LowerExpression(r, ctx, stepNode)}
		loopBody = append([]swiftast.Statement{&swiftast.DeferStmt{Body: []swiftast.Statement{step}}}, body...)
	}
	innerLoop := &swiftast.WhileStmt{Cond: cond, Body: loopBody}

	var outer []swiftast.Statement
	if initNode != nil {
		outer = append(outer, lowerDeclaration(r, ctx, initNode))
	}
	outer = append(outer, innerLoop)
	return &swiftast.DoStmt{Body: outer}
}

// countedRangeExpr builds the Swift range literal `a..<b` or `a...b`.
func countedRangeExpr(start, limit swiftast.Expression, closed bool) swiftast.Expression {
	op := "..<"
	if closed {
		op = "..."
	}
	return &swiftast.BinaryExpr{LHS: start, RHS: limit, Op: op}
}

// recognizeCountedLoop checks the required shape from spec 4.1: init is a
// single integer declaration `v = a`; cond is `v < b` or `v <= b` with b an
// integer literal; step is `v += 1`; and v is never an assignment target
// anywhere in body (including nested blocks).
func recognizeCountedLoop(r objcparse.Reader, ctx *typemapper.Context, initNode, condNode, stepNode objcparse.ParseNode, body []swiftast.Statement) (v string, start, limit swiftast.Expression, closed, ok bool) {
	decl, isDecl := lowerDeclaration(r, ctx, initNode).(*swiftast.VarDeclStmt)
	if !isDecl || decl.Init == nil {
		return "", nil, nil, false, false
	}
	if declType := string(decl.Type); !strings.HasPrefix(declType, "Int") && !strings.HasPrefix(declType, "UInt") {
		return "", nil, nil, false, false
	}
	v = decl.Name

	cond, isBinary := LowerExpression(r, ctx, condNode).(*swiftast.BinaryExpr)
	if !isBinary || (cond.Op != "<" && cond.Op != "<=") {
		return "", nil, nil, false, false
	}
	lhsID, isID := cond.LHS.(*swiftast.IdentifierExpr)
	if !isID || lhsID.Name != v {
		return "", nil, nil, false, false
	}
	if c, isConst := cond.RHS.(*swiftast.ConstantExpr); !isConst || c.Kind != swiftast.IntConstant {
		return "", nil, nil, false, false
	}

	step := LowerExpression(r, ctx, stepNode)
	if !isIncrementOfOne(step, v) {
		return "", nil, nil, false, false
	}

	if isAssignedTo(v, body) {
		return "", nil, nil, false, false
	}

	return v, decl.Init, cond.RHS, cond.Op == "<=", true
}

// isIncrementOfOne reports whether step is `v += 1` or `v++`.
func isIncrementOfOne(step swiftast.Expression, v string) bool {
	switch s := step.(type) {
	case *swiftast.AssignmentExpr:
		lhs, isID := s.LHS.(*swiftast.IdentifierExpr)
		if !isID || lhs.Name != v || s.Op != "+=" {
			return false
		}
		rhs, isConst := s.RHS.(*swiftast.ConstantExpr)
		return isConst && rhs.Text == "1"
	case *swiftast.UnaryExpr:
		operand, isID := s.Operand.(*swiftast.IdentifierExpr)
		return isID && operand.Name == v && s.Op == "++"
	default:
		return false
	}
}

// isAssignedTo reports whether v appears as an assignment target anywhere
// in body, walking every nested statement and every expression reachable
// from each (spec 4.1: "checked by walking all expression positions
// including nested blocks").
func isAssignedTo(v string, body []swiftast.Statement) bool {
	found := false
	check := func(e swiftast.Expression) bool {
		switch x := e.(type) {
		case *swiftast.AssignmentExpr:
			if id, ok := x.LHS.(*swiftast.IdentifierExpr); ok && id.Name == v {
				found = true
			}
		case *swiftast.UnaryExpr:
			if (x.Op == "++" || x.Op == "--") && !found {
				if id, ok := x.Operand.(*swiftast.IdentifierExpr); ok && id.Name == v {
					found = true
				}
			}
		}
		return true
	}
	for _, stmt := range body {
		swiftast.WalkStatements(stmt, func(s swiftast.Statement) bool {
			for _, e := range swiftast.ExpressionsIn(s) {
				swiftast.WalkExpressions(e, check)
			}
			return true
		})
	}
	return found
}

// lowerSynchronized lowers `@synchronized(e) S` per spec 4.1: a fresh
// `_lockTarget` local captures the monitor once, entry happens before the
// matching defer so objc_sync_exit always runs.
func lowerSynchronized(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	lockExpr := exprChild(r, ctx, node, "lockExpr")
	lockDecl := &swiftast.VarDeclStmt{Name: "_lockTarget", IsConst: true, Init: lockExpr}
	enter := &swiftast.ExpressionStmt{X: &swiftast.PostfixCallExpr{
		Callee: &swiftast.IdentifierExpr{Name: "objc_sync_enter"},
		Args:   []swiftast.Expression{&swiftast.IdentifierExpr{Name: "_lockTarget"}},
	}}
	exit := &swiftast.DeferStmt{Body: []swiftast.Statement{&swiftast.ExpressionStmt{X: &swiftast.PostfixCallExpr{
		Callee: &swiftast.IdentifierExpr{Name: "objc_sync_exit"},
		Args:   []swiftast.Expression{&swiftast.IdentifierExpr{Name: "_lockTarget"}},
	}}}}
	body := LowerCompound(r, ctx, node.Child("body", 0))
	return &swiftast.DoStmt{Body: append([]swiftast.Statement{lockDecl, enter, exit}, body...)}
}

// lowerDeclaration translates one declarationStatement node into a
// VarDeclStmt. The spelled-out type text is re-mapped through typemapper;
// ownership is derived from the __weak/__unsafe_unretained qualifiers
// tokenized into the declaredType text by the front-end, and constness
// from a "const" anywhere in that text.
func lowerDeclaration(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Statement {
	if node == nil {
		return &swiftast.UnknownStmt{RuleName: "missingDeclaration"}
	}
	typeText := textOfChild(node, "declaredType")
	name := textOfChild(node, "declaredName")
	var initExpr swiftast.Expression
	if initNode := node.Child("initializer", 0); initNode != nil {
		initExpr = LowerExpression(r, ctx, unwrapSingle(initNode))
	}

	ownership := swiftast.OwnershipStrong
	switch {
	case strings.Contains(typeText, "__weak"):
		ownership = swiftast.OwnershipWeak
	case strings.Contains(typeText, "__unsafe_unretained"):
		ownership = swiftast.OwnershipUnowned
	}
	isConst := strings.Contains(typeText, "const")
	cleaned := strings.TrimSpace(strings.NewReplacer(
		"__weak", "", "__strong", "", "__unsafe_unretained", "", "const", "",
	).Replace(typeText))

	return &swiftast.VarDeclStmt{
		Name:      name,
		Type:      typemapper.Map(ctx, cleaned),
		Init:      initExpr,
		IsConst:   isConst,
		Ownership: ownership,
	}
}
