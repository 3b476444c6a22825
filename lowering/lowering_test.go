// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lowering

import (
	"strings"
	"testing"

	"github.com/godoctor/swiftrewriter/objcparse"
	"github.com/godoctor/swiftrewriter/swiftast"
	"github.com/godoctor/swiftrewriter/typemapper"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// txtarFile returns the named file's contents from archive, or nil. Tests
// use this to pull the "want" section out of a fixture archive that bundles
// the illustrative Objective-C source alongside the expected result, the
// same pairing the teacher keeps as separate files under
// refactoring/testdata/<refactoring>/<NNN-name>/ but collapsed here into
// one readable file per case.
func txtarFile(archive *txtar.Archive, name string) []byte {
	for _, f := range archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func ident(rule, text string) *objcparse.FakeNode {
	return &objcparse.FakeNode{RuleName: rule, RawText: text}
}

func intConst(text string) *objcparse.FakeNode { return ident("intConstant", text) }

func TestCompoundFlattensNestedCompound(t *testing.T) {
	inner := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "a")}}}},
	}}
	outer := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{inner}}

	ctx := typemapper.NewContext()
	out := LowerCompound(nil, ctx, outer)
	require.Len(t, out, 1, "nested compound should splice, not nest")
	_, isExprStmt := out[0].(*swiftast.ExpressionStmt)
	require.True(t, isExprStmt)
}

func TestIfElseLowering(t *testing.T) {
	node := &objcparse.FakeNode{RuleName: "ifStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "condition", Kids: []*objcparse.FakeNode{ident("identifierExpr", "flag")}},
		{RuleName: "then", Kids: []*objcparse.FakeNode{
			{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "a")}}}},
		}},
		{RuleName: "else", Kids: []*objcparse.FakeNode{
			{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "b")}}}},
		}},
	}}

	ctx := typemapper.NewContext()
	stmt := LowerStatement(nil, ctx, node)
	ifStmt, ok := stmt.(*swiftast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestSwitchSynthesizesDefault(t *testing.T) {
	node := &objcparse.FakeNode{RuleName: "switchStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "subject", Kids: []*objcparse.FakeNode{ident("identifierExpr", "x")}},
		{RuleName: "switchCase", Kids: []*objcparse.FakeNode{
			{RuleName: "casePattern", Kids: []*objcparse.FakeNode{intConst("1")}},
			{RuleName: "caseBody", Kids: []*objcparse.FakeNode{
				{RuleName: "breakStatement"},
			}},
		}},
	}}

	ctx := typemapper.NewContext()
	stmt := LowerStatement(nil, ctx, node)
	sw, ok := stmt.(*swiftast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2, "explicit case plus synthesized default")
	last := sw.Cases[len(sw.Cases)-1]
	require.Empty(t, last.Patterns, "synthesized default has no patterns")
	require.Len(t, last.Body, 1)
	_, isBreak := last.Body[0].(*swiftast.BreakStmt)
	require.True(t, isBreak)
}

func TestSwitchKeepsExistingDefault(t *testing.T) {
	node := &objcparse.FakeNode{RuleName: "switchStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "subject", Kids: []*objcparse.FakeNode{ident("identifierExpr", "x")}},
		{RuleName: "switchCase", Kids: []*objcparse.FakeNode{
			{RuleName: "caseBody", Kids: []*objcparse.FakeNode{{RuleName: "breakStatement"}}},
		}},
	}}
	ctx := typemapper.NewContext()
	sw := LowerStatement(nil, ctx, node).(*swiftast.SwitchStmt)
	require.Len(t, sw.Cases, 1, "input already had a default; none synthesized")
}

// declNode builds a declarationStatement FakeNode for `int v = init`.
func declNode(typeText, name string, initNode *objcparse.FakeNode) *objcparse.FakeNode {
	kids := []*objcparse.FakeNode{
		{RuleName: "declaredType", RawText: typeText},
		{RuleName: "declaredName", RawText: name},
	}
	if initNode != nil {
		kids = append(kids, &objcparse.FakeNode{RuleName: "initializer", Kids: []*objcparse.FakeNode{initNode}})
	}
	return &objcparse.FakeNode{RuleName: "declarationStatement", Kids: kids}
}

func TestVariableDeclarationOwnershipAndConst(t *testing.T) {
	ctx := typemapper.NewContext()
	node := declNode("__weak const NSString *", "name", ident("stringConstant", "\"hi\""))
	stmt := LowerStatement(nil, ctx, node)
	decl, ok := stmt.(*swiftast.VarDeclStmt)
	require.True(t, ok)
	require.Equal(t, swiftast.OwnershipWeak, decl.Ownership)
	require.True(t, decl.IsConst)
	require.Equal(t, swiftast.SwiftType("String"), decl.Type)
}

func forNode(initN, condN, stepN, bodyStmts *objcparse.FakeNode) *objcparse.FakeNode {
	return &objcparse.FakeNode{RuleName: "forStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "forInit", Kids: []*objcparse.FakeNode{initN}},
		{RuleName: "forCond", Kids: []*objcparse.FakeNode{condN}},
		{RuleName: "forStep", Kids: []*objcparse.FakeNode{stepN}},
		{RuleName: "body", Kids: []*objcparse.FakeNode{bodyStmts}},
	}}
}

func binaryNode(rule, op string, lhs, rhs *objcparse.FakeNode) *objcparse.FakeNode {
	return &objcparse.FakeNode{RuleName: rule, Kids: []*objcparse.FakeNode{
		{RuleName: "lhs", Kids: []*objcparse.FakeNode{lhs}},
		{RuleName: "op", RawText: op},
		{RuleName: "rhs", Kids: []*objcparse.FakeNode{rhs}},
	}}
}

func TestCountedLoopRecognized(t *testing.T) {
	ctx := typemapper.NewContext()
	initN := &objcparse.FakeNode{RuleName: "declarationStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "declaredType", RawText: "int"},
		{RuleName: "declaredName", RawText: "i"},
		{RuleName: "initializer", Kids: []*objcparse.FakeNode{intConst("0")}},
	}}
	condN := binaryNode("binaryExpr", "<", ident("identifierExpr", "i"), intConst("10"))
	stepN := binaryNode("assignmentExpr", "+=", ident("identifierExpr", "i"), intConst("1"))
	body := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "noop")}}}},
	}}

	node := forNode(initN, condN, stepN, body)
	stmt := LowerStatement(nil, ctx, node)
	loop, ok := stmt.(*swiftast.ForInStmt)
	require.True(t, ok, "counted loop should recognize to a ForInStmt")
	require.Equal(t, "i", loop.Var)
	require.False(t, loop.ClosedEnd)
}

func TestCountedLoopNotRecognizedWhenBodyAssignsVar(t *testing.T) {
	ctx := typemapper.NewContext()
	initN := &objcparse.FakeNode{RuleName: "declarationStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "declaredType", RawText: "int"},
		{RuleName: "declaredName", RawText: "i"},
		{RuleName: "initializer", Kids: []*objcparse.FakeNode{intConst("0")}},
	}}
	condN := binaryNode("binaryExpr", "<", ident("identifierExpr", "i"), intConst("10"))
	stepN := binaryNode("assignmentExpr", "+=", ident("identifierExpr", "i"), intConst("1"))
	assignInBody := binaryNode("assignmentExpr", "=", ident("identifierExpr", "i"), intConst("5"))
	body := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{assignInBody}}}},
	}}

	node := forNode(initN, condN, stepN, body)
	stmt := LowerStatement(nil, ctx, node)
	_, isForIn := stmt.(*swiftast.ForInStmt)
	require.False(t, isForIn, "body reassigns the loop variable; must fall back to the general form")
	_, isDo := stmt.(*swiftast.DoStmt)
	require.True(t, isDo)
}

func TestSynchronizedLowersToDoWithDeferredExit(t *testing.T) {
	node := &objcparse.FakeNode{RuleName: "synchronizedStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "lockExpr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "self")}},
		{RuleName: "body", Kids: []*objcparse.FakeNode{
			{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "work")}}}},
		}},
	}}
	ctx := typemapper.NewContext()
	stmt := LowerStatement(nil, ctx, node)
	do, ok := stmt.(*swiftast.DoStmt)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(do.Body), 4, "lock decl, enter call, deferred exit, then body")
	_, isDecl := do.Body[0].(*swiftast.VarDeclStmt)
	require.True(t, isDecl)
	_, isDefer := do.Body[2].(*swiftast.DeferStmt)
	require.True(t, isDefer)
}

func TestForWithoutClausesOmitsInitAndStep(t *testing.T) {
	ctx := typemapper.NewContext()
	body := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "noop")}}}},
	}}
	node := &objcparse.FakeNode{RuleName: "forStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "body", Kids: []*objcparse.FakeNode{body}},
	}}

	stmt := LowerStatement(nil, ctx, node)
	do, ok := stmt.(*swiftast.DoStmt)
	require.True(t, ok)
	require.Len(t, do.Body, 1, "missing forInit: do-block should hold only the while loop, not a bogus declaration")

	loop, ok := do.Body[0].(*swiftast.WhileStmt)
	require.True(t, ok)
	cond, ok := loop.Cond.(*swiftast.ConstantExpr)
	require.True(t, ok)
	require.Equal(t, "true", cond.Text)
	require.Len(t, loop.Body, 1, "missing forStep: loop body should be just the original body, not a deferred step")
	_, isExprStmt := loop.Body[0].(*swiftast.ExpressionStmt)
	require.True(t, isExprStmt)
}

// TestForShapeAgainstArchiveFixture reads the expected lowered shape for
// an unbounded `for(;;)` loop out of a txtar archive instead of hardcoding
// it inline, in the spirit of bundling a source snippet with its expected
// result in one file.
func TestForShapeAgainstArchiveFixture(t *testing.T) {
	archive := txtar.Parse([]byte(`-- Widget.m --
- (void)spin {
    for (;;) {
        noop();
    }
}
-- want.txt --
while
`))
	want := strings.TrimSpace(string(txtarFile(archive, "want.txt")))

	ctx := typemapper.NewContext()
	body := &objcparse.FakeNode{RuleName: "compoundStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "expressionStatement", Kids: []*objcparse.FakeNode{{RuleName: "expr", Kids: []*objcparse.FakeNode{ident("identifierExpr", "noop")}}}},
	}}
	node := &objcparse.FakeNode{RuleName: "forStatement", Kids: []*objcparse.FakeNode{
		{RuleName: "body", Kids: []*objcparse.FakeNode{body}},
	}}

	stmt := LowerStatement(nil, ctx, node)
	require.Equal(t, want, describeForShape(stmt))
}

// describeForShape summarizes a lowered for-loop's do-block as the
// ordered list of statement kinds it contains, so a fixture's "want.txt"
// can assert the shape without reaching into AST internals.
func describeForShape(stmt swiftast.Statement) string {
	do, ok := stmt.(*swiftast.DoStmt)
	if !ok {
		return "not-do"
	}
	var kinds []string
	for _, s := range do.Body {
		switch s.(type) {
		case *swiftast.WhileStmt:
			kinds = append(kinds, "while")
		case *swiftast.VarDeclStmt:
			kinds = append(kinds, "init")
		}
	}
	return strings.Join(kinds, ",")
}

func TestUnrecognizedRuleBecomesUnknownStmt(t *testing.T) {
	node := &objcparse.FakeNode{RuleName: "someFutureObjCConstruct", RawText: "@mystery { }"}
	ctx := typemapper.NewContext()
	stmt := LowerStatement(nil, ctx, node)
	unk, ok := stmt.(*swiftast.UnknownStmt)
	require.True(t, ok)
	require.Equal(t, "@mystery { }", unk.OriginalText)
}
