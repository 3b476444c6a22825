// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// txtarFile returns the named file's contents from archive, or nil.
func txtarFile(archive *txtar.Archive, name string) []byte {
	for _, f := range archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	return nil
}

func ident(name string) *swiftast.IdentifierExpr { return &swiftast.IdentifierExpr{Name: name} }

func TestMergeDuplicateFragments(t *testing.T) {
	prog := intention.NewProgram()
	fh := intention.NewFile("Widget.h", true)
	fm := intention.NewFile("Widget.m", false)
	prog.AddFile(fh)
	prog.AddFile(fm)

	t1 := intention.NewType("Widget", intention.ClassType)
	fh.AddType(t1)
	p1 := intention.NewProperty("count", "Int")
	t1.AddProperty(p1)

	t2 := intention.NewType("Widget", intention.ExtensionType)
	fm.AddType(t2)
	p2 := intention.NewProperty("name", "String")
	t2.AddProperty(p2)

	pass := &mergeDuplicateFragments{}
	changed := pass.Run(prog)
	require.True(t, changed)
	require.Len(t, prog.TypeByName("Widget"), 1)

	canon := prog.CanonicalType("Widget")
	require.NotNil(t, canon)
	require.Len(t, canon.Properties(), 2)

	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestSynthesizeAccessorsFieldsSynthesizedProperties(t *testing.T) {
	typ := intention.NewType("Widget", intention.ClassType)
	prop := intention.NewProperty("count", "Int")
	prop.Mode = intention.SynthesizedProperty
	typ.AddProperty(prop)

	prog := wrap(typ)
	pass := &synthesizeAccessors{}
	require.True(t, pass.Run(prog))
	require.Equal(t, intention.FieldProperty, prop.Mode)
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestSynthesizeAccessorsCollapsesTrivialComputedProperty(t *testing.T) {
	typ := intention.NewType("Widget", intention.ClassType)
	prop := intention.NewProperty("count", "Int")
	prop.Mode = intention.ComputedProperty
	prop.Getter = intention.NewAccessorBody(prop)
	prop.Getter.Block = []swiftast.Statement{
		&swiftast.ReturnStmt{X: ident("_count")},
	}
	prop.Setter = intention.NewAccessorBody(prop)
	prop.Setter.Block = []swiftast.Statement{
		&swiftast.ExpressionStmt{X: &swiftast.AssignmentExpr{
			LHS: ident("_count"), Op: "=", RHS: ident("newValue"),
		}},
	}
	typ.AddProperty(prop)

	prog := wrap(typ)
	pass := &synthesizeAccessors{}
	require.True(t, pass.Run(prog))
	require.Equal(t, intention.FieldProperty, prop.Mode)
	require.Nil(t, prop.Getter)
	require.Nil(t, prop.Setter)
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestSynthesizeAccessorsLeavesNonTrivialComputedProperty(t *testing.T) {
	typ := intention.NewType("Widget", intention.ClassType)
	prop := intention.NewProperty("area", "Int")
	prop.Mode = intention.ComputedProperty
	prop.ReadOnly = true
	prop.Getter = intention.NewAccessorBody(prop)
	prop.Getter.Block = []swiftast.Statement{
		&swiftast.ReturnStmt{X: &swiftast.BinaryExpr{LHS: ident("width"), Op: "*", RHS: ident("height")}},
	}
	typ.AddProperty(prop)

	pass := &synthesizeAccessors{}
	require.False(t, pass.Run(wrap(typ)))
	require.Equal(t, intention.ComputedProperty, prop.Mode)
}



func TestPromoteReadonly(t *testing.T) {
	typ := intention.NewType("Widget", intention.ClassType)
	prop := intention.NewProperty("count", "Int")
	prop.Mode = intention.ComputedProperty
	prop.Attributes = []string{"readonly", "nonatomic"}
	prop.Setter = intention.NewAccessorBody(prop)
	typ.AddProperty(prop)

	prog := wrap(typ)
	pass := &promoteReadonly{}
	require.True(t, pass.Run(prog))
	require.True(t, prop.ReadOnly)
	require.Nil(t, prop.Setter)
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestResolveIdentifiers(t *testing.T) {
	prog, typ, m := oneMethodProgram()
	typ.AddProperty(intention.NewProperty("total", "Int"))

	localDecl := &swiftast.VarDeclStmt{Name: "x", Init: &swiftast.ConstantExpr{Kind: swiftast.IntConstant, Text: "1"}}
	useLocal := &swiftast.ExpressionStmt{X: ident("x")}
	useMember := &swiftast.ExpressionStmt{X: ident("total")}
	useParam := &swiftast.ExpressionStmt{X: ident("amount")}
	useUnknown := &swiftast.ExpressionStmt{X: ident("mystery")}
	m.Body.Block = []swiftast.Statement{localDecl, useLocal, useMember, useParam, useUnknown}

	pass := &resolveIdentifiers{}
	require.True(t, pass.Run(prog))

	require.Equal(t, swiftast.LocalBinding, useLocal.X.(*swiftast.IdentifierExpr).Resolved)
	require.Equal(t, swiftast.InstanceMemberBinding, useMember.X.(*swiftast.IdentifierExpr).Resolved)
	require.Equal(t, swiftast.ParameterBinding, useParam.X.(*swiftast.IdentifierExpr).Resolved)
	require.Equal(t, swiftast.UnresolvedBinding, useUnknown.X.(*swiftast.IdentifierExpr).Resolved)

	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestResolveIdentifiersLocalNotVisibleBeforeDeclaration(t *testing.T) {
	prog, _, m := oneMethodProgram()
	useBeforeDecl := &swiftast.ExpressionStmt{X: ident("x")}
	decl := &swiftast.VarDeclStmt{Name: "x"}
	m.Body.Block = []swiftast.Statement{useBeforeDecl, decl}

	pass := &resolveIdentifiers{}
	pass.Run(prog)
	require.Equal(t, swiftast.UnresolvedBinding, useBeforeDecl.X.(*swiftast.IdentifierExpr).Resolved)
}

func TestInferExpressionTypes(t *testing.T) {
	prog, typ, m := oneMethodProgram()
	typ.AddProperty(intention.NewProperty("total", "Int"))

	decl := &swiftast.VarDeclStmt{Name: "x", Init: &swiftast.ConstantExpr{Kind: swiftast.IntConstant, Text: "1"}}
	sum := &swiftast.BinaryExpr{LHS: ident("x"), Op: "+", RHS: ident("amount")}
	m.Body.Block = []swiftast.Statement{decl, &swiftast.ExpressionStmt{X: sum}}

	pass := &inferExpressionTypes{}
	require.True(t, pass.Run(prog))
	require.Equal(t, swiftast.SwiftType("Int"), sum.Type())

	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestEliminateDeadCode(t *testing.T) {
	prog, _, m := oneMethodProgram()
	unreachable := &swiftast.ExpressionStmt{X: ident("dead")}
	m.Body.Block = []swiftast.Statement{
		&swiftast.ReturnStmt{},
		unreachable,
	}

	pass := &eliminateDeadCode{}
	require.True(t, pass.Run(prog))
	require.Len(t, m.Body.Block, 1)
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestEliminateDeadCodeSkipsDeferSubgraph(t *testing.T) {
	prog, _, m := oneMethodProgram()
	deferStmt := &swiftast.DeferStmt{
		Body: []swiftast.Statement{&swiftast.ExpressionStmt{X: ident("cleanup")}},
	}
	m.Body.Block = []swiftast.Statement{deferStmt}

	pass := &eliminateDeadCode{}
	require.False(t, pass.Run(prog))
	require.Len(t, deferStmt.Body, 1)
}

// TestEliminateDeadCodeAgainstArchiveFixture reads the expected surviving
// statement count for a method whose body is an early `return` followed
// by an unreachable statement out of a txtar archive bundling the
// illustrative source alongside the expected result.
func TestEliminateDeadCodeAgainstArchiveFixture(t *testing.T) {
	archive := txtar.Parse([]byte(`-- Widget.m --
- (void)configure:(int)amount {
    return;
    dead();
}
-- want.txt --
kept=1
`))
	want := strings.TrimSpace(string(txtarFile(archive, "want.txt")))

	prog, _, m := oneMethodProgram()
	m.Body.Block = []swiftast.Statement{
		&swiftast.ReturnStmt{},
		&swiftast.ExpressionStmt{X: ident("dead")},
	}

	pass := &eliminateDeadCode{}
	pass.Run(prog)

	require.Equal(t, want, fmt.Sprintf("kept=%d", len(m.Body.Block)))
}

func TestNullabilityPropagationStripsOptionalInNonnullContext(t *testing.T) {
	prog := intention.NewProgram()
	f := intention.NewFile("Widget.m", false)
	prog.AddFile(f)
	typ := intention.NewType("Widget", intention.ClassType)
	typ.InNonnullContext = true
	f.AddType(typ)

	prop := intention.NewProperty("name", "String?")
	typ.AddProperty(prop)

	pass := &nullabilityPropagation{}
	require.True(t, pass.Run(prog))
	require.Equal(t, swiftast.SwiftType("String"), prop.Type)
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestNullabilityPropagationCallEdge(t *testing.T) {
	prog := intention.NewProgram()
	f := intention.NewFile("Widget.m", false)
	prog.AddFile(f)
	typ := intention.NewType("Widget", intention.ClassType)
	f.AddType(typ)

	getter := intention.NewMethod(intention.OrdinaryMethod, intention.MethodSignature{
		Name: "makeName", ReturnType: "String",
	})
	typ.AddMethod(getter)

	setter := intention.NewMethod(intention.OrdinaryMethod, intention.MethodSignature{Name: "configure"})
	assign := &swiftast.AssignmentExpr{
		LHS: &swiftast.PostfixMemberExpr{Base: ident("self"), Member: "name"},
		Op:  "=",
		RHS: &swiftast.PostfixCallExpr{
			Callee: &swiftast.PostfixMemberExpr{Base: ident("self"), Member: "makeName"},
		},
	}
	setter.Body.Block = []swiftast.Statement{&swiftast.ExpressionStmt{X: assign}}
	typ.AddMethod(setter)

	pass := &nullabilityPropagation{}
	require.True(t, pass.Run(prog))
	require.Equal(t, swiftast.SwiftType("String"), assign.Type())
	require.False(t, pass.Run(prog), "must be idempotent")
}

func TestRunToFixpointStopsWhenNothingChanges(t *testing.T) {
	prog, typ, _ := oneMethodProgram()
	prop := intention.NewProperty("count", "Int")
	prop.Mode = intention.SynthesizedProperty
	typ.AddProperty(prop)

	sweeps := RunToFixpoint(prog, Catalogue())
	require.Greater(t, sweeps, 0)
	require.LessOrEqual(t, sweeps, MaxIterations)
	require.Equal(t, intention.FieldProperty, prop.Mode)
}

// oneMethodProgram builds a minimal Program containing one File, one Type
// named "Widget" with one method "configure(amount:)", and returns all
// three for tests that need to mutate the method body directly.
func oneMethodProgram() (*intention.Program, *intention.Type, *intention.Method) {
	prog := intention.NewProgram()
	f := intention.NewFile("Widget.m", false)
	prog.AddFile(f)
	typ := intention.NewType("Widget", intention.ClassType)
	f.AddType(typ)
	m := intention.NewMethod(intention.OrdinaryMethod, intention.MethodSignature{
		Name:   "configure",
		Params: []intention.Param{{Name: "amount", Type: "Int"}},
	})
	typ.AddMethod(m)
	return prog, typ, m
}

// wrap builds a throwaway single-type Program so property-level pass tests
// don't need to repeat the File/Program boilerplate.
func wrap(typ *intention.Type) *intention.Program {
	prog := intention.NewProgram()
	f := intention.NewFile("Widget.m", false)
	prog.AddFile(f)
	f.AddType(typ)
	return prog
}
