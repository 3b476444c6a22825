// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

import (
	"testing"

	"github.com/godoctor/swiftrewriter/swiftast"
	"github.com/stretchr/testify/require"
)

// TestParentBackEdgeSoundness exercises the universal invariant from
// spec.md section 8: for every intention I, I.parent is the unique
// intention that lists I as a child.
func TestParentBackEdgeSoundness(t *testing.T) {
	prog := NewProgram()
	file := NewFile("Widget.m", false)
	prog.AddFile(file)

	typ := NewType("Widget", ClassType)
	file.AddType(typ)
	require.Equal(t, Intention(file), typ.Parent())

	prop := NewProperty("count", swiftast.SwiftType("Int"))
	typ.AddProperty(prop)
	require.Equal(t, Intention(typ), prop.Parent())

	method := NewMethod(OrdinaryMethod, MethodSignature{Name: "reset"})
	typ.AddMethod(method)
	require.Equal(t, Intention(typ), method.Parent())
	require.Equal(t, Intention(method), method.Body.Parent())

	typ.RemoveProperty(prop)
	require.Nil(t, prop.Parent())
	require.Empty(t, typ.Properties())

	file.RemoveType(typ)
	require.Nil(t, typ.Parent())
	require.Empty(t, file.Types())
}

func TestInsertionPreservesSiblingOrder(t *testing.T) {
	typ := NewType("Widget", ClassType)
	a := NewProperty("a", "")
	b := NewProperty("b", "")
	c := NewProperty("c", "")
	typ.AddProperty(a)
	typ.AddProperty(c)
	typ.properties.insert(typ, 1, b)

	names := []string{}
	for _, p := range typ.Properties() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}

func TestMethodBySelectorIgnoresTypesAndNames(t *testing.T) {
	typ := NewType("Widget", ClassType)
	m := NewMethod(OrdinaryMethod, MethodSignature{
		Name:       "configure",
		ReturnType: "Bool",
		Params:     []Param{{Name: "value", Type: "Int"}},
	})
	typ.AddMethod(m)

	found := typ.MethodBySelector("configure", 1)
	require.Same(t, m, found)
	require.Nil(t, typ.MethodBySelector("configure", 2))
}

func TestMethodBySignatureDropsNullability(t *testing.T) {
	typ := NewType("Widget", ClassType)
	m := NewMethod(OrdinaryMethod, MethodSignature{
		Name:       "configure",
		ReturnType: "Bool?",
		Params:     []Param{{Name: "value", Type: "Int?"}},
	})
	typ.AddMethod(m)

	query := MethodSignature{
		Name:       "configure",
		ReturnType: "Bool",
		Params:     []Param{{Name: "v", Type: "Int"}},
	}
	require.Same(t, m, typ.MethodBySignature(query))
}

func TestCanonicalTypeRequiresExactlyOneFragment(t *testing.T) {
	prog := NewProgram()
	f1 := NewFile("Widget.h", true)
	f2 := NewFile("Widget.m", false)
	prog.AddFile(f1)
	prog.AddFile(f2)

	require.Nil(t, prog.CanonicalType("Widget"))

	t1 := NewType("Widget", ClassType)
	f1.AddType(t1)
	require.Same(t, t1, prog.CanonicalType("Widget"))

	t2 := NewType("Widget", ExtensionType)
	f2.AddType(t2)
	require.Nil(t, prog.CanonicalType("Widget"), "two fragments: not yet merged")
	require.Len(t, prog.TypeByName("Widget"), 2)
}

func TestGenerateMethodIntentionIsUnattached(t *testing.T) {
	desc := KnownMethod{
		Kind:      OrdinaryMethod,
		Signature: MethodSignature{Name: "synthesized"},
	}
	m := GenerateMethodIntention(desc)
	require.Nil(t, m.Parent())
	require.Equal(t, "synthesized", m.Signature.Name)
}
