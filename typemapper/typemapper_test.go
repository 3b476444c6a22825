// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package typemapper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinMappings(t *testing.T) {
	ctx := NewContext()
	cases := map[string]string{
		"NSString *": "String",
		"BOOL":       "Bool",
		"NSInteger":  "Int",
		"void":       "Void",
	}
	for spelling, want := range cases {
		require.Equal(t, want, string(Map(ctx, spelling)), spelling)
	}
}

func TestGenericArray(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, "[String]", string(Map(ctx, "NSArray<NSString *> *")))
	require.Equal(t, "[NSNumber]", string(Map(ctx, "NSMutableArray<NSNumber *>*")))
}

func TestIDProtocol(t *testing.T) {
	ctx := NewContext()
	ctx.AddProtocol("Renderable")
	require.Equal(t, "Renderable", string(Map(ctx, "id<Renderable>")))
}

func TestBlockType(t *testing.T) {
	ctx := NewContext()
	got := Map(ctx, "void (^)(NSString *, BOOL)")
	require.Equal(t, "(String, Bool) -> Void", string(got))
}

func TestPrimitivePointer(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, "UnsafeMutablePointer<Int32>", string(Map(ctx, "int *")))
}

func TestObjectPointerIsBareReference(t *testing.T) {
	ctx := NewContext()
	ctx.AddClass("Widget")
	require.Equal(t, "Widget", string(Map(ctx, "Widget *")))
}

func TestUnknownPassesThrough(t *testing.T) {
	ctx := NewContext()
	require.Equal(t, "CLLocationManager", string(Map(ctx, "CLLocationManager")))
}
