// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package typemapper translates Objective-C type spellings into Swift
// types (spec.md section 4.5). Translation is a pure function of the
// spelling and a Context carrying the protocol and class name tables
// collected from the program being translated; the package does no I/O
// and keeps no state beyond one Context's lifetime.
package typemapper

import (
	"strings"

	"github.com/godoctor/swiftrewriter/swiftast"
)

// Context carries the name tables collected from the program: which
// identifiers are known protocols and which are known classes. Map consults
// them only for a bare identifier, and returns a known name unchanged just
// as it does an unknown one; `id<P>` maps to `P` whether or not P is in the
// protocol table.
type Context struct {
	protocols map[string]bool
	classes   map[string]bool
}

// NewContext returns an empty Context. Callers populate it with
// AddProtocol/AddClass as the program's types are discovered, typically
// once per file during the listener/file-collection walk (spec section 6).
func NewContext() *Context {
	return &Context{protocols: map[string]bool{}, classes: map[string]bool{}}
}

func (c *Context) AddProtocol(name string) { c.protocols[name] = true }
func (c *Context) AddClass(name string)    { c.classes[name] = true }

func (c *Context) IsKnownProtocol(name string) bool { return c.protocols[name] }
func (c *Context) IsKnownClass(name string) bool    { return c.classes[name] }

// builtin is a direct Objective-C spelling -> Swift type entry. Table-driven
// so a new framework type is a new row, never a new code path (spec 4.5 /
// SPEC_FULL.md section 7).
var builtins = map[string]swiftast.SwiftType{
	"NSString":           "String",
	"NSMutableString":    "String",
	"NSNumber":           "NSNumber",
	"NSArray":            "[Any]",
	"NSMutableArray":     "[Any]",
	"NSDictionary":       "[AnyHashable: Any]",
	"NSMutableDictionary": "[AnyHashable: Any]",
	"NSSet":              "Set<AnyHashable>",
	"NSMutableSet":       "Set<AnyHashable>",
	"NSObject":           "NSObject",
	"NSError":            "Error",
	"BOOL":               "Bool",
	"NSInteger":          "Int",
	"NSUInteger":         "UInt",
	"CGFloat":            "CGFloat",
	"double":             "Double",
	"float":              "Float",
	"int":                "Int32",
	"long":                "Int",
	"short":               "Int16",
	"char":               "Int8",
	"id":                 "Any",
	"void":               "Void",
	"instancetype":       "Self",
}

// primitivePointerTargets is the set of primitive spellings that, when
// seen behind a `*`, map to UnsafeMutablePointer<T> rather than an
// object-reference type (spec 4.5: "pointers to primitive ->
// UnsafeMutablePointer<T>").
var primitivePointerTargets = map[string]swiftast.SwiftType{
	"int":    "Int32",
	"long":   "Int",
	"short":  "Int16",
	"char":   "Int8",
	"double": "Double",
	"float":  "Float",
	"void":   "Void",
}

// Map translates an Objective-C type spelling, as already parsed out of a
// declaration by the caller, into a Swift type. Unknown names pass through
// unchanged per spec 4.5; Map never fails and never needs a diagnostic of
// its own — an unmapped name surfacing in emitted Swift is visible to the
// user directly in the output, which is the documented fallback.
func Map(ctx *Context, spelling string) swiftast.SwiftType {
	spelling = strings.TrimSpace(spelling)

	if t, ok := genericArray(ctx, spelling); ok {
		return t
	}
	if t, ok := idProtocol(ctx, spelling); ok {
		return t
	}
	if t, ok := blockType(ctx, spelling); ok {
		return t
	}
	if strings.HasSuffix(spelling, "*") {
		return pointerType(ctx, strings.TrimSpace(strings.TrimSuffix(spelling, "*")))
	}
	if t, ok := builtins[spelling]; ok {
		return t
	}
	if ctx.IsKnownProtocol(spelling) || ctx.IsKnownClass(spelling) {
		return swiftast.SwiftType(spelling)
	}
	return swiftast.SwiftType(spelling)
}

// genericArray recognises `NSArray<T>*`/`NSArray *<T>` spellings and maps
// them to a Swift array type `[T]`, recursively mapping the element type.
func genericArray(ctx *Context, spelling string) (swiftast.SwiftType, bool) {
	base, elem, ok := splitGeneric(spelling, "NSArray")
	if !ok {
		base, elem, ok = splitGeneric(spelling, "NSMutableArray")
	}
	if !ok {
		return "", false
	}
	_ = base
	return swiftast.SwiftType("[" + string(Map(ctx, elem)) + "]"), true
}

// splitGeneric reports whether spelling is `prefix<elem>` or
// `prefix *<elem>`, trimming any pointer asterisk and whitespace.
func splitGeneric(spelling, prefix string) (base, elem string, ok bool) {
	s := strings.TrimSuffix(strings.TrimSpace(spelling), "*")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, prefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(s, prefix))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "*"))
	if !strings.HasPrefix(rest, "<") || !strings.HasSuffix(rest, ">") {
		return "", "", false
	}
	elem = strings.TrimSuffix(strings.TrimPrefix(rest, "<"), ">")
	return prefix, strings.TrimSpace(elem), true
}

// idProtocol recognises `id<P>`, mapping to the protocol type P itself
// (spec 4.5); P need not be in the known-protocol table for the syntactic
// form to apply; the table only disambiguates plain identifiers.
func idProtocol(ctx *Context, spelling string) (swiftast.SwiftType, bool) {
	if !strings.HasPrefix(spelling, "id<") || !strings.HasSuffix(spelling, ">") {
		return "", false
	}
	proto := strings.TrimSuffix(strings.TrimPrefix(spelling, "id<"), ">")
	return swiftast.SwiftType(strings.TrimSpace(proto)), true
}

// blockType recognises an Objective-C block spelling of the shape
// `ReturnType (^)(ArgTypes...)` and maps it to a Swift function type
// `(ArgTypes...) -> ReturnType`.
func blockType(ctx *Context, spelling string) (swiftast.SwiftType, bool) {
	markerIdx := strings.Index(spelling, "(^)")
	if markerIdx < 0 {
		return "", false
	}
	ret := strings.TrimSpace(spelling[:markerIdx])
	rest := strings.TrimSpace(spelling[markerIdx+len("(^)"):])
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", false
	}
	argsText := strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")")
	var args []string
	if strings.TrimSpace(argsText) != "" {
		for _, a := range strings.Split(argsText, ",") {
			args = append(args, string(Map(ctx, a)))
		}
	}
	return swiftast.SwiftType("(" + strings.Join(args, ", ") + ") -> " + string(Map(ctx, ret))), true
}

// pointerType maps a dereferenced pointer target: a known primitive
// becomes UnsafeMutablePointer<T>, anything else (an object type) is
// mapped as a bare reference, since Swift class instances are already
// references and need no pointer wrapper.
func pointerType(ctx *Context, target string) swiftast.SwiftType {
	if t, ok := primitivePointerTargets[target]; ok {
		return swiftast.SwiftType("UnsafeMutablePointer<" + string(t) + ">")
	}
	return Map(ctx, target)
}
