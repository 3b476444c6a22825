// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
)

// synthesizeAccessors is pass 2 (spec 4.4): a property still carrying
// intention.SynthesizedProperty mode is materialised to a plain stored
// property, and a computed property whose getter/setter do nothing but
// shuttle a value to/from its backing ivar is collapsed the same way.
type synthesizeAccessors struct{}

func (*synthesizeAccessors) Name() string { return "synthesize-accessors" }

func (*synthesizeAccessors) Run(p *intention.Program) bool {
	changed := false
	for _, t := range p.AllTypes() {
		for _, prop := range t.Properties() {
			switch {
			case prop.Mode == intention.SynthesizedProperty:
				prop.Mode = intention.FieldProperty
				changed = true
			case prop.Mode == intention.ComputedProperty && isTrivialAccessor(prop):
				prop.Mode = intention.FieldProperty
				prop.Getter = nil
				prop.Setter = nil
				changed = true
			}
		}
	}
	return changed
}

// backingFieldName is the conventional Objective-C synthesized-ivar name
// for a property.
func backingFieldName(propertyName string) string { return "_" + propertyName }

// isTrivialAccessor reports whether prop's getter is exactly `return
// _name` and, unless prop is read-only, its setter is exactly `_name =
// newValue` — the shape a bare `@synthesize` produces.
func isTrivialAccessor(prop *intention.Property) bool {
	if !isTrivialGetter(prop.Getter, prop.Name) {
		return false
	}
	if prop.ReadOnly {
		return true
	}
	return isTrivialSetter(prop.Setter, prop.Name)
}

func isTrivialGetter(getter *intention.Body, name string) bool {
	if getter == nil || len(getter.Block) != 1 {
		return false
	}
	ret, ok := getter.Block[0].(*swiftast.ReturnStmt)
	if !ok {
		return false
	}
	id, ok := ret.X.(*swiftast.IdentifierExpr)
	return ok && id.Name == backingFieldName(name)
}

func isTrivialSetter(setter *intention.Body, name string) bool {
	if setter == nil || len(setter.Block) != 1 {
		return false
	}
	stmt, ok := setter.Block[0].(*swiftast.ExpressionStmt)
	if !ok {
		return false
	}
	assign, ok := stmt.X.(*swiftast.AssignmentExpr)
	if !ok || assign.Op != "=" {
		return false
	}
	lhs, ok := assign.LHS.(*swiftast.IdentifierExpr)
	if !ok || lhs.Name != backingFieldName(name) {
		return false
	}
	rhs, ok := assign.RHS.(*swiftast.IdentifierExpr)
	return ok && rhs.Name == "newValue"
}
