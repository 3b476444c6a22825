// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"strings"

	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
)

// nullabilityPropagation is pass 7 (spec 4.4): a type marked
// InNonnullContext (the whole of an NS_ASSUME_NONNULL region) has the
// trailing "?" stripped from every property, parameter, and return type
// up front; a single-hop call-edge step then carries that non-optionality
// across a `self.prop = self.method(...)` assignment when the callee's
// return type is already non-optional.
type nullabilityPropagation struct{}

func (*nullabilityPropagation) Name() string { return "nullability-propagation" }

func (*nullabilityPropagation) Run(p *intention.Program) bool {
	changed := false
	for _, t := range p.AllTypes() {
		if !t.InNonnullContext {
			continue
		}
		for _, prop := range t.Properties() {
			if stripOptionalType(&prop.Type) {
				changed = true
			}
		}
		for _, m := range t.Methods() {
			for i := range m.Signature.Params {
				if stripOptionalType(&m.Signature.Params[i].Type) {
					changed = true
				}
			}
			if stripOptionalType(&m.Signature.ReturnType) {
				changed = true
			}
		}
	}

	returnTypes := map[string]map[string]swiftast.SwiftType{}
	for _, t := range p.AllTypes() {
		m := make(map[string]swiftast.SwiftType, len(t.Methods()))
		for _, method := range t.Methods() {
			m[method.Signature.Name] = method.Signature.ReturnType
		}
		returnTypes[t.TypeName] = m
	}

	for _, t := range p.AllTypes() {
		for _, m := range t.Methods() {
			if propagateCallEdges(m.Body, t.TypeName, returnTypes) {
				changed = true
			}
		}
	}
	return changed
}

func stripOptionalType(t *swiftast.SwiftType) bool {
	s := string(*t)
	if !strings.HasSuffix(s, "?") {
		return false
	}
	*t = swiftast.SwiftType(s[:len(s)-1])
	return true
}

// propagateCallEdges finds every `self.<property> = self.<method>(...)`
// assignment in body and, when the callee's declared return type is
// already non-optional, strips the optional from the assignment's own
// resolved expression type — the one-hop relaxation of spec 4.4 rule 7's
// full call-graph spread.
func propagateCallEdges(body *intention.Body, selfType string, returnTypes map[string]map[string]swiftast.SwiftType) bool {
	if body == nil {
		return false
	}
	changed := false
	for _, stmt := range body.Block {
		swiftast.WalkStatements(stmt, func(s swiftast.Statement) bool {
			for _, e := range swiftast.ExpressionsIn(s) {
				swiftast.WalkExpressions(e, func(x swiftast.Expression) bool {
					assign, ok := x.(*swiftast.AssignmentExpr)
					if !ok || assign.Op != "=" {
						return true
					}
					if propagateAssignment(assign, selfType, returnTypes) {
						changed = true
					}
					return true
				})
			}
			return true
		})
	}
	return changed
}

func propagateAssignment(assign *swiftast.AssignmentExpr, selfType string, returnTypes map[string]map[string]swiftast.SwiftType) bool {
	lhs, ok := assign.LHS.(*swiftast.PostfixMemberExpr)
	if !ok || !isSelf(lhs.Base) {
		return false
	}
	call, ok := assign.RHS.(*swiftast.PostfixCallExpr)
	if !ok {
		return false
	}
	callee, ok := call.Callee.(*swiftast.PostfixMemberExpr)
	if !ok || !isSelf(callee.Base) {
		return false
	}
	ret := returnTypes[selfType][callee.Member]
	if ret == "" || strings.HasSuffix(string(ret), "?") {
		return false
	}
	if assign.Type() == ret {
		return false
	}
	assign.SetType(ret)
	return true
}

func isSelf(e swiftast.Expression) bool {
	id, ok := e.(*swiftast.IdentifierExpr)
	return ok && id.Name == "self"
}
