// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
)

// resolveIdentifiers is pass 4 (spec 4.4): every IdentifierExpr in a
// method, initializer, or global-function body is classified to the
// nearest declaration, searched in the order local, parameter, instance
// member, enclosing type, global. Property accessor bodies are not
// visited. The result is recorded
// directly on the node (IdentifierExpr.Resolved) rather than in a
// side-table, so later passes (nullability propagation, rule 7) can read
// it without re-deriving scope.
type resolveIdentifiers struct{}

func (*resolveIdentifiers) Name() string { return "resolve-identifiers" }

func (*resolveIdentifiers) Run(p *intention.Program) bool {
	changed := false
	typeNames := map[string]struct{}{}
	for _, t := range p.AllTypes() {
		typeNames[t.TypeName] = struct{}{}
	}

	for _, f := range p.Files() {
		globals := map[string]struct{}{}
		for _, g := range f.Globals() {
			globals[g.Signature.Name] = struct{}{}
		}

		for _, t := range f.Types() {
			members := map[string]struct{}{}
			for _, prop := range t.Properties() {
				members[prop.Name] = struct{}{}
			}
			for _, m := range t.Methods() {
				members[m.Signature.Name] = struct{}{}
			}
			for _, m := range t.Methods() {
				scope := identifierScope{
					locals:    map[string]struct{}{},
					params:    paramSet(m.Signature.Params),
					members:   members,
					typeNames: typeNames,
					globals:   globals,
				}
				if resolveBlock(scope, m.Body.Block) {
					changed = true
				}
			}
		}

		for _, g := range f.Globals() {
			scope := identifierScope{
				locals:    map[string]struct{}{},
				params:    paramSet(g.Signature.Params),
				members:   nil,
				typeNames: typeNames,
				globals:   globals,
			}
			if resolveBlock(scope, g.Body.Block) {
				changed = true
			}
		}
	}
	return changed
}

func paramSet(params []intention.Param) map[string]struct{} {
	out := make(map[string]struct{}, len(params))
	for _, p := range params {
		out[p.Name] = struct{}{}
	}
	return out
}

// identifierScope holds the five name tables consulted, outermost last,
// by classify. locals is the only table that changes as resolveBlock
// walks forward through a statement list.
type identifierScope struct {
	locals    map[string]struct{}
	params    map[string]struct{}
	members   map[string]struct{}
	typeNames map[string]struct{}
	globals   map[string]struct{}
}

func (s identifierScope) classify(name string) swiftast.ResolvedKind {
	if _, ok := s.locals[name]; ok {
		return swiftast.LocalBinding
	}
	if _, ok := s.params[name]; ok {
		return swiftast.ParameterBinding
	}
	if _, ok := s.members[name]; ok {
		return swiftast.InstanceMemberBinding
	}
	if _, ok := s.typeNames[name]; ok {
		return swiftast.TypeBinding
	}
	if _, ok := s.globals[name]; ok {
		return swiftast.GlobalBinding
	}
	return swiftast.UnresolvedBinding
}

func cloneNameSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// resolveBlock walks stmts in source order, threading a private copy of
// scope.locals forward so a VarDeclStmt is visible to every statement
// after it (and nowhere else), then restores the caller's view on return.
func resolveBlock(scope identifierScope, stmts []swiftast.Statement) bool {
	changed := false
	scope.locals = cloneNameSet(scope.locals)
	for _, stmt := range stmts {
		if resolveStmt(scope, stmt) {
			changed = true
		}
		if decl, ok := stmt.(*swiftast.VarDeclStmt); ok {
			scope.locals[decl.Name] = struct{}{}
		}
	}
	return changed
}

func resolveStmt(scope identifierScope, stmt swiftast.Statement) bool {
	changed := false
	for _, e := range swiftast.ExpressionsIn(stmt) {
		if resolveExpr(scope, e) {
			changed = true
		}
	}
	switch s := stmt.(type) {
	case *swiftast.CompoundStmt:
		if resolveBlock(scope, s.List) {
			changed = true
		}
	case *swiftast.IfStmt:
		if resolveBlock(scope, s.Then) {
			changed = true
		}
		if resolveBlock(scope, s.Else) {
			changed = true
		}
	case *swiftast.SwitchStmt:
		for _, c := range s.Cases {
			if resolveBlock(scope, c.Body) {
				changed = true
			}
		}
	case *swiftast.WhileStmt:
		if resolveBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.RepeatWhileStmt:
		if resolveBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.ForInStmt:
		inner := scope
		inner.locals = cloneNameSet(scope.locals)
		inner.locals[s.Var] = struct{}{}
		if resolveBlock(inner, s.Body) {
			changed = true
		}
	case *swiftast.DoStmt:
		if resolveBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.DeferStmt:
		if resolveBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.LocalFunctionStmt:
		inner := scope
		inner.params = cloneNameSet(scope.params)
		for _, name := range s.Params {
			inner.params[name] = struct{}{}
		}
		if resolveBlock(inner, s.Body) {
			changed = true
		}
	}
	return changed
}

// resolveExpr classifies every IdentifierExpr reachable from e, descending
// into a BlockLiteralExpr's body itself (WalkExpressions deliberately does
// not, since a closure body is a statement list rather than a nested
// expression).
func resolveExpr(scope identifierScope, e swiftast.Expression) bool {
	changed := false
	swiftast.WalkExpressions(e, func(x swiftast.Expression) bool {
		switch v := x.(type) {
		case *swiftast.IdentifierExpr:
			kind := scope.classify(v.Name)
			if v.Resolved != kind {
				v.Resolved = kind
				changed = true
			}
		case *swiftast.BlockLiteralExpr:
			inner := scope
			inner.locals = cloneNameSet(scope.locals)
			for _, name := range v.Params {
				inner.locals[name] = struct{}{}
			}
			if resolveBlock(inner, v.Body) {
				changed = true
			}
		}
		return true
	})
	return changed
}
