// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import (
	"strings"

	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/swiftast"
)

// inferExpressionTypes is pass 5 (spec 4.4): infer an Expression's
// SwiftType bottom-up from the declarations already on the intention
// graph (parameter/property/local types), leaving a leaf unresolved
// (SwiftType("")) when nothing in scope pins it down. A type, once
// assigned, is never retracted by a later sweep, so the pass is
// monotone and reaches a fixed point.
type inferExpressionTypes struct{}

func (*inferExpressionTypes) Name() string { return "infer-expression-types" }

func (*inferExpressionTypes) Run(p *intention.Program) bool {
	changed := false
	memberTypes := map[string]map[string]swiftast.SwiftType{}
	for _, t := range p.AllTypes() {
		m := make(map[string]swiftast.SwiftType, len(t.Properties()))
		for _, prop := range t.Properties() {
			m[prop.Name] = prop.Type
		}
		memberTypes[t.TypeName] = m
	}

	for _, f := range p.Files() {
		for _, t := range f.Types() {
			for _, m := range t.Methods() {
				scope := exprTypeScope{
					vars:        initialVars(t.Properties(), m.Signature.Params),
					memberTypes: memberTypes,
					selfType:    t.TypeName,
				}
				if inferBlock(scope, m.Body.Block) {
					changed = true
				}
			}
		}
		for _, g := range f.Globals() {
			scope := exprTypeScope{
				vars:        initialVars(nil, g.Signature.Params),
				memberTypes: memberTypes,
			}
			if inferBlock(scope, g.Body.Block) {
				changed = true
			}
		}
	}
	return changed
}

func initialVars(props []*intention.Property, params []intention.Param) map[string]swiftast.SwiftType {
	vars := make(map[string]swiftast.SwiftType, len(props)+len(params))
	for _, prop := range props {
		vars[prop.Name] = prop.Type
	}
	for _, prm := range params {
		vars[prm.Name] = prm.Type
	}
	return vars
}

// exprTypeScope is the bottom-up pass's equivalent of identifierScope: a
// map of names already known to have a type, plus the program-wide
// property-type tables PostfixMemberExpr needs to look a member up on
// something other than self.
type exprTypeScope struct {
	vars        map[string]swiftast.SwiftType
	memberTypes map[string]map[string]swiftast.SwiftType
	selfType    string
}

func cloneTypeVars(m map[string]swiftast.SwiftType) map[string]swiftast.SwiftType {
	out := make(map[string]swiftast.SwiftType, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func inferBlock(scope exprTypeScope, stmts []swiftast.Statement) bool {
	changed := false
	scope.vars = cloneTypeVars(scope.vars)
	for _, stmt := range stmts {
		if inferStmt(scope, stmt) {
			changed = true
		}
		if decl, ok := stmt.(*swiftast.VarDeclStmt); ok {
			if decl.Type != "" {
				scope.vars[decl.Name] = decl.Type
			} else if decl.Init != nil && decl.Init.Type() != "" {
				scope.vars[decl.Name] = decl.Init.Type()
			}
		}
	}
	return changed
}

func inferStmt(scope exprTypeScope, stmt swiftast.Statement) bool {
	changed := false
	for _, e := range swiftast.ExpressionsIn(stmt) {
		if _, c := inferExpr(scope, e); c {
			changed = true
		}
	}
	switch s := stmt.(type) {
	case *swiftast.CompoundStmt:
		if inferBlock(scope, s.List) {
			changed = true
		}
	case *swiftast.IfStmt:
		if inferBlock(scope, s.Then) {
			changed = true
		}
		if inferBlock(scope, s.Else) {
			changed = true
		}
	case *swiftast.SwitchStmt:
		for _, c := range s.Cases {
			if inferBlock(scope, c.Body) {
				changed = true
			}
		}
	case *swiftast.WhileStmt:
		if inferBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.RepeatWhileStmt:
		if inferBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.ForInStmt:
		var elem swiftast.SwiftType
		if s.Seq != nil {
			elem = rangeElementType(s.Seq)
			if elem == "" {
				elem = arrayElementType(s.Seq.Type())
			}
		}
		inner := scope
		inner.vars = cloneTypeVars(scope.vars)
		if elem != "" {
			inner.vars[s.Var] = elem
		}
		if inferBlock(inner, s.Body) {
			changed = true
		}
	case *swiftast.DoStmt:
		if inferBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.DeferStmt:
		if inferBlock(scope, s.Body) {
			changed = true
		}
	case *swiftast.LocalFunctionStmt:
		if inferBlock(scope, s.Body) {
			changed = true
		}
	}
	return changed
}

// inferExpr infers e's type bottom-up, returning the (possibly still
// empty) resolved type and whether anything changed during this call.
func inferExpr(scope exprTypeScope, e swiftast.Expression) (swiftast.SwiftType, bool) {
	if e == nil {
		return "", false
	}
	changed := false
	var t swiftast.SwiftType
	switch x := e.(type) {
	case *swiftast.ConstantExpr:
		t = constantType(x.Kind)
	case *swiftast.IdentifierExpr:
		t = scope.vars[x.Name]
	case *swiftast.BinaryExpr:
		lt, lc := inferExpr(scope, x.LHS)
		rt, rc := inferExpr(scope, x.RHS)
		changed = lc || rc
		t = binaryResultType(x.Op, lt, rt)
	case *swiftast.AssignmentExpr:
		lt, lc := inferExpr(scope, x.LHS)
		_, rc := inferExpr(scope, x.RHS)
		changed = lc || rc
		t = lt
	case *swiftast.PostfixCallExpr:
		// A call's own result type would need overload resolution
		// against every method with this selector; out of scope, so
		// it stays unresolved even once the callee/args are inferred.
		_, cc := inferExpr(scope, x.Callee)
		changed = cc
		for _, a := range x.Args {
			if _, ac := inferExpr(scope, a); ac {
				changed = true
			}
		}
	case *swiftast.PostfixSubscriptExpr:
		bt, bc := inferExpr(scope, x.Base)
		_, ic := inferExpr(scope, x.Index)
		changed = bc || ic
		t = arrayElementType(bt)
	case *swiftast.PostfixMemberExpr:
		bt, bc := inferExpr(scope, x.Base)
		changed = bc
		t = scope.memberType(bt, x.Base, x.Member)
	case *swiftast.UnaryExpr:
		ot, oc := inferExpr(scope, x.Operand)
		changed = oc
		t = unaryResultType(x.Op, ot)
	case *swiftast.CastExpr:
		_, oc := inferExpr(scope, x.Operand)
		changed = oc
		t = x.TargetType
	case *swiftast.TernaryExpr:
		_, cc := inferExpr(scope, x.Cond)
		tt, tc := inferExpr(scope, x.Then)
		et, ec := inferExpr(scope, x.Else)
		changed = cc || tc || ec
		if tt != "" && tt == et {
			t = tt
		}
	case *swiftast.ParensExpr:
		it, ic := inferExpr(scope, x.Inner)
		changed = ic
		t = it
	case *swiftast.BlockLiteralExpr:
		if inferBlock(scope, x.Body) {
			changed = true
		}
	}
	if t != "" && e.Type() != t {
		e.SetType(t)
		changed = true
	}
	return e.Type(), changed
}

func (s exprTypeScope) memberType(baseType swiftast.SwiftType, base swiftast.Expression, member string) swiftast.SwiftType {
	typeName := string(baseType)
	if typeName == "" {
		if id, ok := base.(*swiftast.IdentifierExpr); ok && id.Name == "self" {
			typeName = s.selfType
		}
	}
	return s.memberTypes[typeName][member]
}

func constantType(k swiftast.ConstantKind) swiftast.SwiftType {
	switch k {
	case swiftast.IntConstant:
		return "Int"
	case swiftast.FloatConstant:
		return "Double"
	case swiftast.StringConstant:
		return "String"
	case swiftast.BoolConstant:
		return "Bool"
	default:
		// nilConstant: its type is whatever optional it initializes;
		// leave unresolved rather than guess.
		return ""
	}
}

func binaryResultType(op string, lhs, rhs swiftast.SwiftType) swiftast.SwiftType {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return "Bool"
	case "..<", "...":
		return ""
	default:
		if lhs != "" && lhs == rhs {
			return lhs
		}
		return ""
	}
}

func unaryResultType(op string, operand swiftast.SwiftType) swiftast.SwiftType {
	if op == "!" {
		return "Bool"
	}
	return operand
}

// rangeElementType returns a's operand type for a counted-loop range
// expression `a..<b`/`a...b`, the type ForInStmt.Var takes for such a
// sequence (as opposed to the element type of an actual collection).
func rangeElementType(seq swiftast.Expression) swiftast.SwiftType {
	b, ok := seq.(*swiftast.BinaryExpr)
	if !ok || (b.Op != "..<" && b.Op != "...") {
		return ""
	}
	return b.LHS.Type()
}

func arrayElementType(t swiftast.SwiftType) swiftast.SwiftType {
	s := string(t)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return swiftast.SwiftType(s[1 : len(s)-1])
	}
	return ""
}
