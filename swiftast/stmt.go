// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package swiftast

// Statement is the closed sum type of Swift statement nodes produced by
// lowering. Every implementation embeds stmtBase for the shared leading
// comment / trailing comment / label slots (spec 3.2).
type Statement interface {
	stmtNode()
	Comments() *Comments
	Label() string
	SetLabel(string)
}

// Comments holds the optional leading and trailing comment text attached to
// a statement. Neither field implies the other; a statement may have only
// one, both, or neither.
type Comments struct {
	Leading, Trailing string
}

type stmtBase struct {
	comments Comments
	label    string
}

func (s *stmtBase) Comments() *Comments { return &s.comments }
func (s *stmtBase) Label() string       { return s.label }
func (s *stmtBase) SetLabel(l string)   { s.label = l }

// ExpressionStmt wraps an Expression evaluated for its side effect.
type ExpressionStmt struct {
	stmtBase
	X Expression
}

func (*ExpressionStmt) stmtNode() {}

// VarDeclStmt is one Swift `var`/`let` declaration.
type VarDeclStmt struct {
	stmtBase
	Name        string
	Type        SwiftType
	Init        Expression // may be nil
	IsConst     bool       // let vs var
	Ownership   Ownership
}

func (*VarDeclStmt) stmtNode() {}

// Ownership mirrors the Objective-C storage qualifiers a declaration
// carried before lowering (spec 4.1, "Variable declarations").
type Ownership int

const (
	OwnershipStrong Ownership = iota
	OwnershipWeak
	OwnershipUnowned
)

// IfStmt is `if Cond { Then } else { Else }`; Else may be nil.
type IfStmt struct {
	stmtBase
	Cond       Expression
	Then, Else []Statement
}

func (*IfStmt) stmtNode() {}

// SwitchCase is one case of a SwitchStmt: a pattern list (empty for the
// synthesized default) plus its body.
type SwitchCase struct {
	Patterns    []Expression // empty slice marks the default case
	Body        []Statement
	Fallthrough bool
}

// SwitchStmt always carries a default case after lowering (spec 3.2
// invariant); lowering synthesizes `default: break` when the source switch
// had none.
type SwitchStmt struct {
	stmtBase
	Subject Expression
	Cases   []SwitchCase
}

func (*SwitchStmt) stmtNode() {}

// WhileStmt is `while Cond { Body }`.
type WhileStmt struct {
	stmtBase
	Cond Expression
	Body []Statement
}

func (*WhileStmt) stmtNode() {}

// RepeatWhileStmt is `repeat { Body } while Cond`.
type RepeatWhileStmt struct {
	stmtBase
	Body []Statement
	Cond Expression
}

func (*RepeatWhileStmt) stmtNode() {}

// ForInStmt is `for Var in Seq { Body }`, used both for the counted-loop
// recognizer's output and for lowered Objective-C fast-enumeration loops.
type ForInStmt struct {
	stmtBase
	Var        string
	Seq        Expression
	Body       []Statement
	ClosedEnd  bool // true for `a...b`, false for `a..<b`
}

func (*ForInStmt) stmtNode() {}

// DoStmt is a `do { Body }` block, used both for plain scoping (the
// `@synchronized`/`@autoreleasepool` lowering targets) and as the `do` half
// of error handling.
type DoStmt struct {
	stmtBase
	Body []Statement
}

func (*DoStmt) stmtNode() {}

// DeferStmt is `defer { Body }`.
type DeferStmt struct {
	stmtBase
	Body []Statement
}

func (*DeferStmt) stmtNode() {}

// ThrowStmt is `throw X`.
type ThrowStmt struct {
	stmtBase
	X Expression
}

func (*ThrowStmt) stmtNode() {}

// BreakStmt is `break` or `break label`.
type BreakStmt struct {
	stmtBase
	Target string // empty if unlabeled
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue` or `continue label`.
type ContinueStmt struct {
	stmtBase
	Target string
}

func (*ContinueStmt) stmtNode() {}

// FallthroughStmt is `fallthrough`.
type FallthroughStmt struct {
	stmtBase
}

func (*FallthroughStmt) stmtNode() {}

// ReturnStmt is `return X?`.
type ReturnStmt struct {
	stmtBase
	X Expression // nil for a bare `return`
}

func (*ReturnStmt) stmtNode() {}

// CompoundStmt is `{ List... }`. Lowering flattens any CompoundStmt that
// would otherwise appear immediately nested inside another CompoundStmt
// (spec 3.2 invariant: free blocks are not legal Swift).
type CompoundStmt struct {
	stmtBase
	List []Statement
}

func (*CompoundStmt) stmtNode() {}

// LocalFunctionStmt is a nested `func` declaration used as a statement.
// No rule in package lowering produces it.
type LocalFunctionStmt struct {
	stmtBase
	Name   string
	Params []string
	Body   []Statement
}

func (*LocalFunctionStmt) stmtNode() {}

// UnknownStmt wraps a parse-tree context that lowering could not translate,
// preserving the original source text verbatim so the emitter can reproduce
// it as a Swift block comment (spec 4.1 "Failure semantics", GLOSSARY
// "Unknown statement").
type UnknownStmt struct {
	stmtBase
	OriginalText string
	RuleName     string // the grammar rule that defeated translation, for diagnostics
}

func (*UnknownStmt) stmtNode() {}
