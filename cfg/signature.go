// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"fmt"

	"github.com/godoctor/swiftrewriter/swiftast"
)

// stmtSignature produces a structural (not pointer-identity) signature for
// a statement, good enough to pair up corresponding nodes across two CFGs
// built from syntactically-equal-but-distinct statement trees, as
// DeepCopy's round trip requires (spec 8).
func stmtSignature(s swiftast.Statement) string {
	if s == nil {
		return "nil"
	}
	switch v := s.(type) {
	case *swiftast.ExpressionStmt:
		return "expr"
	case *swiftast.VarDeclStmt:
		return "var:" + v.Name
	case *swiftast.IfStmt:
		return "if"
	case *swiftast.SwitchStmt:
		return fmt.Sprintf("switch:%d", len(v.Cases))
	case *swiftast.WhileStmt:
		return "while"
	case *swiftast.RepeatWhileStmt:
		return "repeat"
	case *swiftast.ForInStmt:
		return "forin:" + v.Var
	case *swiftast.DoStmt:
		return "do"
	case *swiftast.DeferStmt:
		return "defer"
	case *swiftast.ThrowStmt:
		return "throw"
	case *swiftast.BreakStmt:
		return "break:" + v.Target
	case *swiftast.ContinueStmt:
		return "continue:" + v.Target
	case *swiftast.FallthroughStmt:
		return "fallthrough"
	case *swiftast.ReturnStmt:
		return "return"
	case *swiftast.CompoundStmt:
		return "compound"
	case *swiftast.LocalFunctionStmt:
		return "localfunc:" + v.Name
	case *swiftast.UnknownStmt:
		return "unknown:" + v.OriginalText
	default:
		return "other"
	}
}
