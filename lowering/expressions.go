// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lowering

import (
	"github.com/godoctor/swiftrewriter/objcparse"
	"github.com/godoctor/swiftrewriter/swiftast"
	"github.com/godoctor/swiftrewriter/typemapper"
)

// LowerExpression translates one Objective-C expression parse-tree node
// into a Swift expression, dispatching on node.Rule() the same way
// LowerStatement does (Design Notes: "flat dispatcher", no visitor
// hierarchy). Unlike statements, the Expression sum type (spec 3.2) has no
// "unknown" variant; a node this function cannot recognise degrades to an
// IdentifierExpr carrying the node's verbatim text, the most neutral
// pass-through the closed set offers.
func LowerExpression(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Expression {
	if node == nil {
		return nil
	}
	switch node.Rule() {
	case "intConstant":
		return &swiftast.ConstantExpr{Kind: swiftast.IntConstant, Text: node.Text()}
	case "floatConstant":
		return &swiftast.ConstantExpr{Kind: swiftast.FloatConstant, Text: node.Text()}
	case "stringConstant":
		return &swiftast.ConstantExpr{Kind: swiftast.StringConstant, Text: node.Text()}
	case "boolConstant":
		return &swiftast.ConstantExpr{Kind: swiftast.BoolConstant, Text: node.Text()}
	case "nilConstant":
		return &swiftast.ConstantExpr{Kind: swiftast.NilConstant, Text: node.Text()}
	case "identifierExpr":
		return &swiftast.IdentifierExpr{Name: node.Text()}
	case "binaryExpr":
		return lowerBinary(r, ctx, node)
	case "assignmentExpr":
		return lowerAssignment(r, ctx, node)
	case "callExpr":
		return lowerCall(r, ctx, node)
	case "subscriptExpr":
		return &swiftast.PostfixSubscriptExpr{
			Base:  exprChild(r, ctx, node, "base"),
			Index: exprChild(r, ctx, node, "index"),
		}
	case "memberExpr":
		member := node.Child("member", 0)
		name := ""
		if member != nil {
			name = member.Text()
		}
		return &swiftast.PostfixMemberExpr{
			Base:   exprChild(r, ctx, node, "base"),
			Member: name,
		}
	case "unaryExpr":
		return &swiftast.UnaryExpr{
			Operand: exprChild(r, ctx, node, "operand"),
			Op:      operatorText(node),
		}
	case "castExpr", "forceCastExpr", "optionalCastExpr":
		target := ""
		if tn := node.Child("targetType", 0); tn != nil {
			target = tn.Text()
		}
		return &swiftast.CastExpr{
			Operand:    exprChild(r, ctx, node, "operand"),
			TargetType: typemapper.Map(ctx, target),
			Force:      node.Rule() == "forceCastExpr",
			Optional:   node.Rule() == "optionalCastExpr",
		}
	case "ternaryExpr":
		return &swiftast.TernaryExpr{
			Cond: exprChild(r, ctx, node, "cond"),
			Then: exprChild(r, ctx, node, "then"),
			Else: exprChild(r, ctx, node, "else"),
		}
	case "blockExpr":
		return lowerBlock(r, ctx, node)
	case "parenExpr":
		return &swiftast.ParensExpr{Inner: exprChild(r, ctx, node, "inner")}
	default:
		return &swiftast.IdentifierExpr{Name: node.Text()}
	}
}

// operatorText returns the spelled-out operator for a node whose single
// "op" child (if present) carries it, falling back to the node's own text
// (grammars that fold the operator into the parent node's span).
func operatorText(node objcparse.ParseNode) string {
	if op := node.Child("op", 0); op != nil {
		return op.Text()
	}
	return node.Text()
}

func lowerBinary(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Expression {
	return &swiftast.BinaryExpr{
		LHS: exprChild(r, ctx, node, "lhs"),
		RHS: exprChild(r, ctx, node, "rhs"),
		Op:  operatorText(node),
	}
}

func lowerAssignment(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Expression {
	return &swiftast.AssignmentExpr{
		LHS: exprChild(r, ctx, node, "lhs"),
		RHS: exprChild(r, ctx, node, "rhs"),
		Op:  operatorText(node),
	}
}

// lowerCall treats the "callee" child as the invoked expression and every
// other immediate child, in source order, as an argument expression in its
// own right (not wrapped in an intermediate "arg" node).
func lowerCall(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Expression {
	callee := node.Child("callee", 0)
	call := &swiftast.PostfixCallExpr{Callee: LowerExpression(r, ctx, unwrapSingle(callee))}
	for _, child := range node.Children() {
		if child == callee {
			continue
		}
		call.Args = append(call.Args, LowerExpression(r, ctx, child))
	}
	return call
}

func lowerBlock(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) swiftast.Expression {
	lit := &swiftast.BlockLiteralExpr{}
	for _, child := range node.Children() {
		if child.Rule() == "param" {
			lit.Params = append(lit.Params, child.Text())
		}
	}
	if body := node.Child("body", 0); body != nil {
		lit.Body = LowerCompound(r, ctx, body)
	}
	return lit
}
