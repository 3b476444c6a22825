// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objcparse

// FakeNode is an in-memory ParseNode implementation used by tests in this
// module (lowering, pipeline), and by the cmd/swiftrewriter stub reader,
// that need a parse tree without depending on
// a real Objective-C grammar, the same way the teacher's doctor package
// tests a refactoring against an in-memory FileSystem rather than real
// files on disk.
type FakeNode struct {
	RuleName string
	Kids     []*FakeNode
	RawText  string
	Span     SourceRange
}

func (n *FakeNode) Rule() string { return n.RuleName }

func (n *FakeNode) Child(rule string, i int) ParseNode {
	count := 0
	for _, k := range n.Kids {
		if k.RuleName == rule {
			if count == i {
				return k
			}
			count++
		}
	}
	return nil
}

func (n *FakeNode) Children() []ParseNode {
	out := make([]ParseNode, len(n.Kids))
	for i, k := range n.Kids {
		out[i] = k
	}
	return out
}

func (n *FakeNode) Text() string      { return n.RawText }
func (n *FakeNode) Range() SourceRange { return n.Span }

// FakeReader pairs a FakeNode root with a set of nonnull-context node
// pointers and import targets, giving tests full control over the three
// Reader questions without a real parser.
type FakeReader struct {
	RootNode       *FakeNode
	NonnullNodes   map[*FakeNode]bool
	ImportTargets  []string
}

func (r *FakeReader) Root() ParseNode { return r.RootNode }

func (r *FakeReader) IsInNonnullContext(node ParseNode) bool {
	fn, ok := node.(*FakeNode)
	if !ok || r.NonnullNodes == nil {
		return false
	}
	return r.NonnullNodes[fn]
}

func (r *FakeReader) Imports() []string { return r.ImportTargets }
