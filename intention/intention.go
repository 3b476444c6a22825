// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intention implements the mutable, hierarchical model of the Swift
// program being synthesised (spec.md Data Model 3.1). Intentions form a
// tree by ownership (every intention has exactly one parent, or none if it
// is a root) and a graph by cross-reference (protocol conformances,
// identifier resolution results, and so on point across the tree).
//
// As in the teacher's refactoringBase pattern (refactoring/refactoring.go),
// each concrete intention kind embeds a shared base that carries the parts
// common to every kind: the non-owning parent back-edge and the optional,
// read-only reference to the Objective-C parse node the intention was
// derived from.
package intention

import "github.com/godoctor/swiftrewriter/objcparse"

// Intention is the common interface implemented by every node kind in
// section 3.1's table: File, Type, Property, Method/Initializer/
// GlobalFunction, ProtocolConformance, and Body.
type Intention interface {
	// Parent returns the unique intention that owns this one, or nil
	// for a root. A File's parent is the adapter for its owning Program,
	// whose own Parent is nil.
	Parent() Intention

	// setParent is unexported: the only way to change an intention's
	// parent is through the owning collection's addX/removeX methods,
	// which keep the back-edge in sync on every insert/remove (spec
	// 4.2's invariant-enforcement contract).
	setParent(Intention)

	// Origin is the read-only, non-owning reference to the parse node
	// this intention was derived from, or nil if it was synthesized
	// (e.g. by GenerateMethodIntention).
	Origin() objcparse.ParseNode
}

// base is embedded by every concrete intention kind.
type base struct {
	parent Intention
	origin objcparse.ParseNode
}

func (b *base) Parent() Intention             { return b.parent }
func (b *base) setParent(p Intention)         { b.parent = p }
func (b *base) Origin() objcparse.ParseNode   { return b.origin }
func (b *base) SetOrigin(n objcparse.ParseNode) { b.origin = n }

// Access mirrors a Swift access-control keyword.
type Access int

const (
	AccessInternal Access = iota
	AccessPrivate
	AccessFileprivate
	AccessPublic
	AccessOpen
)
