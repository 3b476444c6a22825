// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

import "github.com/godoctor/swiftrewriter/swiftast"

// KnownType, KnownMethod, and KnownProperty are read-only views of an
// intention (GLOSSARY: "Known-X view"). A pass queries one of these to
// decide what to do without being handed the mutable intention itself,
// the same separation the teacher draws between "looking a name up" and
// "mutating the tree" in refactoring/refactoring.go's lookup helpers.
type KnownType struct {
	Name      string
	Kind      TypeKind
	Supertype string
}

// AsKnown projects t into its read-only view.
func (t *Type) AsKnown() KnownType {
	return KnownType{Name: t.TypeName, Kind: t.Kind, Supertype: t.Supertype}
}

// KnownMethod is the abstract descriptor consumed by
// GenerateMethodIntention to synthesize a full Method intention — used by
// the protocol-conformance-synthesis pass (spec 4.2) to materialize a
// default implementation for a method a type's conformance requires but
// does not yet define.
type KnownMethod struct {
	Kind       MethodIntentionKind
	Signature  MethodSignature
	Access     Access
	DefaultBody []swiftast.Statement
}

// GenerateMethodIntention builds a full Method intention from a
// descriptor. The returned Method is not yet attached to any Type; the
// caller adds it with Type.AddMethod.
func GenerateMethodIntention(d KnownMethod) *Method {
	m := NewMethod(d.Kind, d.Signature)
	m.Access = d.Access
	m.Body.Block = d.DefaultBody
	return m
}

// KnownProperty is the abstract descriptor for a property the
// protocol-conformance-synthesis pass needs to materialize.
type KnownProperty struct {
	Name       string
	Type       swiftast.SwiftType
	ReadOnly   bool
	Attributes []string
}

// GeneratePropertyIntention builds a full, stored Property intention from
// a descriptor. The returned Property is not yet attached to any Type.
func GeneratePropertyIntention(d KnownProperty) *Property {
	p := NewProperty(d.Name, d.Type)
	p.ReadOnly = d.ReadOnly
	p.Attributes = d.Attributes
	return p
}
