// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

import "github.com/godoctor/swiftrewriter/swiftast"

// TypeKind enumerates the Swift type-declaration shapes a Type intention
// can represent (spec 3.1's "Type (class/struct/enum/protocol/extension)").
type TypeKind int

const (
	ClassType TypeKind = iota
	StructType
	EnumType
	ProtocolType
	ExtensionType
)

// Type is one class/struct/enum/protocol/extension fragment. Its identity
// across the whole Program is TypeName, not pointer identity: the
// merge-duplicate-fragments pass (spec 4.4, rule 1) collapses same-named
// fragments owned by different Files into one canonical Type.
type Type struct {
	base
	TypeName         string
	Kind             TypeKind
	Supertype        string
	Access           Access
	InNonnullContext bool

	properties   childList[*Property]
	methods      childList[*Method]
	conformances childList[*ProtocolConformance]
}

// NewType constructs an empty Type fragment.
func NewType(name string, kind TypeKind) *Type {
	return &Type{TypeName: name, Kind: kind}
}

func (t *Type) Properties() []*Property { return t.properties.slice() }
func (t *Type) AddProperty(p *Property) { t.properties.add(t, p) }
func (t *Type) RemoveProperty(p *Property) { t.properties.remove(p) }

func (t *Type) Methods() []*Method { return t.methods.slice() }
func (t *Type) AddMethod(m *Method) { t.methods.add(t, m) }
func (t *Type) RemoveMethod(m *Method) { t.methods.remove(m) }

func (t *Type) Conformances() []*ProtocolConformance { return t.conformances.slice() }
func (t *Type) AddConformance(c *ProtocolConformance) { t.conformances.add(t, c) }
func (t *Type) RemoveConformance(c *ProtocolConformance) { t.conformances.remove(c) }

// PropertyByName returns the property named name directly declared on t,
// or nil. It does not search supertypes or conformed protocols.
func (t *Type) PropertyByName(name string) *Property {
	for _, p := range t.properties.slice() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// MethodBySignature finds a method whose signature equals sig, comparing
// with nullability dropped from every parameter and return type (spec
// 4.2: "method-by-signature compares signatures with nullability
// dropped").
func (t *Type) MethodBySignature(sig MethodSignature) *Method {
	for _, m := range t.methods.slice() {
		if sig.equalIgnoringNullability(m.Signature) {
			return m
		}
	}
	return nil
}

// MethodBySelector finds a method with the given name and arity, ignoring
// parameter/return types and parameter names (spec 4.2: "Method-by-selector
// ignores parameter and return types and variable names").
func (t *Type) MethodBySelector(name string, arity int) *Method {
	for _, m := range t.methods.slice() {
		if m.Signature.Name == name && len(m.Signature.Params) == arity {
			return m
		}
	}
	return nil
}

// MethodSignature describes a method/initializer/global-function
// signature (spec 3.1).
type MethodSignature struct {
	IsStatic   bool
	Name       string
	ReturnType swiftast.SwiftType
	Params     []Param
}

// Param is one parameter of a MethodSignature.
type Param struct {
	Name string
	Type swiftast.SwiftType
}

// stripOptional removes a single trailing "?" used to mark a Swift
// optional type, so nullability plays no role in signature comparison.
func stripOptional(t swiftast.SwiftType) swiftast.SwiftType {
	s := string(t)
	if len(s) > 0 && s[len(s)-1] == '?' {
		return swiftast.SwiftType(s[:len(s)-1])
	}
	return t
}

func (s MethodSignature) equalIgnoringNullability(o MethodSignature) bool {
	if s.IsStatic != o.IsStatic || s.Name != o.Name {
		return false
	}
	if stripOptional(s.ReturnType) != stripOptional(o.ReturnType) {
		return false
	}
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if stripOptional(s.Params[i].Type) != stripOptional(o.Params[i].Type) {
			return false
		}
	}
	return true
}

// MethodIntentionKind distinguishes an ordinary method from an
// initializer or a free-standing global function (spec 3.1's combined
// "Method / Initializer / Global function" row).
type MethodIntentionKind int

const (
	OrdinaryMethod MethodIntentionKind = iota
	InitializerMethod
	GlobalFunctionMethod
)

// Method is a method, initializer, or global function intention; Kind
// distinguishes which. All three share a signature, an access level, and
// a Body.
type Method struct {
	base
	Kind      MethodIntentionKind
	Signature MethodSignature
	Access    Access
	Body      *Body
}

// NewMethod constructs a Method intention with an empty Body.
func NewMethod(kind MethodIntentionKind, sig MethodSignature) *Method {
	m := &Method{Kind: kind, Signature: sig}
	m.Body = newBody(m)
	return m
}

// PropertyMode enumerates how a Property is realized in the generated
// Swift (spec 3.1).
type PropertyMode int

const (
	FieldProperty    PropertyMode = iota // plain stored property
	ComputedProperty                     // { get } or { get set }
	SynthesizedProperty                  // synthesized from a descriptor
)

// Property is a Swift property intention: a stored field, a computed
// property with getter/setter bodies, or a synthesized property.
type Property struct {
	base
	Name       string
	Type       swiftast.SwiftType
	Mode       PropertyMode
	Attributes []string
	ValueInit  swiftast.Expression // stored-property initializer, may be nil
	Getter     *Body               // non-nil when Mode == ComputedProperty
	Setter     *Body               // non-nil when Mode == ComputedProperty and the property is read-write
	ReadOnly   bool
}

// NewProperty constructs a stored Property intention named name.
func NewProperty(name string, typ swiftast.SwiftType) *Property {
	return &Property{Name: name, Type: typ, Mode: FieldProperty}
}

// ProtocolConformance records that the owning Type conforms to
// ProtocolName (spec 3.1). It owns no children.
type ProtocolConformance struct {
	base
	ProtocolName string
}

// NewProtocolConformance constructs a conformance intention.
func NewProtocolConformance(protocolName string) *ProtocolConformance {
	return &ProtocolConformance{ProtocolName: protocolName}
}

// Body wraps the compound-statement AST attached to a method, initializer,
// global function, or property accessor (spec 3.1).
type Body struct {
	base
	Block []swiftast.Statement
}

func newBody(owner Intention) *Body {
	b := &Body{}
	b.setParent(owner)
	return b
}

// NewAccessorBody constructs a Body for a property getter/setter, owned by
// prop.
func NewAccessorBody(prop *Property) *Body {
	return newBody(prop)
}
