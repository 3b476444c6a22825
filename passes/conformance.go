// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import "github.com/godoctor/swiftrewriter/intention"

// synthesizeConformances is the protocol-conformance-synthesis pass (spec
// 4.2: "Generate a member from an abstract KnownMethod/KnownProperty
// descriptor (used by the protocol-conformance-synthesis pass)"). For
// every ProtocolConformance a Type declares, it looks the conformed
// protocol up by name (intention.Program.ProtocolByName) and materializes
// any property or method the protocol requires but the type does not
// already define, via intention.GenerateMethodIntention/
// GeneratePropertyIntention.
//
// A method requirement's default body is copied from the protocol's own
// Method intention when the protocol declaration supplies one (an
// `@optional` requirement with a default implementation); otherwise the
// synthesized method gets an empty body, the same "translate what's
// there, degrade safely otherwise" posture lowering uses for an
// unrecognized construct.
type synthesizeConformances struct{}

func (*synthesizeConformances) Name() string { return "synthesize-conformances" }

func (*synthesizeConformances) Run(p *intention.Program) bool {
	changed := false
	for _, t := range p.AllTypes() {
		for _, c := range t.Conformances() {
			proto := p.ProtocolByName(c.ProtocolName)
			if proto == nil {
				continue
			}
			if synthesizeMissingProperties(t, proto) {
				changed = true
			}
			if synthesizeMissingMethods(t, proto) {
				changed = true
			}
		}
	}
	return changed
}

func synthesizeMissingProperties(t, proto *intention.Type) bool {
	changed := false
	for _, req := range proto.Properties() {
		if t.PropertyByName(req.Name) != nil {
			continue
		}
		t.AddProperty(intention.GeneratePropertyIntention(intention.KnownProperty{
			Name:       req.Name,
			Type:       req.Type,
			ReadOnly:   req.ReadOnly,
			Attributes: req.Attributes,
		}))
		changed = true
	}
	return changed
}

func synthesizeMissingMethods(t, proto *intention.Type) bool {
	changed := false
	for _, req := range proto.Methods() {
		if t.MethodBySignature(req.Signature) != nil {
			continue
		}
		t.AddMethod(intention.GenerateMethodIntention(intention.KnownMethod{
			Kind:        intention.OrdinaryMethod,
			Signature:   req.Signature,
			Access:      req.Access,
			DefaultBody: req.Body.Block,
		}))
		changed = true
	}
	return changed
}
