// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import "github.com/godoctor/swiftrewriter/intention"

// mergeDuplicateFragments is pass 1 (spec 4.4): a type split across a
// header/category/extension arrives as several Type fragments sharing a
// TypeName (spec 3.1); this pass folds every fragment after the first one
// seen into the canonical fragment and detaches it from its File.
type mergeDuplicateFragments struct{}

func (*mergeDuplicateFragments) Name() string { return "merge-duplicate-fragments" }

func (*mergeDuplicateFragments) Run(p *intention.Program) bool {
	changed := false
	canonical := make(map[string]*intention.Type)
	for _, f := range p.Files() {
		for _, t := range append([]*intention.Type(nil), f.Types()...) {
			c, ok := canonical[t.TypeName]
			if !ok {
				canonical[t.TypeName] = t
				continue
			}
			foldInto(c, t)
			f.RemoveType(t)
			changed = true
		}
	}
	return changed
}

// foldInto moves every property, method, and conformance owned by dup onto
// canon, and adopts dup's supertype if canon does not already have one
// (an extension fragment rarely restates the supertype, but a category
// redeclaring it should not silently lose that information).
func foldInto(canon, dup *intention.Type) {
	if canon.Supertype == "" {
		canon.Supertype = dup.Supertype
	}
	for _, prop := range append([]*intention.Property(nil), dup.Properties()...) {
		dup.RemoveProperty(prop)
		canon.AddProperty(prop)
	}
	for _, m := range append([]*intention.Method(nil), dup.Methods()...) {
		dup.RemoveMethod(m)
		canon.AddMethod(m)
	}
	for _, c := range append([]*intention.ProtocolConformance(nil), dup.Conformances()...) {
		dup.RemoveConformance(c)
		canon.AddConformance(c)
	}
}
