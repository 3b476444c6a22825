// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package passes

import "github.com/godoctor/swiftrewriter/intention"

// promoteReadonly is pass 3 (spec 4.4): a property whose attribute scan
// recorded the Objective-C `readonly` attribute, but whose ReadOnly flag
// was not yet set (e.g. a property freshly merged in by pass 1 from a
// category redeclaring it read-only), is promoted so the emitter renders
// a Swift `{ get }` rather than a read-write property.
type promoteReadonly struct{}

func (*promoteReadonly) Name() string { return "promote-readonly" }

func (*promoteReadonly) Run(p *intention.Program) bool {
	changed := false
	for _, t := range p.AllTypes() {
		for _, prop := range t.Properties() {
			if prop.ReadOnly || !hasAttribute(prop.Attributes, "readonly") {
				continue
			}
			prop.ReadOnly = true
			if prop.Mode == intention.ComputedProperty {
				prop.Setter = nil
			}
			changed = true
		}
	}
	return changed
}

func hasAttribute(attrs []string, want string) bool {
	for _, a := range attrs {
		if a == want {
			return true
		}
	}
	return false
}
