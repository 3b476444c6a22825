// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

// File is the root-by-ownership intention for one translated input file
// (spec 3.1). A File owns Type fragments, global functions, and the list
// of names it imports; it is itself owned only by the Program.
type File struct {
	base
	Path            string
	IsHeaderDerived bool

	types   childList[*Type]
	globals childList[*Method]
	imports []string
}

// NewFile constructs an empty File intention for path.
func NewFile(path string, isHeaderDerived bool) *File {
	return &File{Path: path, IsHeaderDerived: isHeaderDerived}
}

// Types returns this file's type fragments in insertion order. Before the
// merge-duplicate-fragments pass runs, a single fully-qualified type name
// may appear more than once across a Program's files (spec 3.1: "a type
// intention may be split across several files").
func (f *File) Types() []*Type { return f.types.slice() }

// AddType appends typ to this file's fragment list.
func (f *File) AddType(typ *Type) { f.types.add(f, typ) }

// RemoveType detaches typ from this file.
func (f *File) RemoveType(typ *Type) { f.types.remove(typ) }

// Globals returns this file's global (non-method) function intentions.
func (f *File) Globals() []*Method { return f.globals.slice() }

// AddGlobal appends fn to this file's global-function list.
func (f *File) AddGlobal(fn *Method) { f.globals.add(f, fn) }

// RemoveGlobal detaches fn from this file.
func (f *File) RemoveGlobal(fn *Method) { f.globals.remove(fn) }

// Imports returns the `#import`/`#include` targets recorded for this file.
func (f *File) Imports() []string { return f.imports }

// AddImport records that this file imports target. Duplicate targets are
// not filtered here; the listener hook sees every occurrence (spec 6).
func (f *File) AddImport(target string) { f.imports = append(f.imports, target) }
