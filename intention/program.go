// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intention

import "github.com/godoctor/swiftrewriter/objcparse"

// Program is the root of the intention graph for one translation run: the
// tree-by-ownership collection of every File, plus the cross-reference
// index that lets passes and the CFG builder look things up by name
// without walking the whole tree (spec 3.1, 4.2).
//
// A Program is mutated in place by AST lowering and by every intention
// pass; it is discarded whole at the end of a run (spec 3.1 Lifecycle) —
// there is no per-intention free.
type Program struct {
	files childList[*File]
}

// NewProgram returns an empty Program.
func NewProgram() *Program { return &Program{} }

// Files returns the Program's files in insertion order.
func (p *Program) Files() []*File { return p.files.slice() }

// AddFile appends f to the program, owned by p.
func (p *Program) AddFile(f *File) { p.files.add(programOwner{p}, f) }

// RemoveFile detaches f from the program.
func (p *Program) RemoveFile(f *File) { p.files.remove(f) }

// programOwner adapts *Program to the Intention interface so File's parent
// back-edge can point at the Program root without Program itself needing
// to carry a useless Origin/parent of its own (a Program is never owned).
type programOwner struct{ p *Program }

func (programOwner) Parent() Intention                { return nil }
func (programOwner) setParent(Intention)              {}
func (programOwner) Origin() objcparse.ParseNode      { return nil }

// TypeByName returns every fragment across the whole Program whose
// TypeName equals name, in file-then-insertion order. Before the
// merge-duplicate-fragments pass, more than one fragment may share a name
// (spec 3.1); afterward, at most one remains.
func (p *Program) TypeByName(name string) []*Type {
	var out []*Type
	for _, f := range p.files.slice() {
		for _, t := range f.Types() {
			if t.TypeName == name {
				out = append(out, t)
			}
		}
	}
	return out
}

// CanonicalType returns the single fragment for name, or nil if there is
// none or more than one (i.e. the merge pass has not yet run, or the name
// is unknown). Most passes that run after pass 1 should use this instead
// of TypeByName.
func (p *Program) CanonicalType(name string) *Type {
	matches := p.TypeByName(name)
	if len(matches) != 1 {
		return nil
	}
	return matches[0]
}

// ProtocolByName returns the canonical Type fragment named name whose Kind
// is ProtocolType, or nil if there is none, the name belongs to a
// non-protocol type, or more than one fragment with that name has not yet
// been merged (spec 4.2's "protocol-by-name" lookup). Used by the
// protocol-conformance-synthesis pass to find the requirements a
// conforming type must satisfy.
func (p *Program) ProtocolByName(name string) *Type {
	t := p.CanonicalType(name)
	if t == nil || t.Kind != ProtocolType {
		return nil
	}
	return t
}

// AllTypes returns every type fragment in the Program, in file-then-
// insertion order.
func (p *Program) AllTypes() []*Type {
	var out []*Type
	for _, f := range p.files.slice() {
		out = append(out, f.Types()...)
	}
	return out
}

// AllMethods returns every Method intention in the Program: type methods,
// initializers, and file-level global functions.
func (p *Program) AllMethods() []*Method {
	var out []*Method
	for _, f := range p.files.slice() {
		out = append(out, f.Globals()...)
		for _, t := range f.Types() {
			out = append(out, t.Methods()...)
		}
	}
	return out
}
