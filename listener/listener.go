// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package listener defines the `#import`/`#include` observer hook (spec
// §6: "pure observer, may not mutate the graph"). It is the narrow,
// read-only counterpart to the teacher's filesystem.FileSystem boundary
// (doctor/filesystem.go): the core depends on this small interface rather
// than walking Program children directly, so a caller can watch file
// discovery without being handed anything it could mutate.
package listener

import "github.com/godoctor/swiftrewriter/intention"

// ImportListener is notified once per `#import`/`#include` directive
// encountered while the pipeline processes a file. It must not retain or
// mutate program past the call; Program gives read access only, so there is
// nothing to mutate even given misuse.
type ImportListener interface {
	OnImport(from, to string, program *Program)
}

// Program is a read-only view of an intention.Program, handed to listeners
// so they can look up what's already been collected without holding a
// reference capable of adding or removing anything.
type Program struct {
	inner *intention.Program
}

// NewProgram wraps p in a read-only view.
func NewProgram(p *intention.Program) *Program { return &Program{inner: p} }

func (v *Program) Files() []*intention.File   { return v.inner.Files() }
func (v *Program) AllTypes() []*intention.Type { return v.inner.AllTypes() }

// TypeByName returns every fragment across the program named name, the
// same lookup intention.Program itself offers, read-only.
func (v *Program) TypeByName(name string) []*intention.Type { return v.inner.TypeByName(name) }

// Multicast fans OnImport out to every listener in order, so a pipeline
// caller can register more than one observer (e.g. one building an import
// graph for diagnostics, another just logging) without the pipeline itself
// knowing how many there are.
type Multicast []ImportListener

func (m Multicast) OnImport(from, to string, program *Program) {
	for _, l := range m {
		l.OnImport(from, to, program)
	}
}
