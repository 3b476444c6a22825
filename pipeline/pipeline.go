// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline wires the translation core's stages together: parse-tree
// collection, the intention-pass catalogue, and Swift emission. It is the
// programmatic entrypoint cmd/swiftrewriter calls, the same role
// engine/engine.go plays for the teacher's refactorings — except there is
// no named-refactoring map to pick from, since a translation run always
// does the same fixed sequence of work (spec.md section 5).
package pipeline

import (
	"fmt"

	"github.com/godoctor/swiftrewriter/diagnostics"
	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/listener"
	"github.com/godoctor/swiftrewriter/objcparse"
	"github.com/godoctor/swiftrewriter/passes"
	"github.com/godoctor/swiftrewriter/typemapper"
)

// Input is one source file for a translation run: its path, a reader over
// its already-produced parse tree, and whether the file is a header
// (spec 3.1's IsHeaderDerived).
type Input struct {
	Path     string
	Reader   objcparse.Reader
	IsHeader bool
}

// Config provides the initial configuration for a translation run,
// modeled on refactoring.Config: the inputs to translate, the import
// listener hook, the pass-scheduler iteration cap, and the emitter. The
// typemapper.Context is not part of it: Run creates one per run and shares
// it across all files (so a class or protocol declared in one file is
// known when mapping a type reference in another).
type Config struct {
	// Inputs is every source file participating in this run, in the
	// order they should be collected.
	Inputs []Input
	// Listener observes #import/#include directives as files are
	// collected (spec 6). May be nil.
	Listener listener.ImportListener
	// MaxIterations bounds the pass scheduler's sweeps. Zero selects
	// passes.MaxIterations.
	MaxIterations int
	// Emitter turns the finalized intention graph into Swift source. It
	// is the only required field besides Inputs.
	Emitter Emitter
}

// Emitter is the pure-function contract between the finalized intention
// graph (plus the Swift AST attached to every method/accessor body) and a
// concrete Swift syntax tree or source text. Per spec §1/§6 the concrete
// emitter is out of core scope; Emitter exists so the pipeline can be
// driven end-to-end against a test double (see debugEmitter in
// pipeline_test.go) without the core depending on one.
type Emitter interface {
	Emit(p *intention.Program, diags *diagnostics.Stream) (string, error)
}

// Result is what one invocation of Run produces: the Emitter's output,
// alongside the diagnostics collected along the way.
type Result struct {
	Output      string
	Diagnostics *diagnostics.Stream
}

// Run collects every Config.Inputs file into an intention.Program, runs
// the pass catalogue to a fixed point, and hands the result to
// Config.Emitter. It returns an error only when the Emitter itself fails;
// a source construct the core could not translate is instead recorded as
// an UnknownStmt in the output. The only event Run itself adds to the
// diagnostics stream is the pass-convergence report.
func Run(cfg Config) (*Result, error) {
	if cfg.Emitter == nil {
		return nil, fmt.Errorf("pipeline: Config.Emitter must not be nil")
	}
	maxIter := cfg.MaxIterations
	if maxIter == 0 {
		maxIter = passes.MaxIterations
	}

	diags := diagnostics.NewStream()
	ctx := typemapper.NewContext()
	prog := intention.NewProgram()
	view := listener.NewProgram(prog)

	for _, in := range cfg.Inputs {
		f := collectFile(prog, in.Reader, ctx, in.Path, in.IsHeader)
		prog.AddFile(f)
		if cfg.Listener != nil {
			for _, target := range f.Imports() {
				cfg.Listener.OnImport(f.Path, target, view)
			}
		}
	}

	catalogue := passes.Catalogue()
	sweeps := passes.RunToFixpointN(prog, catalogue, maxIter)
	if sweeps >= maxIter && maxIter > 0 {
		diags.Reportf(diagnostics.Warning, diagnostics.PassConverged, objcparse.SourceRange{},
			"pass catalogue did not reach a fixed point within %d sweeps", maxIter)
	} else {
		diags.Reportf(diagnostics.Info, diagnostics.PassConverged, objcparse.SourceRange{},
			"pass catalogue converged after %d sweep(s)", sweeps)
	}

	out, err := cfg.Emitter.Emit(prog, diags)
	if err != nil {
		return nil, err
	}
	return &Result{Output: out, Diagnostics: diags}, nil
}
