// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package passes implements the intention-graph analyses and rewrites of
// spec.md section 4.4. Unlike the teacher's engine package, which keeps a
// map of named refactorings and runs whichever one the caller selects
// (engine/engine.go's AllRefactorings/GetRefactoring), a translation run
// always executes the same fixed, ordered catalogue to a fixed point: the
// inversion is deliberate, since order is part of the specification here
// (spec 4.4, "passes are not commutative") rather than a user choice.
package passes

import "github.com/godoctor/swiftrewriter/intention"

// Pass is one step of the catalogue. Run mutates p in place and reports
// whether it changed anything, so the scheduler knows whether another
// sweep is worthwhile.
type Pass interface {
	Name() string
	Run(p *intention.Program) (changed bool)
}

// MaxIterations bounds the scheduler's sweeps (spec 4.4 default: 16),
// matching the teacher's own assumption that refactoring-style fixed-point
// analyses converge quickly; a catalogue that hasn't converged by then is
// a bug, not a legitimately slow analysis.
const MaxIterations = 16

// Catalogue returns the standard pass catalogue in spec order. Callers
// that want to run a subset (e.g. tests isolating one pass) construct
// their own slice instead of filtering this one, since order between the
// passes that remain still matters.
//
// synthesizeConformances is not one of spec 4.4's seven numbered passes;
// it implements the protocol-conformance-synthesis pass spec 4.2 refers
// to (the consumer of GenerateMethodIntention/GeneratePropertyIntention).
// It runs right after merge-duplicate-fragments, so it sees a type's
// complete, already-merged conformance list, and before every other pass
// so a synthesized member is available to them the same as a
// hand-written one.
func Catalogue() []Pass {
	return []Pass{
		&mergeDuplicateFragments{},
		&synthesizeConformances{},
		&synthesizeAccessors{},
		&promoteReadonly{},
		&resolveIdentifiers{},
		&inferExpressionTypes{},
		&eliminateDeadCode{},
		&nullabilityPropagation{},
	}
}

// RunToFixpoint runs every pass in catalogue, in order, repeatedly until a
// full sweep changes nothing or MaxIterations sweeps have run. It returns
// the number of sweeps actually performed.
func RunToFixpoint(p *intention.Program, catalogue []Pass) int {
	return RunToFixpointN(p, catalogue, MaxIterations)
}

// RunToFixpointN is RunToFixpoint with an explicit sweep cap, for callers
// (pipeline.Config.MaxIterations) that configure it per run instead of
// taking the package default.
func RunToFixpointN(p *intention.Program, catalogue []Pass, maxIterations int) int {
	sweep := 0
	for ; sweep < maxIterations; sweep++ {
		changedThisSweep := false
		for _, pass := range catalogue {
			if pass.Run(p) {
				changedThisSweep = true
			}
		}
		if !changedThisSweep {
			return sweep + 1
		}
	}
	return sweep
}
