// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listener

import (
	"testing"

	"github.com/godoctor/swiftrewriter/intention"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	calls []string
}

func (r *recordingListener) OnImport(from, to string, program *Program) {
	r.calls = append(r.calls, from+"->"+to)
}

func TestMulticastFansOutInOrder(t *testing.T) {
	var a, b recordingListener
	m := Multicast{&a, &b}
	prog := intention.NewProgram()
	view := NewProgram(prog)

	m.OnImport("Widget.m", "Widget.h", view)

	require.Equal(t, []string{"Widget.m->Widget.h"}, a.calls)
	require.Equal(t, []string{"Widget.m->Widget.h"}, b.calls)
}

func TestProgramViewReadsThrough(t *testing.T) {
	prog := intention.NewProgram()
	f := intention.NewFile("Widget.m", false)
	prog.AddFile(f)
	typ := intention.NewType("Widget", intention.ClassType)
	f.AddType(typ)

	view := NewProgram(prog)
	require.Len(t, view.Files(), 1)
	require.Len(t, view.AllTypes(), 1)
	require.Len(t, view.TypeByName("Widget"), 1)
}
