// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"strings"

	"github.com/godoctor/swiftrewriter/intention"
	"github.com/godoctor/swiftrewriter/lowering"
	"github.com/godoctor/swiftrewriter/objcparse"
	"github.com/godoctor/swiftrewriter/typemapper"
)

// collectFile walks r's translation unit and builds the File intention's
// declaration-level shape: Type fragments, their properties and methods,
// global functions, and import records. This is the step lowering itself
// does not cover (lowering only translates statement/expression bodies
// already attached to a declaration); it plays the role the teacher's
// go/loader package plays for refactoring.Config.Scope, turning a raw
// source artifact into the structured tree the rest of the core consumes.
func collectFile(prog *intention.Program, r objcparse.Reader, ctx *typemapper.Context, path string, isHeader bool) *intention.File {
	f := intention.NewFile(path, isHeader)
	root := r.Root()
	if root == nil {
		return f
	}
	for _, target := range r.Imports() {
		f.AddImport(target)
	}
	for _, child := range root.Children() {
		switch child.Rule() {
		case "classInterface", "categoryInterface", "protocolDeclaration":
			f.AddType(collectTypeDecl(prog, f, r, ctx, child, false))
		case "classImplementation":
			f.AddType(collectTypeDecl(prog, f, r, ctx, child, true))
		case "functionDefinition":
			f.AddGlobal(collectGlobalFunction(r, ctx, child))
		}
	}
	return f
}

func collectTypeDecl(prog *intention.Program, f *intention.File, r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode, isImplementation bool) *intention.Type {
	kind := intention.ClassType
	switch node.Rule() {
	case "categoryInterface":
		kind = intention.ExtensionType
	case "protocolDeclaration":
		kind = intention.ProtocolType
	}
	name := textOfChild(node, "className")
	typ := intention.NewType(name, kind)
	typ.SetOrigin(node)
	typ.InNonnullContext = r.IsInNonnullContext(node)
	if super := textOfChild(node, "superclassName"); super != "" {
		typ.Supertype = super
	}
	if list := node.Child("protocolList", 0); list != nil {
		for _, p := range list.Children() {
			typ.AddConformance(intention.NewProtocolConformance(p.Text()))
			ctx.AddProtocol(p.Text())
		}
	}
	ctx.AddClass(name)

	for _, child := range node.Children() {
		switch child.Rule() {
		case "propertyDeclaration":
			typ.AddProperty(collectProperty(ctx, child))
		case "synthesizeDeclaration":
			applySynthesize(prog, f, name, child)
		case "instanceMethodDefinition", "classMethodDefinition":
			if isImplementation {
				typ.AddMethod(collectMethod(r, ctx, child))
			}
		case "instanceMethodDeclaration", "classMethodDeclaration":
			// Bodyless method requirements only occur on a protocol: a
			// class/category interface's declarations are restated by its
			// @implementation, which collectMethod picks up there instead,
			// so collecting them here too would double the method once
			// mergeDuplicateFragments folds the two fragments together.
			if kind == intention.ProtocolType {
				typ.AddMethod(collectMethod(r, ctx, child))
			}
		}
	}
	return typ
}

func collectProperty(ctx *typemapper.Context, node objcparse.ParseNode) *intention.Property {
	typeText := textOfChild(node, "propertyType")
	prop := intention.NewProperty(textOfChild(node, "propertyName"), typemapper.Map(ctx, typeText))
	prop.SetOrigin(node)
	if attrs := node.Child("propertyAttributes", 0); attrs != nil {
		for _, a := range attrs.Children() {
			prop.Attributes = append(prop.Attributes, a.Text())
		}
	}
	return prop
}

// applySynthesize resolves a `@synthesize name = ivar;` declaration
// against the property it backs, recording that it was synthesized so
// synthesizeAccessors (pass 2) materializes it. The declaring
// `@property` normally lives on a sibling @interface fragment of the
// same type name, collected either earlier in the same file or in an
// already-processed header file — never on the @implementation fragment
// itself, which is why the lookup searches every not-yet-merged
// fragment of typeName instead of just the fragment synthesizeDeclaration
// was found on.
func applySynthesize(prog *intention.Program, f *intention.File, typeName string, node objcparse.ParseNode) {
	name := textOfChild(node, "propertyName")
	for _, t := range f.Types() {
		if t.TypeName == typeName {
			if prop := t.PropertyByName(name); prop != nil {
				prop.Mode = intention.SynthesizedProperty
				return
			}
		}
	}
	for _, t := range prog.TypeByName(typeName) {
		if prop := t.PropertyByName(name); prop != nil {
			prop.Mode = intention.SynthesizedProperty
			return
		}
	}
}

func collectMethod(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) *intention.Method {
	kind := intention.OrdinaryMethod
	name := textOfChild(node, "methodSelector")
	if strings.HasPrefix(name, "init") {
		kind = intention.InitializerMethod
	}
	sig := intention.MethodSignature{
		IsStatic:   node.Rule() == "classMethodDefinition" || node.Rule() == "classMethodDeclaration",
		Name:       name,
		ReturnType: typemapper.Map(ctx, textOfChild(node, "methodReturnType")),
		Params:     collectParams(ctx, node),
	}
	m := intention.NewMethod(kind, sig)
	m.SetOrigin(node)
	if body := node.Child("methodBody", 0); body != nil {
		m.Body.Block = lowering.LowerCompound(r, ctx, body)
	}
	return m
}

func collectGlobalFunction(r objcparse.Reader, ctx *typemapper.Context, node objcparse.ParseNode) *intention.Method {
	sig := intention.MethodSignature{
		Name:       textOfChild(node, "functionName"),
		ReturnType: typemapper.Map(ctx, textOfChild(node, "functionReturnType")),
		Params:     collectParams(ctx, node),
	}
	m := intention.NewMethod(intention.GlobalFunctionMethod, sig)
	m.SetOrigin(node)
	if body := node.Child("methodBody", 0); body != nil {
		m.Body.Block = lowering.LowerCompound(r, ctx, body)
	}
	return m
}

func collectParams(ctx *typemapper.Context, node objcparse.ParseNode) []intention.Param {
	var params []intention.Param
	for i := 0; ; i++ {
		p := node.Child("methodParam", i)
		if p == nil {
			break
		}
		params = append(params, intention.Param{
			Name: textOfChild(p, "paramName"),
			Type: typemapper.Map(ctx, textOfChild(p, "paramType")),
		})
	}
	return params
}

func textOfChild(node objcparse.ParseNode, rule string) string {
	if c := node.Child(rule, 0); c != nil {
		return c.Text()
	}
	return ""
}
