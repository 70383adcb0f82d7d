package emit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/emit"
)

func TestEmit_RoundTripWithoutCompany(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "class A\n{\n}\n", "class A\r\n{\r\n}", "\n\n"} {
		assert.Equal(t, text, emit.Emit(document.Build(text), emit.Header{File: "A.cs"}))
	}
}

func TestEmit_PrependsHeader(t *testing.T) {
	t.Parallel()

	h := emit.Header{File: "Widget.cs", Company: "Acme", Author: "jdoe"}
	got := emit.Emit(document.Build("class Widget\n{\n}\n"), h)

	ruler := "//" + strings.Repeat("-", 94)
	assert.Equal(t, ruler+"\n"+
		`// <copyright file="Widget.cs" company="Acme" author="jdoe">`+"\n"+
		"// Copyright (c) Acme.  All rights reserved.\n"+
		"// </copyright>\n"+
		ruler+"\n"+
		"class Widget\n{\n}\n", got)
}

func TestEmit_KeepsLineEnding(t *testing.T) {
	t.Parallel()

	got := emit.Emit(document.Build("class A\r\n"), emit.Header{File: "A.cs", Company: "Acme"})
	assert.Equal(t, 6, strings.Count(got, "\r\n"))
	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
}

func TestEmit_ExistingHeaderUntouched(t *testing.T) {
	t.Parallel()

	text := "// <copyright file=\"A.cs\" company=\"Other\">\nclass A {}\n"
	assert.Equal(t, text, emit.Emit(document.Build(text), emit.Header{File: "A.cs", Company: "Acme"}))
}

func TestEmit_Idempotent(t *testing.T) {
	t.Parallel()

	h := emit.Header{File: "A.cs", Company: "Acme"}
	once := emit.Emit(document.Build("class A {}\n"), h)
	assert.Equal(t, once, emit.Emit(document.Build(once), h))
}
