package engine_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/store"
)

func BenchmarkFixContent(b *testing.B) {
	const fields = 2000

	var sb strings.Builder
	sb.WriteString("class Widget\n{\n")
	findings := make([]analyzer.Finding, 0, 2*fields)
	for i := range fields {
		fmt.Fprintf(&sb, "\tSystem.Int32 field%d = %d;\n", i, i)
		line := i + 3
		findings = append(findings,
			analyzer.Finding{Rule: rules.TabsMustNotBeUsed, Line: line, Message: "Tabs must not be used."},
			analyzer.Finding{Rule: rules.UseBuiltInTypeAlias, Line: line, Message: "Use the built-in type alias 'int'."},
		)
	}
	sb.WriteString("}\n")
	text := sb.String()

	f := engine.New(engine.Options{Analyzer: analyzer.Static{"": findings}, Store: store.New()})
	req := engine.Request{ProjectPath: ".", FilePath: "Widget.cs"}
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := f.FixContent(ctx, req, text); err != nil {
			b.Fatal(err)
		}
	}
}
