package drivers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestUsing_MovesDirectivesIntoNamespace(t *testing.T) {
	t.Parallel()

	input := lines(
		"using System;",
		"using System.IO;",
		"",
		"namespace Acme",
		"{",
		"    class A {}",
		"}",
	)

	out, ctx := run(t, drivers.Using{}, input,
		v(rules.UsingPlacement, 1, ""),
		v(rules.UsingPlacement, 2, ""),
	)

	assert.Equal(t, lines(
		"",
		"namespace Acme",
		"{",
		"    using System;",
		"    using System.IO;",
		"    class A {}",
		"}",
	), out)
	assert.Equal(t, 2, resolvedCount(ctx))
}

func TestUsing_BraceOnNamespaceLine(t *testing.T) {
	t.Parallel()

	out, _ := run(t, drivers.Using{}, lines("using System;", "namespace Acme { class A {}", "}"),
		v(rules.UsingPlacement, 1, ""))

	assert.Equal(t, lines(
		"namespace Acme {",
		"    using System;",
		"    class A {}",
		"}",
	), out)
}

func TestUsing_Mismatch(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		lines("using System;", "namespace Acme;", "class A {}"),
		lines("using System;", "class A {}"),
	} {
		out, ctx := run(t, drivers.Using{}, input, v(rules.UsingPlacement, 1, ""))
		assert.Equal(t, input, out)
		assert.Equal(t, 0, resolvedCount(ctx))
	}
}

func TestUsing_DisabledByFilter(t *testing.T) {
	t.Parallel()

	input := lines("using System;", "namespace Acme", "{", "}")
	ctx := newContext(t, input, v(rules.UsingPlacement, 1, ""))
	ctx.Doc.SetFilter(func(id rules.ID) bool { return id != rules.UsingPlacement })

	drivers.Using{}.Fix(ctx)

	assert.Equal(t, input, ctx.Doc.Text())
	assert.Empty(t, ctx.Skipped)
}
