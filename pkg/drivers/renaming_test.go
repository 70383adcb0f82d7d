package drivers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestRenaming(t *testing.T) {
	t.Parallel()

	text := "void doWork()\nconst int maxSize = 1;\nprivate int Count;\npublic int total;"
	out, ctx := run(t, drivers.Renaming{}, text,
		v(rules.ElementUpperCase, 1, "method names begin with an upper-case letter: doWork."),
		v(rules.ConstUpperCase, 2, "Constants must start with an upper-case letter: maxSize."),
		v(rules.FieldLowerCase, 3, "Variable names must start with a lower-case letter: Count."),
		v(rules.AccessibleFieldUpper, 4, "Public and internal fields must start with an upper-case letter: total."),
	)

	assert.Equal(t, text, out, "renaming never rewrites lines")
	assert.Equal(t, map[string]string{
		"doWork":  "DoWork",
		"maxSize": "MaxSize",
		"Count":   "count",
		"total":   "Total",
	}, ctx.Renames)
	assert.Equal(t, 4, resolvedCount(ctx))
}

func TestRenaming_RepeatedName(t *testing.T) {
	t.Parallel()

	_, ctx := run(t, drivers.Renaming{}, "a\nb",
		v(rules.ElementUpperCase, 1, "must begin with an upper case letter: foo"),
		v(rules.AccessibleFieldUpper, 2, "must begin with an upper case letter: 'foo'."),
	)

	assert.Equal(t, map[string]string{"foo": "Foo"}, ctx.Renames)
	assert.Equal(t, 2, resolvedCount(ctx))
}

func TestRenaming_MessageCaseOverridesRuleDefault(t *testing.T) {
	t.Parallel()

	_, ctx := run(t, drivers.Renaming{}, "a",
		v(rules.ElementUpperCase, 1, "must begin with a lower case letter: Bar."),
	)

	assert.Equal(t, map[string]string{"Bar": "bar"}, ctx.Renames)
}

func TestRenaming_Mismatch(t *testing.T) {
	t.Parallel()

	_, ctx := run(t, drivers.Renaming{}, "a\nb",
		v(rules.ElementUpperCase, 1, ""),
		v(rules.ElementUpperCase, 2, "must begin with an upper-case letter: Already."),
	)

	assert.Empty(t, ctx.Renames)
	assert.Equal(t, 0, resolvedCount(ctx))
	assert.Len(t, ctx.Skipped, 2)
}
