package drivers

import (
	"strings"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Modifiers adds an explicit access modifier to declarations.
type Modifiers struct{}

// Category implements Driver.
func (Modifiers) Category() rules.Category { return rules.CategoryModifiers }

// Fix implements Driver.
func (Modifiers) Fix(ctx *Context) {
	apply(ctx, rules.AccessModifierRequired, addModifier)
}

//nolint:gochecknoglobals // Static lookup table
var accessModifiers = []string{"public", "private", "protected", "internal"}

func addModifier(ctx *Context, line *document.Line, _ *document.Violation) error {
	body := strings.TrimLeft(line.Text, " \t")
	if body == "" {
		return mismatch("blank line")
	}
	for _, m := range accessModifiers {
		if strings.HasPrefix(body, m+" ") {
			return mismatch("already declares %s", m)
		}
	}

	modifier := ctx.Modifier
	if modifier == "" {
		modifier = DefaultModifier
	}
	line.Text = line.Indent() + modifier + " " + body
	return nil
}
