// Package decl extracts the parts of a C# declaration line the fix drivers
// need: parameter names, generic type parameters, whether a returns tag is
// due, and parenthesis balance.
//
// It is a line heuristic, not a parser. Known limits:
//   - one declaration per line; multi-line signatures are seen one line at a time
//   - nested generics inside parameter types are dropped by depth counting,
//     so `Dictionary<string, List<int>> map` yields `map`, but unbalanced
//     angle brackets (e.g. `a < b` in a default value) confuse it
//   - attributes on parameters are treated as part of the type
//   - multi-line attributes above a declaration are not recognised
//
// Drivers depend on these exact heuristics. Do not swap in a real grammar
// without updating their tests.
package decl

import (
	"regexp"
	"strings"
)

var (
	parenSpan      = regexp.MustCompile(`\(.*\)`)
	genericMethod  = regexp.MustCompile(`[A-Za-z0-9_]+[ ]*<[A-Za-z0-9_ ,]+>[ ]*\(`)
	genericArgs    = regexp.MustCompile(`<[A-Za-z0-9_ ,]+>`)
	voidKeyword    = regexp.MustCompile(`\bvoid\b`)
	conditionStart = regexp.MustCompile(`^\s*(?:else\s+)?(?:if|while|for|foreach)\s*\(`)
)

// modifiers are the tokens that may precede a constructor name.
//
//nolint:gochecknoglobals // Static lookup table
var modifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"extern":    true,
	"unsafe":    true,
	"partial":   true,
}

// Parameters returns the parameter names of the first parenthesised list on
// line. ok is false when the line has no parenthesis pair at all.
//
// The greedy span from the first "(" to the last ")" is used, generic spans
// are dropped, default values are cut at "=", and the last word of each
// comma-separated element is the name. Elements with a single word (a bare
// type or a call argument) are skipped.
func Parameters(line string) (names []string, ok bool) {
	span := parenSpan.FindString(line)
	if span == "" {
		return nil, false
	}

	inner := strings.NewReplacer("(", "", ")", "").Replace(span)
	inner = StripAngles(inner)

	names = []string{}
	for _, element := range strings.Split(inner, ",") {
		if idx := strings.Index(element, "="); idx >= 0 {
			element = element[:idx]
		}
		words := strings.Fields(element)
		if len(words) > 1 {
			names = append(names, words[len(words)-1])
		}
	}

	return names, true
}

// TypeParameters returns the generic type parameter names of a method
// declared as `Name<T1, T2>(`. It returns nil when there are none.
func TypeParameters(line string) []string {
	match := genericMethod.FindString(line)
	if match == "" {
		return nil
	}

	args := genericArgs.FindString(match)
	args = strings.NewReplacer(" ", "", "<", "", ">", "").Replace(args)

	var types []string
	for _, t := range strings.Split(args, ",") {
		if t != "" {
			types = append(types, t)
		}
	}
	return types
}

// NeedsReturns reports whether a documentation header for line should carry
// a returns tag: the line has a parameter list, that list is not preceded by
// "=", the return type is not void, and the declaration is not a constructor.
func NeedsReturns(line string) bool {
	open := strings.Index(line, "(")
	if open < 0 {
		return false
	}

	head := line[:open]
	if strings.Contains(head, "=") {
		return false
	}
	if voidKeyword.MatchString(head) {
		return false
	}

	return !isConstructor(head)
}

// isConstructor reports whether head, the text before "(", holds a single
// name once modifiers and attributes are dropped.
func isConstructor(head string) bool {
	head = strings.TrimSpace(head)
	if strings.HasPrefix(head, "[") {
		if end := strings.LastIndex(head, "]"); end >= 0 {
			head = head[end+1:]
		}
	}

	names := 0
	for _, word := range strings.Fields(StripAngles(head)) {
		if !modifiers[word] {
			names++
		}
	}
	return names <= 1
}

// IsCallback reports whether params describe an event handler (sender, e).
func IsCallback(params []string) bool {
	var sender, event bool
	for _, p := range params {
		switch p {
		case "sender":
			sender = true
		case "e":
			event = true
		}
	}
	return sender && event
}

// StripAngles removes every span enclosed in angle brackets, nesting included.
func StripAngles(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ParenDepth returns the signed count of "(" minus ")" on s.
func ParenDepth(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

// ConditionEnd finds the end of the condition of a leading if, while, for or
// foreach statement. It returns the index just past the closing parenthesis.
// ok is false when the line does not start with such a statement or the
// parentheses do not balance on this line.
func ConditionEnd(line string) (end int, ok bool) {
	loc := conditionStart.FindStringIndex(line)
	if loc == nil {
		return 0, false
	}

	depth := 0
	for i := loc[1] - 1; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// SplitTopLevel splits s at commas that are not nested inside (), [], <> or {}.
// Each piece is trimmed of surrounding whitespace; empty pieces are dropped.
func SplitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)

	flush := func(end int) {
		if piece := strings.TrimSpace(s[start:end]); piece != "" {
			parts = append(parts, piece)
		}
	}

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '>', '}':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))

	return parts
}

// IsAttribute reports whether line is an attribute line such as `[Test]`.
func IsAttribute(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "[")
}

// IsDocComment reports whether line is a `///` documentation comment line.
func IsDocComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "///")
}
