// Package rules defines the closed set of rule identifiers the fix engine
// understands and the driver category each one belongs to.
package rules

import "strings"

// ID identifies a style rule as reported by the analyzer, e.g. "SA1600".
type ID string

// String returns the rule identifier.
func (id ID) String() string { return string(id) }

// Parse normalizes s and reports whether it names a known rule.
func Parse(s string) (ID, bool) {
	id := ID(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := DefaultRegistry.GetByID(id)
	return id, ok
}

// Rule identifiers handled by the engine.
const (
	CompileFailed ID = "SA0102"

	// Spacing.
	KeywordsSpacing       ID = "SA1000"
	CommasSpacing         ID = "SA1001"
	SemicolonsSpacing     ID = "SA1002"
	CommentSpacing        ID = "SA1005"
	ClosingParenSpacing   ID = "SA1009"
	OpeningBracketSpacing ID = "SA1010"
	TabsMustNotBeUsed     ID = "SA1027"
	UseBuiltInTypeAlias   ID = "SA1121"

	// Readability.
	PrefixLocalCalls      ID = "SA1101"
	ParameterFollowsComma ID = "SA1115"
	FirstParameterOnLine  ID = "SA1116"
	ParametersSeparated   ID = "SA1117"
	EmptyComment          ID = "SA1120"
	UseStringEmpty        ID = "SA1122"
	PrefixCallsCorrectly  ID = "SA1126"

	// Ordering.
	UsingPlacement ID = "SA1200"

	// Naming.
	ElementUpperCase     ID = "SA1300"
	ConstUpperCase       ID = "SA1303"
	FieldLowerCase       ID = "SA1306"
	AccessibleFieldUpper ID = "SA1307"

	// Maintainability.
	AccessModifierRequired ID = "SA1400"

	// Layout.
	ClosingBraceOwnLine       ID = "SA1500"
	BracesMustNotBeOmitted    ID = "SA1503"
	OpeningBraceBlankAfter    ID = "SA1505"
	ClosingBraceBlankBefore   ID = "SA1508"
	CommentBlankAfter         ID = "SA1512"
	ClosingBraceNeedsBlank    ID = "SA1513"
	DocHeaderNeedsBlankBefore ID = "SA1514"
	CommentNeedsBlankBefore   ID = "SA1515"

	// Documentation.
	ElementsDocumented        ID = "SA1600"
	PartialElementsDocumented ID = "SA1601"
	EnumItemsDocumented       ID = "SA1602"
	ParametersDocumented      ID = "SA1611"
	ParameterDocsMatch        ID = "SA1612"
	TypeParametersDocumented  ID = "SA1618"
	TypeParameterDocsMatch    ID = "SA1620"
	DocTextCapitalized        ID = "SA1628"
	DocTextEndsWithPeriod     ID = "SA1629"
	FileHeader                ID = "SA1633"

	// House rules reported by custom analyzer plugins.
	SummaryPrefix   ID = "CR0001"
	SummaryFragment ID = "CR0003"
)

// Category groups rules by the driver that resolves them.
type Category int

// Driver categories, in pipeline order after CheckErrors.
const (
	CategoryCheckErrors Category = iota
	CategoryRenaming
	CategorySpacing
	CategoryReadability
	CategoryBlankLine
	CategoryDocumentation
	CategoryCustomRules
	CategoryUsing
	CategoryModifiers
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCheckErrors:
		return "check-errors"
	case CategoryRenaming:
		return "renaming"
	case CategorySpacing:
		return "spacing"
	case CategoryReadability:
		return "readability"
	case CategoryBlankLine:
		return "blank-line"
	case CategoryDocumentation:
		return "documentation"
	case CategoryCustomRules:
		return "custom"
	case CategoryUsing:
		return "using"
	case CategoryModifiers:
		return "modifiers"
	default:
		return "unknown"
	}
}

// Info describes a registered rule.
type Info struct {
	ID          ID
	Name        string
	Category    Category
	Description string

	// DefaultEnabled is false for rules whose fix is known to be unsafe
	// without review.
	DefaultEnabled bool
}
