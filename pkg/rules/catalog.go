package rules

//nolint:gochecknoglobals // Static rule table
var catalog = []Info{
	{CompileFailed, "compile-failed", CategoryCheckErrors, "Source file failed to compile", true},

	{ElementUpperCase, "element-must-begin-with-upper-case-letter", CategoryRenaming, "Element names begin with an upper-case letter", true},
	{ConstUpperCase, "const-field-names-must-begin-with-upper-case-letter", CategoryRenaming, "Constant names begin with an upper-case letter", true},
	{FieldLowerCase, "field-names-must-begin-with-lower-case-letter", CategoryRenaming, "Variable and private field names begin with a lower-case letter", true},
	{AccessibleFieldUpper, "accessible-fields-must-begin-with-upper-case-letter", CategoryRenaming, "Public and internal fields begin with an upper-case letter", true},

	{KeywordsSpacing, "keywords-must-be-spaced-correctly", CategorySpacing, "Keywords are followed by a single space", true},
	{CommasSpacing, "commas-must-be-spaced-correctly", CategorySpacing, "Commas are followed, and not preceded, by a space", true},
	{SemicolonsSpacing, "semicolons-must-be-spaced-correctly", CategorySpacing, "Semicolons are followed, and not preceded, by a space", true},
	{CommentSpacing, "single-line-comments-must-begin-with-single-space", CategorySpacing, "Single-line comments begin with a single space", true},
	{ClosingParenSpacing, "closing-parenthesis-must-be-spaced-correctly", CategorySpacing, "Closing parentheses are not preceded by whitespace", true},
	{OpeningBracketSpacing, "opening-square-brackets-must-be-spaced-correctly", CategorySpacing, "Opening square brackets are not surrounded by whitespace", true},
	{TabsMustNotBeUsed, "tabs-must-not-be-used", CategorySpacing, "Indentation uses spaces, not tabs", true},
	{UseBuiltInTypeAlias, "use-built-in-type-alias", CategorySpacing, "Built-in types use their C# alias", true},

	{PrefixLocalCalls, "prefix-local-calls-with-this", CategoryReadability, "Local members are prefixed with this.", true},
	{EmptyComment, "comments-must-contain-text", CategoryReadability, "Comments are not empty", true},
	{PrefixCallsCorrectly, "prefix-calls-correctly", CategoryReadability, "Calls are prefixed consistently", true},
	{UseStringEmpty, "use-string-empty-for-empty-strings", CategoryReadability, "Empty strings use string.Empty", true},
	{ParametersSeparated, "parameters-must-be-on-same-line-or-separate-lines", CategoryReadability, "Parameters share one line or use one line each", true},
	{FirstParameterOnLine, "split-parameters-must-start-on-line-after-declaration", CategoryReadability, "Split parameter lists start on the line after the declaration", true},
	{ParameterFollowsComma, "parameter-must-follow-comma", CategoryReadability, "Each split parameter starts on its own line", true},

	{ClosingBraceOwnLine, "curly-brackets-for-multi-line-statements-must-not-share-line", CategoryBlankLine, "Closing braces sit on their own line", true},
	{BracesMustNotBeOmitted, "curly-brackets-must-not-be-omitted", CategoryBlankLine, "Statement bodies are wrapped in braces", true},
	{OpeningBraceBlankAfter, "opening-curly-brackets-must-not-be-followed-by-blank-line", CategoryBlankLine, "No blank line after an opening brace", true},
	{ClosingBraceBlankBefore, "closing-curly-brackets-must-not-be-preceded-by-blank-line", CategoryBlankLine, "No blank line before a closing brace", true},
	{CommentBlankAfter, "single-line-comments-must-not-be-followed-by-blank-line", CategoryBlankLine, "No blank line after a single-line comment", true},
	{ClosingBraceNeedsBlank, "closing-curly-bracket-must-be-followed-by-blank-line", CategoryBlankLine, "A blank line follows a closing brace", true},
	{DocHeaderNeedsBlankBefore, "element-documentation-header-must-be-preceded-by-blank-line", CategoryBlankLine, "A blank line precedes a documentation header", true},
	{CommentNeedsBlankBefore, "single-line-comment-must-be-preceded-by-blank-line", CategoryBlankLine, "A blank line precedes a single-line comment", true},

	{ElementsDocumented, "elements-must-be-documented", CategoryDocumentation, "Elements carry a documentation header", true},
	{PartialElementsDocumented, "partial-elements-must-be-documented", CategoryDocumentation, "Partial elements carry a documentation header", true},
	{EnumItemsDocumented, "enumeration-items-must-be-documented", CategoryDocumentation, "Enumeration items carry a documentation header", true},
	{ParametersDocumented, "element-parameters-must-be-documented", CategoryDocumentation, "Every parameter has a param tag", true},
	{ParameterDocsMatch, "element-parameter-documentation-must-match-element-parameters", CategoryDocumentation, "Param tags match the parameter list", true},
	{TypeParametersDocumented, "generic-type-parameters-must-be-documented", CategoryDocumentation, "Every type parameter has a typeparam tag", true},
	{TypeParameterDocsMatch, "generic-type-parameter-documentation-must-match-type-parameters", CategoryDocumentation, "Typeparam tags match the type parameters", true},
	{DocTextCapitalized, "documentation-text-must-begin-with-a-capital-letter", CategoryDocumentation, "Summary text begins with a capital letter", true},
	{DocTextEndsWithPeriod, "documentation-text-must-end-with-a-period", CategoryDocumentation, "Summary text ends with a period", true},
	{FileHeader, "file-must-have-header", CategoryDocumentation, "Files start with a copyright header", true},

	{SummaryPrefix, "summary-must-start-with-prefix", CategoryCustomRules, "Summary text starts with the required prefix", true},
	{SummaryFragment, "summary-must-contain-fragment", CategoryCustomRules, "Summary text contains the required fragment", true},

	{UsingPlacement, "using-directives-must-be-placed-within-namespace", CategoryUsing, "Using directives sit inside the namespace", false},

	{AccessModifierRequired, "access-modifier-must-be-declared", CategoryModifiers, "Declarations state their access modifier", true},
}
