// Package rules provides the built-in format rules for swiftfmt.
//
// # Rule Domains
//
// Every rule is a short scanner over the engine's query and mutation API.
// Rules are grouped by what they touch:
//
//   - Whitespace:
//
//   - trailingSpace - Remove trailing space at end of a line
//
//   - consecutiveSpaces - Replace consecutive spaces with a single space
//
//   - consecutiveBlankLines - Replace consecutive blank lines with a single blank line
//
//   - blankLinesAtStartOfScope - Remove leading blank line at the start of a scope
//
//   - blankLinesAtEndOfScope - Remove trailing blank line at the end of a scope
//
//   - linebreakAtEndOfFile - Add empty blank line at end of file
//
//   - Spacing:
//
//   - spaceAroundOperators - Add or remove space around operators
//
//   - spaceInsideBraces - Add space inside curly braces
//
//   - spaceInsideParens - Remove space inside parentheses
//
//   - spaceInsideBrackets - Remove space inside square brackets
//
//   - spaceInsideComments - Add leading and/or trailing space inside comments
//
//   - Braces:
//
//   - braces - Wrap braces in accordance with selected style (K&R or Allman)
//
//   - elseOnSameLine - Place else, catch or while keyword on the same or next line
//
//   - emptyBraces - Remove whitespace inside empty braces
//
//   - Syntax:
//
//   - redundantParens - Remove redundant parentheses around conditions
//
//   - semicolons - Remove semicolons
//
//   - void - Use Void for type declarations and () for values
//
//   - trailingCommas - Add or remove trailing commas in collection literals
//
//   - leadingDelimiters - Move leading commas to the end of the previous line
//
//   - assertionFailures - Rewrite assert(false, ...) as assertionFailure(...)
//
//   - yodaConditions - Prefer constant values on the right-hand side of comparisons
//
//   - acronyms - Capitalize acronyms in identifiers (opt-in)
//
//   - Imports:
//
//   - blankLineAfterImports - Insert blank line after import statements
//
//   - duplicateImports - Remove duplicate import statements
//
//   - sortImports - Sort import statements alphabetically
//
//   - Declarations:
//
//   - emptyExtensions - Remove empty, non-conforming extensions
//
//   - unusedPrivateDeclarations - Remove unused private and fileprivate declarations
//
//   - modifierOrder - Use consistent ordering for member modifiers (alias: specifiers)
//
//   - organizeDeclarations - Organize members of type bodies by category (opt-in)
//
//   - Comments:
//
//   - todos - Use correct formatting for TODO:, MARK: and FIXME: comments
//
//   - wrapSingleLineComments - Wrap // comments that exceed maxwidth
//
//   - fileHeader - Strip or replace the file header
//
// # Usage
//
// Rules are registered explicitly:
//
//	registry, err := rules.NewRegistry()
//	if err != nil {
//		return err
//	}
//	enabled, err := format.ResolveRules(registry, nil, []string{"semicolons"})
package rules
