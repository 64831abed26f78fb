package parser

// ValidationConfig toggles which validation categories a Parser runs.
// Every category is independently switchable. Syntax diagnostics
// (unmatched backticks, braces, and brackets) are controlled by
// ValidateSyntax/ValidateBrackets and fire whether or not a registry is
// attached; the remaining three categories require a registry.
//
// Grounded on original_source/tests/parser.rs's ValidationConfig usage
// (syntax_only, and the {validate_functions, validate_brackets,
// validate_arguments, validate_enums} struct literals).
type ValidationConfig struct {
	// ValidateSyntax covers unclosed code blocks and unclosed host
	// expressions (${ ... }).
	ValidateSyntax bool
	// ValidateBrackets covers unmatched [ ] in modifiers, escape
	// functions, and argument lists, plus registry bracket-policy
	// mismatches.
	ValidateBrackets bool
	ValidateFunctions bool
	ValidateArguments bool
	ValidateEnums     bool
}

// SyntaxOnly enables only ValidateSyntax and ValidateBrackets. Without an
// attached registry it performs no registry lookups; with one attached,
// ValidateBrackets also checks each known call's bracket policy.
func SyntaxOnly() ValidationConfig {
	return ValidationConfig{ValidateSyntax: true, ValidateBrackets: true}
}

// Full enables every validation category.
func Full() ValidationConfig {
	return ValidationConfig{
		ValidateSyntax:    true,
		ValidateBrackets:  true,
		ValidateFunctions: true,
		ValidateArguments: true,
		ValidateEnums:     true,
	}
}

// registryAttached reports whether any registry-backed category is on.
func (c ValidationConfig) registryAttached() bool {
	return c.ValidateFunctions || c.ValidateArguments || c.ValidateEnums
}
