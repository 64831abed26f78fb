package parser

import (
	"strings"

	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/registry"
	"github.com/embedlang/macrolang/span"
)

// validateCall runs the registry-backed validation categories enabled on
// p against call. It returns nil immediately when no registry is
// attached, or when none of ValidateFunctions/ValidateArguments/
// ValidateEnums/ValidateBrackets is on -- a Parser built with
// WithConfig() never touches a registry at all.
//
// Grounded on original_source/tests/parser.rs's validation_tests module
// (test_validation_argument_count, test_validation_enum_values,
// test_validation_brackets, test_validation_unknown_function).
func (p *Parser) validateCall(call *ast.FunctionCall) []diag.Diagnostic {
	if p.registry == nil || !(p.config.registryAttached() || p.config.ValidateBrackets) {
		return nil
	}

	sig, found := p.registry.Get(call.Name)
	if !found {
		if p.config.ValidateFunctions {
			return []diag.Diagnostic{diag.New(diag.UnknownFunction, call.NameSpan, "Unknown function %q", call.Name)}
		}
		return nil
	}

	var diags []diag.Diagnostic
	if p.config.ValidateBrackets {
		diags = append(diags, validateBrackets(sig, call)...)
	}
	if p.config.ValidateArguments {
		diags = append(diags, validateArgumentCount(sig, call)...)
	}
	if p.config.ValidateEnums {
		diags = append(diags, p.validateEnums(sig, call)...)
	}
	return diags
}

// validateBrackets checks call's argument-list presence against sig's
// BracketPolicy. BracketsOptional never fires.
func validateBrackets(sig *registry.Signature, call *ast.FunctionCall) []diag.Diagnostic {
	switch sig.Brackets {
	case registry.BracketsRequired:
		if !call.HasArgs() {
			return []diag.Diagnostic{diag.New(diag.BracketUsage, call.NameSpan, "%s requires a bracketed argument list", call.Name)}
		}
	case registry.BracketsForbidden:
		if call.HasArgs() {
			return []diag.Diagnostic{diag.New(diag.BracketUsage, call.NameSpan, "%s does not take a bracketed argument list", call.Name)}
		}
	}
	return nil
}

// validateArgumentCount checks call's argument count against sig's
// schema: required is the number of non-rest required items; the
// schema admits unbounded trailing arguments when its last item is
// marked Rest, otherwise the total item count is the maximum.
func validateArgumentCount(sig *registry.Signature, call *ast.FunctionCall) []diag.Diagnostic {
	if !call.HasArgs() && len(sig.Args) == 0 {
		return nil
	}

	required := 0
	hasRest := false
	for _, item := range sig.Args {
		if item.Rest {
			hasRest = true
			continue
		}
		if item.Required {
			required++
		}
	}

	provided := len(call.Args)
	if provided < required {
		return []diag.Diagnostic{diag.New(diag.ArgumentCount, call.NameSpan, "%s requires at least %d argument(s), got %d", call.Name, required, provided)}
	}
	if !hasRest && provided > len(sig.Args) {
		return []diag.Diagnostic{diag.New(diag.ArgumentCount, call.NameSpan, "%s takes at most %d argument(s), got %d", call.Name, len(sig.Args), provided)}
	}
	return nil
}

// validateEnums checks each positional argument against its schema
// item's enum constraint, inline (Enum) or registry-referenced
// (EnumName). A Rest schema item applies to every remaining positional
// argument from its index onward.
func (p *Parser) validateEnums(sig *registry.Signature, call *ast.FunctionCall) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for i, arg := range call.Args {
		schema := schemaItemFor(sig.Args, i)
		if schema == nil {
			continue
		}
		if d := p.checkEnumArg(*schema, arg, call.NameSpan); d != nil {
			diags = append(diags, *d)
		}
	}
	return diags
}

// schemaItemFor returns the schema item governing positional index i:
// the item at that index, or the trailing Rest item if i runs past the
// end of a rest-terminated schema.
func schemaItemFor(items []registry.ArgSchemaItem, i int) *registry.ArgSchemaItem {
	if i < len(items) {
		return &items[i]
	}
	if len(items) > 0 && items[len(items)-1].Rest {
		return &items[len(items)-1]
	}
	return nil
}

func (p *Parser) checkEnumArg(schema registry.ArgSchemaItem, arg ast.Argument, nameSpan span.Span) *diag.Diagnostic {
	if len(schema.Enum) == 0 && schema.EnumName == "" {
		return nil
	}
	if !schema.Required && arg.IsEmpty() {
		return nil
	}

	value, ok := singleTextValue(arg)
	if !ok {
		return nil
	}

	values := schema.Enum
	if len(values) == 0 {
		resolved, found := p.registry.GetEnum(schema.EnumName)
		if !found {
			return nil
		}
		values = resolved
	}

	for _, allowed := range values {
		if value == allowed {
			return nil
		}
	}
	d := diag.New(diag.EnumValue, nameSpan, "value %q is not one of the allowed values for %q", value, schema.Name)
	return &d
}

// singleTextValue reduces arg to a literal string when it consists of
// exactly one *ast.Text part, trimmed -- the only shape an enum check
// can meaningfully compare against.
func singleTextValue(arg ast.Argument) (string, bool) {
	if len(arg.Parts) != 1 {
		return "", false
	}
	t, ok := arg.Parts[0].(*ast.Text)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(t.Content), true
}
