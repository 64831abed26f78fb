package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/span"
)

func TestNewFormatsMessage(t *testing.T) {
	d := diag.New(diag.UnknownFunction, span.New(2, 6), "unknown function %q", "$foo")
	assert.Equal(t, diag.UnknownFunction, d.Kind)
	assert.Equal(t, `unknown function "$foo"`, d.Message)
	assert.Equal(t, span.New(2, 6), d.Span)
}

func TestStringIncludesKindAndSpan(t *testing.T) {
	d := diag.New(diag.Syntax, span.New(0, 3), "bad")
	assert.Equal(t, "Syntax@[0:3]: bad", d.String())
}

func TestDiagnosticSatisfiesErrorInterface(t *testing.T) {
	var err error = diag.New(diag.ArgumentCount, span.New(1, 2), "too few arguments")
	assert.Equal(t, "ArgumentCount@[1:2]: too few arguments", err.Error())
	var target diag.Diagnostic
	assert.True(t, errors.As(err, &target))
}

func TestErrorKindStringUnknownDefault(t *testing.T) {
	var k diag.ErrorKind = 99
	assert.Equal(t, "Unknown", k.String())
}
