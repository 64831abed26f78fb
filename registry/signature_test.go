package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedlang/macrolang/registry"
)

func TestBracketPolicyUnmarshalsBoolOrString(t *testing.T) {
	cases := []struct {
		wire string
		want registry.BracketPolicy
	}{
		{`true`, registry.BracketsRequired},
		{`false`, registry.BracketsForbidden},
		{`"required"`, registry.BracketsRequired},
		{`"forbidden"`, registry.BracketsForbidden},
		{`"optional"`, registry.BracketsOptional},
		{`""`, registry.BracketsOptional},
	}
	for _, c := range cases {
		var p registry.BracketPolicy
		require.NoError(t, json.Unmarshal([]byte(c.wire), &p), c.wire)
		assert.Equal(t, c.want, p, c.wire)
	}
}

func TestBracketPolicyUnmarshalRejectsUnknownString(t *testing.T) {
	var p registry.BracketPolicy
	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &p))
}

func TestBracketPolicyMarshalsThreeWayString(t *testing.T) {
	data, err := json.Marshal(registry.BracketsRequired)
	require.NoError(t, err)
	assert.JSONEq(t, `"required"`, string(data))
}

func TestSignatureUnmarshalPreservesOverflow(t *testing.T) {
	var sig registry.Signature
	require.NoError(t, json.Unmarshal([]byte(`{"name":"get","futureField":"x"}`), &sig))
	assert.Equal(t, "get", sig.Name)
	require.Contains(t, sig.Overflow, "futureField")

	data, err := json.Marshal(sig)
	require.NoError(t, err)
	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, "x", roundTripped["futureField"])
}

func TestSignatureWithNameDerivesAlias(t *testing.T) {
	canonical := registry.Signature{Name: "$set", Aliases: []string{"put"}}
	derived := canonical.WithName("put")

	assert.Equal(t, "$put", derived.Name)
	assert.True(t, derived.IsAlias())
	assert.Empty(t, derived.Aliases)
	assert.False(t, canonical.IsAlias())
}

func TestCanonicalNameEnsuresLeadingDollar(t *testing.T) {
	assert.Equal(t, "$get", registry.CanonicalName("get"))
	assert.Equal(t, "$get", registry.CanonicalName("$get"))
}
