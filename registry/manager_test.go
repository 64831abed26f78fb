package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedlang/macrolang/registry"
)

func TestManagerInitializationIsEmpty(t *testing.T) {
	mgr := registry.NewManager()
	assert.Equal(t, 0, mgr.FunctionCount())
	assert.Equal(t, 0, mgr.EnumCount())
	assert.Equal(t, 0, mgr.EventCount())
}

func TestIngestBatchFunctionsMaterializesAliases(t *testing.T) {
	mgr := registry.NewManager()
	stats, err := mgr.IngestBatch(registry.BatchFunctions, "core", []byte(
		`[{"name":"set","aliases":["put","store"],"brackets":true}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Attempted)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 3, mgr.FunctionCount())

	canonical, ok := mgr.GetExact("$set")
	require.True(t, ok)
	assert.Equal(t, "core", canonical.Extension)
	assert.Equal(t, registry.BracketsRequired, canonical.Brackets)
	assert.False(t, canonical.IsAlias())

	alias, ok := mgr.GetExact("$put")
	require.True(t, ok)
	assert.True(t, alias.IsAlias())
	assert.Equal(t, "core", alias.Extension)
}

func TestIngestBatchFunctionsSkipsMalformedRecords(t *testing.T) {
	mgr := registry.NewManager()
	stats, err := mgr.IngestBatch(registry.BatchFunctions, "core", []byte(
		`[{"name":"good"},{"name":123}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Attempted)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, 1, mgr.FunctionCount())
}

func TestIngestBatchRejectsInvalidExtensionTag(t *testing.T) {
	mgr := registry.NewManager()
	stats, err := mgr.IngestBatch(registry.BatchFunctions, "9bad", []byte(`[{"name":"get"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, mgr.FunctionCount())
}

func TestIngestBatchEnumsAndEvents(t *testing.T) {
	mgr := registry.NewManager()

	stats, err := mgr.IngestBatch(registry.BatchEnums, "", []byte(`{"Colors":["Red","Blue"]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Succeeded)

	values, ok := mgr.GetEnum("Colors")
	require.True(t, ok)
	assert.Equal(t, []string{"Red", "Blue"}, values)

	stats, err = mgr.IngestBatch(registry.BatchEvents, "", []byte(
		`[{"name":"onMessage","description":"Test event"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Succeeded)

	event, ok := mgr.GetEvent("onMessage")
	require.True(t, ok)
	assert.Equal(t, "Test event", event.Description)
}

func TestManagerClear(t *testing.T) {
	mgr := registry.NewManager()
	_, err := mgr.IngestBatch(registry.BatchFunctions, "", []byte(`[{"name":"test"}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.FunctionCount())

	mgr.Clear()
	assert.Equal(t, 0, mgr.FunctionCount())
	assert.Equal(t, 0, mgr.EnumCount())
	assert.Equal(t, 0, mgr.EventCount())
}

func TestGetFallsBackToPrefixMatch(t *testing.T) {
	mgr := registry.NewManager()
	_, err := mgr.IngestBatch(registry.BatchFunctions, "", []byte(`[{"name":"get"}]`))
	require.NoError(t, err)

	sig, ok := mgr.Get("$getUser")
	require.True(t, ok)
	assert.Equal(t, "$get", sig.Name)

	_, ok = mgr.Get("$unknown")
	assert.False(t, ok)
}

func TestAddSourceAndSources(t *testing.T) {
	mgr := registry.NewManager()
	desc := mgr.AddSource(registry.BatchFunctions, "core")
	assert.Equal(t, registry.BatchFunctions, desc.Kind)
	assert.Equal(t, "core", desc.Extension)

	sources := mgr.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, desc.ID, sources[0].ID)
}
