package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedlang/macrolang/registry"
)

func TestExportImportCacheRoundTrip(t *testing.T) {
	mgr := registry.NewManager()
	_, err := mgr.IngestBatch(registry.BatchFunctions, "core", []byte(`[{"name":"test_func","description":"Test function"}]`))
	require.NoError(t, err)
	_, err = mgr.IngestBatch(registry.BatchEnums, "", []byte(`{"Colors":["Red","Blue"]}`))
	require.NoError(t, err)
	_, err = mgr.IngestBatch(registry.BatchEvents, "", []byte(`[{"name":"onMessage","description":"Test event"}]`))
	require.NoError(t, err)

	cache := mgr.ExportCache()
	assert.Equal(t, registry.CacheVersion, cache.Version)
	require.Len(t, cache.Functions, 1)
	assert.Equal(t, []string{"Red", "Blue"}, cache.Enums["Colors"])

	data, err := registry.MarshalCache(cache)
	require.NoError(t, err)

	other := registry.NewManager()
	require.NoError(t, other.ImportCache(data))

	_, ok := other.GetExact("$test_func")
	assert.True(t, ok)
	values, ok := other.GetEnum("Colors")
	require.True(t, ok)
	assert.Equal(t, []string{"Red", "Blue"}, values)
	event, ok := other.GetEvent("onMessage")
	require.True(t, ok)
	assert.Equal(t, "Test event", event.Description)
}

func TestExportCacheOmitsAliasRecords(t *testing.T) {
	mgr := registry.NewManager()
	_, err := mgr.IngestBatch(registry.BatchFunctions, "", []byte(`[{"name":"set","aliases":["put"]}]`))
	require.NoError(t, err)

	cache := mgr.ExportCache()
	require.Len(t, cache.Functions, 1)
	assert.Equal(t, "$set", cache.Functions[0].Name)
}

func TestImportCacheRejectsVersionMismatch(t *testing.T) {
	mgr := registry.NewManager()
	err := mgr.ImportCache([]byte(`{"version":99,"functions":[],"enums":{},"events":[]}`))
	require.Error(t, err)
	var cacheErr registry.CacheError
	assert.ErrorAs(t, err, &cacheErr)
}

func TestImportCacheRejectsMalformedPayload(t *testing.T) {
	mgr := registry.NewManager()
	err := mgr.ImportCache([]byte(`not json`))
	assert.Error(t, err)
}
