package registry

import (
	"encoding/json"
	"fmt"
)

// CacheVersion is the single monotonic integer version this codec
// understands. Deserializing a cache stamped with any other version
// fails with a Cache error.
const CacheVersion = 1

// Cache is the versioned, round-trippable snapshot of a registry:
// {version, functions, enums, events}. Grounded on spec §4.H/§6 and
// modeled structurally on sqlparser.Create's docstring-as-YAML
// marshal/unmarshal pair (adapted here from YAML to JSON).
type Cache struct {
	Version   int         `json:"version"`
	Functions []Signature `json:"functions"`
	Enums     EnumTable   `json:"enums"`
	Events    []Event     `json:"events"`
}

// CacheError reports a version mismatch or malformed cache payload.
type CacheError struct {
	Message string
}

func (e CacheError) Error() string { return "registry: cache: " + e.Message }

// ExportCache snapshots the manager into a Cache at the current
// CacheVersion. Alias-derived records are not re-exported individually;
// only canonical (non-alias-derived) signatures are included, since
// aliases are re-materialized on import by the same rule used during
// ordinary ingestion.
func (m *Manager) ExportCache() Cache {
	cache := Cache{
		Version: CacheVersion,
		Enums:   m.GetAllEnums(),
	}

	seen := make(map[string]bool)
	for _, sig := range m.trie.completions("") {
		if sig.IsAlias() || seen[sig.Name] {
			continue
		}
		seen[sig.Name] = true
		cache.Functions = append(cache.Functions, *sig)
	}
	for _, e := range m.GetAllEvents() {
		cache.Events = append(cache.Events, *e)
	}
	return cache
}

// MarshalCache serializes a Cache to its wire JSON form.
func MarshalCache(c Cache) ([]byte, error) {
	return json.Marshal(c)
}

// ImportCache decodes data as a Cache, verifies its version, clears the
// manager, and repopulates it -- aliases are re-materialized via the
// same IngestBatch codepath used for ordinary ingestion.
func (m *Manager) ImportCache(data []byte) error {
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return CacheError{Message: fmt.Sprintf("malformed payload: %s", err)}
	}
	if c.Version != CacheVersion {
		return CacheError{Message: fmt.Sprintf("unsupported version %d (want %d)", c.Version, CacheVersion)}
	}

	m.Clear()

	functionsJSON, err := json.Marshal(c.Functions)
	if err != nil {
		return CacheError{Message: err.Error()}
	}
	if _, err := m.IngestBatch(BatchFunctions, "", functionsJSON); err != nil {
		return err
	}

	if len(c.Enums) > 0 {
		enumsJSON, err := json.Marshal(c.Enums)
		if err != nil {
			return CacheError{Message: err.Error()}
		}
		if _, err := m.IngestBatch(BatchEnums, "", enumsJSON); err != nil {
			return err
		}
	}

	if len(c.Events) > 0 {
		eventsJSON, err := json.Marshal(c.Events)
		if err != nil {
			return CacheError{Message: err.Error()}
		}
		if _, err := m.IngestBatch(BatchEvents, "", eventsJSON); err != nil {
			return err
		}
	}

	return nil
}
