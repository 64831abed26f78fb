package registry

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLBatch is the alternate, human-editable ingestion format: the same
// three-part shape as the JSON batch payloads (functions/enums/events),
// but written as YAML documents so function signatures can live
// alongside hand-authored documentation rather than as generated JSON.
//
// Grounded on the teacher's cli/cmd/config.go (sqlcode.yaml decoded with
// yaml.Unmarshal into a plain Go struct); adapted here from a CLI config
// file to a registry batch payload.
type YAMLBatch struct {
	Functions []Signature `yaml:"-"`
	Enums     EnumTable   `yaml:"-"`
	Events    []Event     `yaml:"-"`
}

// rawYAMLBatch mirrors YAMLBatch's shape with plain map/slice fields,
// since yaml.v3 doesn't understand Signature's json-tagged field names
// (enum_name, brackets' bool-or-string form, and so on). Decoding goes
// yaml -> generic values -> JSON -> the already-correct json.Unmarshaler
// implementations on Signature/Event, rather than duplicating field-name
// mapping rules a second time for yaml tags.
type rawYAMLBatch struct {
	Functions []map[string]any    `yaml:"functions"`
	Enums     map[string][]string `yaml:"enums"`
	Events    []map[string]any    `yaml:"events"`
}

// DecodeYAMLBatch parses data as a YAMLBatch.
func DecodeYAMLBatch(data []byte) (YAMLBatch, error) {
	var raw rawYAMLBatch
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return YAMLBatch{}, fmt.Errorf("registry: decoding yaml batch: %w", err)
	}

	batch := YAMLBatch{Enums: EnumTable(raw.Enums)}

	if len(raw.Functions) > 0 {
		encoded, err := json.Marshal(raw.Functions)
		if err != nil {
			return YAMLBatch{}, fmt.Errorf("registry: re-encoding yaml functions: %w", err)
		}
		if err := json.Unmarshal(encoded, &batch.Functions); err != nil {
			return YAMLBatch{}, fmt.Errorf("registry: decoding yaml functions: %w", err)
		}
	}

	if len(raw.Events) > 0 {
		encoded, err := json.Marshal(raw.Events)
		if err != nil {
			return YAMLBatch{}, fmt.Errorf("registry: re-encoding yaml events: %w", err)
		}
		if err := json.Unmarshal(encoded, &batch.Events); err != nil {
			return YAMLBatch{}, fmt.Errorf("registry: decoding yaml events: %w", err)
		}
	}

	return batch, nil
}

// IngestYAML decodes data as a YAMLBatch and installs every section
// present in it, extension-tagging the function records the same way
// IngestBatch(BatchFunctions, ...) does. Each section's stats are kept
// separate since a YAML batch can carry more than one kind at once.
func (m *Manager) IngestYAML(extension string, data []byte) (map[BatchKind]FetchStats, error) {
	batch, err := DecodeYAMLBatch(data)
	if err != nil {
		return nil, err
	}

	results := make(map[BatchKind]FetchStats)

	if len(batch.Functions) > 0 {
		encoded, err := json.Marshal(batch.Functions)
		if err != nil {
			return nil, fmt.Errorf("registry: re-encoding yaml functions: %w", err)
		}
		stats, err := m.IngestBatch(BatchFunctions, extension, encoded)
		if err != nil {
			return nil, err
		}
		results[BatchFunctions] = stats
	}

	if len(batch.Enums) > 0 {
		encoded, err := json.Marshal(batch.Enums)
		if err != nil {
			return nil, fmt.Errorf("registry: re-encoding yaml enums: %w", err)
		}
		stats, err := m.IngestBatch(BatchEnums, extension, encoded)
		if err != nil {
			return nil, err
		}
		results[BatchEnums] = stats
	}

	if len(batch.Events) > 0 {
		encoded, err := json.Marshal(batch.Events)
		if err != nil {
			return nil, fmt.Errorf("registry: re-encoding yaml events: %w", err)
		}
		stats, err := m.IngestBatch(BatchEvents, extension, encoded)
		if err != nil {
			return nil, err
		}
		results[BatchEvents] = stats
	}

	return results, nil
}
