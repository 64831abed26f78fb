package registry

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// Manager is the concurrent façade over the trie, the enum map, and the
// event map: a writable trie behind a reader-preferring exclusion
// primitive (sync.RWMutex, inside trie), and enum/event maps behind
// sync.Map, Go's standard read-mostly concurrent map -- the idiomatic
// stand-in for the sharded concurrent map primitive named in spec §5
// (see DESIGN.md for why no third-party map fills that role here).
//
// Grounded on original_source/src/metadata.rs's MetadataManager and on
// the general "façade holding its sub-stores behind locks, constructed
// once and passed around" shape of sqlcode.Deployable.
type Manager struct {
	trie *trie

	enums  sync.Map // string -> []string
	events sync.Map // string -> *Event

	sourcesMu sync.Mutex
	sources   []SourceDescriptor

	logger logrus.FieldLogger
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger overrides the default logger (logrus.StandardLogger())
// used to report per-item ingestion failures, mirroring the teacher's
// DatabaseConfig.Open(ctx, logger logrus.FieldLogger) signature.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager constructs an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		trie:   newTrie(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSource appends a new source descriptor to the manager's configured
// source list and returns it.
func (m *Manager) AddSource(kind BatchKind, extension string) SourceDescriptor {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.Nil
	}
	desc := SourceDescriptor{ID: id, Kind: kind, Extension: extension, AddedAt: time.Now()}
	m.sourcesMu.Lock()
	m.sources = append(m.sources, desc)
	m.sourcesMu.Unlock()
	return desc
}

// Sources returns a snapshot of the configured source list.
func (m *Manager) Sources() []SourceDescriptor {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	out := make([]SourceDescriptor, len(m.sources))
	copy(out, m.sources)
	return out
}

// FunctionCount, EnumCount, EventCount report the number of installed
// records of each kind.
func (m *Manager) FunctionCount() int { return m.trie.size() }

func (m *Manager) EnumCount() int {
	n := 0
	m.enums.Range(func(any, any) bool { n++; return true })
	return n
}

func (m *Manager) EventCount() int {
	n := 0
	m.events.Range(func(any, any) bool { n++; return true })
	return n
}

// IngestBatch decodes bytes according to kind and installs the result
// into the registry. For kind == BatchFunctions, each array element is
// deserialized independently: a per-item decode failure is logged and
// skipped, and ingestion continues with the remainder (§7). For
// BatchEnums/BatchEvents, the whole payload is decoded as one unit and
// merged in.
func (m *Manager) IngestBatch(kind BatchKind, extension string, data []byte) (FetchStats, error) {
	stats := newFetchStats(kind, extension)

	switch kind {
	case BatchFunctions:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return stats, fmt.Errorf("registry: decoding functions batch: %w", err)
		}
		stats.Attempted = len(raw)
		for _, item := range raw {
			var sig Signature
			if err := json.Unmarshal(item, &sig); err != nil {
				stats.Failed++
				stats.Errors = append(stats.Errors, err)
				m.logger.WithError(err).WithField("extension", extension).
					Warn("registry: skipping malformed function record")
				continue
			}
			if !validExtensionTag(extension) {
				err := fmt.Errorf("registry: invalid extension tag %q", extension)
				stats.Failed++
				stats.Errors = append(stats.Errors, err)
				m.logger.WithError(err).Warn("registry: skipping function record with invalid extension")
				continue
			}
			sig.Extension = extension
			canonical := sig
			canonical.Name = CanonicalName(sig.Name)
			m.trie.insert(canonical.Name, &canonical)
			for _, alias := range sig.Aliases {
				derived := canonical.WithName(alias)
				m.trie.insert(derived.Name, derived)
			}
			stats.Succeeded++
		}
	case BatchEnums:
		var table EnumTable
		if err := json.Unmarshal(data, &table); err != nil {
			stats.Failed = 1
			stats.Errors = append(stats.Errors, err)
			m.logger.WithError(err).Warn("registry: skipping malformed enums batch")
			return stats, nil
		}
		stats.Attempted = len(table)
		for name, values := range table {
			m.enums.Store(name, values)
			stats.Succeeded++
		}
	case BatchEvents:
		var events []Event
		if err := json.Unmarshal(data, &events); err != nil {
			stats.Failed = 1
			stats.Errors = append(stats.Errors, err)
			m.logger.WithError(err).Warn("registry: skipping malformed events batch")
			return stats, nil
		}
		stats.Attempted = len(events)
		for i := range events {
			e := events[i]
			m.events.Store(e.Name, &e)
			stats.Succeeded++
		}
	default:
		return stats, fmt.Errorf("registry: unknown batch kind %v", kind)
	}

	return stats, nil
}

// GetExact returns the signature registered under the exact (canonical)
// name, if any.
func (m *Manager) GetExact(name string) (*Signature, bool) {
	return m.trie.exactLookup(CanonicalName(name))
}

// GetPrefix performs a longest-prefix lookup anchored at position 0 of
// text.
func (m *Manager) GetPrefix(text string) (*Signature, bool) {
	_, sig, ok := m.trie.longestPrefixLookup(text)
	return sig, ok
}

// Get tries an exact match first, falling back to a longest-prefix
// match from position 0.
func (m *Manager) Get(name string) (*Signature, bool) {
	if sig, ok := m.GetExact(name); ok {
		return sig, true
	}
	return m.GetPrefix(name)
}

// GetWithMatch is like Get but also returns the matched key text, for
// IDE-style integrations that need to know how much of the input was
// consumed by the match.
func (m *Manager) GetWithMatch(name string) (matched string, sig *Signature, ok bool) {
	canonical := CanonicalName(name)
	if s, exact := m.trie.exactLookup(canonical); exact {
		return canonical, s, true
	}
	return m.trie.longestPrefixLookup(name)
}

// GetCompletions returns every signature whose name begins with prefix.
func (m *Manager) GetCompletions(prefix string) []*Signature {
	return m.trie.completions(prefix)
}

// GetEnum returns the named enum's admissible values.
func (m *Manager) GetEnum(name string) ([]string, bool) {
	v, ok := m.enums.Load(name)
	if !ok {
		return nil, false
	}
	return v.([]string), true
}

// GetAllEnums snapshots the full enum map.
func (m *Manager) GetAllEnums() EnumTable {
	out := make(EnumTable)
	m.enums.Range(func(k, v any) bool {
		out[k.(string)] = v.([]string)
		return true
	})
	return out
}

// GetEvent returns the named event record.
func (m *Manager) GetEvent(name string) (*Event, bool) {
	v, ok := m.events.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*Event), true
}

// GetAllEvents snapshots the full event map.
func (m *Manager) GetAllEvents() []*Event {
	var out []*Event
	m.events.Range(func(_, v any) bool {
		out = append(out, v.(*Event))
		return true
	})
	return out
}

// Clear drops the trie, the enum map, and the event map atomically with
// respect to subsequent operations on the same goroutine. Concurrent
// in-flight readers on other goroutines may still observe the prior
// state briefly, consistent with §5's "no happens-before requirement
// beyond the user's own sequencing."
func (m *Manager) Clear() {
	m.trie.clear()
	m.enums.Range(func(k, _ any) bool { m.enums.Delete(k); return true })
	m.events.Range(func(k, _ any) bool { m.events.Delete(k); return true })
}
