package registry

import (
	"time"

	"github.com/gofrs/uuid"
)

// BatchKind identifies which part of the ingestion format a batch of
// bytes belongs to.
type BatchKind int

const (
	BatchFunctions BatchKind = iota + 1
	BatchEnums
	BatchEvents
)

func (k BatchKind) String() string {
	switch k {
	case BatchFunctions:
		return "functions"
	case BatchEnums:
		return "enums"
	case BatchEvents:
		return "events"
	default:
		return "unknown"
	}
}

// SourceDescriptor is one entry in a Manager's configured source list,
// added via AddSource. Each descriptor gets a fresh identity so
// multiple sources of the same kind/extension can be told apart in
// logs and stats -- grounded on sqltest/fixture.go's use of gofrs/uuid
// for giving test fixtures a stable unique identity.
type SourceDescriptor struct {
	ID        uuid.UUID
	Kind      BatchKind
	Extension string
	AddedAt   time.Time
}

// FetchStats summarizes one IngestBatch call: how many records were
// attempted, how many installed cleanly, and the per-item errors for
// the rest. Per spec §7, a per-item failure never aborts the batch.
type FetchStats struct {
	BatchID   uuid.UUID
	Kind      BatchKind
	Extension string
	Attempted int
	Succeeded int
	Failed    int
	Errors    []error
}

func newFetchStats(kind BatchKind, extension string) FetchStats {
	id, err := uuid.NewV4()
	if err != nil {
		// uuid generation only fails if the system CSPRNG is broken;
		// falling back to the nil UUID keeps ingestion itself from
		// ever failing because of it.
		id = uuid.Nil
	}
	return FetchStats{BatchID: id, Kind: kind, Extension: extension}
}
