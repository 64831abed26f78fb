// Package registrysource implements BatchSource: external collaborators
// that fetch one registry ingestion batch (functions, enums, or events,
// per registry.BatchKind) as an opaque byte blob from a SQL database,
// for registry.Manager.IngestBatch to decode and install.
//
// Grounded on the teacher's DB interface (dbintf.go) and the
// query-a-row-context shape of deployable.go's Exists/Upload, narrowed
// here to a single-row fetch rather than a migration upload.
package registrysource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/embedlang/macrolang/registry"
)

// ErrNotFound is returned by Fetch when no row exists for the source's
// (kind, extension) pair. Callers treat this as "nothing to ingest," not
// a failure -- a missing source is not an error.
var ErrNotFound = errors.New("registrysource: no batch row found")

// BatchSource hands the registry an opaque byte blob for one ingestion
// batch.
type BatchSource interface {
	Kind() registry.BatchKind
	Extension() string
	Fetch(ctx context.Context) ([]byte, error)
}

// tableName is the single table both Postgres and MSSQL sources read
// from: one row per (kind, extension), payload as a JSON/NVARCHAR blob.
const tableName = "macrolang_registry_batches"

// selectColumns is the column list both backends select; only the
// placeholder syntax in the WHERE clause differs between them.
const selectColumns = "payload"

func kindColumn(kind registry.BatchKind) string {
	return kind.String()
}

// fetchRow runs query against db with args, scanning a single payload
// column into a []byte, and maps sql.ErrNoRows to ErrNotFound.
func fetchRow(ctx context.Context, db *sql.DB, query string, args ...any) ([]byte, error) {
	var payload []byte
	err := db.QueryRowContext(ctx, query, args...).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("registrysource: querying %s: %w", tableName, err)
	}
	return payload, nil
}

// Pull fetches src's batch and installs it into mgr. A missing source
// (ErrNotFound) is treated as "nothing to ingest" and returns a
// registry.FetchStats carrying only src's Kind and Extension (zero
// counts, nil BatchID) with no error, matching §7's "a missing source
// is not an error."
func Pull(ctx context.Context, mgr *registry.Manager, src BatchSource) (registry.FetchStats, error) {
	payload, err := src.Fetch(ctx)
	if errors.Is(err, ErrNotFound) {
		return registry.FetchStats{Kind: src.Kind(), Extension: src.Extension()}, nil
	}
	if err != nil {
		return registry.FetchStats{}, err
	}
	return mgr.IngestBatch(src.Kind(), src.Extension(), payload)
}
