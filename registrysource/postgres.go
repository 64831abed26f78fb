package registrysource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/embedlang/macrolang/registry"
)

// Postgres is a BatchSource backed by a Postgres table, opened through
// pgx's database/sql driver (the same jackc/pgx/v5/stdlib import the
// teacher uses in deployable.go/dbintf.go, here fetching registry JSON
// instead of deploying SQL code).
type Postgres struct {
	db        *sql.DB
	kind      registry.BatchKind
	extension string
}

// OpenPostgres opens dsn with the pgx stdlib driver and returns a source
// for the given (kind, extension) pair.
func OpenPostgres(dsn string, kind registry.BatchKind, extension string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("registrysource: opening postgres: %w", err)
	}
	return &Postgres{db: db, kind: kind, extension: extension}, nil
}

func (p *Postgres) Kind() registry.BatchKind { return p.kind }
func (p *Postgres) Extension() string        { return p.extension }

func (p *Postgres) Fetch(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`select %s from %s where kind = $1 and extension = $2`, selectColumns, tableName)
	return fetchRow(ctx, p.db, query, kindColumn(p.kind), p.extension)
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error { return p.db.Close() }
