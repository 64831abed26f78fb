package registrysource

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	mssql "github.com/microsoft/go-mssqldb"
	"golang.org/x/net/proxy"

	"github.com/embedlang/macrolang/registry"
)

// MSSQL is a BatchSource backed by a SQL Server table, opened through
// the same microsoft/go-mssqldb driver the teacher uses to deploy
// stored procedures (deployable.go's mssql.Driver path), here fetching
// registry JSON/NVARCHAR(MAX) payloads instead.
type MSSQL struct {
	db        *sql.DB
	kind      registry.BatchKind
	extension string
}

// OpenMSSQL opens dsn through an explicit mssql.Connector rather than
// sql.Open, mirroring the teacher's OpenSocks5Sql: when SQL_SOCKS is
// set, the connector dials through a SOCKS5 proxy instead of directly,
// the same tunneled-access path the teacher needs to reach a SQL Server
// instance from behind a jump host.
func OpenMSSQL(dsn string, kind registry.BatchKind, extension string) (*MSSQL, error) {
	connector, err := mssql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("registrysource: opening sqlserver: %w", err)
	}

	if socksProxyAddress := os.Getenv("SQL_SOCKS"); socksProxyAddress != "" {
		dialer, err := proxy.SOCKS5("tcp", socksProxyAddress, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("registrysource: could not connect with SOCKS5 to %s: %w", socksProxyAddress, err)
		}
		connector.Dialer = dialer.(proxy.ContextDialer)
	}

	db := sql.OpenDB(connector)
	return &MSSQL{db: db, kind: kind, extension: extension}, nil
}

func (m *MSSQL) Kind() registry.BatchKind { return m.kind }
func (m *MSSQL) Extension() string        { return m.extension }

func (m *MSSQL) Fetch(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`select %s from %s where kind = @kind and extension = @extension`, selectColumns, tableName)
	return fetchRow(ctx, m.db, query, sql.Named("kind", kindColumn(m.kind)), sql.Named("extension", m.extension))
}

// Close releases the underlying connection pool.
func (m *MSSQL) Close() error { return m.db.Close() }
