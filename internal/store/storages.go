package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/card-keeper-bot/internal/config"
	"github.com/MKhiriev/card-keeper-bot/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. It is the single storage entry point handed to the service
// layer.
type Storages struct {
	CardRepository CardRepository

	db *DB
}

// NewStorages opens the database selected by the DSN, applies pending
// migrations and wires all repositories.
//
// A DSN starting with "postgres://" or "postgresql://" selects the
// PostgreSQL backend; anything else is treated as a path to a local SQLite
// file.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	if isPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	return &Storages{
		CardRepository: NewCardRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
