package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/planning-aidant/backend/internal/config"
)

var (
	// ErrNotFound is returned when the targeted document does not exist.
	ErrNotFound = errors.New("document introuvable")
	// ErrStoreUnavailable wraps any transport, driver or encoding failure.
	ErrStoreUnavailable = errors.New("stockage indisponible")
)

type Repository struct {
	cfg      *config.Config
	dbpool   *sql.DB
	postgres bool
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:      cfg,
		dbpool:   dbpool,
		postgres: cfg.Database.Driver != "sqlite3",
	}
}

// Migrate creates the documents table for the configured dialect.
func (r *Repository) Migrate(ctx context.Context) error {
	dataType := "TEXT"
	if r.postgres {
		dataType = "JSONB"
	}

	query := `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       ` + dataType + ` NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query); err != nil {
		return unavailable(err)
	}

	return nil
}

func (r *Repository) queryTimeout() time.Duration {
	return time.Duration(r.cfg.Database.QueryTimeout) * time.Second
}

func (r *Repository) transactionTimeout() time.Duration {
	return time.Duration(r.cfg.Database.TransactionTimeout) * time.Second
}

// rebind rewrites ? placeholders into $n for Postgres.
func (r *Repository) rebind(query string) string {
	if !r.postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func unavailable(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}
