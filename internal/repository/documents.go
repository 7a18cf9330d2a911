package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Logical collections. The names match the documents exported from the former Firestore project.
const (
	Clients      = "clients"
	Employees    = "employes"
	Appointments = "rendezvous"
)

type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore is the generic collection interface every component consumes.
type DocumentStore interface {
	ListAll(ctx context.Context, collection string) ([]Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

var _ DocumentStore = (*Repository)(nil)

func (r *Repository) ListAll(ctx context.Context, collection string) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := r.rebind(`
		SELECT id, data FROM documents
		WHERE collection = ?
		ORDER BY created_at, id
	`)

	rows, err := r.dbpool.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, unavailable(err)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, unavailable(err)
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}

	return docs, nil
}

func (r *Repository) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	data, err := json.Marshal(fields)
	if err != nil {
		return "", unavailable(err)
	}

	query := r.rebind(`
		INSERT INTO documents (collection, id, data, created_at)
		VALUES (?, ?, ?, ?)
	`)

	id := uuid.NewString()
	if _, err := r.dbpool.ExecContext(ctx, query, collection, id, string(data), time.Now().UnixNano()); err != nil {
		return "", unavailable(err)
	}

	return id, nil
}

// Update replaces the provided keys and keeps every other field of the document.
func (r *Repository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, r.transactionTimeout())
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var data []byte
	query := r.rebind(`SELECT data FROM documents WHERE collection = ? AND id = ?`)
	if err := tx.QueryRowContext(ctx, query, collection, id).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return unavailable(err)
	}

	current := make(map[string]any)
	if err := json.Unmarshal(data, &current); err != nil {
		return unavailable(err)
	}
	for k, v := range fields {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return unavailable(err)
	}

	query = r.rebind(`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`)
	if _, err := tx.ExecContext(ctx, query, string(merged), collection, id); err != nil {
		return unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable(err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout())
	defer cancel()

	query := r.rebind(`DELETE FROM documents WHERE collection = ? AND id = ?`)
	res, err := r.dbpool.ExecContext(ctx, query, collection, id)
	if err != nil {
		return unavailable(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
