package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planning-aidant/backend/internal/config"
	"github.com/planning-aidant/backend/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection to :memory: would get its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite3"
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	repo := NewRepository(cfg, db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestRebind(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "pgx"
	pg := NewRepository(cfg, nil)
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))

	cfg2 := &config.Config{}
	cfg2.Database.Driver = "sqlite3"
	lite := NewRepository(cfg2, nil)
	assert.Equal(t, "a = ? AND b = ?", lite.rebind("a = ? AND b = ?"))
}

func TestDocumentLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, Clients, map[string]any{"nom": "Mme Durand", "telephone": "0102030405"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	docs, err := repo.ListAll(ctx, Clients)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "Mme Durand", docs[0].Fields["nom"])

	// only the provided keys change
	require.NoError(t, repo.Update(ctx, Clients, id, map[string]any{"nom": "Mme Martin"}))
	docs, err = repo.ListAll(ctx, Clients)
	require.NoError(t, err)
	assert.Equal(t, "Mme Martin", docs[0].Fields["nom"])
	assert.Equal(t, "0102030405", docs[0].Fields["telephone"])

	require.NoError(t, repo.Delete(ctx, Clients, id))
	docs, err = repo.ListAll(ctx, Clients)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCollectionsAreIsolated(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, Clients, map[string]any{"nom": "A"})
	require.NoError(t, err)

	docs, err := repo.ListAll(ctx, Employees)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpdateDeleteMissingDocument(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.Update(ctx, Clients, "missing", map[string]any{"nom": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, Clients, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.dbpool.Close())

	_, err := repo.ListAll(context.Background(), Clients)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestListAllIsStable(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.Create(ctx, Clients, map[string]any{"nom": name})
		require.NoError(t, err)
	}

	first, err := repo.ListAll(ctx, Clients)
	require.NoError(t, err)
	second, err := repo.ListAll(ctx, Clients)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmployeeNormalization(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// documents written by older front-ends: no notes, malformed availability
	_, err := repo.Create(ctx, Employees, map[string]any{"nom": "Julie", "disponibilite": "Lundi", "notes": 12})
	require.NoError(t, err)
	_, err = repo.Create(ctx, Employees, map[string]any{"nom": "Sarah", "disponibilite": []any{"Mardi", "Mardi", 3, "Jeudi"}})
	require.NoError(t, err)

	employees, err := repo.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, []string{}, employees[0].Availability)
	assert.Equal(t, "", employees[0].Notes)
	assert.Equal(t, []string{"Mardi", "Jeudi"}, employees[1].Availability)
}

func TestTypedClientRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c := &domain.Client{Name: "M. Petit", Address: "1 rue de la Paix"}
	require.NoError(t, repo.CreateClient(ctx, c))
	require.NotEmpty(t, c.ID)

	c.Notes = "portail bleu"
	require.NoError(t, repo.UpdateClient(ctx, c))

	clients, err := repo.GetAllClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, *c, *clients[0])

	require.NoError(t, repo.DeleteClient(ctx, c.ID))
	assert.ErrorIs(t, repo.DeleteClient(ctx, c.ID), ErrNotFound)
}

func TestCreateAppointmentsReportsEachResult(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	batch := []domain.Appointment{
		{Date: "2024-03-04", StartTime: "09:00", EndTime: "10:00", ClientID: "c1", EmployeeID: "e1"},
		{Date: "2024-03-11", StartTime: "09:00", EndTime: "10:00", ClientID: "c1", EmployeeID: "e1"},
	}

	results := repo.CreateAppointments(ctx, batch)
	require.Len(t, results, 2)
	for i, res := range results {
		assert.NoError(t, res.Err)
		assert.NotEmpty(t, res.Appointment.ID)
		assert.Equal(t, batch[i].Date, res.Appointment.Date)
	}

	stored, err := repo.GetAllAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCreateAppointmentsPartialFailure(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := repo.CreateAppointments(ctx, []domain.Appointment{{Date: "2024-03-04"}})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrStoreUnavailable)
	assert.Empty(t, results[0].Appointment.ID)
}
