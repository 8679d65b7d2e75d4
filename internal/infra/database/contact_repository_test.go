package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudguides/leadcapture/internal/entity"
)

func TestContactCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(sqlmock.AnyArg(), "Ann", "a@example.com").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	repo := NewContactRepository(db)
	err = repo.Create(context.Background(), &entity.Contact{FirstName: "Ann", Email: "a@example.com"})

	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactFindByIDLoadsLeads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT id, first_name, email, created_at, updated_at").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email", "created_at", "updated_at"}).
			AddRow("c-1", "Ann", "a@example.com", now, now))
	mock.ExpectQuery("SELECT l.id, l.route").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route", "created_at", "updated_at"}).
			AddRow("l-1", "giveaway.k8s", now, now).
			AddRow("l-2", "newsletter", now, now))

	repo := NewContactRepository(db)
	contact, err := repo.FindByID(context.Background(), "c-1")

	require.NoError(t, err)
	assert.Equal(t, "a@example.com", contact.Email)
	require.Len(t, contact.Leads, 2)
	assert.Equal(t, "giveaway.k8s", contact.Leads[0].Route)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, first_name, email, created_at, updated_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email", "created_at", "updated_at"}))

	repo := NewContactRepository(db)
	contact, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Nil(t, contact)
}

func TestContactListPaginates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contacts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery("SELECT id, first_name, email, created_at, updated_at").
		WithArgs(15, 15).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email", "created_at", "updated_at"}).
			AddRow("c-16", "Ann", "a@example.com", now, now))
	mock.ExpectQuery("SELECT l.id, l.route").
		WithArgs("c-16").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route", "created_at", "updated_at"}))

	repo := NewContactRepository(db)
	contacts, total, err := repo.List(context.Background(), 2, 15)

	require.NoError(t, err)
	assert.Equal(t, 42, total)
	require.Len(t, contacts, 1)
	assert.Empty(t, contacts[0].Leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM contacts").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewContactRepository(db)
	err = repo.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestContactSyncLeadsReplacesSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contact_lead").
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO contact_lead").
		WithArgs("c-1", "l-3").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewContactRepository(db)
	err = repo.SyncLeads(context.Background(), "c-1", []string{"l-3"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSyncLeadsEmptyClearsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contact_lead").
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewContactRepository(db)
	err = repo.SyncLeads(context.Background(), "c-1", nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
