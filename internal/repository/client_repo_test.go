package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"trading_dashboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var clientColumns = []string{"id", "user_id", "full_name", "api_key", "api_token", "created_at", "updated_at"}

func TestClientRepository_ListByUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(selectClientsByUserSQL)).WithArgs(4).
		WillReturnRows(sqlmock.NewRows(clientColumns).
			AddRow(1, 4, "Acme", "k1", "t1", now, now).
			AddRow(2, 4, "Beta", "k2", "t2", now, now))

	got, err := repo.ListByUser(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "Acme" || got[1].APIKey != "k2" {
		t.Fatalf("unexpected clients: %+v", got)
	}
}

func TestClientRepository_ListByUser_EmptyIsNonNil(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectClientsByUserSQL)).WithArgs(4).
		WillReturnRows(sqlmock.NewRows(clientColumns))

	got, err := repo.ListByUser(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestClientRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(insertClientSQL)).
		WithArgs(4, "Acme", "k", "t", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	c, err := repo.Create(context.Background(), models.Client{UserID: 4, FullName: "Acme", APIKey: "k", APIToken: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 11 || c.CreatedAt.IsZero() {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestClientRepository_Update_NotOwned(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(updateClientSQL)).
		WithArgs("Acme", "k", "t", sqlmock.AnyArg(), 11, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), models.Client{ID: 11, UserID: 99, FullName: "Acme", APIKey: "k", APIToken: "t"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestClientRepository_Update_ReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(updateClientSQL)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectClientSQL)).WithArgs(11, 4).
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(11, 4, "New", "k", "t", now.Add(-time.Hour), now))

	c, err := repo.Update(context.Background(), models.Client{ID: 11, UserID: 4, FullName: "New", APIKey: "k", APIToken: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.FullName != "New" || !c.UpdatedAt.After(c.CreatedAt) {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestClientRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteClientSQL)).WithArgs(11, 4).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteClientSQL)).WithArgs(12, 4).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 4, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), 4, 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
