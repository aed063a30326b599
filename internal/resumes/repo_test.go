package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryRepoCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryRepo()
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := repo.Create(ctx, NewResume{UserID: 1, FileURL: "data:a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(ctx, NewResume{UserID: 2, FileURL: "data:b"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("unexpected ids: %d, %d", first.ID, second.ID)
	}
	if !first.UploadedAt.Equal(fixed) {
		t.Fatalf("unexpected uploadedAt: %v", first.UploadedAt)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != second {
		t.Fatalf("GetByID = %+v, want %+v", got, second)
	}
}

func TestMemoryRepoGetByIDMissing(t *testing.T) {
	repo := NewMemoryRepo()
	for _, id := range []int64{0, -1, 1, 42} {
		if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetByID(%d): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestMemoryRepoListByUser(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for _, owner := range []int64{1, 2, 1} {
		if _, err := repo.Create(ctx, NewResume{UserID: owner, FileURL: "u"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("unexpected resumes: %+v", mine)
	}

	none, err := repo.ListByUser(ctx, 9)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	uploaded := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO resumes").
		WithArgs(int64(1), "s3://bucket/key").
		WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow(int64(5), uploaded))

	repo := &PGRepo{DB: db}
	resume, err := repo.Create(context.Background(), NewResume{UserID: 1, FileURL: "s3://bucket/key"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resume.ID != 5 || resume.UserID != 1 || !resume.UploadedAt.Equal(uploaded) {
		t.Fatalf("unexpected resume: %+v", resume)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, user_id, file_url, uploaded_at").
		WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM resumes").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "file_url", "uploaded_at"}).
			AddRow(int64(1), int64(1), "a", now).
			AddRow(int64(4), int64(1), "b", now))

	repo := &PGRepo{DB: db}
	got, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 || got[1].ID != 4 || got[1].FileURL != "b" {
		t.Fatalf("unexpected resumes: %+v", got)
	}
}
