package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/featureflag"
)

func setupFlagRepo(t *testing.T) (*FlagRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewFlagRepo(db), mock, func() { db.Close() }
}

func flagRows(flags ...domain.FeatureFlag) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "is_enabled", "updated_by", "created_at", "updated_at"})
	now := time.Now()
	for _, f := range flags {
		rows.AddRow(f.ID, f.Name, f.Slug, f.Description, f.IsEnabled, f.UpdatedBy, now, now)
	}
	return rows
}

func TestFlagRepo_Get_NotFound(t *testing.T) {
	repo, mock, cleanup := setupFlagRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM feature_flags WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")

	assert.Equal(t, featureflag.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagRepo_List_OrderedByName(t *testing.T) {
	repo, mock, cleanup := setupFlagRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM feature_flags ORDER BY name ASC")).
		WillReturnRows(flagRows(
			domain.FeatureFlag{ID: "f-1", Name: "Alpha", Slug: "alpha", UpdatedBy: "u-1"},
			domain.FeatureFlag{ID: "f-2", Name: "Beta", Slug: "beta", UpdatedBy: "u-1"},
		))

	flags, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, "Alpha", flags[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagRepo_Create_MapsUniqueViolation(t *testing.T) {
	repo, mock, cleanup := setupFlagRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feature_flags")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "feature_flags_name_key"})

	err := repo.Create(context.Background(), &domain.FeatureFlag{
		ID: "f-1", Name: "Alpha", Slug: "alpha", UpdatedBy: "u-1",
	})

	assert.Equal(t, featureflag.ErrNameTaken, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagRepo_Update_NoRowsIsNotFound(t *testing.T) {
	repo, mock, cleanup := setupFlagRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE feature_flags")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.FeatureFlag{
		ID: "missing", Name: "Alpha", Slug: "alpha", UpdatedBy: "u-1",
	})

	assert.Equal(t, featureflag.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlagRepo_Delete(t *testing.T) {
	repo, mock, cleanup := setupFlagRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM feature_flags WHERE id = $1")).
		WithArgs("f-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), "f-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
