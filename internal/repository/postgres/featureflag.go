package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/featureflag"
)

// FlagRepo implements featureflag.Repository against PostgreSQL. The unique
// indexes on name and slug are the authoritative uniqueness guard; writes are
// single statements, so check and write cannot race.
type FlagRepo struct{ db *sql.DB }

// NewFlagRepo creates a Postgres-backed feature flag repository.
func NewFlagRepo(db *sql.DB) *FlagRepo { return &FlagRepo{db: db} }

const flagColumns = `id, name, slug, COALESCE(description,''), is_enabled, updated_by, created_at, updated_at`

func scanFlag(scan func(...interface{}) error) (*domain.FeatureFlag, error) {
	f := &domain.FeatureFlag{}
	err := scan(&f.ID, &f.Name, &f.Slug, &f.Description, &f.IsEnabled, &f.UpdatedBy, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FlagRepo) Get(ctx context.Context, id string) (*domain.FeatureFlag, error) {
	f, err := scanFlag(r.db.QueryRowContext(ctx, `
		SELECT `+flagColumns+` FROM feature_flags WHERE id = $1
	`, id).Scan)
	if err == sql.ErrNoRows {
		return nil, featureflag.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get flag: %w", err)
	}
	return f, nil
}

func (r *FlagRepo) GetBySlug(ctx context.Context, slug string) (*domain.FeatureFlag, error) {
	f, err := scanFlag(r.db.QueryRowContext(ctx, `
		SELECT `+flagColumns+` FROM feature_flags WHERE slug = $1
	`, slug).Scan)
	if err == sql.ErrNoRows {
		return nil, featureflag.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get flag by slug: %w", err)
	}
	return f, nil
}

func (r *FlagRepo) List(ctx context.Context) ([]domain.FeatureFlag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+flagColumns+` FROM feature_flags ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var out []domain.FeatureFlag
	for rows.Next() {
		f, err := scanFlag(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *FlagRepo) Create(ctx context.Context, f *domain.FeatureFlag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feature_flags (id, name, slug, description, is_enabled, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, f.ID, f.Name, f.Slug, f.Description, f.IsEnabled, f.UpdatedBy)
	if err != nil {
		if uniqueViolation(err, "feature_flags_name_key") || uniqueViolation(err, "feature_flags_slug_key") {
			return featureflag.ErrNameTaken
		}
		return fmt.Errorf("create flag: %w", err)
	}
	return nil
}

func (r *FlagRepo) Update(ctx context.Context, f *domain.FeatureFlag) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feature_flags
		SET name = $1, slug = $2, description = $3, is_enabled = $4, updated_by = $5, updated_at = NOW()
		WHERE id = $6
	`, f.Name, f.Slug, f.Description, f.IsEnabled, f.UpdatedBy, f.ID)
	if err != nil {
		if uniqueViolation(err, "feature_flags_name_key") || uniqueViolation(err, "feature_flags_slug_key") {
			return featureflag.ErrNameTaken
		}
		return fmt.Errorf("update flag: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return featureflag.ErrNotFound
	}
	return nil
}

func (r *FlagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM feature_flags WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete flag: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return featureflag.ErrNotFound
	}
	return nil
}
