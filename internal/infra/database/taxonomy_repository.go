package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaxonomyRepository struct {
	DB *sql.DB
}

func NewTaxonomyRepository(db *sql.DB) *TaxonomyRepository {
	return &TaxonomyRepository{DB: db}
}

// Uma tabela por kind; sectors/segments/tags têm colunas idênticas e um
// índice único em lower(name).
func tableFor(kind entity.TaxonomyKind) string {
	switch kind {
	case entity.KindSector:
		return "sectors"
	case entity.KindSegment:
		return "segments"
	default:
		return "tags"
	}
}

func leadColumnFor(kind entity.TaxonomyKind) string {
	if kind == entity.KindSector {
		return "sector_id"
	}
	return "segment_id"
}

func (r *TaxonomyRepository) Create(ctx context.Context, entry *entity.TaxonomyEntry) error {
	query := `
		INSERT INTO ` + tableFor(entry.Kind) + ` (id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Name,
		nullString(entry.Description),
		nullString(entry.Color),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}

	return nil
}

func (r *TaxonomyRepository) Update(ctx context.Context, entry *entity.TaxonomyEntry) error {
	query := `
		UPDATE ` + tableFor(entry.Kind) + `
		SET name = $2, description = $3, color = $4, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Name,
		nullString(entry.Description),
		nullString(entry.Color),
	)
	if err != nil {
		return mapPgError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *TaxonomyRepository) Delete(ctx context.Context, kind entity.TaxonomyKind, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM "+tableFor(kind)+" WHERE id = $1", id)
	if err != nil {
		// FK de leads/lead_tags segura o delete de entrada ainda em uso
		return mapPgError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrNotFound
	}

	return nil
}

func (r *TaxonomyRepository) FindByID(ctx context.Context, kind entity.TaxonomyKind, id string) (*entity.TaxonomyEntry, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, color, created_at, updated_at FROM "+tableFor(kind)+" WHERE id = $1",
		id,
	)

	entry, err := scanTaxonomy(row, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return entry, nil
}

func (r *TaxonomyRepository) List(ctx context.Context, kind entity.TaxonomyKind) ([]*entity.TaxonomyEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, color, created_at, updated_at FROM "+tableFor(kind)+" ORDER BY lower(name)",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*entity.TaxonomyEntry
	for rows.Next() {
		entry, err := scanTaxonomy(rows, kind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *TaxonomyRepository) CountLeadsReferencing(ctx context.Context, kind entity.TaxonomyKind, id string) (int, error) {
	var query string
	if kind == entity.KindTag {
		query = "SELECT COUNT(*) FROM lead_tags WHERE tag_id = $1"
	} else {
		query = "SELECT COUNT(*) FROM leads WHERE " + leadColumnFor(kind) + " = $1"
	}

	var count int
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func scanTaxonomy(row rowScanner, kind entity.TaxonomyKind) (*entity.TaxonomyEntry, error) {
	var entry entity.TaxonomyEntry
	var description, color sql.NullString

	err := row.Scan(&entry.ID, &entry.Name, &description, &color, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}

	entry.Kind = kind
	entry.Description = stringOrEmpty(description)
	entry.Color = stringOrEmpty(color)

	return &entry, nil
}
