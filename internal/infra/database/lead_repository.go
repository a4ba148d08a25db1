package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = "id, name, email, phone, status, sector_id, segment_id, notes, source, owner_id, version, created_at, updated_at"

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO leads (id, name, email, phone, status, sector_id, segment_id, notes, source, owner_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tx.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		string(lead.Status),
		lead.SectorID,
		lead.SegmentID,
		nullString(lead.Notes),
		nullString(lead.Source),
		nullString(lead.OwnerID),
		lead.Version,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return mapLeadWriteError(err)
	}

	if err := replaceTags(ctx, tx, lead.ID, lead.TagIDs); err != nil {
		return mapLeadWriteError(err)
	}

	return tx.Commit()
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead, expectedVersion int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, sector_id = $5, segment_id = $6,
		    notes = $7, source = $8, owner_id = $9, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $10
	`

	res, err := tx.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		nullString(lead.Email),
		nullString(lead.Phone),
		lead.SectorID,
		lead.SegmentID,
		nullString(lead.Notes),
		nullString(lead.Source),
		nullString(lead.OwnerID),
		expectedVersion,
	)
	if err != nil {
		return mapLeadWriteError(err)
	}

	if err := checkOptimisticWrite(ctx, tx, res, lead.ID); err != nil {
		return err
	}

	if err := replaceTags(ctx, tx, lead.ID, lead.TagIDs); err != nil {
		return mapLeadWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	lead.Version = expectedVersion + 1
	return nil
}

// UpdateStatus troca só o status; expectedVersion zero pula o check
// otimista (usado pela compensação de rollback).
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus, expectedVersion int) error {
	query := `
		UPDATE leads
		SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1
	`
	args := []interface{}{id, string(status)}

	if expectedVersion > 0 {
		query += " AND version = $3"
		args = append(args, expectedVersion)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}

	return checkOptimisticWrite(ctx, r.DB, res, id)
}

// Delete remove o lead e tudo que ele possui: interações, tags e vínculos
// de campanha/tarefa caem junto.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cascade := []string{
		"DELETE FROM interactions WHERE lead_id = $1",
		"DELETE FROM lead_tags WHERE lead_id = $1",
		"DELETE FROM campaign_leads WHERE lead_id = $1",
		"DELETE FROM tasks WHERE lead_id = $1",
	}
	for _, q := range cascade {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return mapPgError(err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM leads WHERE id = $1", id)
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

	return tx.Commit()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+leadColumns+" FROM leads WHERE id = $1", id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadTags(ctx, []*entity.Lead{lead}); err != nil {
		return nil, err
	}

	return lead, nil
}

func (r *LeadRepository) FindMany(ctx context.Context, filters entity.LeadFilters) ([]*entity.Lead, error) {
	query, args := buildLeadQuery(filters)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, leads); err != nil {
		return nil, err
	}

	return leads, nil
}

// buildLeadQuery monta a conjunção: cada campo preenchido vira uma cláusula
// AND, campo vazio não filtra nada.
func buildLeadQuery(filters entity.LeadFilters) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT " + leadColumns + " FROM leads WHERE 1=1")

	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filters.Statuses) > 0 {
		statuses := make([]string, len(filters.Statuses))
		for i, s := range filters.Statuses {
			statuses[i] = string(s)
		}
		sb.WriteString(" AND status = ANY(" + arg(pq.Array(statuses)) + ")")
	}

	if filters.SectorID != "" {
		sb.WriteString(" AND sector_id = " + arg(filters.SectorID))
	}
	if filters.SegmentID != "" {
		sb.WriteString(" AND segment_id = " + arg(filters.SegmentID))
	}

	// AND entre tags: o lead precisa ter todas
	for _, tagID := range filters.TagIDs {
		sb.WriteString(" AND id IN (SELECT lead_id FROM lead_tags WHERE tag_id = " + arg(tagID) + ")")
	}

	if filters.Search != "" {
		needle := arg("%" + filters.Search + "%")
		sb.WriteString(" AND (name ILIKE " + needle + " OR email ILIKE " + needle + " OR phone ILIKE " + needle + ")")
	}

	// Limites inclusivos na data de criação
	if filters.From != nil {
		sb.WriteString(" AND created_at >= " + arg(*filters.From))
	}
	if filters.To != nil {
		sb.WriteString(" AND created_at <= " + arg(*filters.To))
	}

	if filters.OwnerID != "" {
		sb.WriteString(" AND owner_id = " + arg(filters.OwnerID))
	}

	if filters.Order == entity.SortOldestFirst {
		sb.WriteString(" ORDER BY created_at ASC, id ASC")
	} else {
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}

	if filters.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filters.Limit))
	}
	if filters.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(filters.Offset))
	}

	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var email, phone, sectorID, segmentID, notes, source, ownerID sql.NullString
	var status string

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&email,
		&phone,
		&status,
		&sectorID,
		&segmentID,
		&notes,
		&source,
		&ownerID,
		&lead.Version,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Email = stringOrEmpty(email)
	lead.Phone = stringOrEmpty(phone)
	lead.Status = entity.LeadStatus(status)
	lead.SectorID = stringPtr(sectorID)
	lead.SegmentID = stringPtr(segmentID)
	lead.Notes = stringOrEmpty(notes)
	lead.Source = stringOrEmpty(source)
	lead.OwnerID = stringOrEmpty(ownerID)

	return &lead, nil
}

func (r *LeadRepository) loadTags(ctx context.Context, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	ids := make([]string, len(leads))
	byID := make(map[string]*entity.Lead, len(leads))
	for i, l := range leads {
		ids[i] = l.ID
		byID[l.ID] = l
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT lead_id, tag_id FROM lead_tags WHERE lead_id = ANY($1) ORDER BY tag_id",
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var leadID, tagID string
		if err := rows.Scan(&leadID, &tagID); err != nil {
			return err
		}
		if lead, ok := byID[leadID]; ok {
			lead.TagIDs = append(lead.TagIDs, tagID)
		}
	}

	return rows.Err()
}

func replaceTags(ctx context.Context, tx *sql.Tx, leadID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM lead_tags WHERE lead_id = $1", leadID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO lead_tags (lead_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			leadID, tagID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// checkOptimisticWrite distingue "lead não existe" de "versão velha" quando
// o UPDATE não afetou linha nenhuma.
func checkOptimisticWrite(ctx context.Context, q querier, res sql.Result, id string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return entity.ErrNotFound
	}
	return entity.ErrVersionConflict
}

// mapLeadWriteError: numa escrita de lead, violação de FK significa que o
// setor/segmento/tag referenciado sumiu no meio do caminho.
func mapLeadWriteError(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return entity.ErrNotFound
	}
	return mapPgError(err)
}

// mapPgError traduz códigos do Postgres em sentinelas de domínio.
func mapPgError(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return entity.ErrDuplicateName
		case "23503": // foreign_key_violation
			return entity.ErrInUse
		}
	}
	return err
}
