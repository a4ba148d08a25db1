package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type InteractionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) Insert(ctx context.Context, interaction *entity.Interaction) error {
	query := `
		INSERT INTO interactions (id, lead_id, type, subject, body, outcome, occurred_at, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		interaction.ID,
		interaction.LeadID,
		string(interaction.Type),
		nullString(interaction.Subject),
		nullString(interaction.Body),
		nullString(interaction.Outcome),
		interaction.OccurredAt,
		interaction.CreatedAt,
	)
	if err != nil {
		return mapLeadWriteError(err)
	}

	return nil
}

// ListByLead devolve mais recente primeiro; soft-deletadas ficam de fora.
func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	query := `
		SELECT id, lead_id, type, subject, body, outcome, occurred_at, deleted, created_at
		FROM interactions
		WHERE lead_id = $1 AND deleted = false
		ORDER BY occurred_at DESC, created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		var it entity.Interaction
		var subject, body, outcome sql.NullString
		var kind string

		err := rows.Scan(&it.ID, &it.LeadID, &kind, &subject, &body, &outcome, &it.OccurredAt, &it.Deleted, &it.CreatedAt)
		if err != nil {
			return nil, err
		}

		it.Type = entity.InteractionType(kind)
		it.Subject = stringOrEmpty(subject)
		it.Body = stringOrEmpty(body)
		it.Outcome = stringOrEmpty(outcome)

		interactions = append(interactions, &it)
	}

	return interactions, rows.Err()
}

// SoftDelete: interação nunca some do banco, só sai das listagens.
func (r *InteractionRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE interactions SET deleted = true WHERE id = $1 AND deleted = false",
		id,
	)
	if err != nil {
		return err
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

func (r *InteractionRepository) CountByLeads(ctx context.Context, leadIDs []string) (map[string]int, error) {
	query := `
		SELECT lead_id, COUNT(*)
		FROM interactions
		WHERE lead_id = ANY($1) AND deleted = false
		GROUP BY lead_id
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(leadIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, len(leadIDs))
	for rows.Next() {
		var leadID string
		var count int
		if err := rows.Scan(&leadID, &count); err != nil {
			return nil, err
		}
		counts[leadID] = count
	}

	return counts, rows.Err()
}
