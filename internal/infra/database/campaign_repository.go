package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	target, err := json.Marshal(campaign.Target)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO campaigns (id, name, starts_at, ends_at, target, status, locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.DB.ExecContext(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.StartsAt,
		campaign.EndsAt,
		target,
		string(campaign.Status),
		campaign.Locked,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}

	return nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	target, err := json.Marshal(campaign.Target)
	if err != nil {
		return err
	}

	query := `
		UPDATE campaigns
		SET name = $2, starts_at = $3, ends_at = $4, target = $5, status = $6, locked = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.StartsAt,
		campaign.EndsAt,
		target,
		string(campaign.Status),
		campaign.Locked,
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

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, name, starts_at, ends_at, target, status, locked, created_at, updated_at FROM campaigns WHERE id = $1",
		id,
	)

	campaign, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	return campaign, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, starts_at, ends_at, target, status, locked, created_at, updated_at FROM campaigns ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*entity.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, rows.Err()
}

// Link não reclama de par repetido: ON CONFLICT DO NOTHING garante a
// idempotência no banco, não em memória.
func (r *CampaignRepository) Link(ctx context.Context, campaignID, leadID string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO campaign_leads (campaign_id, lead_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT (campaign_id, lead_id) DO NOTHING",
		campaignID, leadID,
	)
	if err != nil {
		return mapLeadWriteError(err)
	}

	return nil
}

func (r *CampaignRepository) ListLinks(ctx context.Context, campaignID string) ([]*entity.CampaignLink, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT campaign_id, lead_id, created_at FROM campaign_leads WHERE campaign_id = $1 ORDER BY created_at",
		campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*entity.CampaignLink
	for rows.Next() {
		var link entity.CampaignLink
		if err := rows.Scan(&link.CampaignID, &link.LeadID, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, &link)
	}

	return links, rows.Err()
}

func scanCampaign(row rowScanner) (*entity.Campaign, error) {
	var campaign entity.Campaign
	var target []byte
	var status string

	err := row.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.StartsAt,
		&campaign.EndsAt,
		&target,
		&status,
		&campaign.Locked,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.Status = entity.CampaignStatus(status)
	if len(target) > 0 {
		if err := json.Unmarshal(target, &campaign.Target); err != nil {
			return nil, err
		}
	}

	return &campaign, nil
}
