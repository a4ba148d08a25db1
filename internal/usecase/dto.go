package usecase

import (
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateLeadInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	SectorID  string   `json:"sector_id,omitempty"`
	SegmentID string   `json:"segment_id,omitempty"`
	TagIDs    []string `json:"tag_ids,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Source    string   `json:"source,omitempty"`
	OwnerID   string   `json:"owner_id,omitempty"`
}

// UpdateLeadInput é um patch parcial: só os ponteiros não-nulos são
// aplicados. Status não entra aqui — transição é sempre via ChangeStatus.
type UpdateLeadInput struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	SectorID  *string   `json:"sector_id,omitempty"`
	SegmentID *string   `json:"segment_id,omitempty"`
	TagIDs    *[]string `json:"tag_ids,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	OwnerID   *string   `json:"owner_id,omitempty"`

	// Versão que o chamador leu; zero pula o check otimista.
	Version int `json:"version,omitempty"`
}

type TaxonomyInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type RecordInteractionInput struct {
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

type CreateCampaignInput struct {
	Name     string             `json:"name"`
	StartsAt time.Time          `json:"starts_at"`
	EndsAt   time.Time          `json:"ends_at"`
	Target   entity.LeadFilters `json:"target"`
}

type AssignTaskInput struct {
	LeadID        string    `json:"lead_id"`
	Title         string    `json:"title"`
	Assignee      string    `json:"assignee"`
	AssigneeEmail string    `json:"assignee_email,omitempty"`
	DueDate       time.Time `json:"due_date"`
}
