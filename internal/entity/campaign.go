package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignDraft    CampaignStatus = "draft"
	CampaignActive   CampaignStatus = "active"
	CampaignFinished CampaignStatus = "finished"
)

// Campaign guarda o filtro-alvo, não uma foto congelada dos membros. Quem
// quiser congelar usa Locked: a partir daí os membros vêm só dos vínculos.
type Campaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	StartsAt  time.Time      `json:"starts_at"`
	EndsAt    time.Time      `json:"ends_at"`
	Target    LeadFilters    `json:"target"`
	Status    CampaignStatus `json:"status"`
	Locked    bool           `json:"locked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewCampaign(name string, startsAt, endsAt time.Time, target LeadFilters) (*Campaign, error) {
	now := time.Now()
	c := &Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		Target:    target,
		Status:    CampaignDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if !c.EndsAt.IsZero() && !c.StartsAt.IsZero() && c.EndsAt.Before(c.StartsAt) {
		return errors.New("ends_at must not precede starts_at")
	}
	return nil
}

// CampaignLink é puro vínculo: nenhum dado de negócio além da associação.
type CampaignLink struct {
	CampaignID string    `json:"campaign_id"`
	LeadID     string    `json:"lead_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Task struct {
	ID            string     `json:"id"`
	LeadID        string     `json:"lead_id"`
	Title         string     `json:"title"`
	Assignee      string     `json:"assignee"`
	AssigneeEmail string     `json:"assignee_email,omitempty"`
	DueDate       time.Time  `json:"due_date"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewTask(leadID, title, assignee, assigneeEmail string, dueDate time.Time) (*Task, error) {
	now := time.Now()
	t := &Task{
		ID:            uuid.New().String(),
		LeadID:        leadID,
		Title:         title,
		Assignee:      assignee,
		AssigneeEmail: assigneeEmail,
		DueDate:       dueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Task) Validate() error {
	if t.LeadID == "" {
		return errors.New("lead id is required")
	}
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.Assignee == "" {
		return errors.New("assignee is required")
	}
	return nil
}
