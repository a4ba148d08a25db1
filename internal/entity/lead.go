package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LeadStatus é a posição do lead no pipeline comercial.
type LeadStatus string

const (
	StatusNouveau     LeadStatus = "nouveau"
	StatusContacte    LeadStatus = "contacte"
	StatusQualifie    LeadStatus = "qualifie"
	StatusProposition LeadStatus = "proposition"
	StatusNegocie     LeadStatus = "negocie"
	StatusClient      LeadStatus = "client"
	StatusPerdu       LeadStatus = "perdu"
)

// O pipeline só anda pra frente. "perdu" é alcançável de qualquer estado
// não-terminal, e a única volta permitida é a reabertura perdu -> nouveau.
var allowedTransitions = map[LeadStatus][]LeadStatus{
	StatusNouveau:     {StatusContacte, StatusPerdu},
	StatusContacte:    {StatusQualifie, StatusPerdu},
	StatusQualifie:    {StatusProposition, StatusPerdu},
	StatusProposition: {StatusNegocie, StatusPerdu},
	StatusNegocie:     {StatusClient, StatusPerdu},
	StatusClient:      {},
	StatusPerdu:       {StatusNouveau},
}

func (s LeadStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s LeadStatus) IsTerminal() bool {
	return s == StatusClient || s == StatusPerdu
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Entidade: Lead
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Status    LeadStatus `json:"status"`
	SectorID  *string    `json:"sector_id,omitempty"`
	SegmentID *string    `json:"segment_id,omitempty"`
	TagIDs    []string   `json:"tag_ids,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Source    string     `json:"source,omitempty"`
	OwnerID   string     `json:"owner_id,omitempty"`

	// Token de concorrência otimista: todo UPDATE checa e incrementa.
	// Escritor com versão velha perde com CONFLICT.
	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, email, phone, source, ownerID string) (*Lead, error) {
	now := time.Now()
	lead := &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Status:    StatusNouveau,
		Source:    source,
		OwnerID:   ownerID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Email == "" && l.Phone == "" {
		return errors.New("at least one contact channel is required")
	}
	if !l.Status.IsValid() {
		return errors.New("status is not a known pipeline status")
	}
	return nil
}

func (l *Lead) HasTag(tagID string) bool {
	for _, id := range l.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// EnrichedLead é um read-model: lead + taxonomia resolvida + contagem de
// interações. Recalculado a cada consulta, nunca persistido.
type EnrichedLead struct {
	Lead
	Sector           *Sector  `json:"sector,omitempty"`
	Segment          *Segment `json:"segment,omitempty"`
	Tags             []Tag    `json:"tags,omitempty"`
	InteractionCount int      `json:"interaction_count"`
}
