package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionCall         InteractionType = "appel"
	InteractionEmail        InteractionType = "email"
	InteractionMeeting      InteractionType = "reunion"
	InteractionNote         InteractionType = "note"
	InteractionStatusChange InteractionType = "changement_statut"
)

func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote, InteractionStatusChange:
		return true
	}
	return false
}

// Interaction é o registro de auditoria de um contato ou mudança de estado.
// Append-only: nunca é alterada depois de criada, só soft-delete. Correções
// viram uma interação nova.
type Interaction struct {
	ID         string          `json:"id"`
	LeadID     string          `json:"lead_id"`
	Type       InteractionType `json:"type"`
	Subject    string          `json:"subject,omitempty"`
	Body       string          `json:"body,omitempty"`
	Outcome    string          `json:"outcome,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Deleted    bool            `json:"deleted,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewInteraction(leadID string, kind InteractionType, subject, body, outcome string) (*Interaction, error) {
	now := time.Now()
	it := &Interaction{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		Type:       kind,
		Subject:    subject,
		Body:       body,
		Outcome:    outcome,
		OccurredAt: now,
		CreatedAt:  now,
	}

	if err := it.Validate(); err != nil {
		return nil, err
	}

	return it, nil
}

func (i *Interaction) Validate() error {
	if i.LeadID == "" {
		return errors.New("lead id is required")
	}
	if !i.Type.IsValid() {
		return errors.New("unknown interaction type")
	}
	return nil
}

// NewStatusChangeInteraction registra a trilha de auditoria de uma transição
// do pipeline, com os valores antes/depois no corpo.
func NewStatusChangeInteraction(leadID string, from, to LeadStatus) *Interaction {
	now := time.Now()
	return &Interaction{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		Type:       InteractionStatusChange,
		Subject:    "changement de statut",
		Body:       string(from) + " -> " + string(to),
		OccurredAt: now,
		CreatedAt:  now,
	}
}
