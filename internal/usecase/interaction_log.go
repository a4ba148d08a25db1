package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// InteractionLog é o histórico append-only de contatos de um lead. Não existe
// update: correção vira interação nova, preservando a auditoria.
type InteractionLog struct {
	Repo  InteractionRepositoryInterface
	Leads LeadRepositoryInterface
}

func NewInteractionLog(repo InteractionRepositoryInterface, leads LeadRepositoryInterface) *InteractionLog {
	return &InteractionLog{Repo: repo, Leads: leads}
}

func (l *InteractionLog) Record(ctx context.Context, leadID string, input RecordInteractionInput) (*entity.Interaction, error) {
	if validationErrors := ValidateInteractionInput(input); len(validationErrors) > 0 {
		return nil, foldValidationErrors(validationErrors)
	}

	if _, err := l.Leads.FindByID(ctx, leadID); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	interaction, err := entity.NewInteraction(leadID, entity.InteractionType(input.Type), input.Subject, input.Body, input.Outcome)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := l.Repo.Insert(ctx, interaction); err != nil {
		return nil, mapRepoError(err, "interaction")
	}

	return interaction, nil
}

// List devolve as interações do lead, mais recente primeiro.
func (l *InteractionLog) List(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	if _, err := l.Leads.FindByID(ctx, leadID); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	interactions, err := l.Repo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, mapRepoError(err, "interaction")
	}

	return interactions, nil
}

func (l *InteractionLog) SoftDelete(ctx context.Context, id string) error {
	if err := l.Repo.SoftDelete(ctx, id); err != nil {
		return mapRepoError(err, "interaction")
	}
	return nil
}
