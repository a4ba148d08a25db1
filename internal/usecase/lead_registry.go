package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// LeadRegistry é a fonte de verdade dos leads e do ciclo de vida de status.
type LeadRegistry struct {
	Repo         LeadRepositoryInterface
	Interactions InteractionRepositoryInterface
	Queue        QueueProducerInterface
}

func NewLeadRegistry(repo LeadRepositoryInterface, interactions InteractionRepositoryInterface, producer QueueProducerInterface) *LeadRegistry {
	return &LeadRegistry{
		Repo:         repo,
		Interactions: interactions,
		Queue:        producer,
	}
}

func (r *LeadRegistry) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if validationErrors := ValidateCreateLeadInput(input); len(validationErrors) > 0 {
		return nil, foldValidationErrors(validationErrors)
	}

	lead, err := entity.NewLead(input.Name, input.Email, input.Phone, input.Source, input.OwnerID)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if input.SectorID != "" {
		lead.SectorID = &input.SectorID
	}
	if input.SegmentID != "" {
		lead.SegmentID = &input.SegmentID
	}
	lead.TagIDs = input.TagIDs
	lead.Notes = input.Notes

	if err := r.Repo.Create(ctx, lead); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	r.publish(queue.LeadEventPayload{
		Event:  queue.EventLeadCreated,
		LeadID: lead.ID,
		Name:   lead.Name,
		Email:  lead.Email,
		Status: string(lead.Status),
	})

	return lead, nil
}

func (r *LeadRegistry) UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if validationErrors := ValidateUpdateLeadInput(input); len(validationErrors) > 0 {
		return nil, foldValidationErrors(validationErrors)
	}

	lead, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "lead")
	}

	expectedVersion := input.Version
	if expectedVersion == 0 {
		expectedVersion = lead.Version
	}

	applyLeadPatch(lead, input)

	if err := lead.Validate(); err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := r.Repo.Update(ctx, lead, expectedVersion); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	return lead, nil
}

// ChangeStatus aplica a máquina de estados do pipeline. A escrita do status
// e a interação de auditoria andam juntas: se a auditoria falha, o status
// volta pro valor anterior e o chamador recebe o erro pra tentar de novo.
func (r *LeadRegistry) ChangeStatus(ctx context.Context, id string, newStatus entity.LeadStatus, version int) (*entity.Lead, error) {
	if !newStatus.IsValid() {
		return nil, NewValidationError("status is not a known pipeline status")
	}

	lead, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "lead")
	}

	if !lead.Status.CanTransitionTo(newStatus) {
		return nil, NewInvalidTransitionError(string(lead.Status), string(newStatus))
	}

	expectedVersion := version
	if expectedVersion == 0 {
		expectedVersion = lead.Version
	}

	priorStatus := lead.Status
	audit := entity.NewStatusChangeInteraction(lead.ID, priorStatus, newStatus)

	txn := NewTransaction()

	txn.AddOperation("update_status", func(ctx context.Context) error {
		return r.Repo.UpdateStatus(ctx, lead.ID, newStatus, expectedVersion)
	})

	// A reversão checa a versão que a própria escrita produziu: se um
	// escritor concorrente entrou no meio, a compensação perde e não
	// sobrescreve o trabalho dele.
	txn.AddCompensation("revert_status", func(ctx context.Context) error {
		return r.Repo.UpdateStatus(ctx, lead.ID, priorStatus, expectedVersion+1)
	})

	txn.AddOperation("record_status_interaction", func(ctx context.Context) error {
		return r.Interactions.Insert(ctx, audit)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	lead.Status = newStatus
	lead.Version = expectedVersion + 1

	r.publish(queue.LeadEventPayload{
		Event:     queue.EventLeadStatusChanged,
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Status:    string(newStatus),
		OldStatus: string(priorStatus),
	})

	return lead, nil
}

// DeleteLead remove o lead; interações e vínculos de campanha/tarefa caem
// em cascata no banco.
func (r *LeadRegistry) DeleteLead(ctx context.Context, id string) error {
	if err := r.Repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "lead")
	}

	r.publish(queue.LeadEventPayload{
		Event:  queue.EventLeadDeleted,
		LeadID: id,
	})

	return nil
}

func (r *LeadRegistry) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "lead")
	}
	return lead, nil
}

// publish é fire-and-forget: notificação nunca derruba a operação de
// domínio que já foi persistida.
func (r *LeadRegistry) publish(payload queue.LeadEventPayload) {
	if r.Queue == nil {
		return
	}

	go func() {
		if err := r.Queue.PublishLeadEvent(context.Background(), payload); err != nil {
			logrus.Warnf("failed to publish lead event %s: %v", payload.Event, err)
		}
	}()
}

func applyLeadPatch(lead *entity.Lead, input UpdateLeadInput) {
	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.SectorID != nil {
		if *input.SectorID == "" {
			lead.SectorID = nil
		} else {
			lead.SectorID = input.SectorID
		}
	}
	if input.SegmentID != nil {
		if *input.SegmentID == "" {
			lead.SegmentID = nil
		} else {
			lead.SegmentID = input.SegmentID
		}
	}
	if input.TagIDs != nil {
		lead.TagIDs = *input.TagIDs
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.OwnerID != nil {
		lead.OwnerID = *input.OwnerID
	}
}

func mapRepoError(err error, what string) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return NewNotFoundError(what)
	case errors.Is(err, entity.ErrDuplicateName):
		return NewDuplicateNameError(what)
	case errors.Is(err, entity.ErrInUse):
		return NewInUseError(what)
	case errors.Is(err, entity.ErrVersionConflict):
		return NewConflictError(what)
	case errors.Is(err, entity.ErrAlreadyDone):
		return NewAlreadyCompletedError(what)
	default:
		return NewPersistenceError(err)
	}
}
