package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	// Update aplica o lead inteiro; expectedVersion > 0 liga o check
	// otimista e devolve entity.ErrVersionConflict pro escritor atrasado.
	Update(ctx context.Context, lead *entity.Lead, expectedVersion int) error
	UpdateStatus(ctx context.Context, id string, status entity.LeadStatus, expectedVersion int) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	FindMany(ctx context.Context, filters entity.LeadFilters) ([]*entity.Lead, error)
}

type TaxonomyRepositoryInterface interface {
	Create(ctx context.Context, entry *entity.TaxonomyEntry) error
	Update(ctx context.Context, entry *entity.TaxonomyEntry) error
	Delete(ctx context.Context, kind entity.TaxonomyKind, id string) error
	FindByID(ctx context.Context, kind entity.TaxonomyKind, id string) (*entity.TaxonomyEntry, error)
	List(ctx context.Context, kind entity.TaxonomyKind) ([]*entity.TaxonomyEntry, error)
	CountLeadsReferencing(ctx context.Context, kind entity.TaxonomyKind, id string) (int, error)
}

type InteractionRepositoryInterface interface {
	Insert(ctx context.Context, interaction *entity.Interaction) error
	ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error)
	SoftDelete(ctx context.Context, id string) error
	CountByLeads(ctx context.Context, leadIDs []string) (map[string]int, error)
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Update(ctx context.Context, campaign *entity.Campaign) error
	FindByID(ctx context.Context, id string) (*entity.Campaign, error)
	List(ctx context.Context) ([]*entity.Campaign, error)
	// Link é idempotente: o mesmo par duas vezes resulta num vínculo só.
	Link(ctx context.Context, campaignID, leadID string) error
	ListLinks(ctx context.Context, campaignID string) ([]*entity.CampaignLink, error)
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *entity.Task) error
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	Complete(ctx context.Context, id string, at time.Time) error
	ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error)
}

type QueueProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type EmailService interface {
	SendTaskAssigned(to, assignee, leadName, title string, dueDate time.Time) error
}
