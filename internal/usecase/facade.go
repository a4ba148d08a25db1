package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Features liga/desliga pedaços do CRM em runtime. Campanhas e tarefas
// podem ficar fora do ar durante migração de schema; nesse caso a fachada
// devolve NOT_AVAILABLE em vez de fingir sucesso.
type Features struct {
	Campaigns bool
	Tasks     bool
}

func AllFeatures() Features {
	return Features{Campaigns: true, Tasks: true}
}

// CRMFacade é o único ponto de entrada do core. A camada de apresentação só
// conversa com ela; nenhum erro de kind conhecido é engolido ou rebaixado
// no caminho de volta.
type CRMFacade struct {
	Registry     *LeadRegistry
	Taxonomy     *TaxonomyStore
	Interactions *InteractionLog
	Engine       *QueryEngine
	Campaigns    *CampaignService
	Features     Features
}

func NewCRMFacade(registry *LeadRegistry, taxonomy *TaxonomyStore, interactions *InteractionLog, engine *QueryEngine, campaigns *CampaignService, features Features) *CRMFacade {
	return &CRMFacade{
		Registry:     registry,
		Taxonomy:     taxonomy,
		Interactions: interactions,
		Engine:       engine,
		Campaigns:    campaigns,
		Features:     features,
	}
}

// --- Leads ---

func (f *CRMFacade) CreateLead(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	return f.Registry.CreateLead(ctx, input)
}

func (f *CRMFacade) UpdateLead(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	return f.Registry.UpdateLead(ctx, id, input)
}

func (f *CRMFacade) ChangeLeadStatus(ctx context.Context, id string, status entity.LeadStatus, version int) (*entity.Lead, error) {
	return f.Registry.ChangeStatus(ctx, id, status, version)
}

func (f *CRMFacade) DeleteLead(ctx context.Context, id string) error {
	return f.Registry.DeleteLead(ctx, id)
}

func (f *CRMFacade) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	return f.Registry.GetLead(ctx, id)
}

func (f *CRMFacade) QueryLeads(ctx context.Context, filters entity.LeadFilters) ([]*entity.EnrichedLead, error) {
	return f.Engine.Query(ctx, filters)
}

func (f *CRMFacade) ComputeStats(ctx context.Context, filters entity.LeadFilters) (entity.CRMStats, error) {
	return f.Engine.ComputeStats(ctx, filters)
}

// --- Taxonomia ---

func (f *CRMFacade) CreateTaxonomy(ctx context.Context, kind entity.TaxonomyKind, input TaxonomyInput) (*entity.TaxonomyEntry, error) {
	return f.Taxonomy.Create(ctx, kind, input)
}

func (f *CRMFacade) UpdateTaxonomy(ctx context.Context, kind entity.TaxonomyKind, id string, input TaxonomyInput) (*entity.TaxonomyEntry, error) {
	return f.Taxonomy.Update(ctx, kind, id, input)
}

func (f *CRMFacade) DeleteTaxonomy(ctx context.Context, kind entity.TaxonomyKind, id string) error {
	return f.Taxonomy.Delete(ctx, kind, id)
}

func (f *CRMFacade) ListTaxonomy(ctx context.Context, kind entity.TaxonomyKind) ([]*entity.TaxonomyEntry, error) {
	return f.Taxonomy.List(ctx, kind)
}

// --- Interações ---

func (f *CRMFacade) RecordInteraction(ctx context.Context, leadID string, input RecordInteractionInput) (*entity.Interaction, error) {
	return f.Interactions.Record(ctx, leadID, input)
}

func (f *CRMFacade) ListInteractions(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	return f.Interactions.List(ctx, leadID)
}

func (f *CRMFacade) DeleteInteraction(ctx context.Context, id string) error {
	return f.Interactions.SoftDelete(ctx, id)
}

// --- Campanhas ---

func (f *CRMFacade) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	if !f.Features.Campaigns {
		return nil, NewNotAvailableError("campaigns")
	}
	return f.Campaigns.CreateCampaign(ctx, input)
}

func (f *CRMFacade) GetCampaign(ctx context.Context, id string) (*entity.Campaign, error) {
	if !f.Features.Campaigns {
		return nil, NewNotAvailableError("campaigns")
	}
	return f.Campaigns.GetCampaign(ctx, id)
}

func (f *CRMFacade) ListCampaigns(ctx context.Context) ([]*entity.Campaign, error) {
	if !f.Features.Campaigns {
		return nil, NewNotAvailableError("campaigns")
	}
	return f.Campaigns.ListCampaigns(ctx)
}

func (f *CRMFacade) AssignLeadToCampaign(ctx context.Context, leadID, campaignID string) error {
	if !f.Features.Campaigns {
		return NewNotAvailableError("campaigns")
	}
	return f.Campaigns.AssignLeadToCampaign(ctx, leadID, campaignID)
}

func (f *CRMFacade) ResolveCampaignMembers(ctx context.Context, campaignID string) ([]*entity.EnrichedLead, error) {
	if !f.Features.Campaigns {
		return nil, NewNotAvailableError("campaigns")
	}
	return f.Campaigns.ResolveMembers(ctx, campaignID)
}

func (f *CRMFacade) LockCampaign(ctx context.Context, campaignID string) (*entity.Campaign, error) {
	if !f.Features.Campaigns {
		return nil, NewNotAvailableError("campaigns")
	}
	return f.Campaigns.LockCampaign(ctx, campaignID)
}

// --- Tarefas ---

func (f *CRMFacade) AssignTaskToLead(ctx context.Context, input AssignTaskInput) (*entity.Task, error) {
	if !f.Features.Tasks {
		return nil, NewNotAvailableError("tasks")
	}
	return f.Campaigns.AssignTaskToLead(ctx, input)
}

func (f *CRMFacade) CompleteTask(ctx context.Context, id string) (*entity.Task, error) {
	if !f.Features.Tasks {
		return nil, NewNotAvailableError("tasks")
	}
	return f.Campaigns.CompleteTask(ctx, id)
}

func (f *CRMFacade) ListTasks(ctx context.Context, leadID string) ([]*entity.Task, error) {
	if !f.Features.Tasks {
		return nil, NewNotAvailableError("tasks")
	}
	return f.Campaigns.ListTasks(ctx, leadID)
}
