package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// CampaignService vincula leads a campanhas e tarefas. A campanha guarda um
// filtro-alvo e resolve os membros sob demanda via QueryEngine; campanha
// travada (locked) congela os membros nos vínculos.
type CampaignService struct {
	Campaigns CampaignRepositoryInterface
	Tasks     TaskRepositoryInterface
	Leads     LeadRepositoryInterface
	Query     *QueryEngine
	Email     EmailService
}

func NewCampaignService(campaigns CampaignRepositoryInterface, tasks TaskRepositoryInterface, leads LeadRepositoryInterface, query *QueryEngine, email EmailService) *CampaignService {
	return &CampaignService{
		Campaigns: campaigns,
		Tasks:     tasks,
		Leads:     leads,
		Query:     query,
		Email:     email,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	campaign, err := entity.NewCampaign(input.Name, input.StartsAt, input.EndsAt, input.Target)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := s.Campaigns.Create(ctx, campaign); err != nil {
		return nil, mapRepoError(err, "campaign")
	}

	return campaign, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*entity.Campaign, error) {
	campaign, err := s.Campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "campaign")
	}
	return campaign, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context) ([]*entity.Campaign, error) {
	campaigns, err := s.Campaigns.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "campaign")
	}
	return campaigns, nil
}

// AssignLeadToCampaign é idempotente: o mesmo par duas vezes é no-op.
func (s *CampaignService) AssignLeadToCampaign(ctx context.Context, leadID, campaignID string) error {
	if _, err := s.Leads.FindByID(ctx, leadID); err != nil {
		return mapRepoError(err, "lead")
	}
	if _, err := s.Campaigns.FindByID(ctx, campaignID); err != nil {
		return mapRepoError(err, "campaign")
	}

	if err := s.Campaigns.Link(ctx, campaignID, leadID); err != nil {
		return mapRepoError(err, "campaign link")
	}

	return nil
}

// ResolveMembers materializa os leads da campanha: travada lê os vínculos,
// destravada avalia o filtro-alvo ao vivo.
func (s *CampaignService) ResolveMembers(ctx context.Context, campaignID string) ([]*entity.EnrichedLead, error) {
	campaign, err := s.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, mapRepoError(err, "campaign")
	}

	if !campaign.Locked {
		return s.Query.Query(ctx, campaign.Target)
	}

	links, err := s.Campaigns.ListLinks(ctx, campaignID)
	if err != nil {
		return nil, mapRepoError(err, "campaign link")
	}

	leads := make([]*entity.Lead, 0, len(links))
	for _, link := range links {
		lead, err := s.Leads.FindByID(ctx, link.LeadID)
		if err != nil {
			// Vínculo órfão não derruba a resolução inteira
			continue
		}
		leads = append(leads, lead)
	}

	// Mesmo read-model das consultas: taxonomia resolvida e contagem de
	// interações, recalculados agora.
	return s.Query.enrich(ctx, leads)
}

// LockCampaign congela os membros atuais do filtro-alvo em vínculos.
func (s *CampaignService) LockCampaign(ctx context.Context, campaignID string) (*entity.Campaign, error) {
	campaign, err := s.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, mapRepoError(err, "campaign")
	}

	if !campaign.Locked {
		members, err := s.Query.Query(ctx, campaign.Target)
		if err != nil {
			return nil, err
		}

		for _, m := range members {
			if err := s.Campaigns.Link(ctx, campaign.ID, m.ID); err != nil {
				return nil, mapRepoError(err, "campaign link")
			}
		}

		campaign.Locked = true
		campaign.UpdatedAt = time.Now()
		if err := s.Campaigns.Update(ctx, campaign); err != nil {
			return nil, mapRepoError(err, "campaign")
		}
	}

	return campaign, nil
}

func (s *CampaignService) AssignTaskToLead(ctx context.Context, input AssignTaskInput) (*entity.Task, error) {
	if _, err := s.Leads.FindByID(ctx, input.LeadID); err != nil {
		return nil, mapRepoError(err, "lead")
	}

	task, err := entity.NewTask(input.LeadID, input.Title, input.Assignee, input.AssigneeEmail, input.DueDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := s.Tasks.Create(ctx, task); err != nil {
		return nil, mapRepoError(err, "task")
	}

	s.notifyAssignee(ctx, task)

	return task, nil
}

func (s *CampaignService) CompleteTask(ctx context.Context, id string) (*entity.Task, error) {
	now := time.Now()
	if err := s.Tasks.Complete(ctx, id, now); err != nil {
		return nil, mapRepoError(err, "task")
	}

	task, err := s.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "task")
	}

	return task, nil
}

func (s *CampaignService) ListTasks(ctx context.Context, leadID string) ([]*entity.Task, error) {
	tasks, err := s.Tasks.ListByLead(ctx, leadID)
	if err != nil {
		return nil, mapRepoError(err, "task")
	}
	return tasks, nil
}

func (s *CampaignService) notifyAssignee(ctx context.Context, task *entity.Task) {
	if s.Email == nil || task.AssigneeEmail == "" {
		return
	}

	lead, err := s.Leads.FindByID(ctx, task.LeadID)
	leadName := task.LeadID
	if err == nil {
		leadName = lead.Name
	}

	go func() {
		if err := s.Email.SendTaskAssigned(task.AssigneeEmail, task.Assignee, leadName, task.Title, task.DueDate); err != nil {
			logrus.Warnf("failed to send task notification to %s: %v", task.AssigneeEmail, err)
		}
	}()
}
