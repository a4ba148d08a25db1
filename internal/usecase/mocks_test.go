package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead, expectedVersion int) error {
	args := m.Called(ctx, lead, expectedVersion)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus, expectedVersion int) error {
	args := m.Called(ctx, id, status, expectedVersion)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindMany(ctx context.Context, filters entity.LeadFilters) ([]*entity.Lead, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockTaxonomyRepository
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) Create(ctx context.Context, entry *entity.TaxonomyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) Update(ctx context.Context, entry *entity.TaxonomyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) Delete(ctx context.Context, kind entity.TaxonomyKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) FindByID(ctx context.Context, kind entity.TaxonomyKind, id string) (*entity.TaxonomyEntry, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TaxonomyEntry), args.Error(1)
}

func (m *MockTaxonomyRepository) List(ctx context.Context, kind entity.TaxonomyKind) ([]*entity.TaxonomyEntry, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TaxonomyEntry), args.Error(1)
}

func (m *MockTaxonomyRepository) CountLeadsReferencing(ctx context.Context, kind entity.TaxonomyKind, id string) (int, error) {
	args := m.Called(ctx, kind, id)
	return args.Int(0), args.Error(1)
}

// MockInteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Insert(ctx context.Context, interaction *entity.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockInteractionRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Interaction), args.Error(1)
}

func (m *MockInteractionRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInteractionRepository) CountByLeads(ctx context.Context, leadIDs []string) (map[string]int, error) {
	args := m.Called(ctx, leadIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Update(ctx context.Context, campaign *entity.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]*entity.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Link(ctx context.Context, campaignID, leadID string) error {
	args := m.Called(ctx, campaignID, leadID)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListLinks(ctx context.Context, campaignID string) ([]*entity.CampaignLink, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CampaignLink), args.Error(1)
}

// MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Task), args.Error(1)
}

func (m *MockTaskRepository) Complete(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Task, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Task), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendTaskAssigned(to, assignee, leadName, title string, dueDate time.Time) error {
	args := m.Called(to, assignee, leadName, title, dueDate)
	return args.Error(0)
}
