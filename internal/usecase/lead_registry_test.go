package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

func newRegistry(repo *MockLeadRepository, interactions *MockInteractionRepository) *LeadRegistry {
	// Producer nil: publicação é fire-and-forget e fica fora destes testes
	return NewLeadRegistry(repo, interactions, nil)
}

func TestCreateLeadDefaultsToNouveau(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	uc := newRegistry(repo, new(MockInteractionRepository))

	lead, err := uc.CreateLead(ctx, CreateLeadInput{
		Name:  "Test Lead",
		Email: "test@example.com",
		Phone: "+221771234567",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNouveau, lead.Status)
	assert.Equal(t, "Test Lead", lead.Name)
	assert.Equal(t, "test@example.com", lead.Email)
	assert.Equal(t, "+221771234567", lead.Phone)
	repo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestCreateLeadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)

	var persisted *entity.Lead
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*entity.Lead)
	}).Return(nil)

	uc := newRegistry(repo, new(MockInteractionRepository))

	input := CreateLeadInput{
		Name:     "Awa Diop",
		Email:    "awa@example.com",
		SectorID: "sec-1",
		TagIDs:   []string{"tag-1"},
		Notes:    "rencontrée au salon",
		Source:   "salon",
	}

	created, err := uc.CreateLead(ctx, input)
	assert.NoError(t, err)

	repo.On("FindByID", ctx, created.ID).Return(persisted, nil)

	got, err := uc.GetLead(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Email, got.Email)
	assert.Equal(t, input.SectorID, *got.SectorID)
	assert.Equal(t, input.TagIDs, got.TagIDs)
	assert.Equal(t, input.Notes, got.Notes)
	assert.Equal(t, input.Source, got.Source)
}

func TestCreateLeadValidationFailures(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	uc := newRegistry(repo, new(MockInteractionRepository))

	cases := []CreateLeadInput{
		{Email: "test@example.com"},                     // sem nome
		{Name: "Test Lead"},                             // sem canal de contato
		{Name: "Test Lead", Email: "not-an-email"},      // email malformado
		{Name: "Test Lead", Phone: "12"},                // telefone curto demais
	}

	for i, input := range cases {
		_, err := uc.CreateLead(ctx, input)
		assert.Error(t, err, "case %d", i)
		assert.True(t, IsValidation(err), "case %d: expected VALIDATION_ERROR, got %v", i, err)
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChangeStatusRecordsAuditInteraction(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusNouveau, Version: 1}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusContacte, 1).Return(nil)

	var audit *entity.Interaction
	interactions.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		audit = args.Get(1).(*entity.Interaction)
	}).Return(nil)

	uc := newRegistry(repo, interactions)

	updated, err := uc.ChangeStatus(ctx, "l-1", entity.StatusContacte, 0)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacte, updated.Status)
	assert.Equal(t, 2, updated.Version)

	interactions.AssertNumberOfCalls(t, "Insert", 1)
	assert.Equal(t, entity.InteractionStatusChange, audit.Type)
	assert.Equal(t, "nouveau -> contacte", audit.Body)
}

func TestChangeStatusRejectsSkippedStage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusContacte, Version: 2}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)

	uc := newRegistry(repo, interactions)

	// contacte -> client pula qualifie/proposition/negocie
	_, err := uc.ChangeStatus(ctx, "l-1", entity.StatusClient, 0)

	assert.Error(t, err)
	assert.True(t, IsInvalidTransition(err))
	assert.Equal(t, entity.StatusContacte, lead.Status, "status anterior intocado")
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	interactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestChangeStatusReopenFromPerdu(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusPerdu, Version: 4}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusNouveau, 4).Return(nil)
	interactions.On("Insert", ctx, mock.Anything).Return(nil)

	uc := newRegistry(repo, interactions)

	updated, err := uc.ChangeStatus(ctx, "l-1", entity.StatusNouveau, 0)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNouveau, updated.Status)
}

func TestChangeStatusStaleVersionLosesWithConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusNouveau, Version: 3}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	// concorrente ganhou: a versão que o chamador leu já era
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusContacte, 2).Return(entity.ErrVersionConflict)

	uc := newRegistry(repo, interactions)

	_, err := uc.ChangeStatus(ctx, "l-1", entity.StatusContacte, 2)

	assert.Error(t, err)
	assert.True(t, IsConflict(err))
	interactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestChangeStatusRollsBackWhenAuditWriteFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusNouveau, Version: 1}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusContacte, 1).Return(nil)
	// compensação: volta pro status anterior checando a versão que a
	// própria escrita produziu
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusNouveau, 2).Return(nil)
	interactions.On("Insert", ctx, mock.Anything).Return(assert.AnError)

	uc := newRegistry(repo, interactions)

	_, err := uc.ChangeStatus(ctx, "l-1", entity.StatusContacte, 0)

	assert.Error(t, err)
	repo.AssertCalled(t, "UpdateStatus", ctx, "l-1", entity.StatusNouveau, 2)
}

func TestChangeStatusCompensationLosesToConcurrentWriter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	interactions := new(MockInteractionRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test Lead", Email: "test@example.com", Status: entity.StatusNouveau, Version: 1}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusContacte, 1).Return(nil)
	// um escritor concorrente mexeu no lead entre a falha da auditoria e a
	// reversão: a compensação perde e o trabalho dele fica de pé
	repo.On("UpdateStatus", ctx, "l-1", entity.StatusNouveau, 2).Return(entity.ErrVersionConflict)
	interactions.On("Insert", ctx, mock.Anything).Return(assert.AnError)

	uc := newRegistry(repo, interactions)

	_, err := uc.ChangeStatus(ctx, "l-1", entity.StatusContacte, 0)

	assert.Error(t, err)
	repo.AssertCalled(t, "UpdateStatus", ctx, "l-1", entity.StatusNouveau, 2)
}

func TestChangeStatusUnknownLead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByID", ctx, "missing").Return(nil, entity.ErrNotFound)

	uc := newRegistry(repo, new(MockInteractionRepository))

	_, err := uc.ChangeStatus(ctx, "missing", entity.StatusContacte, 0)

	assert.True(t, IsNotFound(err))
}

func TestUpdateLeadPatchAppliesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Old Name", Email: "old@example.com", Phone: "+221771234567", Status: entity.StatusNouveau, Version: 1}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("Update", ctx, mock.Anything, 1).Return(nil)

	uc := newRegistry(repo, new(MockInteractionRepository))

	newName := "New Name"
	updated, err := uc.UpdateLead(ctx, "l-1", UpdateLeadInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "old@example.com", updated.Email, "campo não enviado fica como está")
}

func TestUpdateLeadStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)

	lead := &entity.Lead{ID: "l-1", Name: "Test", Email: "t@example.com", Status: entity.StatusNouveau, Version: 5}
	repo.On("FindByID", ctx, "l-1").Return(lead, nil)
	repo.On("Update", ctx, mock.Anything, 4).Return(entity.ErrVersionConflict)

	uc := newRegistry(repo, new(MockInteractionRepository))

	newName := "X"
	_, err := uc.UpdateLead(ctx, "l-1", UpdateLeadInput{Name: &newName, Version: 4})

	assert.True(t, IsConflict(err))
}

func TestDeleteLeadNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("Delete", ctx, "missing").Return(entity.ErrNotFound)

	uc := newRegistry(repo, new(MockInteractionRepository))

	err := uc.DeleteLead(ctx, "missing")

	assert.True(t, IsNotFound(err))
}
