package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestRecordInteraction(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInteractionRepository)
	leads := new(MockLeadRepository)

	lead, _ := entity.NewLead("Awa Diop", "awa@example.com", "", "", "")
	lead.ID = "l-1"

	leads.On("FindByID", ctx, "l-1").Return(lead, nil)

	var inserted *entity.Interaction
	repo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*entity.Interaction)
	}).Return(nil)

	log := NewInteractionLog(repo, leads)

	interaction, err := log.Record(ctx, "l-1", RecordInteractionInput{
		Type:    string(entity.InteractionCall),
		Subject: "Premier contact",
		Outcome: "intéressé",
	})

	assert.NoError(t, err)
	assert.Equal(t, inserted, interaction)
	assert.Equal(t, "l-1", interaction.LeadID)
	assert.Equal(t, entity.InteractionCall, interaction.Type)
	assert.False(t, interaction.Deleted)
}

func TestRecordInteractionUnknownLead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInteractionRepository)
	leads := new(MockLeadRepository)

	leads.On("FindByID", ctx, "missing").Return(nil, entity.ErrNotFound)

	log := NewInteractionLog(repo, leads)

	_, err := log.Record(ctx, "missing", RecordInteractionInput{
		Type:    string(entity.InteractionNote),
		Subject: "Note",
	})

	assert.True(t, IsNotFound(err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRecordInteractionValidation(t *testing.T) {
	repo := new(MockInteractionRepository)
	leads := new(MockLeadRepository)
	log := NewInteractionLog(repo, leads)

	_, err := log.Record(context.Background(), "l-1", RecordInteractionInput{Type: "fax"})

	assert.True(t, IsValidation(err))
	leads.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListInteractionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInteractionRepository)
	leads := new(MockLeadRepository)

	lead, _ := entity.NewLead("Awa Diop", "awa@example.com", "", "", "")
	lead.ID = "l-1"
	leads.On("FindByID", ctx, "l-1").Return(lead, nil)

	now := time.Now()
	// o repo já devolve ordenado; aqui garantimos que o serviço não mexe
	repo.On("ListByLead", ctx, "l-1").Return([]*entity.Interaction{
		{ID: "i-2", LeadID: "l-1", Type: entity.InteractionEmail, OccurredAt: now},
		{ID: "i-1", LeadID: "l-1", Type: entity.InteractionCall, OccurredAt: now.Add(-time.Hour)},
	}, nil)

	log := NewInteractionLog(repo, leads)

	interactions, err := log.List(ctx, "l-1")

	assert.NoError(t, err)
	assert.Len(t, interactions, 2)
	assert.Equal(t, "i-2", interactions[0].ID)
	assert.True(t, interactions[0].OccurredAt.After(interactions[1].OccurredAt))
}

func TestSoftDeleteInteractionTwice(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInteractionRepository)
	leads := new(MockLeadRepository)

	repo.On("SoftDelete", ctx, "i-1").Return(nil).Once()
	repo.On("SoftDelete", ctx, "i-1").Return(entity.ErrNotFound)

	log := NewInteractionLog(repo, leads)

	assert.NoError(t, log.SoftDelete(ctx, "i-1"))
	// já escondida: segunda remoção se comporta como inexistente
	assert.True(t, IsNotFound(log.SoftDelete(ctx, "i-1")))
}
