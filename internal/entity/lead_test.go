package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPipelineTransitions(t *testing.T) {
	cases := []struct {
		from    LeadStatus
		to      LeadStatus
		allowed bool
	}{
		{StatusNouveau, StatusContacte, true},
		{StatusContacte, StatusQualifie, true},
		{StatusQualifie, StatusProposition, true},
		{StatusProposition, StatusNegocie, true},
		{StatusNegocie, StatusClient, true},

		// perdu alcançável de qualquer estado não-terminal
		{StatusNouveau, StatusPerdu, true},
		{StatusContacte, StatusPerdu, true},
		{StatusQualifie, StatusPerdu, true},
		{StatusProposition, StatusPerdu, true},
		{StatusNegocie, StatusPerdu, true},

		// reabertura: única volta permitida
		{StatusPerdu, StatusNouveau, true},

		// saltos e retrocessos proibidos
		{StatusNouveau, StatusClient, false},
		{StatusContacte, StatusClient, false},
		{StatusContacte, StatusNouveau, false},
		{StatusQualifie, StatusContacte, false},
		{StatusClient, StatusPerdu, false},
		{StatusClient, StatusNouveau, false},
		{StatusPerdu, StatusContacte, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusClient.IsTerminal())
	assert.True(t, StatusPerdu.IsTerminal())
	assert.False(t, StatusNouveau.IsTerminal())
	assert.False(t, StatusNegocie.IsTerminal())
}

func TestNewLeadDefaultsToNouveau(t *testing.T) {
	lead, err := NewLead("Test Lead", "test@example.com", "+221771234567", "site_web", "")

	assert.NoError(t, err)
	assert.Equal(t, StatusNouveau, lead.Status)
	assert.Equal(t, 1, lead.Version)
	assert.NotEmpty(t, lead.ID)
}

func TestNewLeadRequiresContactChannel(t *testing.T) {
	_, err := NewLead("Test Lead", "", "", "", "")
	assert.Error(t, err)

	// um canal só já basta
	_, err = NewLead("Test Lead", "", "+221771234567", "", "")
	assert.NoError(t, err)
}

func TestNewLeadRequiresName(t *testing.T) {
	_, err := NewLead("", "test@example.com", "", "", "")
	assert.Error(t, err)
}

func TestFiltersMatchConjunction(t *testing.T) {
	sector := "sec-1"
	lead := &Lead{
		ID:        "l-1",
		Name:      "Awa Diop",
		Email:     "awa@example.com",
		Phone:     "+221771234567",
		Status:    StatusContacte,
		SectorID:  &sector,
		TagIDs:    []string{"tag-1", "tag-2"},
		OwnerID:   "owner-1",
		CreatedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, LeadFilters{}.Match(lead), "empty filter matches everything")
	assert.True(t, LeadFilters{Statuses: []LeadStatus{StatusContacte, StatusClient}}.Match(lead))
	assert.False(t, LeadFilters{Statuses: []LeadStatus{StatusClient}}.Match(lead))

	assert.True(t, LeadFilters{SectorID: "sec-1"}.Match(lead))
	assert.False(t, LeadFilters{SectorID: "sec-2"}.Match(lead))

	assert.True(t, LeadFilters{TagIDs: []string{"tag-1", "tag-2"}}.Match(lead))
	assert.False(t, LeadFilters{TagIDs: []string{"tag-1", "tag-3"}}.Match(lead))

	// busca livre é case-insensitive sobre nome, email e telefone
	assert.True(t, LeadFilters{Search: "AWA"}.Match(lead))
	assert.True(t, LeadFilters{Search: "example.com"}.Match(lead))
	assert.True(t, LeadFilters{Search: "77123"}.Match(lead))
	assert.False(t, LeadFilters{Search: "moussa"}.Match(lead))

	// conjunção: todos os campos precisam casar
	assert.False(t, LeadFilters{SectorID: "sec-1", Search: "moussa"}.Match(lead))
	assert.True(t, LeadFilters{SectorID: "sec-1", OwnerID: "owner-1"}.Match(lead))
}

func TestFiltersMatchDateRangeInclusive(t *testing.T) {
	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	lead := &Lead{Name: "X", Email: "x@example.com", CreatedAt: created}

	from := created
	to := created
	assert.True(t, LeadFilters{From: &from, To: &to}.Match(lead), "bounds are inclusive")

	after := created.Add(time.Second)
	assert.False(t, LeadFilters{From: &after}.Match(lead))

	before := created.Add(-time.Second)
	assert.False(t, LeadFilters{To: &before}.Match(lead))
}

func TestComputeStats(t *testing.T) {
	sector := "sec-1"
	segment := "seg-1"
	leads := []*Lead{
		{Status: StatusClient, SectorID: &sector},
		{Status: StatusClient, SectorID: &sector, SegmentID: &segment},
		{Status: StatusNouveau},
		{Status: StatusPerdu},
	}

	stats := ComputeStats(leads)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[StatusClient])
	assert.Equal(t, 1, stats.ByStatus[StatusNouveau])
	assert.Equal(t, 2, stats.BySector["sec-1"])
	assert.Equal(t, 1, stats.BySegment["seg-1"])
	assert.InDelta(t, 0.5, stats.ConversionRate, 1e-9)
}

func TestComputeStatsIsPure(t *testing.T) {
	leads := []*Lead{{Status: StatusClient}, {Status: StatusNouveau}}

	first := ComputeStats(leads)
	second := ComputeStats(leads)

	assert.Equal(t, first, second)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.ConversionRate)
}
