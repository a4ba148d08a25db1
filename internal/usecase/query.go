package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// QueryEngine avalia um LeadFilters contra o registro e produz read-models
// enriquecidos e estatísticas. Só leitura: nenhuma chamada aqui muda estado.
type QueryEngine struct {
	Leads        LeadRepositoryInterface
	Taxonomy     TaxonomyRepositoryInterface
	Interactions InteractionRepositoryInterface
}

func NewQueryEngine(leads LeadRepositoryInterface, taxonomy TaxonomyRepositoryInterface, interactions InteractionRepositoryInterface) *QueryEngine {
	return &QueryEngine{
		Leads:        leads,
		Taxonomy:     taxonomy,
		Interactions: interactions,
	}
}

// Query combina todos os campos do filtro em AND; filtro vazio devolve o
// registro inteiro (limitado por Limit/Offset quando presentes).
func (q *QueryEngine) Query(ctx context.Context, filters entity.LeadFilters) ([]*entity.EnrichedLead, error) {
	leads, err := q.Leads.FindMany(ctx, filters)
	if err != nil {
		return nil, mapRepoError(err, "lead")
	}

	return q.enrich(ctx, leads)
}

// ComputeStats aplica o mesmo filtro antes de agregar. Projeção pura: duas
// chamadas seguidas sem mutação no meio devolvem o mesmo resultado.
func (q *QueryEngine) ComputeStats(ctx context.Context, filters entity.LeadFilters) (entity.CRMStats, error) {
	// Stats enxergam o conjunto filtrado inteiro, não a página.
	filters.Limit = 0
	filters.Offset = 0

	leads, err := q.Leads.FindMany(ctx, filters)
	if err != nil {
		return entity.CRMStats{}, mapRepoError(err, "lead")
	}

	return entity.ComputeStats(leads), nil
}

func (q *QueryEngine) enrich(ctx context.Context, leads []*entity.Lead) ([]*entity.EnrichedLead, error) {
	sectors, err := q.taxonomyByID(ctx, entity.KindSector)
	if err != nil {
		return nil, err
	}
	segments, err := q.taxonomyByID(ctx, entity.KindSegment)
	if err != nil {
		return nil, err
	}
	tags, err := q.taxonomyByID(ctx, entity.KindTag)
	if err != nil {
		return nil, err
	}

	leadIDs := make([]string, 0, len(leads))
	for _, l := range leads {
		leadIDs = append(leadIDs, l.ID)
	}

	counts := map[string]int{}
	if len(leadIDs) > 0 {
		counts, err = q.Interactions.CountByLeads(ctx, leadIDs)
		if err != nil {
			return nil, mapRepoError(err, "interaction")
		}
	}

	enriched := make([]*entity.EnrichedLead, 0, len(leads))
	for _, l := range leads {
		e := &entity.EnrichedLead{
			Lead:             *l,
			InteractionCount: counts[l.ID],
		}

		if l.SectorID != nil {
			if entry, ok := sectors[*l.SectorID]; ok {
				e.Sector = entry.AsSector()
			}
		}
		if l.SegmentID != nil {
			if entry, ok := segments[*l.SegmentID]; ok {
				e.Segment = entry.AsSegment()
			}
		}
		for _, tagID := range l.TagIDs {
			if entry, ok := tags[tagID]; ok {
				e.Tags = append(e.Tags, *entry.AsTag())
			}
		}

		enriched = append(enriched, e)
	}

	return enriched, nil
}

func (q *QueryEngine) taxonomyByID(ctx context.Context, kind entity.TaxonomyKind) (map[string]*entity.TaxonomyEntry, error) {
	entries, err := q.Taxonomy.List(ctx, kind)
	if err != nil {
		return nil, mapRepoError(err, string(kind))
	}

	byID := make(map[string]*entity.TaxonomyEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return byID, nil
}
