package entity

import (
	"strings"
	"time"
)

type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
)

// LeadFilters é a especificação de consulta: campos não preenchidos casam
// com tudo, os preenchidos combinam em AND. Value object, nunca persistido
// (campanhas serializam o alvo como JSON, mas o filtro em si não tem tabela).
type LeadFilters struct {
	Statuses  []LeadStatus `json:"statuses,omitempty"`
	SectorID  string       `json:"sector_id,omitempty"`
	SegmentID string       `json:"segment_id,omitempty"`
	TagIDs    []string     `json:"tag_ids,omitempty"`
	Search    string       `json:"search,omitempty"`
	From      *time.Time   `json:"from,omitempty"`
	To        *time.Time   `json:"to,omitempty"`
	OwnerID   string       `json:"owner_id,omitempty"`
	Order     SortOrder    `json:"order,omitempty"`
	Limit     int          `json:"limit,omitempty"`
	Offset    int          `json:"offset,omitempty"`
}

func (f LeadFilters) IsEmpty() bool {
	return len(f.Statuses) == 0 && f.SectorID == "" && f.SegmentID == "" &&
		len(f.TagIDs) == 0 && f.Search == "" && f.From == nil && f.To == nil &&
		f.OwnerID == ""
}

// Match avalia o filtro contra um lead em memória. É o mesmo contrato que o
// repositório empurra pra SQL; os dois têm que concordar.
func (f LeadFilters) Match(l *Lead) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if l.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.SectorID != "" && (l.SectorID == nil || *l.SectorID != f.SectorID) {
		return false
	}
	if f.SegmentID != "" && (l.SegmentID == nil || *l.SegmentID != f.SegmentID) {
		return false
	}

	for _, tagID := range f.TagIDs {
		if !l.HasTag(tagID) {
			return false
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.Email), needle) &&
			!strings.Contains(strings.ToLower(l.Phone), needle) {
			return false
		}
	}

	// Limites inclusivos na data de criação
	if f.From != nil && l.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && l.CreatedAt.After(*f.To) {
		return false
	}

	if f.OwnerID != "" && l.OwnerID != f.OwnerID {
		return false
	}

	return true
}

// CRMStats é agregado derivado, calculado sob demanda a partir do registro.
type CRMStats struct {
	Total          int                `json:"total"`
	ByStatus       map[LeadStatus]int `json:"by_status"`
	BySector       map[string]int     `json:"by_sector"`
	BySegment      map[string]int     `json:"by_segment"`
	ConversionRate float64            `json:"conversion_rate"`
}

// ComputeStats é a projeção pura usada pelo Query Engine: mesma entrada,
// mesma saída, nenhum efeito colateral.
func ComputeStats(leads []*Lead) CRMStats {
	stats := CRMStats{
		Total:     len(leads),
		ByStatus:  make(map[LeadStatus]int),
		BySector:  make(map[string]int),
		BySegment: make(map[string]int),
	}

	for _, l := range leads {
		stats.ByStatus[l.Status]++
		if l.SectorID != nil {
			stats.BySector[*l.SectorID]++
		}
		if l.SegmentID != nil {
			stats.BySegment[*l.SegmentID]++
		}
	}

	if stats.Total > 0 {
		stats.ConversionRate = float64(stats.ByStatus[StatusClient]) / float64(stats.Total)
	}

	return stats
}
