package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaxonomyKind distingue as três tabelas de referência.
type TaxonomyKind string

const (
	KindSector  TaxonomyKind = "sector"
	KindSegment TaxonomyKind = "segment"
	KindTag     TaxonomyKind = "tag"
)

type Sector struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Segment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaxonomyEntry é a forma comum usada pelo store e pelo repositório; cada
// kind vira sua própria tabela no banco.
type TaxonomyEntry struct {
	ID          string       `json:"id"`
	Kind        TaxonomyKind `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewTaxonomyEntry(kind TaxonomyKind, name, description, color string) (*TaxonomyEntry, error) {
	now := time.Now()
	entry := &TaxonomyEntry{
		ID:          uuid.New().String(),
		Kind:        kind,
		Name:        strings.TrimSpace(name),
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

func (e *TaxonomyEntry) Validate() error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	switch e.Kind {
	case KindSector, KindSegment, KindTag:
	default:
		return errors.New("unknown taxonomy kind")
	}
	return nil
}

func (e *TaxonomyEntry) AsSector() *Sector {
	return &Sector{ID: e.ID, Name: e.Name, Description: e.Description, Color: e.Color, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (e *TaxonomyEntry) AsSegment() *Segment {
	return &Segment{ID: e.ID, Name: e.Name, Description: e.Description, Color: e.Color, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (e *TaxonomyEntry) AsTag() *Tag {
	return &Tag{ID: e.ID, Name: e.Name, Color: e.Color, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}
