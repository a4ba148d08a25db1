package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// TaxonomyStore faz o CRUD de setores, segmentos e tags.
//
// Política de delete: BLOQUEIO. Apagar uma entrada ainda referenciada por
// algum lead falha com IN_USE; nunca limpamos a referência nos leads por
// baixo dos panos.
type TaxonomyStore struct {
	Repo TaxonomyRepositoryInterface
}

func NewTaxonomyStore(repo TaxonomyRepositoryInterface) *TaxonomyStore {
	return &TaxonomyStore{Repo: repo}
}

func (s *TaxonomyStore) Create(ctx context.Context, kind entity.TaxonomyKind, input TaxonomyInput) (*entity.TaxonomyEntry, error) {
	if validationErrors := ValidateTaxonomyInput(input); len(validationErrors) > 0 {
		return nil, foldValidationErrors(validationErrors)
	}

	entry, err := entity.NewTaxonomyEntry(kind, input.Name, input.Description, input.Color)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, mapRepoError(err, string(kind))
	}

	return entry, nil
}

func (s *TaxonomyStore) Update(ctx context.Context, kind entity.TaxonomyKind, id string, input TaxonomyInput) (*entity.TaxonomyEntry, error) {
	if validationErrors := ValidateTaxonomyInput(input); len(validationErrors) > 0 {
		return nil, foldValidationErrors(validationErrors)
	}

	entry, err := s.Repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, mapRepoError(err, string(kind))
	}

	entry.Name = input.Name
	entry.Description = input.Description
	entry.Color = input.Color

	if err := s.Repo.Update(ctx, entry); err != nil {
		return nil, mapRepoError(err, string(kind))
	}

	return entry, nil
}

func (s *TaxonomyStore) Delete(ctx context.Context, kind entity.TaxonomyKind, id string) error {
	count, err := s.Repo.CountLeadsReferencing(ctx, kind, id)
	if err != nil {
		return mapRepoError(err, string(kind))
	}
	if count > 0 {
		return NewInUseError(string(kind))
	}

	// O pré-check acima é cortesia; a FK no banco é quem garante a corrida
	// contra leads criados no meio do caminho.
	if err := s.Repo.Delete(ctx, kind, id); err != nil {
		return mapRepoError(err, string(kind))
	}

	return nil
}

func (s *TaxonomyStore) Get(ctx context.Context, kind entity.TaxonomyKind, id string) (*entity.TaxonomyEntry, error) {
	entry, err := s.Repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, mapRepoError(err, string(kind))
	}
	return entry, nil
}

func (s *TaxonomyStore) List(ctx context.Context, kind entity.TaxonomyKind) ([]*entity.TaxonomyEntry, error) {
	entries, err := s.Repo.List(ctx, kind)
	if err != nil {
		return nil, mapRepoError(err, string(kind))
	}
	return entries, nil
}
