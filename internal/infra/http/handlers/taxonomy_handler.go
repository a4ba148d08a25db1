package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// TaxonomyHandler atende /sectors, /segments e /tags com o mesmo código;
// o kind vem da rota.
type TaxonomyHandler struct {
	Facade *usecase.CRMFacade
	Kind   entity.TaxonomyKind
}

func NewTaxonomyHandler(facade *usecase.CRMFacade, kind entity.TaxonomyKind) *TaxonomyHandler {
	return &TaxonomyHandler{Facade: facade, Kind: kind}
}

func (h *TaxonomyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.TaxonomyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	entry, err := h.Facade.CreateTaxonomy(r.Context(), h.Kind, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *TaxonomyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.TaxonomyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	entry, err := h.Facade.UpdateTaxonomy(r.Context(), h.Kind, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *TaxonomyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Facade.DeleteTaxonomy(r.Context(), h.Kind, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaxonomyHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Facade.ListTaxonomy(r.Context(), h.Kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
