package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	Facade *usecase.CRMFacade
}

func NewLeadHandler(facade *usecase.CRMFacade) *LeadHandler {
	return &LeadHandler{Facade: facade}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	lead, err := h.Facade.CreateLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.LeadsCreated.Inc()
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Facade.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	lead, err := h.Facade.UpdateLead(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type changeStatusRequest struct {
	Status  string `json:"status"`
	Version int    `json:"version,omitempty"`
}

func (h *LeadHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	lead, err := h.Facade.ChangeLeadStatus(r.Context(), chi.URLParam(r, "id"), entity.LeadStatus(req.Status), req.Version)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.StatusTransitions.WithLabelValues(req.Status).Inc()
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Facade.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List: GET /leads?status=nouveau,contacte&sector_id=...&q=...&limit=50
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}

	leads, err := h.Facade.QueryLeads(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}

	stats, err := h.Facade.ComputeStats(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *LeadHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordInteractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	interaction, err := h.Facade.RecordInteraction(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, interaction)
}

func (h *LeadHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.Facade.ListInteractions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, interactions)
}

func (h *LeadHandler) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
	if err := h.Facade.DeleteInteraction(r.Context(), chi.URLParam(r, "interactionId")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseFilters(r *http.Request) (entity.LeadFilters, error) {
	q := r.URL.Query()
	var filters entity.LeadFilters

	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filters.Statuses = append(filters.Statuses, entity.LeadStatus(strings.TrimSpace(s)))
		}
	}

	filters.SectorID = q.Get("sector_id")
	filters.SegmentID = q.Get("segment_id")
	if raw := q.Get("tag_ids"); raw != "" {
		filters.TagIDs = strings.Split(raw, ",")
	}
	filters.Search = q.Get("q")
	filters.OwnerID = q.Get("owner_id")

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, err
		}
		filters.To = &t
	}

	if raw := q.Get("order"); raw == string(entity.SortOldestFirst) {
		filters.Order = entity.SortOldestFirst
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.Offset = n
	}

	return filters, nil
}
