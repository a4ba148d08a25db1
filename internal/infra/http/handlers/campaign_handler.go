package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CampaignHandler struct {
	Facade *usecase.CRMFacade
}

func NewCampaignHandler(facade *usecase.CRMFacade) *CampaignHandler {
	return &CampaignHandler{Facade: facade}
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	campaign, err := h.Facade.CreateCampaign(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Facade.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Facade.ListCampaigns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) AssignLead(w http.ResponseWriter, r *http.Request) {
	err := h.Facade.AssignLeadToCampaign(r.Context(), chi.URLParam(r, "leadId"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CampaignHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.Facade.ResolveCampaignMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *CampaignHandler) Lock(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.Facade.LockCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var input usecase.AssignTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: usecase.CodeValidation, Message: "invalid JSON"})
		return
	}

	task, err := h.Facade.AssignTaskToLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *CampaignHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Facade.CompleteTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.TasksCompleted.Inc()
	writeJSON(w, http.StatusOK, task)
}

func (h *CampaignHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Facade.ListTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}
