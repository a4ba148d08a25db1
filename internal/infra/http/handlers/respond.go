package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError traduz a taxonomia de erros do core em status HTTP. O kind
// nunca é rebaixado: o código de domínio vai no corpo da resposta.
func writeError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusForCode(de.Code), errorResponse{Code: de.Code, Message: de.Message})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: te.Code, Message: te.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: err.Error()})
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeDuplicateName, usecase.CodeInUse, usecase.CodeConflict, usecase.CodeAlreadyCompleted:
		return http.StatusConflict
	case usecase.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case usecase.CodeNotAvailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
