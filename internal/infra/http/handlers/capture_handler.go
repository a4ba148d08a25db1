package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// CaptureHandler é o endpoint público de captação (formulário do site).
// Por ser aberto, tem rate limit por IP; o lead entra no pipeline como
// "nouveau" com source fixa.
type CaptureHandler struct {
	Facade      *usecase.CRMFacade
	rateLimiter *RateLimiter
}

func NewCaptureHandler(facade *usecase.CRMFacade) *CaptureHandler {
	return &CaptureHandler{
		Facade:      facade,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type CaptureLeadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *CaptureHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	lead, err := h.Facade.CreateLead(ctx, usecase.CreateLeadInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: "site_web",
	})
	if err != nil {
		if usecase.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	middleware.LeadsCreated.Inc()
	writeJSON(w, http.StatusOK, CaptureLeadResponse{
		Success: true,
		ID:      lead.ID,
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
