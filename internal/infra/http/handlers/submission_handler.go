package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cloudguides/leadcapture/internal/infra/http/middleware"
	"github.com/cloudguides/leadcapture/internal/usecase"
)

// genericFailureMsg is what end users see for any non-validation failure.
// Internal detail (provider bodies, SQL errors) stays in the server log.
const genericFailureMsg = "Something went wrong. Please try again."

type SubmissionHandler struct {
	SubmitUC    *usecase.SubmitEmailUseCase
	rateLimiter *RateLimiter
}

func NewSubmissionHandler(uc *usecase.SubmitEmailUseCase, ratePerMin int) *SubmissionHandler {
	return &SubmissionHandler{
		SubmitUC:    uc,
		rateLimiter: NewRateLimiter(ratePerMin, time.Minute),
	}
}

// Handle accepts the landing page form. Browsers post it url-encoded and
// get a redirect back; JSON clients get the JSON envelope.
func (h *SubmissionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	input, err := parseSubmissionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeValidationErrors(w, domainErr.Fields)
			return
		}

		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) && techErr.Code == usecase.CodeRemoteSync {
			middleware.RecordSubmission("sync_failed")
			middleware.RecordSyncError("mailerlite")
			writeError(w, http.StatusBadGateway, genericFailureMsg)
			return
		}

		middleware.RecordSubmission("failed")
		writeError(w, http.StatusInternalServerError, genericFailureMsg)
		return
	}

	middleware.RecordSubmission("success")

	if output.RedirectURL != "" {
		http.Redirect(w, r, output.RedirectURL, http.StatusSeeOther)
		return
	}

	writeSuccess(w, http.StatusCreated, output.Msg, output)
}

func parseSubmissionRequest(r *http.Request) (usecase.SubmitEmailInput, error) {
	var input usecase.SubmitEmailInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}

	input.Name = r.PostFormValue("name")
	input.Email = r.PostFormValue("email")
	input.LeadRoute = r.PostFormValue("lead_route")
	input.RedirectURL = r.PostFormValue("redirect_url")
	return input, nil
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
