package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jeffreasy/PasswordLab/internal/api/helpers"
	customMiddleware "github.com/Jeffreasy/PasswordLab/internal/api/middleware"
	"github.com/Jeffreasy/PasswordLab/internal/demo"
	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

// DemoHandler exposes the demo scenarios over HTTP.
type DemoHandler struct {
	service *demo.Service
}

func NewDemoHandler(service *demo.Service) *DemoHandler {
	return &DemoHandler{service: service}
}

// PasswordRequest is the body of the unsalted and adaptive scenarios.
type PasswordRequest struct {
	Password string `json:"password"`
}

// SaltedComparisonRequest is the body of the salted comparison scenario.
type SaltedComparisonRequest struct {
	PasswordA   string `json:"passwordA"`
	PasswordB   string `json:"passwordB"`
	UseSameSalt bool   `json:"useSameSalt"`
}

// Unsalted handles step 1: unsalted SHA-256 plus the dictionary attack.
func (h *DemoHandler) Unsalted(w http.ResponseWriter, r *http.Request) {
	customMiddleware.SetSentryScenario(r.Context(), demo.ScenarioUnsalted)

	var req PasswordRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		slog.Warn("unsalted_invalid_json", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.DemoUnsaltedAttack(r.Context(), req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

// SaltedComparison handles step 2: two salted hashes with shared or unique salts.
func (h *DemoHandler) SaltedComparison(w http.ResponseWriter, r *http.Request) {
	customMiddleware.SetSentryScenario(r.Context(), demo.ScenarioSalted)

	var req SaltedComparisonRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		slog.Warn("salted_invalid_json", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.DemoSaltedComparison(r.Context(), req.PasswordA, req.PasswordB, req.UseSameSalt)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

// Adaptive handles step 3: the same password hashed twice with the adaptive engine.
func (h *DemoHandler) Adaptive(w http.ResponseWriter, r *http.Request) {
	customMiddleware.SetSentryScenario(r.Context(), demo.ScenarioAdaptive)

	var req PasswordRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		slog.Warn("adaptive_invalid_json", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.DemoAdaptiveHash(r.Context(), req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, res)
}

// clientErrors are surfaced to the caller verbatim with a 400.
var clientErrors = []error{
	hashing.ErrMissingInput,
	hashing.ErrInvalidSaltEncoding,
	hashing.ErrInvalidCostFactor,
}

// respondServiceError maps core errors onto HTTP statuses. Anything that is not
// a known client error, including ErrEntropyUnavailable, is a server fault:
// logged, reported to Sentry, and answered generically.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			helpers.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	slog.ErrorContext(r.Context(), "demo_failed",
		"error", err,
		"path", r.URL.Path,
		"req_id", customMiddleware.GetRequestID(r.Context()),
	)
	customMiddleware.CaptureError(r.Context(), err)
	helpers.RespondError(w, http.StatusInternalServerError, "Internal Server Error")
}
