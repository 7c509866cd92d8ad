package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lhomangroup/voyageur-malin/internal/usecase"
)

const (
	msgInvalidPayload = "Format de données invalide"
	msgBadConfig      = "Configuration serveur incorrecte"
	msgInternal       = "Erreur interne du serveur"

	maxBodyBytes = 1 << 20
)

type ChecklistSender interface {
	Execute(ctx context.Context, input usecase.SendChecklistInput) (*usecase.SendChecklistOutput, error)
}

type ChecklistHandler struct {
	Sender ChecklistSender
	Logger *slog.Logger
}

// NewChecklistHandler builds the submission endpoint. A nil sender means the
// server has no store configured and every submission answers 500.
func NewChecklistHandler(sender ChecklistSender, logger *slog.Logger) *ChecklistHandler {
	return &ChecklistHandler{Sender: sender, Logger: logger}
}

// Preflight answers OPTIONS requests that reach the router without CORS headers.
func (h *ChecklistHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *ChecklistHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Sender == nil {
		h.Logger.Error("submission rejected, database configuration missing", "code", usecase.CodeConfig)
		writeErrorResponse(w, http.StatusInternalServerError, msgBadConfig, "")
		return
	}

	var input usecase.SendChecklistInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		h.Logger.Warn("invalid submission payload", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, msgInvalidPayload, "")
		return
	}

	output, err := h.Sender.Execute(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *ChecklistHandler) writeError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeErrorResponse(w, http.StatusBadRequest, domainErr.Message, domainErr.Details)
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		h.Logger.Error("submission failed", "code", techErr.Code, "error", techErr.Err)
		writeErrorResponse(w, http.StatusInternalServerError, techErr.Message, "")
		return
	}

	h.Logger.Error("submission failed", "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, msgInternal, "")
}
