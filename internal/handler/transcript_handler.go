package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"academico/internal/middleware"
	"academico/internal/service"
)

// TranscriptHandler handles transcript extraction and reconciliation
// endpoints.
type TranscriptHandler struct {
	transcripts service.TranscriptService
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(transcripts service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Reconcile handles POST /api/v1/transcripts/reconcile.
// The body carries the rendered pages and an optional catalog_id hint;
// an ambiguous program/catalog yields a selection_required payload with
// HTTP 200, never an error status.
func (h *TranscriptHandler) Reconcile(c *gin.Context) {
	var input service.ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}

	if userID, err := middleware.GetUserID(c); err == nil {
		log.Printf("handler.TranscriptHandler: reconcile requested by %s", userID)
	}

	result, err := h.transcripts.Reconcile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Extract handles POST /api/v1/transcripts/extract. It returns the
// normalized records and metadata without touching the catalog store,
// useful for inspecting what the engine read from a document.
func (h *TranscriptHandler) Extract(c *gin.Context) {
	var input service.ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}

	transcript, err := h.transcripts.Extract(c.Request.Context(), &input.Document)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, transcript)
}
