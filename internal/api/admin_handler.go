package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/leads"
)

// AdminHandler serves the lead management endpoints behind the API key.
type AdminHandler struct {
	store *leads.Store
	log   logger.Logger
}

func NewAdminHandler(store *leads.Store, log logger.Logger) *AdminHandler {
	return &AdminHandler{store: store, log: log}
}

// List returns all leads, newest first.
func (h *AdminHandler) List(c *gin.Context) {
	all, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"leads": all, "count": len(all)})
}

// Stats aggregates the pipeline by status.
func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.store.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	respondOK(c, gin.H{"by_status": counts, "total": total})
}

// UpdateStatus moves a lead through the pipeline.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errors.NewValidationFailedError("invalid lead id", []string{"id"}))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.NewValidationFailedError("invalid request body", []string{"status"}))
		return
	}

	if err := h.store.UpdateStatus(c.Request.Context(), id, leads.Status(body.Status)); err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("lead status updated", map[string]interface{}{
		"lead_id": id,
		"status":  body.Status,
	})
	respondOK(c, gin.H{"id": id, "status": body.Status})
}

// Delete removes a lead.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, errors.NewValidationFailedError("invalid lead id", []string{"id"}))
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("lead deleted", map[string]interface{}{"lead_id": id})
	respondOK(c, gin.H{"id": id, "deleted": true})
}
