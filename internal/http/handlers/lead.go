package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

type LeadHandler struct {
	log   *logger.Logger
	leads services.LeadService
}

func NewLeadHandler(log *logger.Logger, leads services.LeadService) *LeadHandler {
	return &LeadHandler{log: log.With("handler", "LeadHandler"), leads: leads}
}

type captureLeadRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Source    string `json:"source"`
}

func (h *LeadHandler) Capture(c *gin.Context) {
	var req captureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	lead, err := h.leads.Capture(c.Request.Context(), req.Email, req.FirstName, req.LastName, req.Company, req.Source)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

func (h *LeadHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	leads, err := h.leads.List(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid lead id")
		return
	}
	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.leads.UpdateStatus(c.Request.Context(), leadID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
