package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

type OrganizationHandler struct {
	log  *logger.Logger
	orgs services.OrganizationService
}

func NewOrganizationHandler(log *logger.Logger, orgs services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{log: log.With("handler", "OrganizationHandler"), orgs: orgs}
}

type createOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.orgs.Create(c.Request.Context(), userID, req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"organization": o})
}

func (h *OrganizationHandler) List(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	list, err := h.orgs.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": list})
}

type renameOrganizationRequest struct {
	Name string `json:"name"`
}

func (h *OrganizationHandler) Rename(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid organization id")
		return
	}
	var req renameOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	o, err := h.orgs.Rename(c.Request.Context(), orgID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": o})
}
