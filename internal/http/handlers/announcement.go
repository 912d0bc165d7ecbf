package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

type AnnouncementHandler struct {
	log           *logger.Logger
	announcements services.AnnouncementService
}

func NewAnnouncementHandler(log *logger.Logger, announcements services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{log: log.With("handler", "AnnouncementHandler"), announcements: announcements}
}

type createAnnouncementRequest struct {
	Title           string      `json:"title"`
	Body            string      `json:"body"`
	OrganizationIDs []uuid.UUID `json:"organization_ids"`
	GroupIDs        []uuid.UUID `json:"group_ids"`
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ann, err := h.announcements.Create(c.Request.Context(), req.Title, req.Body, req.OrganizationIDs, req.GroupIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"announcement": ann})
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	annID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid announcement id")
		return
	}
	ann, err := h.announcements.GetByID(c.Request.Context(), annID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcement": ann})
}

func (h *AnnouncementHandler) Dispatch(c *gin.Context) {
	annID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid announcement id")
		return
	}
	enqueued, err := h.announcements.Dispatch(c.Request.Context(), annID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"enqueued_recipients": enqueued})
}
