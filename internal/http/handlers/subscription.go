package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

type SubscriptionHandler struct {
	log  *logger.Logger
	subs services.SubscriptionService
}

func NewSubscriptionHandler(log *logger.Logger, subs services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{log: log.With("handler", "SubscriptionHandler"), subs: subs}
}

type purchaseRequest struct {
	PlanID   uuid.UUID  `json:"plan_id"`
	StartsAt *time.Time `json:"starts_at"`
}

func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	startsAt := time.Now().UTC()
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}
	sub, err := h.subs.Purchase(c.Request.Context(), userID, req.PlanID, startsAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid subscription id")
		return
	}
	sub, err := h.subs.Cancel(c.Request.Context(), subID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}
