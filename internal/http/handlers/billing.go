package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/statera-app/statera-backend/internal/platform/ctxutil"
	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/services"
)

type BillingHandler struct {
	log     *logger.Logger
	billing services.BillingService
}

func NewBillingHandler(log *logger.Logger, billing services.BillingService) *BillingHandler {
	return &BillingHandler{log: log.With("handler", "BillingHandler"), billing: billing}
}

func (h *BillingHandler) Current(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	sub, err := h.billing.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

func (h *BillingHandler) Status(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	payload, err := h.billing.StatusPayload(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *BillingHandler) History(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	history, err := h.billing.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"message": "missing identity", "code": "unauthorized"},
		})
		return uuid.Nil, false
	}
	return rd.UserID, true
}
