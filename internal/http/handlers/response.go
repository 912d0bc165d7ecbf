package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/platform/apierr"
)

func respondError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": gin.H{"message": ae.Error(), "code": ae.Code}})
		return
	}
	if dberr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found", "code": "not_found"}})
		return
	}
	if dberr.IsConflict(err) {
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "conflict", "code": "conflict"}})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "internal error", "code": "internal"}})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": msg, "code": "bad_request"}})
}
