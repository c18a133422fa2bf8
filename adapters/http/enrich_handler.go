package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	enrichUC "github.com/hinderhq/hinder/internal/application/usecase/enrich"
)

type EnrichHandler struct {
	enrichUseCase *enrichUC.EnrichProfileUseCase
}

func NewEnrichHandler(enrichUC *enrichUC.EnrichProfileUseCase) *EnrichHandler {
	return &EnrichHandler{enrichUseCase: enrichUC}
}

type enrichRequest struct {
	ProfileID  uuid.UUID `json:"profile_id" binding:"required"`
	ProfileURL string    `json:"profile_url"`
}

// Enrich accepts the request and runs the scrape out of band. Rate-limited
// rejections carry the next-allowed timestamp in the message.
func (h *EnrichHandler) Enrich(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	var req enrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := h.enrichUseCase.Execute(c.Request.Context(), enrichUC.EnrichProfileInput{
		CallerID:   userID,
		ProfileID:  req.ProfileID,
		ProfileURL: req.ProfileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
