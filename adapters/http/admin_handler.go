package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	adminUC "github.com/hinderhq/hinder/internal/application/usecase/admin"
)

type AdminHandler struct {
	statsUseCase *adminUC.GetStatsUseCase
	seedUseCase  *adminUC.SeedProfilesUseCase
	clearUseCase *adminUC.ClearFeedbackUseCase
}

func NewAdminHandler(
	statsUC *adminUC.GetStatsUseCase,
	seedUC *adminUC.SeedProfilesUseCase,
	clearUC *adminUC.ClearFeedbackUseCase,
) *AdminHandler {
	return &AdminHandler{
		statsUseCase: statsUC,
		seedUseCase:  seedUC,
		clearUseCase: clearUC,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	output, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *AdminHandler) Seed(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	count, _ := strconv.Atoi(c.DefaultQuery("count", "12"))
	added, err := h.seedUseCase.Execute(c.Request.Context(), userID, count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *AdminHandler) ClearFeedback(c *gin.Context) {
	deleted, err := h.clearUseCase.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
}
