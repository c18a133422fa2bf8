package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	matchUC "github.com/hinderhq/hinder/internal/application/usecase/match"
	"github.com/hinderhq/hinder/internal/domain/match"
)

type MatchHandler struct {
	getMatchesUseCase     *matchUC.GetMatchesUseCase
	submitFeedbackUseCase *matchUC.SubmitFeedbackUseCase
	requestIntroUseCase   *matchUC.RequestIntroUseCase
}

func NewMatchHandler(
	getMatchesUC *matchUC.GetMatchesUseCase,
	submitFeedbackUC *matchUC.SubmitFeedbackUseCase,
	requestIntroUC *matchUC.RequestIntroUseCase,
) *MatchHandler {
	return &MatchHandler{
		getMatchesUseCase:     getMatchesUC,
		submitFeedbackUseCase: submitFeedbackUC,
		requestIntroUseCase:   requestIntroUC,
	}
}

func (h *MatchHandler) GetMatches(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid profile_id query parameter is required"})
		return
	}

	k := 0
	if raw := c.Query("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
	}

	matches, err := h.getMatchesUseCase.Execute(c.Request.Context(), matchUC.GetMatchesInput{
		CallerID:  userID,
		ProfileID: profileID,
		K:         k,
		Topic:     c.Query("topic"),
		Hackathon: c.Query("hackathon"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

type feedbackRequest struct {
	CandidateID uuid.UUID `json:"candidate_id" binding:"required"`
	Feedback    string    `json:"feedback" binding:"required"`
}

func (h *MatchHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := h.submitFeedbackUseCase.Execute(c.Request.Context(), matchUC.SubmitFeedbackInput{
		UserID:      userID,
		CandidateID: req.CandidateID,
		Feedback:    match.Feedback(req.Feedback),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

type introRequest struct {
	FromProfileID uuid.UUID `json:"from_profile_id" binding:"required"`
	ToProfileID   uuid.UUID `json:"to_profile_id" binding:"required"`
}

func (h *MatchHandler) RequestIntro(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	var req introRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.requestIntroUseCase.Execute(c.Request.Context(), matchUC.RequestIntroInput{
		CallerID:      userID,
		FromProfileID: req.FromProfileID,
		ToProfileID:   req.ToProfileID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}
