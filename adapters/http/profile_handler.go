package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/hinderhq/hinder/internal/application/usecase/profile"
)

type ProfileHandler struct {
	createUseCase    *profileUC.CreateProfileUseCase
	getUseCase       *profileUC.GetProfileUseCase
	updateUseCase    *profileUC.UpdateProfileUseCase
	deleteUseCase    *profileUC.DeleteProfileUseCase
	reprocessUseCase *profileUC.ReprocessProfileUseCase
}

func NewProfileHandler(
	createUC *profileUC.CreateProfileUseCase,
	getUC *profileUC.GetProfileUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	deleteUC *profileUC.DeleteProfileUseCase,
	reprocessUC *profileUC.ReprocessProfileUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		createUseCase:    createUC,
		getUseCase:       getUC,
		updateUseCase:    updateUC,
		deleteUseCase:    deleteUC,
		reprocessUseCase: reprocessUC,
	}
}

type createProfileRequest struct {
	Name           string     `json:"name"`
	Headline       string     `json:"headline"`
	Email          string     `json:"email"`
	School         string     `json:"school"`
	Company        string     `json:"company"`
	Seniority      string     `json:"seniority"`
	ProfileURL     string     `json:"profile_url"`
	ResumeFileID   *uuid.UUID `json:"resume_file_id"`
	ResumeFileName string     `json:"resume_file_name"`
	Skills         []string   `json:"skills"`
	Interests      []string   `json:"interests"`
	Topics         []string   `json:"topics"`
	AvailableNow   bool       `json:"available_now"`
	Hackathon      string     `json:"hackathon"`
	Consent        bool       `json:"consent"`
}

// Create accepts the profile, stores it as pending and returns immediately;
// processing continues out of band.
func (h *ProfileHandler) Create(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !req.Consent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consent is required"})
		return
	}

	p, err := h.createUseCase.Execute(c.Request.Context(), profileUC.CreateProfileInput{
		OwnerID:        userID,
		Name:           req.Name,
		Headline:       req.Headline,
		Email:          req.Email,
		School:         req.School,
		Company:        req.Company,
		Seniority:      req.Seniority,
		ProfileURL:     req.ProfileURL,
		ResumeFileID:   req.ResumeFileID,
		ResumeFileName: req.ResumeFileName,
		Skills:         req.Skills,
		Interests:      req.Interests,
		Topics:         req.Topics,
		AvailableNow:   req.AvailableNow,
		Hackathon:      req.Hackathon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, p)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), userID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateProfileRequest struct {
	Name         *string   `json:"name"`
	Headline     *string   `json:"headline"`
	Email        *string   `json:"email"`
	School       *string   `json:"school"`
	Company      *string   `json:"company"`
	Seniority    *string   `json:"seniority"`
	Skills       *[]string `json:"skills"`
	Interests    *[]string `json:"interests"`
	Topics       *[]string `json:"topics"`
	AvailableNow *bool     `json:"available_now"`
	Hackathon    *string   `json:"hackathon"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.updateUseCase.Execute(c.Request.Context(), profileUC.UpdateProfileInput{
		CallerID:     userID,
		ProfileID:    profileID,
		Name:         req.Name,
		Headline:     req.Headline,
		Email:        req.Email,
		School:       req.School,
		Company:      req.Company,
		Seniority:    req.Seniority,
		Skills:       req.Skills,
		Interests:    req.Interests,
		Topics:       req.Topics,
		AvailableNow: req.AvailableNow,
		Hackathon:    req.Hackathon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, p)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), userID, profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ProfileHandler) Reprocess(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	if err := h.reprocessUseCase.Execute(c.Request.Context(), userID, profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
