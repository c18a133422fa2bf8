package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hinderhq/hinder/internal/application/usecase/auth"
)

type AuthHandler struct {
	signupUseCase *auth.SignupUseCase
	loginUseCase  *auth.LoginUseCase
	getMeUseCase  *auth.GetMeUseCase
}

func NewAuthHandler(signupUC *auth.SignupUseCase, loginUC *auth.LoginUseCase, getMeUC *auth.GetMeUseCase) *AuthHandler {
	return &AuthHandler{
		signupUseCase: signupUC,
		loginUseCase:  loginUC,
		getMeUseCase:  getMeUC,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.signupUseCase.Execute(c.Request.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id":      output.UserID,
		"access_token": output.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	u, err := h.getMeUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
