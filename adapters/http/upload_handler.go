package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	uploadUC "github.com/hinderhq/hinder/internal/application/usecase/upload"
)

type UploadHandler struct {
	uploadResumeUseCase *uploadUC.UploadResumeUseCase
}

func NewUploadHandler(uploadResumeUC *uploadUC.UploadResumeUseCase) *UploadHandler {
	return &UploadHandler{uploadResumeUseCase: uploadResumeUC}
}

func (h *UploadHandler) UploadResume(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file form field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	u, err := h.uploadResumeUseCase.Execute(c.Request.Context(), uploadUC.UploadResumeInput{
		OwnerID:  userID,
		File:     file,
		FileName: fileHeader.Filename,
		Mime:     fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}
