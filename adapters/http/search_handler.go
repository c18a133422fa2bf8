package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	searchUC "github.com/hinderhq/hinder/internal/application/usecase/search"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchProfilesUseCase
}

func NewSearchHandler(searchUC *searchUC.SearchProfilesUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: searchUC}
}

func (h *SearchHandler) Search(c *gin.Context) {
	input := searchUC.SearchProfilesInput{
		Query:     c.Query("q"),
		Skills:    csvList(c.Query("skills")),
		Topics:    csvList(c.Query("topics")),
		Hackathon: c.Query("hackathon"),
	}

	if raw := c.Query("available_now"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available_now must be a boolean"})
			return
		}
		input.AvailableNow = &v
	}
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exclude_id"})
			return
		}
		input.ExcludeID = id
	}
	input.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	input.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, output)
}

func csvList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
