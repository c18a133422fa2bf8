package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/hinderhq/hinder/internal/application/usecase/profile"
	"github.com/hinderhq/hinder/pkg/progress"
)

const streamHeartbeat = 15 * time.Second

type StatusHandler struct {
	getUseCase *profileUC.GetProfileUseCase
	bus        *progress.Bus
}

func NewStatusHandler(getUC *profileUC.GetProfileUseCase, bus *progress.Bus) *StatusHandler {
	return &StatusHandler{getUseCase: getUC, bus: bus}
}

// Get returns the profile's current pipeline status. Clients that miss a
// stream event can always poll this.
func (h *StatusHandler) Get(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile_id"})
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), userID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": p.Status})
}

// Stream pushes one SSE event per pipeline state transition, plus a periodic
// heartbeat so idle connections do not look dead. The stream ends when the
// client disconnects; the server never closes it on its own.
func (h *StatusHandler) Stream(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot get user id from context"})
		return
	}
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile_id"})
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), userID, profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	key := profileID.String()
	events := h.bus.Subscribe(key)
	defer h.bus.Unsubscribe(key, events)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Send the current state first so late subscribers are not blind until
	// the next transition.
	sse.Encode(c.Writer, sse.Event{Event: "status", Data: progress.Event{Status: string(p.Status)}})
	c.Writer.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			sse.Encode(w, sse.Event{Event: "status", Data: ev})
			return true
		case <-heartbeat.C:
			sse.Encode(w, sse.Event{Event: "ping", Data: "keepalive"})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
