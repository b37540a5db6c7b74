package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/video"
)

var knownTypes = map[events.Type]bool{
	events.IdentifyType: true,
	events.TrackType:    true,
	events.ScreenType:   true,
	events.AliasType:    true,
	events.GroupType:    true,
}

type batchPayload struct {
	Batch []events.Event `json:"batch"`
}

// handleEvents accepts a single Segment-format event or a {"batch": [...]}
// envelope and feeds each event through the destination in order.
func (s *Server) handleEvents(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var incoming []events.Event
	var batch batchPayload
	if err := jsonAPI.Unmarshal(body, &batch); err == nil && len(batch.Batch) > 0 {
		incoming = batch.Batch
	} else {
		var single events.Event
		if err := jsonAPI.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		incoming = []events.Event{single}
	}

	for i := range incoming {
		ev := &incoming[i]
		if !knownTypes[ev.Type] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "unknown event type",
				"index": i,
			})
			return
		}
		if ev.MessageID == "" {
			ev.MessageID = uuid.NewString()
		}
		if err := s.destination.Process(ev); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, video.ErrSessionNotStarted) {
				status = http.StatusUnprocessableEntity
			}
			s.logger.WithError(err).WithField("messageId", ev.MessageID).Warn("event processing failed")
			c.JSON(status, gin.H{
				"error":     err.Error(),
				"index":     i,
				"messageId": ev.MessageID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"accepted": len(incoming)})
}

// handleSettings applies a new destination settings payload.
func (s *Server) handleSettings(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	var raw map[string]interface{}
	if err := jsonAPI.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}
	if err := s.destination.UpdateSettingsMap(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.logger.Info("destination settings updated")
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
