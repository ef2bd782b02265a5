package v1

import (
	"context"
	"iter"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"filebot/src/core/chat"
	"filebot/src/log"
)

const headerRequestID = "X-Request-ID"

// Dispatcher turns an event into replies
type Dispatcher interface {
	Dispatch(ctx context.Context, ev chat.Event) (iter.Seq[chat.Reply], bool)
}

type Handler struct {
	dispatcher Dispatcher
}

func NewHandler(dispatcher Dispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
	}
}

// RegisterRoutes registers all v1 API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(requestID())

	v1 := r.Group("/api/v1")
	v1.POST("/events", h.HandleEvent)
	v1.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// EventResponse lists the replies for one event, in delivery order
type EventResponse struct {
	Handled bool         `json:"handled"`
	Replies []chat.Reply `json:"replies"`
}

// HandleEvent godoc
// @Summary Run a chat event through the file command dispatcher
// @Accept json
// @Param event body chat.Event true "Inbound chat event"
// @Produce json
// @Success 200 {object} EventResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func (h *Handler) HandleEvent(c *gin.Context) {
	var ev chat.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_EVENT",
			Message: err.Error(),
		})
		return
	}
	if ev.ID == "" {
		ev.ID = c.GetString(headerRequestID)
	}

	resp := EventResponse{Replies: []chat.Reply{}}
	replies, handled := h.dispatcher.Dispatch(c.Request.Context(), ev)
	if handled {
		resp.Handled = true
		for r := range replies {
			resp.Replies = append(resp.Replies, r)
		}
	}

	log.Debug("Event handled over HTTP", "event", ev.ID, "handled", handled, "replies", len(resp.Replies))
	c.JSON(http.StatusOK, resp)
}

// CheckHealth godoc
// @Summary Liveness probe
// @Produce json
// @Success 200
// @Router /health [get]
func (h *Handler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestID propagates or assigns X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
