package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/sse"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
)

// SSEHandler streams the shopper's cart and wishlist changes.
type SSEHandler struct {
	hub          *sse.Hub
	store        *store.Store
	parser       *session.TokenParser
	pingInterval time.Duration
}

// NewSSEHandler creates a new SSEHandler.
func NewSSEHandler(hub *sse.Hub, st *store.Store, parser *session.TokenParser) *SSEHandler {
	return &SSEHandler{hub: hub, store: st, parser: parser, pingInterval: 30 * time.Second}
}

// Stream handles GET /v1/events?token=<token>
// EventSource API cannot set custom headers, so the token is passed via query param.
func (h *SSEHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.Error(c, 401, "UNAUTHORIZED", "Missing token query parameter")
		return
	}

	sess, err := h.parser.Parse(token)
	if err != nil {
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	auth, ok := session.Auth(sess)
	if !ok {
		utils.Error(c, 401, "UNAUTHORIZED", "Sign in required")
		return
	}

	client := h.hub.Register(auth.UserID)
	if client == nil {
		utils.Error(c, 503, "SHUTTING_DOWN", "Server is shutting down")
		return
	}
	defer h.hub.Unregister(client.ID)

	// SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	m, _ := h.store.Get(auth.UserID)
	c.SSEvent("connected", gin.H{
		"clientId":    client.ID,
		"wishlistIds": m.WishlistIDs(),
		"cart":        m.Cart(),
		"cartCount":   m.CartCount(),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
	c.Writer.Flush()

	log.Info().Str("client_id", client.ID).Str("user_id", auth.UserID).Msg("Shopper SSE stream started")

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client.Events:
			if !ok {
				return false
			}
			c.SSEvent(msg.Event, string(msg.Data))
			return true
		case <-ping.C:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
