package sse

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
)

// HubNotifier forwards membership store events to the user's SSE streams.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// Publish implements store.Subscriber.
func (n *HubNotifier) Publish(ev store.Event) {
	if n.hub.UserClientCount(ev.UserID) == 0 {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	n.hub.SendToUser(ev.UserID, Message{Event: string(ev.Kind), Data: data})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) Publish(ev store.Event) {}
