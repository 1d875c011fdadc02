package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	a := h.Register("u1")
	b := h.Register("u1")
	c := h.Register("u2")

	assert.Equal(t, 3, h.ClientCount())
	assert.Equal(t, 2, h.UserClientCount("u1"))

	h.Unregister(a.ID)
	h.Unregister(a.ID) // second call is a no-op
	assert.Equal(t, 1, h.UserClientCount("u1"))

	_, ok := <-a.Events
	assert.False(t, ok)

	h.Unregister(b.ID)
	h.Unregister(c.ID)
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_SendToUserOnlyReachesThatUser(t *testing.T) {
	h := NewHub()
	defer h.Close()
	a := h.Register("u1")
	other := h.Register("u2")

	n := h.SendToUser("u1", Message{Event: "cart.changed", Data: []byte(`{}`)})
	assert.Equal(t, 1, n)

	msg := <-a.Events
	assert.Equal(t, "cart.changed", msg.Event)
	assert.Len(t, other.Events, 0)
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	defer h.Close()
	c := h.Register("u1")

	for i := 0; i < cap(c.Events); i++ {
		require.Equal(t, 1, h.SendToUser("u1", Message{Event: "x"}))
	}
	assert.Equal(t, 0, h.SendToUser("u1", Message{Event: "x"}))
}

func TestHub_CloseRefusesNewClients(t *testing.T) {
	h := NewHub()
	c := h.Register("u1")
	h.Close()

	_, ok := <-c.Events
	assert.False(t, ok)
	assert.Nil(t, h.Register("u1"))
	h.Close()
}

func TestHubNotifier_StoreEvents(t *testing.T) {
	h := NewHub()
	defer h.Close()
	c := h.Register("u1")

	s := store.New()
	s.Subscribe(NewHubNotifier(h))
	s.Subscribe(&NopNotifier{})

	s.ReplaceCart("u1", map[string]int{"p1": 2})
	s.ReplaceCart("u2", map[string]int{"p1": 1})

	require.Len(t, c.Events, 1)
	msg := <-c.Events
	assert.Equal(t, string(store.EventCartChanged), msg.Event)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "cart.changed", payload["event"])
	assert.Equal(t, 2.0, payload["cartCount"])
	assert.NotContains(t, payload, "UserID")
}
