package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, cancel
}

func TestHub_BroadcastReachesOnlyRoomMembers(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	inRoom := &Client{Hub: hub, Send: make(chan []byte, 4), Room: RoomForTournament(1)}
	elsewhere := &Client{Hub: hub, Send: make(chan []byte, 4), Room: RoomForTournament(2)}
	hub.Register <- inRoom
	hub.Register <- elsewhere
	require.Eventually(t, func() bool {
		return hub.RoomSize(inRoom.Room) == 1 && hub.RoomSize(elsewhere.Room) == 1
	}, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(inRoom.Room, WebSocketMessage{Type: MessageMatchUpdated, Payload: map[string]int{"round": 0}, RoomID: inRoom.Room})

	select {
	case raw := <-inRoom.Send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessageMatchUpdated, msg.Type)
		assert.Equal(t, "tournament_1", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("room member did not receive the broadcast")
	}
	assert.Empty(t, elsewhere.Send)
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(3)}
	hub.Register <- client
	hub.Unregister <- client

	require.Eventually(t, func() bool { return hub.RoomSize(client.Room) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)

	// broadcasting to an empty room is a no-op
	hub.BroadcastToRoom(client.Room, WebSocketMessage{Type: MessageBracketGenerated})
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub, cancel := newTestHub(t)
	defer cancel()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: RoomForTournament(4)}
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.RoomSize(client.Room) == 1 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		hub.BroadcastToRoom(client.Room, WebSocketMessage{Type: MessageMatchUpdated})
		hub.BroadcastToRoom(client.Room, WebSocketMessage{Type: MessageMatchUpdated})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full client buffer")
	}
	assert.Len(t, client.Send, 1)
}
