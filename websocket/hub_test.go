package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastScopedToOrg(t *testing.T) {
	hub := NewHub()
	orgA := &client{orgID: 1, send: make(chan SubmissionEvent, 1)}
	orgB := &client{orgID: 2, send: make(chan SubmissionEvent, 1)}
	hub.add(orgA)
	hub.add(orgB)

	hub.Broadcast(SubmissionEvent{Type: "submission.created", SubmissionID: "s-1", OrgID: 1})

	select {
	case ev := <-orgA.send:
		assert.Equal(t, "submission.created", ev.Type)
		assert.Equal(t, "s-1", ev.SubmissionID)
	default:
		t.Fatal("org 1 client did not receive the event")
	}
	require.Empty(t, orgB.send)
}

func TestBroadcastDropsWhenConsumerIsFull(t *testing.T) {
	hub := NewHub()
	c := &client{orgID: 1, send: make(chan SubmissionEvent, 1)}
	hub.add(c)

	hub.Broadcast(SubmissionEvent{Type: "submission.created", OrgID: 1})
	// The buffer is full now; the second broadcast must not block.
	hub.Broadcast(SubmissionEvent{Type: "submission.reviewed", OrgID: 1})

	assert.Len(t, c.send, 1)
}

func TestRemoveStopsDelivery(t *testing.T) {
	hub := NewHub()
	c := &client{orgID: 1, send: make(chan SubmissionEvent, 1)}
	hub.add(c)
	hub.remove(c)

	hub.Broadcast(SubmissionEvent{Type: "submission.created", OrgID: 1})

	_, open := <-c.send
	assert.False(t, open)
}
